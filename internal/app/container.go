package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/analyzer"
	"github.com/jsky9292/youtubedata-analytics/internal/compare"
	"github.com/jsky9292/youtubedata-analytics/internal/config"
	"github.com/jsky9292/youtubedata-analytics/internal/service"
	"github.com/jsky9292/youtubedata-analytics/internal/service/cache"
	"github.com/jsky9292/youtubedata-analytics/internal/service/database"
	"github.com/jsky9292/youtubedata-analytics/internal/service/youtube"
)

// Container bundles the assembled services. Optional services (database, AI)
// stay nil when their configuration is absent; callers must check.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Cache      *cache.CacheService
	Database   *database.PostgresService
	YouTube    *youtube.Service
	Resolver   *service.ResolverService
	Analyzer   *analyzer.Analyzer
	Comparator *compare.Comparator
	Models     *service.ModelManager
	Blog       *service.BlogService

	closers []func()
}

// Build assembles all infrastructure services. Heavy initialization (cache,
// DB, API clients) happens here so the command layer stays orchestration only.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}
	c.Cache = cacheSvc
	c.closers = append(c.closers, func() { _ = cacheSvc.Close() })

	if cfg.Database.Enabled {
		postgresSvc, err := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Database,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", err)
		}
		if err := postgresSvc.EnsureSchema(ctx); err != nil {
			_ = postgresSvc.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		c.Database = postgresSvc
		c.closers = append(c.closers, func() { _ = postgresSvc.Close() })
	} else {
		logger.Info("Database persistence disabled")
	}

	youtubeSvc, err := youtube.NewService(cfg.YouTube.APIKey, cacheSvc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	c.YouTube = youtubeSvc
	c.Resolver = service.NewResolverService(cacheSvc, logger)

	analyzerCfg := analyzer.DefaultConfig()
	analyzerCfg.Thresholds = analyzer.Thresholds{
		MinClassification: cfg.Analysis.MinClassificationSamples,
		MinTrend:          cfg.Analysis.MinTrendSamples,
		MinGrowth:         cfg.Analysis.MinGrowthSamples,
		MinUploadInterval: cfg.Analysis.MinUploadIntervalSamples,
	}
	c.Analyzer = analyzer.New(analyzerCfg, logger)
	c.Comparator = compare.New(logger)

	if cfg.Gemini.APIKey != "" {
		models, err := service.NewModelManager(ctx, service.ModelManagerConfig{
			GeminiAPIKey:   cfg.Gemini.APIKey,
			OpenAIAPIKey:   cfg.OpenAI.APIKey,
			EnableFallback: cfg.OpenAI.EnableFallback,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create model manager: %w", err)
		}
		c.Models = models
		c.Blog = service.NewBlogService(models, cacheSvc, logger)
	} else {
		logger.Info("AI report generation disabled (no Gemini API key)")
	}

	logger.Info("Application services assembled",
		zap.Bool("database", c.Database != nil),
		zap.Bool("ai", c.Models != nil))

	return c, nil
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
