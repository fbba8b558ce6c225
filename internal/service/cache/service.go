package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/pkg/errors"
)

type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

// resolvedHashKey maps channel handles and custom URLs to canonical IDs so
// repeated lookups skip the search endpoint entirely.
const resolvedHashKey = "youtube:channels:resolved"

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCacheService(cfg CacheConfig, logger *zap.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &CacheService{
		client: client,
		logger: logger,
	}, nil
}

func (c *CacheService) Get(ctx context.Context, key string, dest any) error {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // Key doesn't exist - not an error
	}
	if err != nil {
		c.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("get failed", "get", key, err)
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			c.logger.Error("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
			return errors.NewCacheError("unmarshal failed", "get", key, err)
		}
	}

	return nil
}

func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	if ttl > 0 {
		err = c.client.Set(ctx, key, jsonData, ttl).Err()
	} else {
		err = c.client.Set(ctx, key, jsonData, 0).Err()
	}

	if err != nil {
		c.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("set failed", "set", key, err)
	}

	return nil
}

func (c *CacheService) Del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

func (c *CacheService) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.logger.Error("Cache keys search failed", zap.String("pattern", pattern), zap.Error(err))
		return []string{}, errors.NewCacheError("keys search failed", "keys", pattern, err)
	}
	return keys, nil
}

func (c *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Error("Cache exists failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewCacheError("exists failed", "exists", key, err)
	}
	return count > 0, nil
}

func (c *CacheService) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		c.logger.Error("Cache expire failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("expire failed", "expire", key, err)
	}
	return nil
}

func (c *CacheService) Close() error {
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	c.logger.Info("Redis disconnected")
	return nil
}

func (c *CacheService) IsConnected(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

func (c *CacheService) WaitUntilReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for Redis to be ready")
		case <-ticker.C:
			if c.IsConnected(ctx) {
				return nil
			}
		}
	}
}

func (c *CacheService) GetResolvedChannelID(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", nil
	}

	value, err := c.client.HGet(ctx, resolvedHashKey, query).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		c.logger.Error("Failed to get resolved channel ID", zap.String("query", query), zap.Error(err))
		return "", errors.NewCacheError("hget failed", "hget", resolvedHashKey, err)
	}
	return value, nil
}

func (c *CacheService) AddResolvedChannel(ctx context.Context, query, channelID string) error {
	if query == "" || channelID == "" {
		return fmt.Errorf("query and channel ID must be provided")
	}

	if err := c.client.HSet(ctx, resolvedHashKey, query, channelID).Err(); err != nil {
		c.logger.Error("Failed to add resolved channel", zap.String("query", query), zap.String("channel_id", channelID), zap.Error(err))
		return errors.NewCacheError("hset failed", "hset", resolvedHashKey, err)
	}
	return nil
}

func (c *CacheService) GetChannel(ctx context.Context, key string) (*domain.Channel, bool) {
	var channel *domain.Channel
	if err := c.Get(ctx, key, &channel); err != nil || channel == nil {
		return nil, false
	}
	return channel, true
}

func (c *CacheService) SetChannel(ctx context.Context, key string, channel *domain.Channel, ttl time.Duration) {
	if err := c.Set(ctx, key, channel, ttl); err != nil {
		c.logger.Error("Failed to cache channel", zap.String("key", key), zap.Error(err))
	}
}

func (c *CacheService) GetVideos(ctx context.Context, key string) ([]domain.Video, bool) {
	var videos []domain.Video
	if err := c.Get(ctx, key, &videos); err != nil {
		return nil, false
	}
	if videos == nil {
		return nil, false
	}
	return videos, true
}

func (c *CacheService) SetVideos(ctx context.Context, key string, videos []domain.Video, ttl time.Duration) {
	if err := c.Set(ctx, key, videos, ttl); err != nil {
		c.logger.Error("Failed to cache videos", zap.String("key", key), zap.Error(err))
	}
}

func (c *CacheService) GetAnalysis(ctx context.Context, key string) (*domain.AnalysisResult, bool) {
	var result *domain.AnalysisResult
	if err := c.Get(ctx, key, &result); err != nil || result == nil {
		return nil, false
	}
	return result, true
}

func (c *CacheService) SetAnalysis(ctx context.Context, key string, result *domain.AnalysisResult, ttl time.Duration) {
	if err := c.Set(ctx, key, result, ttl); err != nil {
		c.logger.Error("Failed to cache analysis", zap.String("key", key), zap.Error(err))
	}
}

func (c *CacheService) GetRedisClient() *redis.Client {
	return c.client
}
