package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
)

type PostgresService struct {
	db     *sql.DB
	logger *zap.Logger
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func NewPostgresService(cfg PostgresConfig, logger *zap.Logger) (*PostgresService, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return &PostgresService{
		db:     db,
		logger: logger,
	}, nil
}

func (ps *PostgresService) GetDB() *sql.DB {
	return ps.db
}

func (ps *PostgresService) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

func (ps *PostgresService) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

// EnsureSchema creates the report tables when they are missing. Reports are
// stored as JSONB so the full result round-trips without per-field columns.
func (ps *PostgresService) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS channels (
			channel_id       TEXT PRIMARY KEY,
			channel_name     TEXT NOT NULL,
			subscriber_count BIGINT NOT NULL DEFAULT 0,
			video_count      BIGINT NOT NULL DEFAULT 0,
			view_count       BIGINT NOT NULL DEFAULT 0,
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS analysis_reports (
			id          BIGSERIAL PRIMARY KEY,
			channel_id  TEXT NOT NULL REFERENCES channels(channel_id),
			report      JSONB NOT NULL,
			analyzed_at TIMESTAMPTZ NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_reports_channel
			ON analysis_reports (channel_id, analyzed_at DESC)`,
		`CREATE TABLE IF NOT EXISTS comparison_reports (
			id              BIGSERIAL PRIMARY KEY,
			main_channel_id TEXT NOT NULL,
			competitor_ids  TEXT[] NOT NULL,
			report          JSONB NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := ps.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	ps.logger.Info("Database schema ensured")
	return nil
}

func (ps *PostgresService) UpsertChannel(ctx context.Context, channel *domain.Channel) error {
	query := `
		INSERT INTO channels (channel_id, channel_name, subscriber_count, video_count, view_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (channel_id) DO UPDATE SET
			channel_name     = EXCLUDED.channel_name,
			subscriber_count = EXCLUDED.subscriber_count,
			video_count      = EXCLUDED.video_count,
			view_count       = EXCLUDED.view_count,
			updated_at       = now()`

	_, err := ps.db.ExecContext(ctx, query,
		channel.ChannelID, channel.ChannelName,
		channel.SubscriberCount, channel.VideoCount, channel.ViewCount)
	if err != nil {
		ps.logger.Error("Failed to upsert channel",
			zap.String("channel", channel.ChannelID),
			zap.Error(err))
		return fmt.Errorf("upsert channel: %w", err)
	}
	return nil
}

func (ps *PostgresService) SaveAnalysisReport(ctx context.Context, channelID string, result *domain.AnalysisResult) (int64, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("marshal analysis report: %w", err)
	}

	var id int64
	err = ps.db.QueryRowContext(ctx,
		`INSERT INTO analysis_reports (channel_id, report, analyzed_at) VALUES ($1, $2, $3) RETURNING id`,
		channelID, payload, result.AnalyzedAt).Scan(&id)
	if err != nil {
		ps.logger.Error("Failed to save analysis report",
			zap.String("channel", channelID),
			zap.Error(err))
		return 0, fmt.Errorf("save analysis report: %w", err)
	}

	ps.logger.Info("Analysis report saved",
		zap.String("channel", channelID),
		zap.Int64("report_id", id))
	return id, nil
}

func (ps *PostgresService) GetLatestAnalysisReport(ctx context.Context, channelID string) (*domain.AnalysisResult, error) {
	var payload []byte
	err := ps.db.QueryRowContext(ctx,
		`SELECT report FROM analysis_reports WHERE channel_id = $1 ORDER BY analyzed_at DESC LIMIT 1`,
		channelID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load analysis report: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal analysis report: %w", err)
	}
	return &result, nil
}

func (ps *PostgresService) SaveComparisonReport(ctx context.Context, mainChannelID string, competitorIDs []string, result *domain.ComparisonResult) (int64, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("marshal comparison report: %w", err)
	}

	ids := make([]string, len(competitorIDs))
	copy(ids, competitorIDs)

	var id int64
	err = ps.db.QueryRowContext(ctx,
		`INSERT INTO comparison_reports (main_channel_id, competitor_ids, report) VALUES ($1, $2, $3) RETURNING id`,
		mainChannelID, pq.Array(ids), payload).Scan(&id)
	if err != nil {
		ps.logger.Error("Failed to save comparison report",
			zap.String("channel", mainChannelID),
			zap.Error(err))
		return 0, fmt.Errorf("save comparison report: %w", err)
	}

	ps.logger.Info("Comparison report saved",
		zap.String("channel", mainChannelID),
		zap.Int("competitors", len(competitorIDs)),
		zap.Int64("report_id", id))
	return id, nil
}

func (ps *PostgresService) ListRecentReports(ctx context.Context, channelID string, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := ps.db.QueryContext(ctx,
		`SELECT analyzed_at FROM analysis_reports WHERE channel_id = $1 ORDER BY analyzed_at DESC LIMIT $2`,
		channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}
