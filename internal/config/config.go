package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	YouTube  YouTubeConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Analysis AnalysisConfig
	Logging  LoggingConfig
}

type YouTubeConfig struct {
	APIKey             string
	EnableQuotaBudget  bool
	MaxVideosPerFetch  int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Enabled  bool
}

type GeminiConfig struct {
	APIKey string
}

type OpenAIConfig struct {
	APIKey         string
	EnableFallback bool
}

// AnalysisConfig carries the minimum sample sizes for each analysis stage.
// Below a threshold the stage reports insufficient data instead of guessing.
type AnalysisConfig struct {
	MinClassificationSamples int
	MinTrendSamples          int
	MinGrowthSamples         int
	MinUploadIntervalSamples int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		YouTube: YouTubeConfig{
			APIKey:            getEnv("YOUTUBE_API_KEY", ""),
			EnableQuotaBudget: getEnvBool("YOUTUBE_ENABLE_QUOTA_BUDGET", true),
			MaxVideosPerFetch: getEnvInt("YOUTUBE_MAX_VIDEOS", 200),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "youtubedata"),
			Enabled:  getEnvBool("POSTGRES_ENABLED", false),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Analysis: AnalysisConfig{
			MinClassificationSamples: getEnvInt("ANALYSIS_MIN_CLASSIFICATION", 3),
			MinTrendSamples:          getEnvInt("ANALYSIS_MIN_TREND", 10),
			MinGrowthSamples:         getEnvInt("ANALYSIS_MIN_GROWTH", 5),
			MinUploadIntervalSamples: getEnvInt("ANALYSIS_MIN_UPLOAD_INTERVAL", 2),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if c.Analysis.MinClassificationSamples < 1 {
		return fmt.Errorf("ANALYSIS_MIN_CLASSIFICATION must be at least 1")
	}
	if c.Analysis.MinTrendSamples < 2 {
		return fmt.Errorf("ANALYSIS_MIN_TREND must be at least 2")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
