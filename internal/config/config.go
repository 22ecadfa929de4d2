package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultDatabasePath   = "./data/videos.db"
	defaultSessionMinutes = 30
	defaultLogLevel       = "info"
)

// Config holds bot configuration loaded from environment variables.
type Config struct {
	BotToken      string        // TELEGRAM_BOT_TOKEN
	IFLYChatID    int64         // TELEGRAM_IFLY_CHAT_ID
	DatabasePath  string        // DATABASE_PATH
	SessionLength time.Duration // SESSION_LENGTH_MINUTES
	LogLevel      string        // LOG_LEVEL
}

// Load loads config from environment (.env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabasePath: getEnv("DATABASE_PATH", defaultDatabasePath),
		LogLevel:     getEnv("LOG_LEVEL", defaultLogLevel),
	}

	if raw := os.Getenv("TELEGRAM_IFLY_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: TELEGRAM_IFLY_CHAT_ID must be an integer: %v", err)
		}
		cfg.IFLYChatID = id
	}

	minutes := defaultSessionMinutes
	if raw := os.Getenv("SESSION_LENGTH_MINUTES"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			minutes = v
		}
	}
	cfg.SessionLength = time.Duration(minutes) * time.Minute

	return cfg, nil
}

// Validate checks required fields, reporting every missing variable at once.
func (c *Config) Validate() error {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.IFLYChatID == 0 {
		missing = append(missing, "TELEGRAM_IFLY_CHAT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// BuildLogger builds a zap logger at the configured level. Unknown level
// strings fall back to info.
func (c *Config) BuildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
