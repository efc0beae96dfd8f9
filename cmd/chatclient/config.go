package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the chat client configuration. Environment first, flags
// override.
type Config struct {
	ServerURL string `env:"GOCHAT_SERVER_URL" envDefault:"ws://localhost:10101/chat"`
	Username  string `env:"GOCHAT_USERNAME"`
	LogLevel  string `env:"GOCHAT_LOG_LEVEL"  envDefault:"info"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.ServerURL, "server-url", cfg.ServerURL, "chat server websocket URL")
	fs.StringVar(&cfg.Username, "username", cfg.Username, "username for the session")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
