package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr          string `env:"DOORHOP_ADDR" envDefault:":8080"`
	DBDSN         string `env:"DOORHOP_DB_DSN"`
	MigrationsDir string `env:"DOORHOP_MIGRATIONS_DIR"`
	AutoMigrate   bool   `env:"DOORHOP_AUTO_MIGRATE" envDefault:"true"`
	TuningPath    string `env:"DOORHOP_TUNING_PATH"`
	MetricsAddr   string `env:"DOORHOP_METRICS_ADDR" envDefault:":9090"`
	LogLevel      string `env:"DOORHOP_LOG_LEVEL" envDefault:"info"`
	RandomSeed    int64  `env:"DOORHOP_RANDOM_SEED"`
	CORSOrigin    string `env:"DOORHOP_CORS_ORIGIN"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBDSN = strings.TrimSpace(cfg.DBDSN)
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
