package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		App    App
		Server Server
		PG     PG
		Import Import
	}

	App struct {
		Env      string     `env:"APP_ENV" envDefault:"dev"`
		LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	}

	Server struct {
		Port                   string `env:"SERVER_PORT" envDefault:"5000"`
		ReadTimeoutSeconds     int    `env:"SERVER_READ_TIMEOUT_SECONDS" envDefault:"15"`
		WriteTimeoutSeconds    int    `env:"SERVER_WRITE_TIMEOUT_SECONDS" envDefault:"15"`
		IdleTimeoutSeconds     int    `env:"SERVER_IDLE_TIMEOUT_SECONDS" envDefault:"60"`
		ShutdownTimeoutSeconds int    `env:"SERVER_SHUTDOWN_TIMEOUT_SECONDS" envDefault:"5"`
	}

	PG struct {
		URL              string `env:"DATABASE_URL"`
		User             string `env:"DB_USER" envDefault:"postgres"`
		Password         string `env:"DB_PASSWORD"`
		Host             string `env:"DB_HOST" envDefault:"localhost"`
		Port             int    `env:"DB_PORT" envDefault:"5432"`
		DBName           string `env:"DB_NAME" envDefault:"uv_melbourne"`
		SSLMode          string `env:"DB_SSLMODE" envDefault:"disable"`
		CloudSQLInstance string `env:"CLOUD_SQL_CONNECTION_NAME"`
		PoolMax          int    `env:"DB_POOL_MAX" envDefault:"0"`
		Tables           Tables
	}

	Tables struct {
		Observations string `env:"DB_OBSERVATION_TABLE" envDefault:"uv_melbourne"`
		UV           string `env:"DB_UV_TABLE" envDefault:"uv_data_test"`
	}

	Import struct {
		File           string `env:"IMPORT_FILE"`
		BatchSize      int    `env:"IMPORT_BATCH_SIZE" envDefault:"1000"`
		Delimiter      string `env:"IMPORT_DELIMITER" envDefault:","`
		TimeoutSeconds int    `env:"IMPORT_TIMEOUT_SECONDS" envDefault:"300"`
	}
)

func NewConfig() (Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}

	switch cfg.App.Env {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("config error: invalid APP_ENV %q (allowed: dev, prod)", cfg.App.Env)
	}
	if cfg.PG.PoolMax < 0 {
		return Config{}, fmt.Errorf("config error: DB_POOL_MAX must be >= 0")
	}
	if cfg.Import.BatchSize < 1 {
		return Config{}, fmt.Errorf("config error: IMPORT_BATCH_SIZE must be >= 1")
	}
	if len([]rune(cfg.Import.Delimiter)) != 1 {
		return Config{}, fmt.Errorf("config error: IMPORT_DELIMITER must be a single character")
	}

	return *cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL built from the
// individual settings. With CLOUD_SQL_CONNECTION_NAME the host is the Cloud SQL
// unix socket directory.
func (pg PG) DSN() string {
	if pg.URL != "" {
		return pg.URL
	}

	u := url.URL{
		Scheme: "postgres",
		Path:   "/" + pg.DBName,
	}
	if pg.Password != "" {
		u.User = url.UserPassword(pg.User, pg.Password)
	} else {
		u.User = url.User(pg.User)
	}

	q := url.Values{}
	q.Set("sslmode", pg.SSLMode)
	if pg.CloudSQLInstance != "" {
		q.Set("host", "/cloudsql/"+pg.CloudSQLInstance)
	} else {
		u.Host = net.JoinHostPort(pg.Host, strconv.Itoa(pg.Port))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func (i Import) Comma() rune {
	return []rune(i.Delimiter)[0]
}
