// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the OrchardLite runtime configuration from the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds the application configuration loaded from environment variables.
// Variable names and defaults match the container setup the site is deployed with.
type Config struct {
	DBDriver        string        `env:"DB_DRIVER" envDefault:"mysql"`
	DBHost          string        `env:"DB_HOST" envDefault:"mysql"`
	DBUser          string        `env:"DB_USER" envDefault:"orcharduser"`
	DBPassword      string        `env:"DB_PASSWORD" envDefault:"OrchardPassword123!"`
	DBName          string        `env:"DB_NAME" envDefault:"OrchardLiteDB"`
	DBPort          int           `env:"DB_PORT" envDefault:"3306"`
	DBPath          string        `env:"DB_PATH" envDefault:"./data/orchardlite.db"` // SQLite only
	DBRetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"`

	ServerHost     string        `env:"HOST" envDefault:"0.0.0.0"`
	ServerPort     int           `env:"PORT" envDefault:"3000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	Env            string        `env:"ORCHARD_ENV" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`

	// Public page rate limiting, per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// GeoIP configuration
	GeoIPDBPath string `env:"GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return "file:" + c.DBPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite"
	}

	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort))
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DBDriver {
	case DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverSQLite, cfg.DBDriver)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if cfg.DBRetryInterval <= 0 {
		return nil, fmt.Errorf("DB_RETRY_INTERVAL must be positive, got %s", cfg.DBRetryInterval)
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}
