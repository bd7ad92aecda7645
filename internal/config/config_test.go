// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBDriver != DriverMySQL {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DriverMySQL)
	}
	if cfg.DBHost != "mysql" {
		t.Errorf("DBHost = %q, want %q", cfg.DBHost, "mysql")
	}
	if cfg.DBUser != "orcharduser" {
		t.Errorf("DBUser = %q, want %q", cfg.DBUser, "orcharduser")
	}
	if cfg.DBName != "OrchardLiteDB" {
		t.Errorf("DBName = %q, want %q", cfg.DBName, "OrchardLiteDB")
	}
	if cfg.DBPort != 3306 {
		t.Errorf("DBPort = %d, want %d", cfg.DBPort, 3306)
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.DBRetryInterval != 5*time.Second {
		t.Errorf("DBRetryInterval = %s, want %s", cfg.DBRetryInterval, 5*time.Second)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.DoSeed {
		t.Error("DoSeed should default to false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "DB_DRIVER", "sqlite")
	setEnv(t, "DB_PATH", "/custom/path.db")
	setEnv(t, "HOST", "127.0.0.1")
	setEnv(t, "PORT", "8081")
	setEnv(t, "ORCHARD_ENV", "production")
	setEnv(t, "LOG_LEVEL", "debug")
	setEnv(t, "DB_RETRY_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DriverSQLite)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "127.0.0.1:8081" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "127.0.0.1:8081")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be false in production")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.DBRetryInterval != 250*time.Millisecond {
		t.Errorf("DBRetryInterval = %s, want 250ms", cfg.DBRetryInterval)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "DB_DRIVER", "postgres"},
		{"port out of range", "PORT", "70000"},
		{"non-numeric port", "PORT", "abc"},
		{"zero retry interval", "DB_RETRY_INTERVAL", "0s"},
		{"zero burst", "RATE_LIMIT_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		cfg := Config{
			DBDriver:   DriverMySQL,
			DBHost:     "mysql",
			DBUser:     "orcharduser",
			DBPassword: "secret",
			DBName:     "OrchardLiteDB",
			DBPort:     3306,
		}

		dsn := cfg.DSN()
		for _, want := range []string{"orcharduser:secret@tcp(mysql:3306)/OrchardLiteDB", "parseTime=true", "charset=utf8mb4"} {
			if !strings.Contains(dsn, want) {
				t.Errorf("DSN() = %q, want it to contain %q", dsn, want)
			}
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := Config{DBDriver: DriverSQLite, DBPath: "/tmp/site.db"}

		dsn := cfg.DSN()
		if !strings.HasPrefix(dsn, "file:/tmp/site.db?") {
			t.Errorf("DSN() = %q, want file: prefix", dsn)
		}
		if !strings.Contains(dsn, "busy_timeout(5000)") {
			t.Errorf("DSN() = %q, want busy_timeout pragma", dsn)
		}
	})
}

func TestConfig_GeoIPEnabled(t *testing.T) {
	if (Config{}).GeoIPEnabled() {
		t.Error("GeoIPEnabled() should be false without a path")
	}
	if !(Config{GeoIPDBPath: "/data/GeoLite2-Country.mmdb"}).GeoIPEnabled() {
		t.Error("GeoIPEnabled() should be true with a path")
	}
}
