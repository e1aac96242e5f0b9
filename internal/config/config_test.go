package config

import (
	"strings"
	"testing"
	"time"

	"personalfinance/internal/database"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "SHUTDOWN_TIMEOUT", "JWT_SECRET", "JWT_EXPIRES_IN",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_SSLMODE", "DB_PATH", "MIGRATIONS_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults_in_development", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.Database.Driver != database.DriverPostgres {
			t.Errorf("expected postgres driver, got %s", cfg.Database.Driver)
		}
		if cfg.JWTSecret != devJWTSecret {
			t.Error("expected development fallback secret")
		}
		if cfg.JWTExpiration != 24*time.Hour {
			t.Errorf("expected 24h expiration, got %s", cfg.JWTExpiration)
		}
	})

	t.Run("sqlite_driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("DB_PATH", "/tmp/pf.db")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Database.DSN() != "/tmp/pf.db" {
			t.Errorf("expected sqlite DSN to be the path, got %s", cfg.Database.DSN())
		}
	})

	t.Run("production_requires_secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for missing JWT_SECRET in production")
		}
	})

	t.Run("production_rejects_short_secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "short")

		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "at least") {
			t.Fatalf("expected short secret error, got %v", err)
		}
	})

	t.Run("production_with_secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", strings.Repeat("k", 40))

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.IsProduction() {
			t.Error("expected production config")
		}
	})

	t.Run("invalid_duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("JWT_EXPIRES_IN", "soon")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for invalid JWT_EXPIRES_IN")
		}
	})

	t.Run("invalid_port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "http")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for invalid PORT")
		}
	})

	t.Run("unknown_driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mongo")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for unknown DB_DRIVER")
		}
	})
}

func TestDatabaseURLs(t *testing.T) {
	c := database.Config{
		Driver:         database.DriverPostgres,
		Host:           "db",
		Port:           "5432",
		User:           "pf",
		Password:       "p@ss",
		DBName:         "finance",
		SSLMode:        "disable",
		MigrationsPath: "migrations",
	}

	if got, want := c.MigrateURL(), "postgres://pf:p%40ss@db:5432/finance?sslmode=disable"; got != want {
		t.Errorf("MigrateURL = %q, want %q", got, want)
	}
	if got, want := c.SourceURL(), "file://migrations"; got != want {
		t.Errorf("SourceURL = %q, want %q", got, want)
	}
	if got := c.DSN(); !strings.Contains(got, "dbname=finance") {
		t.Errorf("DSN missing dbname: %s", got)
	}
}
