package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) Config {
	t.Helper()
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	}); err != nil {
		t.Fatalf("process config: %v", err)
	}
	return cfg
}

func TestDefaultsRunOnMemoryStores(t *testing.T) {
	cfg := load(t, nil)
	if dsn := cfg.PostgresDSN(); dsn != "" {
		t.Fatalf("no database env must mean memory mode, got %q", dsn)
	}
	if addr := cfg.Addr(); addr != "0.0.0.0:8080" {
		t.Fatalf("unexpected default addr %q", addr)
	}
	if cfg.Database.MaxOpenConns != 25 || cfg.Database.MaxIdleConns != 5 || cfg.Database.ConnMaxLifetimeMins != 30 {
		t.Fatalf("unexpected pool defaults %+v", cfg.Database)
	}
}

func TestExplicitDSNWinsOverParts(t *testing.T) {
	cfg := load(t, map[string]string{
		"DB_DSN":  "host=explicit port=5432 user=u password=p dbname=d sslmode=disable",
		"DB_HOST": "ignored",
	})
	if dsn := cfg.PostgresDSN(); dsn != "host=explicit port=5432 user=u password=p dbname=d sslmode=disable" {
		t.Fatalf("explicit DSN must win, got %q", dsn)
	}
}

func TestDSNAssembledFromParts(t *testing.T) {
	cfg := load(t, map[string]string{"DB_HOST": "db.internal"})
	want := "host=db.internal port=5432 user=postgres password=postgres dbname=fieldproof sslmode=disable"
	if dsn := cfg.PostgresDSN(); dsn != want {
		t.Fatalf("assembled DSN mismatch:\n got %q\nwant %q", dsn, want)
	}
}

func TestPoolSizingFromEnv(t *testing.T) {
	cfg := load(t, map[string]string{
		"DB_MAX_OPEN_CONNS":            "80",
		"DB_MAX_IDLE_CONNS":            "10",
		"DB_CONN_MAX_LIFETIME_MINUTES": "5",
	})
	if cfg.Database.MaxOpenConns != 80 || cfg.Database.MaxIdleConns != 10 || cfg.Database.ConnMaxLifetimeMins != 5 {
		t.Fatalf("pool env overrides not applied: %+v", cfg.Database)
	}
}
