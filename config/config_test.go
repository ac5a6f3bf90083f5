package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// go test -v --run TestLoadDefaults
func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load without file: %v", err)
	}
	if cfg.Upstream.Account != "StockTraders" {
		t.Errorf("unexpected account: %q", cfg.Upstream.Account)
	}
	if cfg.Upstream.Timeout != 0 {
		t.Errorf("expected no upstream timeout by default, got %v", cfg.Upstream.Timeout)
	}
	if cfg.View.DefaultStart != "2023-01-01" || cfg.View.DefaultEnd != "2023-12-31" {
		t.Errorf("unexpected default range: %s..%s", cfg.View.DefaultStart, cfg.View.DefaultEnd)
	}
	if cfg.Postgres.Enabled {
		t.Error("archive must be disabled by default")
	}
}

// go test -v --run TestLoadFileAndEnv
func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := strings.Join([]string{
		"server:",
		"  addr: 127.0.0.1:9000",
		"upstream:",
		"  account: Analyst",
		"  timeout: 15s",
		"log:",
		"  level: debug",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("UPSTREAM_URL", "http://127.0.0.1:1/getTotalTrade")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server.addr: got %q", cfg.Server.Addr)
	}
	if cfg.Upstream.Account != "Analyst" || cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("upstream: got %+v", cfg.Upstream)
	}
	if cfg.Upstream.URL != "http://127.0.0.1:1/getTotalTrade" {
		t.Errorf("env override not applied: %q", cfg.Upstream.URL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level: got %q", cfg.Log.Level)
	}
}

// go test -v --run TestValidate
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"empty url", func(c *Config) { c.Upstream.URL = "" }},
		{"negative timeout", func(c *Config) { c.Upstream.Timeout = -time.Second }},
		{"bad start", func(c *Config) { c.View.DefaultStart = "01/01/2023" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Server:   ServerConfig{Addr: ":0"},
				Upstream: UpstreamConfig{URL: "http://x"},
				View:     ViewConfig{DefaultStart: "2023-01-01", DefaultEnd: "2023-12-31"},
			}
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// go test -v --run TestPostgresDSN
func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Environment: "dev",
		Host:        "localhost",
		Port:        5432,
		User:        "postgres",
		Password:    "pw",
		DBName:      "stockview",
		SSLMode:     "disable",
		TimeZone:    "UTC",
	}
	want := "host=localhost port=5432 user=postgres password=pw dbname=stockview sslmode=disable TimeZone=UTC"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN:\n got %s\nwant %s", got, want)
	}
	if got := cfg.ServerDSN(); !strings.Contains(got, "dbname=postgres") {
		t.Errorf("ServerDSN should target the postgres db: %s", got)
	}
}
