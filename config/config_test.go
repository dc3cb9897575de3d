package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.Browser.Headless {
		t.Error("browsers should default to headless")
	}
	if cfg.Crawler.Concurrency != 3 {
		t.Errorf("default concurrency = %d, want 3", cfg.Crawler.Concurrency)
	}
	if cfg.Crawler.TableWait != 10*time.Second {
		t.Errorf("default table wait = %v, want 10s", cfg.Crawler.TableWait)
	}
	if cfg.Crawler.RowWait != 5*time.Second {
		t.Errorf("default row wait = %v, want 5s", cfg.Crawler.RowWait)
	}
	if cfg.Auth.Enabled {
		t.Error("auth should be disabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PROPLENS_PORT", "9090")
	t.Setenv("PROPLENS_HEADLESS", "false")
	t.Setenv("PROPLENS_CONCURRENCY", "7")
	t.Setenv("PROPLENS_ROW_WAIT", "2s")
	t.Setenv("PROPLENS_API_KEYS", "key-1, key-2 ,")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Browser.Headless {
		t.Error("headless should be overridden to false")
	}
	if cfg.Crawler.Concurrency != 7 {
		t.Errorf("concurrency = %d, want 7", cfg.Crawler.Concurrency)
	}
	if cfg.Crawler.RowWait != 2*time.Second {
		t.Errorf("row wait = %v, want 2s", cfg.Crawler.RowWait)
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys[0] != "key-1" || cfg.Auth.APIKeys[1] != "key-2" {
		t.Errorf("api keys = %v, want [key-1 key-2]", cfg.Auth.APIKeys)
	}
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("PROPLENS_PORT", "not-a-number")
	t.Setenv("PROPLENS_NAV_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want fallback 8080", cfg.Server.Port)
	}
	if cfg.Crawler.NavTimeout != 30*time.Second {
		t.Errorf("nav timeout = %v, want fallback 30s", cfg.Crawler.NavTimeout)
	}
}
