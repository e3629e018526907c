package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	// Point the default location at an empty directory.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Store.Backend != storeMemory {
		t.Errorf("default store backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("default cache backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"

[store]
backend = "mongo"
uri = "mongodb://localhost:27017"
database = "plans"

[cache]
backend = "redis"
addr = "localhost:6379"
db = 2
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Store.Backend != storeMongo || cfg.Store.URI != "mongodb://localhost:27017" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Store.Database != "plans" {
		t.Errorf("database = %q, want plans", cfg.Store.Database)
	}
	if cfg.Cache.Backend != cacheBackendRedis || cfg.Cache.DB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	// Unset sections keep their defaults.
	path := writeConfig(t, `
[server]
addr = ":3000"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("addr = %q, want :3000", cfg.Server.Addr)
	}
	if cfg.Store.Backend != storeMemory {
		t.Errorf("store backend = %q, want memory default", cfg.Store.Backend)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown store backend",
			content: "[store]\nbackend = \"postgres\"\n",
			wantErr: "unknown store backend",
		},
		{
			name:    "mongo without uri",
			content: "[store]\nbackend = \"mongo\"\n",
			wantErr: "requires uri",
		},
		{
			name:    "redis without addr",
			content: "[cache]\nbackend = \"redis\"\n",
			wantErr: "requires addr",
		},
		{
			name:    "unknown cache backend",
			content: "[cache]\nbackend = \"memcached\"\n",
			wantErr: "unknown cache backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := loadConfig(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"

[cache]
backend = "file"
`)

	t.Setenv("PLANHAUS_ADDR", ":7070")
	t.Setenv("PLANHAUS_CACHE_BACKEND", "redis")
	t.Setenv("PLANHAUS_CACHE_ADDR", "redis.internal:6379")
	t.Setenv("PLANHAUS_CACHE_DB", "3")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want env override :7070", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != cacheBackendRedis || cfg.Cache.Addr != "redis.internal:6379" {
		t.Errorf("cache = %+v, want env overrides applied", cfg.Cache)
	}
	if cfg.Cache.DB != 3 {
		t.Errorf("cache db = %d, want 3", cfg.Cache.DB)
	}
}

func TestLoadConfigEnvOverridesValidated(t *testing.T) {
	// Env values go through the same validation as file values, even when
	// no config file exists.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PLANHAUS_STORE_BACKEND", "postgres")

	if _, err := loadConfig(""); err == nil {
		t.Fatal("expected validation error for unknown backend from env")
	}

	t.Setenv("PLANHAUS_STORE_BACKEND", "")
	t.Setenv("PLANHAUS_CACHE_DB", "not-a-number")
	if _, err := loadConfig(""); err == nil {
		t.Fatal("expected error for non-integer PLANHAUS_CACHE_DB")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
