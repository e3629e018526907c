package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in the config file.
const (
	storeMemory = "memory"
	storeMongo  = "mongo"

	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Config is the planhaus configuration file, read from
// ~/.config/planhaus/config.toml (or $XDG_CONFIG_HOME/planhaus/config.toml).
// PLANHAUS_* environment variables override file values.
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "mongo"
//	uri = "mongodb://localhost:27017"
//
//	[cache]
//	backend = "redis"
//	addr = "localhost:6379"
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig configures the layout store backend.
type StoreConfig struct {
	Backend    string `toml:"backend"`
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig configures the server-side layout cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Backend: storeMemory},
		Cache:  CacheConfig{Backend: cacheBackendFile},
	}
}

// loadConfig reads the config file at path, falling back to the default
// config location and then to built-in defaults when no file exists.
// Environment variables are applied on top of whatever the file provided.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		if dir, err := configDir(); err == nil {
			candidate := filepath.Join(dir, "config.toml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides config values from PLANHAUS_* environment variables,
// for deployments where editing a config file is awkward.
func (c *Config) applyEnv() error {
	if v := os.Getenv("PLANHAUS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PLANHAUS_STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("PLANHAUS_STORE_URI"); v != "" {
		c.Store.URI = v
	}
	if v := os.Getenv("PLANHAUS_STORE_DATABASE"); v != "" {
		c.Store.Database = v
	}
	if v := os.Getenv("PLANHAUS_STORE_COLLECTION"); v != "" {
		c.Store.Collection = v
	}
	if v := os.Getenv("PLANHAUS_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("PLANHAUS_CACHE_ADDR"); v != "" {
		c.Cache.Addr = v
	}
	if v := os.Getenv("PLANHAUS_CACHE_PASSWORD"); v != "" {
		c.Cache.Password = v
	}
	if v := os.Getenv("PLANHAUS_CACHE_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PLANHAUS_CACHE_DB: %w", err)
		}
		c.Cache.DB = db
	}
	return nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case storeMemory:
	case storeMongo:
		if c.Store.URI == "" {
			return fmt.Errorf("store backend %q requires uri", storeMongo)
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendNone:
	case cacheBackendRedis:
		if c.Cache.Addr == "" {
			return fmt.Errorf("cache backend %q requires addr", cacheBackendRedis)
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", c.Cache.Backend)
	}
	return nil
}
