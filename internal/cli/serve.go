package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/planhaus/planhaus/internal/api"
	"github.com/planhaus/planhaus/pkg/cache"
	"github.com/planhaus/planhaus/pkg/httputil"
	"github.com/planhaus/planhaus/pkg/pipeline"
	"github.com/planhaus/planhaus/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout planning HTTP API",
		Long: `Run the layout planning HTTP API.

The server exposes layout generation and retrieval endpoints. Computed
layouts are persisted in the configured store (in-memory by default, MongoDB
when configured) and cached in the configured cache backend (file by
default, Redis when configured).

Configuration is read from ~/.config/planhaus/config.toml; --addr overrides
the configured listen address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())

	ca, err := newServerCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer ca.Close()

	runner := pipeline.NewRunner(ca, nil, c.Logger)
	handler := api.New(st, runner, c.Logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// newStore builds the layout store from config. Connection failures are
// retried with backoff so a backend that is still starting up does not
// abort the server.
func newStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case storeMongo:
		var st store.Store
		err := httputil.RetryWithBackoff(ctx, func() error {
			s, err := store.NewMongoStore(ctx, store.MongoConfig{
				URI:        cfg.URI,
				Database:   cfg.Database,
				Collection: cfg.Collection,
			})
			if err != nil {
				return &httputil.RetryableError{Err: err}
			}
			st = s
			return nil
		})
		return st, err
	default:
		return store.NewMemoryStore(), nil
	}
}

// newServerCache builds the layout cache from config.
func newServerCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case cacheBackendRedis:
		var ca cache.Cache
		err := httputil.RetryWithBackoff(ctx, func() error {
			c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
				Addr:     cfg.Addr,
				Password: cfg.Password,
				DB:       cfg.DB,
			})
			if err != nil {
				return &httputil.RetryableError{Err: err}
			}
			ca = c
			return nil
		})
		return ca, err
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		return newCache(false), nil
	}
}
