package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polyskel/internal/server"
	"github.com/matzehuels/polyskel/pkg/cache"
	"github.com/matzehuels/polyskel/pkg/config"
	"github.com/matzehuels/polyskel/pkg/pipeline"
	"github.com/matzehuels/polyskel/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the skeleton HTTP API",
		Long: `Run the skeleton HTTP API.

The serve command starts an HTTP server exposing skeleton computation,
retrieval, and rendering under /api/v1. Storage and cache backends are
configured via the config file:

  cache.backend   file (default), redis, or none
  store.mongo_uri MongoDB connection string (in-memory store when unset)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")

	return cmd
}

// runServe wires the configured backends and serves until the context is
// cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	cch, err := c.serverCache(ctx, cfg)
	if err != nil {
		return err
	}
	// Server entries share the file cache with local runs; keep them apart.
	keyer := cache.NewScopedKeyer(nil, "server:")
	runner := pipeline.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()

	st, err := c.serverStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	srv := server.New(runner, st, c.Logger)
	c.Logger.Info("starting server", "addr", cfg.Server.Addr)
	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout.Duration)
}

// serverCache builds the cache backend named in the configuration.
func (c *CLI) serverCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		cch, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Debug("using redis cache")
		return cch, nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		c.Logger.Debug("using file cache", "dir", dir)
		return cache.NewFileCache(dir)
	}
}

// serverStore builds the document store. Without a Mongo URI the server
// falls back to an in-memory store.
func (c *CLI) serverStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Store.MongoURI == "" {
		c.Logger.Debug("using in-memory store")
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	c.Logger.Debug("using mongodb store", "database", cfg.Store.Database)
	return st, nil
}
