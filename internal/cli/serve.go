package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/qrterm/qrterm/internal/server"
	"github.com/qrterm/qrterm/pkg/cache"
)

// Cache backends accepted by --cache.
const (
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string        // listen address
	backend   string        // cache backend: file, redis, or none
	redisAddr string        // redis address for the redis backend
	ttl       time.Duration // cached artifact lifetime
}

// serveCommand creates the serve command exposing QR rendering over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      c.Config.Serve.Addr,
		backend:   c.Config.Serve.Cache,
		redisAddr: c.Config.Serve.RedisAddr,
		ttl:       time.Duration(c.Config.Serve.TTL),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve QR codes over HTTP",
		Long:  `Serve exposes QR rendering as an HTTP API: /qr.png returns PNG images and /qr.txt returns the half-block text form. Rendered artifacts are cached; the redis backend lets multiple instances share one cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", opts.backend, "artifact cache backend: file, redis, or none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "redis address for --cache redis")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", opts.ttl, "cached artifact lifetime (0 disables expiration)")

	return cmd
}

// runServe builds the cache backend and serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	c.Logger.Debugf("Using %s cache backend", opts.backend)
	return server.New(c.Logger, store, opts.ttl).Run(ctx, opts.addr)
}

// newServeCache constructs the configured cache backend.
func (c *CLI) newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.backend {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheRedis:
		return cache.NewRedisCache(ctx, opts.redisAddr)
	case cacheFile:
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("invalid cache backend: %s (must be 'file', 'redis', or 'none')", opts.backend)
	}
}
