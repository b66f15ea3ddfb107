package main

import (
	"context"
	"fmt"

	"github.com/thomasdelmas/Ecommerce-sub000/pkg/config"
	"github.com/thomasdelmas/Ecommerce-sub000/pkg/di"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = defaultConfigPath
	}

	if err := config.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlainln("✓ Configuration written to %s", path)
}

// CacheFlush drops every cached filtered page. Only a shared backend such
// as redis outlives the process, so this matters for cache.backend = "redis".
func (r *Runner) CacheFlush(ctx context.Context, cmd *cli.Command) error {
	return r.withContainer(ctx, cmd, func(c *di.Container) error {
		if err := c.FlushCache(ctx); err != nil {
			return fmt.Errorf("failed to flush cache: %w", err)
		}
		return r.writePlainln("✓ Cache flushed (%s backend)", c.Config().Cache.Backend)
	})
}
