// Package bootstrap holds the process setup shared by the CLI commands.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/assetflow/assetflow/internal/infrastructure/config"
	"github.com/assetflow/assetflow/internal/infrastructure/database"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// Env is the --env flag value after the ENV variable has been applied.
func Env(flag string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flag
}

// GinMode maps an environment name to the gin mode the process runs in.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

// Runtime is the loaded configuration plus a closer for whatever Init opened.
type Runtime struct {
	Config *config.Config
	Logger logger.Interface

	closers []func()
}

// Close releases resources in reverse acquisition order.
func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// Init loads config, the process logger and the business timezone, and opens
// the database when withDB is set.
func Init(environment string, withDB bool) (*Runtime, error) {
	mode := GinMode(environment)

	cfg, err := config.Load(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &Runtime{
		Config:  cfg,
		Logger:  logger.NewLogger(),
		closers: []func(){func() { _ = logger.Sync() }},
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to initialize timezone: %w", err)
	}

	if withDB {
		if err := database.Init(&cfg.Database); err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		rt.closers = append(rt.closers, func() {
			if err := database.Close(); err != nil {
				rt.Logger.Warnw("failed to close database", "error", err)
			}
		})
	}

	return rt, nil
}
