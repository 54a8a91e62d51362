package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/shared"
)

// Setup writes a starter config file and initializes the local cache
// database, running any pending migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = "config.toml"
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := shared.CreateConfigFile(path); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		r.writePlain("✓ Wrote %s\n", path)
	} else {
		r.writePlain("Config file %s already exists, leaving it alone\n", path)
	}

	conf, err := shared.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := shared.NewDatabase(conf.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, conf.Database.MaxOpenConns, conf.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return r.writePlain("✓ Database %s is ready\n", conf.Database.Path)
}
