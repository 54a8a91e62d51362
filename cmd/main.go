package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/api"
	"github.com/streamlethq/slx/internal/repositories"
	"github.com/streamlethq/slx/internal/shared"
	"github.com/streamlethq/slx/internal/store"
	"github.com/streamlethq/slx/internal/tasks"
)

func loadConfig() *shared.Config {
	path := "config.toml"
	for i, arg := range os.Args {
		if (arg == "--config" || arg == "-c") && i+1 < len(os.Args) {
			path = os.Args[i+1]
		}
	}

	if _, err := os.Stat(path); err != nil {
		return shared.DefaultConfig()
	}

	conf, err := shared.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		return shared.DefaultConfig()
	}
	return conf
}

func buildRunner(conf *shared.Config) (*Runner, error) {
	logger := shared.NewLogger(os.Stderr)
	if conf.Logging.Level != "" {
		if lvl, err := log.ParseLevel(conf.Logging.Level); err == nil {
			shared.SetLogLevel(logger, lvl)
		}
	}

	client, err := api.NewClient(api.Options{
		BaseURL:           conf.API.BaseURL,
		Timeout:           time.Duration(conf.API.TimeoutSeconds) * time.Second,
		RequestsPerSecond: conf.API.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build API client: %w", err)
	}

	stores := tasks.Stores{
		Auth:      store.NewAuth(client, logger),
		History:   store.NewHistory(client, logger),
		Playlists: store.NewPlaylists(client, logger),
		Reactions: store.NewReactions(client, logger),
	}

	repos := tasks.Repos{}
	if _, err := os.Stat(conf.Database.Path); err == nil {
		db, err := shared.NewDatabase(conf.Database.Path)
		if err != nil {
			logger.Warn("failed to open local cache, continuing without it", "error", err)
		} else {
			shared.ConfigureDatabase(db, conf.Database.MaxOpenConns, conf.Database.MaxIdleConns)
			repos = tasks.Repos{
				Sessions:  repositories.NewSessionRepository(db),
				Videos:    repositories.NewVideoRepository(db),
				Playlists: repositories.NewPlaylistRepository(db),
			}
		}
	}

	hydrator := tasks.NewHydrator(client, stores, repos, logger)

	return NewRunner(RunnerOpts{
		Config:   conf,
		Client:   client,
		Stores:   stores,
		Hydrator: hydrator,
		Logger:   logger,
		Output:   os.Stdout,
	}), nil
}

func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "slx",
		Usage:    "Streamlet from the command line",
		Commands: r.register(),
	}
}

func main() {
	conf := loadConfig()

	runner, err := buildRunner(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := rootCommand(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			fmt.Fprintln(os.Stderr, "that isn't available yet")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
