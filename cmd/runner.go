package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/api"
	"github.com/streamlethq/slx/internal/shared"
	"github.com/streamlethq/slx/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	client   *api.Client
	stores   tasks.Stores
	hydrator *tasks.Hydrator
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Client   *api.Client
	Stores   tasks.Stores
	Hydrator *tasks.Hydrator
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:   opts.Config,
		client:   opts.Client,
		stores:   opts.Stores,
		hydrator: opts.Hydrator,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

// SetLogger swaps the runner's logger. Used by the TUI to redirect logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, historyCommand, playlistCommand, videoCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// restoreSession seeds the client's cookie jar from the local session store
// before a command talks to the API.
func (r *Runner) restoreSession() {
	if r.hydrator == nil {
		return
	}
	if err := r.hydrator.RestoreSession(); err != nil {
		r.logger.Warn("failed to restore session", "error", err)
	}
}

// persistSession saves rotated cookies after a command completes.
func (r *Runner) persistSession() {
	if r.hydrator == nil {
		return
	}
	if err := r.hydrator.PersistSession(); err != nil {
		r.logger.Warn("failed to persist session", "error", err)
	}
}

// requireUser restores the session and probes it, failing when nobody is
// logged in.
func (r *Runner) requireUser(ctx context.Context) error {
	r.restoreSession()
	r.stores.Auth.Probe(ctx)
	if r.stores.Auth.CurrentUser() == nil {
		return fmt.Errorf("%w: run 'slx auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}
