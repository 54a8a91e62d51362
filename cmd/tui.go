package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/shared"
	"github.com/streamlethq/slx/internal/ui"
)

// TUI launches the interactive browser. Log output is redirected to a file
// so it does not fight the terminal for the screen.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireUser(ctx); err != nil {
		return err
	}

	logger, err := shared.NewFileLogger("slx.log")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.SetLogger(logger)

	if r.hydrator != nil {
		if err := r.hydrator.SeedReactions(ctx); err != nil {
			logger.Warn("failed to seed reactions", "error", err)
		}
	}

	model := ui.NewModel(ctx, r.stores)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interface crashed: %w", err)
	}

	r.persistSession()
	return nil
}
