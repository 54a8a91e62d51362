package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/formatter"
	"github.com/streamlethq/slx/internal/models"
)

// AuthLogin authenticates with the platform and persists the session cookies.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	input := models.LoginInput{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	r.logger.Info("logging in", "email", input.Email)

	if err := r.stores.Auth.Login(ctx, input); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.persistSession()

	user := r.stores.Auth.CurrentUser()
	return r.writePlain("✓ Logged in as %s\n", user.Username)
}

// AuthRegister creates an account, optionally attaching avatar and cover
// images, and persists the session cookies.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	input := models.RegisterInput{
		Username:       cmd.String("username"),
		Email:          cmd.String("email"),
		Password:       cmd.String("password"),
		AvatarPath:     cmd.String("avatar"),
		CoverImagePath: cmd.String("cover"),
	}

	r.logger.Info("registering", "username", input.Username)

	if err := r.stores.Auth.Register(ctx, input); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.persistSession()

	user := r.stores.Auth.CurrentUser()
	return r.writePlain("✓ Registered and logged in as %s\n", user.Username)
}

// AuthLogout ends the server-side session and clears local credentials. The
// local session is cleared even when the server call fails.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.restoreSession()

	err := r.stores.Auth.Logout(ctx)

	if r.hydrator != nil {
		if clearErr := r.hydrator.ClearSession(); clearErr != nil {
			r.logger.Warn("failed to clear stored session", "error", clearErr)
		}
	}

	if err != nil {
		r.writePlainln("⚠ Server logout failed; local session cleared")
		return err
	}

	return r.writePlainln("✓ Logged out")
}

// AuthWhoami probes the session and prints the authenticated user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	r.restoreSession()
	r.stores.Auth.Probe(ctx)

	user := r.stores.Auth.CurrentUser()

	if cmd.Bool("json") {
		if user == nil {
			return r.writeJSON(map[string]any{"authenticated": false}, true)
		}
		return r.writeJSON(user, true)
	}

	if _, err := r.output.Write(formatter.UserToText(user)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
