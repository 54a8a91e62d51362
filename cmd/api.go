package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/shared"
)

// APIGet performs a raw authenticated GET against the platform API and
// prints the envelope payload.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.restoreSession()

	env, err := r.client.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	r.persistSession()
	return r.writeEnvelope(env.Data)
}

// APIPost performs a raw authenticated POST with an optional JSON body.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	var body any
	if data := cmd.String("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &body); err != nil {
			return fmt.Errorf("%w: --data must be valid JSON: %v", shared.ErrInvalidArgument, err)
		}
	}

	r.restoreSession()

	env, err := r.client.Post(ctx, path, body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	r.persistSession()
	return r.writeEnvelope(env.Data)
}

// APIDelete performs a raw authenticated DELETE.
func (r *Runner) APIDelete(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.restoreSession()

	env, err := r.client.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	r.persistSession()
	return r.writeEnvelope(env.Data)
}

func (r *Runner) writeEnvelope(data json.RawMessage) error {
	if len(data) == 0 {
		return r.writePlain("(no content)\n")
	}

	var pretty any
	if err := json.Unmarshal(data, &pretty); err != nil {
		_, werr := r.output.Write(data)
		return werr
	}
	return r.writeJSON(pretty, true)
}
