package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/formatter"
	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// HistoryList prints the watch history, from the API or the local cache.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	var videos []models.Video

	if cmd.Bool("cached") {
		if r.hydrator == nil {
			return fmt.Errorf("%w: local cache not configured, run 'slx setup'", shared.ErrMissingConfig)
		}
		cached, err := r.hydrator.CachedHistory()
		if err != nil {
			return fmt.Errorf("failed to read cached history: %w", err)
		}
		videos = cached
	} else {
		if err := r.requireUser(ctx); err != nil {
			return err
		}
		count, err := r.hydratedHistory(ctx)
		if err != nil {
			r.logger.Warn("failed to mirror history to cache", "error", err)
		} else {
			r.logger.Debug("history mirrored to cache", "count", count)
		}
		videos = r.stores.History.Videos()
		r.persistSession()
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}

	if cmd.Bool("csv") {
		data, err := formatter.VideosToCSV(videos)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	if _, err := r.output.Write(formatter.VideosToText("Watch History", videos)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// hydratedHistory syncs history through the hydrator when the cache is
// available, otherwise fetches into the store only.
func (r *Runner) hydratedHistory(ctx context.Context) (int, error) {
	if r.hydrator != nil {
		return r.hydrator.SyncHistory(ctx)
	}
	r.stores.History.Fetch(ctx)
	return len(r.stores.History.Videos()), nil
}

// HistoryAdd records a watch event. The server call is best-effort; the local
// list updates regardless.
func (r *Runner) HistoryAdd(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("videoId")
	if videoID == "" {
		return fmt.Errorf("%w: videoId", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	r.stores.History.Add(ctx, models.Video{ID: videoID})
	r.persistSession()

	return r.writePlain("✓ Recorded watch event for %s\n", videoID)
}

// HistoryClear clears the watch history server-side, then the local cache.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireUser(ctx); err != nil {
		return err
	}

	r.stores.History.Clear(ctx)
	r.persistSession()

	if msg := r.stores.History.Err(); msg != "" {
		return fmt.Errorf("%w: %s", shared.ErrServer, msg)
	}

	if r.hydrator != nil {
		if err := r.hydrator.ClearCachedHistory(); err != nil {
			r.logger.Warn("failed to clear cached history", "error", err)
		}
	}

	return r.writePlainln("✓ Watch history cleared")
}
