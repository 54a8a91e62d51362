package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/formatter"
	"github.com/streamlethq/slx/internal/shared"
)

// PlaylistList prints the playlist collection, from the API or the local cache.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("cached") {
		return r.playlistListCached(cmd.Bool("json"))
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if r.hydrator != nil {
		if _, err := r.hydrator.SyncPlaylists(ctx); err != nil {
			r.logger.Warn("failed to mirror playlists to cache", "error", err)
		}
	} else {
		r.stores.Playlists.Fetch(ctx)
	}

	if msg := r.stores.Playlists.Err(); msg != "" {
		return fmt.Errorf("%w: %s", shared.ErrTransport, msg)
	}

	playlists := r.stores.Playlists.Playlists()
	r.persistSession()

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	if _, err := r.output.Write(formatter.PlaylistsToText(playlists)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) playlistListCached(asJSON bool) error {
	if r.hydrator == nil {
		return fmt.Errorf("%w: local cache not configured, run 'slx setup'", shared.ErrMissingConfig)
	}

	playlists, err := r.hydrator.CachedPlaylists()
	if err != nil {
		return fmt.Errorf("failed to read cached playlists: %w", err)
	}

	if asJSON {
		return r.writeJSON(playlists, true)
	}

	if _, err := r.output.Write(formatter.PlaylistsToText(playlists)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// PlaylistShow prints one playlist with its member videos.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlistId")
	if playlistID == "" {
		return fmt.Errorf("%w: playlistId", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	r.stores.Playlists.Fetch(ctx)
	r.persistSession()

	playlist, ok := r.stores.Playlists.Get(playlistID)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	if cmd.Bool("markdown") {
		_, err := r.output.Write(formatter.PlaylistToMarkdown(playlist))
		return err
	}

	return r.writeJSON(playlist, true)
}

// PlaylistCreate creates a playlist, optionally chaining an immediate
// add-video using the server-assigned identity.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireUser(ctx); err != nil {
		return err
	}

	name := cmd.String("name")
	visibility := cmd.String("visibility")

	created, err := r.stores.Playlists.Create(ctx, name, visibility)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlain("✓ Created playlist %q (%s)\n", created.Name, created.ID)

	if videoID := cmd.String("add-video"); videoID != "" {
		if err := r.stores.Playlists.AddVideo(ctx, created.ID, videoID); err != nil {
			return fmt.Errorf("playlist created but adding video failed: %w", err)
		}
		r.writePlain("✓ Added video %s\n", videoID)
	}

	r.persistSession()
	return nil
}

// PlaylistDelete deletes a playlist and its cached row.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlistId")
	if playlistID == "" {
		return fmt.Errorf("%w: playlistId", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if err := r.stores.Playlists.Delete(ctx, playlistID); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if r.hydrator != nil {
		if err := r.hydrator.DropCachedPlaylist(playlistID); err != nil {
			r.logger.Warn("failed to drop cached playlist", "error", err)
		}
	}

	r.persistSession()
	return r.writePlain("✓ Deleted playlist %s\n", playlistID)
}

// PlaylistAddVideo adds a video to a playlist.
func (r *Runner) PlaylistAddVideo(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlistId")
	videoID := cmd.StringArg("videoId")
	if playlistID == "" || videoID == "" {
		return fmt.Errorf("%w: playlistId and videoId", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if err := r.stores.Playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to add video: %w", err)
	}

	r.persistSession()
	return r.writePlain("✓ Added %s to %s\n", videoID, playlistID)
}

// PlaylistRemoveVideo removes a video from a playlist.
func (r *Runner) PlaylistRemoveVideo(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlistId")
	videoID := cmd.StringArg("videoId")
	if playlistID == "" || videoID == "" {
		return fmt.Errorf("%w: playlistId and videoId", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if err := r.stores.Playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to remove video: %w", err)
	}

	r.persistSession()
	return r.writePlain("✓ Removed %s from %s\n", videoID, playlistID)
}
