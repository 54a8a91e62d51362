package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/streamlethq/slx/internal/shared"
)

// VideoLike toggles the like reaction on a video.
func (r *Runner) VideoLike(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("videoId")
	if videoID == "" {
		return fmt.Errorf("%w: videoId", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if err := r.stores.Reactions.ToggleLike(ctx, videoID); err != nil {
		return fmt.Errorf("failed to toggle like: %w", err)
	}

	r.persistSession()
	if r.stores.Reactions.IsLiked(videoID) {
		return r.writePlain("♥ Liked %s\n", videoID)
	}
	return r.writePlain("Removed like from %s\n", videoID)
}

// VideoDislike toggles the dislike reaction on a video.
func (r *Runner) VideoDislike(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("videoId")
	if videoID == "" {
		return fmt.Errorf("%w: videoId", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if err := r.stores.Reactions.ToggleDislike(ctx, videoID); err != nil {
		return fmt.Errorf("failed to toggle dislike: %w", err)
	}

	r.persistSession()
	if r.stores.Reactions.IsDisliked(videoID) {
		return r.writePlain("✗ Disliked %s\n", videoID)
	}
	return r.writePlain("Removed dislike from %s\n", videoID)
}

// VideoSubscribe toggles the subscription to a channel.
func (r *Runner) VideoSubscribe(ctx context.Context, cmd *cli.Command) error {
	channelID := cmd.StringArg("channelId")
	if channelID == "" {
		return fmt.Errorf("%w: channelId", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if err := r.stores.Reactions.ToggleSubscription(ctx, channelID); err != nil {
		return fmt.Errorf("failed to toggle subscription: %w", err)
	}

	r.persistSession()
	if r.stores.Reactions.IsSubscribed(channelID) {
		return r.writePlain("✓ Subscribed to %s\n", channelID)
	}
	return r.writePlain("Unsubscribed from %s\n", channelID)
}

// VideoSubscriptions prints the channels the current user is subscribed to.
func (r *Runner) VideoSubscriptions(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if r.hydrator != nil {
		if err := r.hydrator.SeedReactions(ctx); err != nil {
			return fmt.Errorf("failed to fetch subscriptions: %w", err)
		}
	}

	channels := r.stores.Reactions.SubscribedChannels()
	r.persistSession()

	if cmd.Bool("json") {
		return r.writeJSON(channels, true)
	}

	if len(channels) == 0 {
		return r.writePlain("No subscriptions.\n")
	}
	for _, id := range channels {
		if err := r.writePlain("• %s\n", id); err != nil {
			return err
		}
	}
	return nil
}
