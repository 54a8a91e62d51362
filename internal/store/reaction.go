package store

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/streamlethq/slx/internal/api"
	"github.com/streamlethq/slx/internal/shared"
)

// Reactions holds the engagement sets: subscribed channel IDs, liked video
// IDs, and disliked video IDs. A video never appears in both the liked and
// disliked sets; the toggle operations remove it from the opposite set first.
//
// Toggles are optimistic: local membership flips before the server call, and
// a failed call restores the pre-toggle snapshot and returns the error.
type Reactions struct {
	client *api.Client
	logger *log.Logger

	mu         sync.RWMutex
	subscribed []string
	liked      []string
	disliked   []string
}

// NewReactions creates a Reactions store. State is empty until seeded via the
// bulk setters.
func NewReactions(client *api.Client, logger *log.Logger) *Reactions {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Reactions{client: client, logger: logger}
}

// SetSubscribedChannels bulk-replaces the subscribed channel set.
func (s *Reactions) SetSubscribedChannels(channels []string) {
	s.mu.Lock()
	s.subscribed = append([]string{}, channels...)
	s.mu.Unlock()
}

// SetLikedVideos bulk-replaces the liked video set.
func (s *Reactions) SetLikedVideos(videos []string) {
	s.mu.Lock()
	s.liked = append([]string{}, videos...)
	s.mu.Unlock()
}

// SetDislikedVideos bulk-replaces the disliked video set.
func (s *Reactions) SetDislikedVideos(videos []string) {
	s.mu.Lock()
	s.disliked = append([]string{}, videos...)
	s.mu.Unlock()
}

// SubscribedChannels returns a copy of the subscribed channel set.
func (s *Reactions) SubscribedChannels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.subscribed...)
}

// LikedVideos returns a copy of the liked video set.
func (s *Reactions) LikedVideos() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.liked...)
}

// DislikedVideos returns a copy of the disliked video set.
func (s *Reactions) DislikedVideos() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.disliked...)
}

// IsSubscribed reports membership in the subscribed channel set.
func (s *Reactions) IsSubscribed(channelID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return contains(s.subscribed, channelID)
}

// IsLiked reports membership in the liked video set.
func (s *Reactions) IsLiked(videoID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return contains(s.liked, videoID)
}

// IsDisliked reports membership in the disliked video set.
func (s *Reactions) IsDisliked(videoID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return contains(s.disliked, videoID)
}

// ToggleSubscription optimistically flips subscription membership for the
// channel, then calls the endpoint matching the pre-toggle state. On failure
// the pre-toggle snapshot is restored and the error returned.
func (s *Reactions) ToggleSubscription(ctx context.Context, channelID string) error {
	s.mu.Lock()
	snapshot := s.subscribed
	wasSubscribed := contains(snapshot, channelID)
	if wasSubscribed {
		s.subscribed = without(snapshot, channelID)
	} else {
		s.subscribed = append(append([]string{}, snapshot...), channelID)
	}
	s.mu.Unlock()

	endpoint := "/subscription/c/channel/subscribe"
	if wasSubscribed {
		endpoint = "/subscription/c/channel/unsubscribe"
	}

	if _, err := s.client.Post(ctx, endpoint, map[string]string{"channel": channelID}); err != nil {
		s.mu.Lock()
		s.subscribed = snapshot
		s.mu.Unlock()
		s.logger.Warn("subscription toggle reverted", "channel", channelID, "error", err)
		return err
	}

	return nil
}

// ToggleLike optimistically flips like membership for the video, removing it
// from the disliked set first (mutual exclusion). On failure only the like
// flip is reverted; the dislike removal stands, matching the platform's
// observed behavior.
func (s *Reactions) ToggleLike(ctx context.Context, videoID string) error {
	s.mu.Lock()
	snapshot := s.liked
	wasLiked := contains(snapshot, videoID)
	if contains(s.disliked, videoID) {
		s.disliked = without(s.disliked, videoID)
	}
	if wasLiked {
		s.liked = without(snapshot, videoID)
	} else {
		s.liked = append(append([]string{}, snapshot...), videoID)
	}
	s.mu.Unlock()

	action := "like"
	if wasLiked {
		action = "unlike"
	}

	if _, err := s.client.Post(ctx, "/videos/v/"+videoID+"/"+action, nil); err != nil {
		s.mu.Lock()
		s.liked = snapshot
		s.mu.Unlock()
		s.logger.Warn("like toggle reverted", "video", videoID, "error", err)
		return err
	}

	return nil
}

// ToggleDislike is symmetric to ToggleLike, swapping the roles of the sets.
func (s *Reactions) ToggleDislike(ctx context.Context, videoID string) error {
	s.mu.Lock()
	snapshot := s.disliked
	wasDisliked := contains(snapshot, videoID)
	if contains(s.liked, videoID) {
		s.liked = without(s.liked, videoID)
	}
	if wasDisliked {
		s.disliked = without(snapshot, videoID)
	} else {
		s.disliked = append(append([]string{}, snapshot...), videoID)
	}
	s.mu.Unlock()

	action := "dislike"
	if wasDisliked {
		action = "undislike"
	}

	if _, err := s.client.Post(ctx, "/videos/v/"+videoID+"/"+action, nil); err != nil {
		s.mu.Lock()
		s.disliked = snapshot
		s.mu.Unlock()
		s.logger.Warn("dislike toggle reverted", "video", videoID, "error", err)
		return err
	}

	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// without returns a new slice with id removed; the input is never mutated.
func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
