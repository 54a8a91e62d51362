package store

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/streamlethq/slx/internal/api"
	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// History holds the recently watched videos, most recent first. No video
// identity appears twice: re-watching moves the entry to the front.
type History struct {
	client *api.Client
	logger *log.Logger

	mu      sync.RWMutex
	videos  []models.Video
	loading bool
	lastErr string
}

// historyPayload is the envelope data shape for GET /videos/history.
type historyPayload struct {
	Videos []models.Video `json:"videos"`
}

// NewHistory creates a History store.
func NewHistory(client *api.Client, logger *log.Logger) *History {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &History{client: client, logger: logger}
}

// Videos returns a copy of the watch history, most recent first.
func (s *History) Videos() []models.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Video, len(s.videos))
	copy(out, s.videos)
	return out
}

// Loading reports whether a Fetch is in flight.
func (s *History) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the last failed operation, or "" after a
// successful one.
func (s *History) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *History) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// Fetch replaces the local list with the server's history. Failures are
// logged and flagged, not returned; the prior list stays intact.
func (s *History) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	env, err := s.client.Get(ctx, "/videos/history")
	if err != nil {
		s.logger.Error("failed to fetch watch history", "error", err)
		s.setErr("failed to fetch watch history")
		return
	}

	var payload historyPayload
	if err := env.Decode(&payload); err != nil {
		s.logger.Error("failed to decode watch history", "error", err)
		s.setErr("failed to fetch watch history")
		return
	}

	s.mu.Lock()
	s.videos = payload.Videos
	s.mu.Unlock()
}

// Add records a watch event. The server notification is best-effort: the
// local list is updated regardless of the server outcome, removing any
// existing entry with the same identity before prepending.
func (s *History) Add(ctx context.Context, video models.Video) {
	if _, err := s.client.Post(ctx, "/videos/history", map[string]string{"videoId": video.ID}); err != nil {
		s.logger.Warn("failed to record watch event", "video", video.ID, "error", err)
	}

	s.mu.Lock()
	filtered := make([]models.Video, 0, len(s.videos)+1)
	filtered = append(filtered, video)
	for _, v := range s.videos {
		if v.ID != video.ID {
			filtered = append(filtered, v)
		}
	}
	s.videos = filtered
	s.mu.Unlock()
}

// Clear requests server-side history deletion and empties the local list only
// on success. On failure the prior list is intact, the error is logged, and
// the error flag is set.
func (s *History) Clear(ctx context.Context) {
	s.setErr("")

	if _, err := s.client.Delete(ctx, "/videos/history"); err != nil {
		s.logger.Error("failed to clear watch history", "error", err)
		s.setErr("failed to clear watch history")
		return
	}

	s.mu.Lock()
	s.videos = nil
	s.mu.Unlock()
}
