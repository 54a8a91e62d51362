package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/streamlethq/slx/internal/api"
	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// Playlists holds the user's playlist collection. Unlike the reaction store,
// membership mutations are confirm-then-apply: the local collection changes
// only after the server accepts the request, so there is never anything to
// roll back.
type Playlists struct {
	client *api.Client
	logger *log.Logger

	mu        sync.RWMutex
	playlists []models.Playlist
	loading   bool
	lastErr   string
}

// NewPlaylists creates a Playlists store.
func NewPlaylists(client *api.Client, logger *log.Logger) *Playlists {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Playlists{client: client, logger: logger}
}

// Playlists returns a copy of the local collection.
func (s *Playlists) Playlists() []models.Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Playlist, len(s.playlists))
	copy(out, s.playlists)
	return out
}

// Get returns the playlist with the given identity, if present locally.
func (s *Playlists) Get(id string) (models.Playlist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.playlists {
		if p.ID == id {
			return p, true
		}
	}
	return models.Playlist{}, false
}

// Loading reports whether a Fetch is in flight.
func (s *Playlists) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the last failed operation, or "" after a
// successful Fetch.
func (s *Playlists) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Playlists) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// Fetch replaces the local collection with the server's. Failures set the
// error flag and leave the prior collection intact.
func (s *Playlists) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	env, err := s.client.Get(ctx, "/playlists")
	if err != nil {
		s.logger.Error("failed to fetch playlists", "error", err)
		s.setErr("failed to fetch playlists")
		return
	}

	var playlists []models.Playlist
	if err := env.Decode(&playlists); err != nil {
		s.logger.Error("failed to decode playlists", "error", err)
		s.setErr("failed to fetch playlists")
		return
	}

	s.mu.Lock()
	s.playlists = playlists
	s.mu.Unlock()
}

// Create posts a new playlist and, on success, appends the server-returned
// playlist (with its assigned identity) to the local collection and returns
// it for chaining.
func (s *Playlists) Create(ctx context.Context, name, visibility string) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return nil, fmt.Errorf("%w: visibility must be public or private, got %q", shared.ErrInvalidInput, visibility)
	}

	env, err := s.client.Post(ctx, "/playlists", map[string]string{
		"name":       name,
		"visibility": visibility,
	})
	if err != nil {
		s.setErr("failed to create playlist")
		return nil, err
	}

	var created models.Playlist
	if err := env.Decode(&created); err != nil {
		s.setErr("failed to create playlist")
		return nil, err
	}

	s.mu.Lock()
	s.playlists = append(append([]models.Playlist{}, s.playlists...), created)
	s.mu.Unlock()

	return &created, nil
}

// Delete removes a playlist server-side, then from the local collection.
func (s *Playlists) Delete(ctx context.Context, playlistID string) error {
	if _, err := s.client.Delete(ctx, "/playlists/"+playlistID); err != nil {
		s.setErr("failed to delete playlist")
		return err
	}

	s.mu.Lock()
	filtered := make([]models.Playlist, 0, len(s.playlists))
	for _, p := range s.playlists {
		if p.ID != playlistID {
			filtered = append(filtered, p)
		}
	}
	s.playlists = filtered
	s.mu.Unlock()

	return nil
}

// AddVideo posts a membership addition and, on success, appends a placeholder
// member stub (identity only) to the matching local playlist.
func (s *Playlists) AddVideo(ctx context.Context, playlistID, videoID string) error {
	if _, err := s.client.Post(ctx, "/playlists/"+playlistID+"/videos", map[string]string{"videoId": videoID}); err != nil {
		s.setErr("failed to add video to playlist")
		return err
	}

	s.mu.Lock()
	updated := make([]models.Playlist, len(s.playlists))
	for i, p := range s.playlists {
		if p.ID == playlistID {
			videos := append(append([]models.PlaylistVideo{}, p.Videos...), models.PlaylistVideo{ID: videoID})
			p.Videos = videos
		}
		updated[i] = p
	}
	s.playlists = updated
	s.mu.Unlock()

	return nil
}

// RemoveVideo posts a membership removal and, on success, filters the member
// out of the matching local playlist.
func (s *Playlists) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	if _, err := s.client.Delete(ctx, "/playlists/"+playlistID+"/videos/"+videoID); err != nil {
		s.setErr("failed to remove video from playlist")
		return err
	}

	s.mu.Lock()
	updated := make([]models.Playlist, len(s.playlists))
	for i, p := range s.playlists {
		if p.ID == playlistID {
			videos := make([]models.PlaylistVideo, 0, len(p.Videos))
			for _, v := range p.Videos {
				if v.ID != videoID {
					videos = append(videos, v)
				}
			}
			p.Videos = videos
		}
		updated[i] = p
	}
	s.playlists = updated
	s.mu.Unlock()

	return nil
}
