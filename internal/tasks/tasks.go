package tasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/streamlethq/slx/internal/api"
	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/repositories"
	"github.com/streamlethq/slx/internal/shared"
	"github.com/streamlethq/slx/internal/store"
)

// Stores bundles the four state stores the hydrator operates on.
type Stores struct {
	Auth      *store.Auth
	History   *store.History
	Playlists *store.Playlists
	Reactions *store.Reactions
}

// Repos bundles the local cache repositories. Any field may be nil, in which
// case the corresponding mirroring step is skipped.
type Repos struct {
	Sessions  *repositories.SessionRepository
	Videos    *repositories.VideoRepository
	Playlists *repositories.PlaylistRepository
}

// Hydrator coordinates the client, stores, and local cache.
type Hydrator struct {
	client *api.Client
	stores Stores
	repos  Repos
	logger *log.Logger
}

// NewHydrator creates a Hydrator. The logger defaults to stderr.
func NewHydrator(client *api.Client, stores Stores, repos Repos, logger *log.Logger) *Hydrator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Hydrator{client: client, stores: stores, repos: repos, logger: logger}
}

// RestoreSession seeds the client's cookie jar from persisted session rows.
// Missing or fully expired sessions are not an error.
func (h *Hydrator) RestoreSession() error {
	if h.repos.Sessions == nil {
		return nil
	}

	if err := h.repos.Sessions.PruneExpired(); err != nil {
		h.logger.Warn("failed to prune expired sessions", "error", err)
	}

	sessions, err := h.repos.Sessions.ListByBaseURL(h.client.BaseURL())
	if err != nil {
		if errors.Is(err, shared.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load stored session: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(sessions))
	for _, s := range sessions {
		if s.Expired() {
			continue
		}
		cookie := &http.Cookie{Name: s.CookieName(), Value: s.CookieValue()}
		if exp := s.ExpiresAt(); exp != nil {
			cookie.Expires = *exp
		}
		cookies = append(cookies, cookie)
	}

	return h.client.SetCookies(cookies)
}

// PersistSession writes the client's current cookies to the session store.
// Called after login and after any operation that may have rotated tokens.
func (h *Hydrator) PersistSession() error {
	if h.repos.Sessions == nil {
		return nil
	}

	for _, cookie := range h.client.Cookies() {
		var expires *time.Time
		if !cookie.Expires.IsZero() {
			t := cookie.Expires
			expires = &t
		}
		session := models.NewSession(h.client.BaseURL(), cookie.Name, cookie.Value, expires)
		if err := h.repos.Sessions.Save(session); err != nil {
			return fmt.Errorf("failed to persist session cookie %s: %w", cookie.Name, err)
		}
	}

	return nil
}

// ClearSession removes persisted cookies for the client's base URL.
func (h *Hydrator) ClearSession() error {
	if h.repos.Sessions == nil {
		return nil
	}
	return h.repos.Sessions.DeleteByBaseURL(h.client.BaseURL())
}

// HydrateSession restores persisted cookies, probes the session, and persists
// any rotated cookies. The auth store reflects the outcome; no error is
// returned for an absent or invalid session.
func (h *Hydrator) HydrateSession(ctx context.Context) {
	if err := h.RestoreSession(); err != nil {
		h.logger.Warn("failed to restore session", "error", err)
	}

	h.stores.Auth.Probe(ctx)

	if h.stores.Auth.CurrentUser() != nil {
		if err := h.PersistSession(); err != nil {
			h.logger.Warn("failed to persist session", "error", err)
		}
	}
}

// subscribedChannelsPayload is the envelope data shape for the subscription list.
type subscribedChannelsPayload struct {
	Channels []struct {
		ID string `json:"_id"`
	} `json:"channels"`
}

// SeedReactions populates the reaction store: the subscribed-channel set from
// the subscription endpoint, and the liked set from videos flagged liked in
// the local cache (likes mirrored there by SyncHistory). The platform exposes
// no bulk liked or disliked endpoint, so the disliked set starts empty and
// fills as the user toggles.
func (h *Hydrator) SeedReactions(ctx context.Context) error {
	if h.repos.Videos != nil {
		liked, err := h.repos.Videos.List(map[string]any{"liked": true})
		if err != nil {
			return fmt.Errorf("failed to read cached likes: %w", err)
		}
		ids := make([]string, 0, len(liked))
		for _, v := range liked {
			ids = append(ids, v.RemoteID())
		}
		h.stores.Reactions.SetLikedVideos(ids)
	}

	env, err := h.client.Get(ctx, "/subscription/c/channel/subscribed-channels")
	if err != nil {
		return fmt.Errorf("failed to fetch subscribed channels: %w", err)
	}

	var payload subscribedChannelsPayload
	if err := env.Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode subscribed channels: %w", err)
	}

	ids := make([]string, 0, len(payload.Channels))
	for _, ch := range payload.Channels {
		ids = append(ids, ch.ID)
	}

	h.stores.Reactions.SetSubscribedChannels(ids)
	return nil
}

// SyncHistory fetches the watch history into the store and mirrors it into
// the local video cache. Returns the number of videos mirrored.
func (h *Hydrator) SyncHistory(ctx context.Context) (int, error) {
	h.stores.History.Fetch(ctx)

	videos := h.stores.History.Videos()
	if h.repos.Videos == nil {
		return len(videos), nil
	}

	// Position encodes recency: most recent first.
	now := time.Now().UTC()
	for i, v := range videos {
		cached := models.NewCachedVideo(v, now.Add(-time.Duration(i)*time.Second))
		cached.SetLiked(h.stores.Reactions != nil && h.stores.Reactions.IsLiked(v.ID))
		if err := h.repos.Videos.Upsert(cached); err != nil {
			return i, fmt.Errorf("failed to cache video %s: %w", v.ID, err)
		}
	}

	return len(videos), nil
}

// SyncPlaylists fetches playlists into the store and mirrors their metadata
// into the local cache. Returns the number of playlists mirrored.
func (h *Hydrator) SyncPlaylists(ctx context.Context) (int, error) {
	h.stores.Playlists.Fetch(ctx)
	if msg := h.stores.Playlists.Err(); msg != "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrTransport, msg)
	}

	playlists := h.stores.Playlists.Playlists()
	if h.repos.Playlists == nil {
		return len(playlists), nil
	}

	for i, p := range playlists {
		if err := h.repos.Playlists.Upsert(models.NewCachedPlaylist(p)); err != nil {
			return i, fmt.Errorf("failed to cache playlist %s: %w", p.ID, err)
		}
	}

	return len(playlists), nil
}

// ClearCachedHistory soft-deletes the offline copy of the watch history.
func (h *Hydrator) ClearCachedHistory() error {
	if h.repos.Videos == nil {
		return nil
	}
	return h.repos.Videos.DeleteAll()
}

// CachedPlaylists returns the offline copy of the playlist collection.
func (h *Hydrator) CachedPlaylists() ([]models.Playlist, error) {
	if h.repos.Playlists == nil {
		return nil, shared.ErrNotImplemented
	}

	cached, err := h.repos.Playlists.List(nil)
	if err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(cached))
	for _, c := range cached {
		playlists = append(playlists, c.Playlist())
	}
	return playlists, nil
}

// DropCachedPlaylist removes a playlist's cached row by its remote id.
func (h *Hydrator) DropCachedPlaylist(remoteID string) error {
	if h.repos.Playlists == nil {
		return nil
	}
	return h.repos.Playlists.DeleteByRemoteID(remoteID)
}

// CachedHistory returns the offline copy of the watch history, most recently
// watched first.
func (h *Hydrator) CachedHistory() ([]models.Video, error) {
	if h.repos.Videos == nil {
		return nil, shared.ErrNotImplemented
	}

	cached, err := h.repos.Videos.List(nil)
	if err != nil {
		return nil, err
	}

	videos := make([]models.Video, 0, len(cached))
	for _, c := range cached {
		videos = append(videos, c.Video())
	}
	return videos, nil
}
