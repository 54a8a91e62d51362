package models

import (
	"fmt"
	"time"
)

// entity provides the common persistence fields shared by cached models.
type entity struct {
	id        string
	sequence  int64
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func (e *entity) ID() string           { return e.id }
func (e *entity) Sequence() int64      { return e.sequence }
func (e *entity) CreatedAt() time.Time { return e.createdAt }
func (e *entity) UpdatedAt() time.Time { return e.updatedAt }
func (e *entity) DeletedAt() *time.Time {
	return e.deletedAt
}

func (e *entity) SetID(id string)           { e.id = id }
func (e *entity) SetSequence(seq int64)     { e.sequence = seq }
func (e *entity) SetCreatedAt(t time.Time)  { e.createdAt = t }
func (e *entity) SetUpdatedAt(t time.Time)  { e.updatedAt = t }
func (e *entity) SetDeletedAt(t *time.Time) { e.deletedAt = t }

// Touch updates the entity's updated_at timestamp to now.
func (e *entity) Touch() { e.updatedAt = time.Now().UTC() }

// Session is a persisted auth cookie for a given API base URL.
// It is the local analog of the browser's session-scoped credential storage.
type Session struct {
	entity
	baseURL     string
	cookieName  string
	cookieValue string
	expiresAt   *time.Time
}

// NewSession creates a Session for the given base URL and cookie pair.
func NewSession(baseURL, cookieName, cookieValue string, expiresAt *time.Time) *Session {
	now := time.Now().UTC()
	s := &Session{
		baseURL:     baseURL,
		cookieName:  cookieName,
		cookieValue: cookieValue,
		expiresAt:   expiresAt,
	}
	s.createdAt = now
	s.updatedAt = now
	return s
}

func (s *Session) BaseURL() string        { return s.baseURL }
func (s *Session) CookieName() string     { return s.cookieName }
func (s *Session) CookieValue() string    { return s.cookieValue }
func (s *Session) ExpiresAt() *time.Time  { return s.expiresAt }
func (s *Session) SetCookieValue(v string) {
	s.cookieValue = v
	s.Touch()
}

// Expired reports whether the session cookie has a known expiry in the past.
func (s *Session) Expired() bool {
	return s.expiresAt != nil && s.expiresAt.Before(time.Now())
}

// Validate checks that the session has a base URL and cookie pair.
func (s *Session) Validate() error {
	if s.baseURL == "" {
		return fmt.Errorf("session base URL is required")
	}
	if s.cookieName == "" || s.cookieValue == "" {
		return fmt.Errorf("session cookie name and value are required")
	}
	return nil
}

// CachedVideo is a watch-history video mirrored into the local cache.
type CachedVideo struct {
	entity
	remoteID  string
	title     string
	thumbnail string
	duration  int
	views     int
	ownerID   string
	ownerName string
	liked     bool
	watchedAt time.Time
}

// NewCachedVideo creates a CachedVideo from an API video and the time it was watched.
func NewCachedVideo(v Video, watchedAt time.Time) *CachedVideo {
	now := time.Now().UTC()
	c := &CachedVideo{
		remoteID:  v.ID,
		title:     v.Title,
		thumbnail: v.Thumbnail,
		duration:  v.Duration,
		views:     v.Views,
		ownerID:   v.Owner.ID,
		ownerName: v.Owner.Username,
		watchedAt: watchedAt,
	}
	c.createdAt = now
	c.updatedAt = now
	return c
}

func (c *CachedVideo) RemoteID() string     { return c.remoteID }
func (c *CachedVideo) Title() string        { return c.title }
func (c *CachedVideo) Thumbnail() string    { return c.thumbnail }
func (c *CachedVideo) Duration() int        { return c.duration }
func (c *CachedVideo) Views() int           { return c.views }
func (c *CachedVideo) OwnerID() string      { return c.ownerID }
func (c *CachedVideo) OwnerName() string    { return c.ownerName }
func (c *CachedVideo) Liked() bool          { return c.liked }
func (c *CachedVideo) WatchedAt() time.Time { return c.watchedAt }

func (c *CachedVideo) SetLiked(liked bool) {
	c.liked = liked
	c.Touch()
}

func (c *CachedVideo) SetWatchedAt(t time.Time) {
	c.watchedAt = t
	c.Touch()
}

// Validate checks that the cached video references a remote video.
func (c *CachedVideo) Validate() error {
	if c.remoteID == "" {
		return fmt.Errorf("cached video remote ID is required")
	}
	if c.title == "" {
		return fmt.Errorf("cached video title is required")
	}
	return nil
}

// Video converts the cached row back to the API DTO shape for display.
func (c *CachedVideo) Video() Video {
	return Video{
		ID:        c.remoteID,
		Title:     c.title,
		Thumbnail: c.thumbnail,
		Duration:  c.duration,
		Views:     c.views,
		Owner:     User{ID: c.ownerID, Username: c.ownerName},
	}
}

// CachedVideoRow carries a scanned videos row for RestoreCachedVideo.
type CachedVideoRow struct {
	ID        string
	Sequence  int64
	RemoteID  string
	Title     string
	Thumbnail string
	Duration  int
	Views     int
	OwnerID   string
	OwnerName string
	Liked     bool
	WatchedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// RestoreCachedVideo rebuilds a CachedVideo from a database row.
func RestoreCachedVideo(r CachedVideoRow) *CachedVideo {
	c := &CachedVideo{
		remoteID:  r.RemoteID,
		title:     r.Title,
		thumbnail: r.Thumbnail,
		duration:  r.Duration,
		views:     r.Views,
		ownerID:   r.OwnerID,
		ownerName: r.OwnerName,
		liked:     r.Liked,
		watchedAt: r.WatchedAt,
	}
	c.id = r.ID
	c.sequence = r.Sequence
	c.createdAt = r.CreatedAt
	c.updatedAt = r.UpdatedAt
	c.deletedAt = r.DeletedAt
	return c
}

// CachedPlaylist is playlist metadata mirrored into the local cache.
type CachedPlaylist struct {
	entity
	remoteID   string
	name       string
	visibility string
	videoCount int
}

// NewCachedPlaylist creates a CachedPlaylist from an API playlist.
func NewCachedPlaylist(p Playlist) *CachedPlaylist {
	now := time.Now().UTC()
	c := &CachedPlaylist{
		remoteID:   p.ID,
		name:       p.Name,
		visibility: p.Visibility,
		videoCount: len(p.Videos),
	}
	c.createdAt = now
	c.updatedAt = now
	return c
}

// Playlist converts the cached row back to the API shape. Member videos are
// not cached, so the slice is always empty.
func (c *CachedPlaylist) Playlist() Playlist {
	return Playlist{
		ID:         c.remoteID,
		Name:       c.name,
		Visibility: c.visibility,
	}
}

func (c *CachedPlaylist) RemoteID() string   { return c.remoteID }
func (c *CachedPlaylist) Name() string       { return c.name }
func (c *CachedPlaylist) Visibility() string { return c.visibility }
func (c *CachedPlaylist) VideoCount() int    { return c.videoCount }

func (c *CachedPlaylist) SetName(name string) {
	c.name = name
	c.Touch()
}

func (c *CachedPlaylist) SetVideoCount(n int) {
	c.videoCount = n
	c.Touch()
}

// CachedPlaylistRow carries a scanned playlists row for RestoreCachedPlaylist.
type CachedPlaylistRow struct {
	ID         string
	Sequence   int64
	RemoteID   string
	Name       string
	Visibility string
	VideoCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// RestoreCachedPlaylist rebuilds a CachedPlaylist from a database row.
func RestoreCachedPlaylist(r CachedPlaylistRow) *CachedPlaylist {
	c := &CachedPlaylist{
		remoteID:   r.RemoteID,
		name:       r.Name,
		visibility: r.Visibility,
		videoCount: r.VideoCount,
	}
	c.id = r.ID
	c.sequence = r.Sequence
	c.createdAt = r.CreatedAt
	c.updatedAt = r.UpdatedAt
	c.deletedAt = r.DeletedAt
	return c
}

// SessionRow carries a scanned sessions row for RestoreSession.
type SessionRow struct {
	ID          string
	BaseURL     string
	CookieName  string
	CookieValue string
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RestoreSession rebuilds a Session from a database row.
func RestoreSession(r SessionRow) *Session {
	s := &Session{
		baseURL:     r.BaseURL,
		cookieName:  r.CookieName,
		cookieValue: r.CookieValue,
		expiresAt:   r.ExpiresAt,
	}
	s.id = r.ID
	s.createdAt = r.CreatedAt
	s.updatedAt = r.UpdatedAt
	return s
}

// Validate checks that the cached playlist references a remote playlist.
func (c *CachedPlaylist) Validate() error {
	if c.remoteID == "" {
		return fmt.Errorf("cached playlist remote ID is required")
	}
	if c.name == "" {
		return fmt.Errorf("cached playlist name is required")
	}
	if c.visibility != VisibilityPublic && c.visibility != VisibilityPrivate {
		return fmt.Errorf("cached playlist visibility must be public or private, got %q", c.visibility)
	}
	return nil
}
