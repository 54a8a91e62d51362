package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleVideo(remoteID string) *models.CachedVideo {
	return models.NewCachedVideo(models.Video{
		ID:       remoteID,
		Title:    "Test Video " + remoteID,
		Duration: 120,
		Views:    42,
		Owner:    models.User{ID: "u1", Username: "ada"},
	}, time.Now().UTC())
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, err := NextSequence(db, "videos")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}

	second, err := NextSequence(db, "videos")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}

	if second != first+1 {
		t.Errorf("expected monotonic sequence, got %d then %d", first, second)
	}
}

func TestVideoRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		video := sampleVideo("v1")

		if err := repo.Create(video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		if video.ID() == "" {
			t.Error("video ID should be set after creation")
		}
		if video.Sequence() == 0 {
			t.Error("video sequence should be set after creation")
		}
	})

	t.Run("Create Rejects Missing Title", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		video := models.NewCachedVideo(models.Video{ID: "v1"}, time.Now().UTC())

		if err := repo.Create(video); err == nil {
			t.Error("expected validation error for missing title")
		}
	})

	t.Run("GetByRemoteID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		if err := repo.Create(sampleVideo("v1")); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		retrieved, err := repo.GetByRemoteID("v1")
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}
		if retrieved.RemoteID() != "v1" {
			t.Errorf("expected remote ID v1, got %s", retrieved.RemoteID())
		}

		if _, err := repo.GetByRemoteID("missing"); !errors.Is(err, shared.ErrVideoNotFound) {
			t.Errorf("expected ErrVideoNotFound, got %v", err)
		}
	})

	t.Run("Upsert", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)

		if err := repo.Upsert(sampleVideo("v1")); err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}

		updated := sampleVideo("v1")
		updated.SetLiked(true)
		if err := repo.Upsert(updated); err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}

		videos, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list videos: %v", err)
		}
		if len(videos) != 1 {
			t.Fatalf("expected upsert to not duplicate, got %d rows", len(videos))
		}
		if !videos[0].Liked() {
			t.Error("expected row refreshed with new values")
		}
	})

	t.Run("List Orders By WatchedAt", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		now := time.Now().UTC()

		older := models.NewCachedVideo(models.Video{ID: "v1", Title: "older"}, now.Add(-time.Hour))
		newer := models.NewCachedVideo(models.Video{ID: "v2", Title: "newer"}, now)

		if err := repo.Create(older); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}
		if err := repo.Create(newer); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		videos, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list videos: %v", err)
		}
		if len(videos) != 2 {
			t.Fatalf("expected 2 videos, got %d", len(videos))
		}
		if videos[0].RemoteID() != "v2" {
			t.Errorf("expected most recently watched first, got %s", videos[0].RemoteID())
		}
	})

	t.Run("List Filters By Liked", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)

		liked := sampleVideo("v1")
		liked.SetLiked(true)
		if err := repo.Create(liked); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}
		if err := repo.Create(sampleVideo("v2")); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		videos, err := repo.List(map[string]any{"liked": true})
		if err != nil {
			t.Fatalf("failed to list videos: %v", err)
		}
		if len(videos) != 1 || videos[0].RemoteID() != "v1" {
			t.Errorf("expected only liked video, got %d rows", len(videos))
		}
	})

	t.Run("DeleteAll Soft Deletes", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		if err := repo.Create(sampleVideo("v1")); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		if err := repo.DeleteAll(); err != nil {
			t.Fatalf("failed to delete all: %v", err)
		}

		videos, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list videos: %v", err)
		}
		if len(videos) != 0 {
			t.Errorf("expected empty list after clear, got %d rows", len(videos))
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	sample := func(remoteID, name string) *models.CachedPlaylist {
		return models.NewCachedPlaylist(models.Playlist{
			ID:         remoteID,
			Name:       name,
			Visibility: models.VisibilityPublic,
		})
	}

	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		playlist := sample("p1", "mixes")

		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		retrieved, err := repo.Get(playlist.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if retrieved.Name() != "mixes" {
			t.Errorf("expected name mixes, got %s", retrieved.Name())
		}
	})

	t.Run("Upsert Refreshes Existing Row", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		if err := repo.Upsert(sample("p1", "mixes")); err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}
		if err := repo.Upsert(sample("p1", "renamed")); err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}

		playlists, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 1 || playlists[0].Name() != "renamed" {
			t.Errorf("expected single renamed row, got %d rows", len(playlists))
		}
	})

	t.Run("DeleteByRemoteID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		if err := repo.Create(sample("p1", "mixes")); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if err := repo.DeleteByRemoteID("p1"); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		if _, err := repo.GetByRemoteID("p1"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("List Filters By Visibility", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		if err := repo.Create(sample("p1", "public one")); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		private := models.NewCachedPlaylist(models.Playlist{ID: "p2", Name: "private one", Visibility: models.VisibilityPrivate})
		if err := repo.Create(private); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		playlists, err := repo.List(map[string]any{"visibility": models.VisibilityPrivate})
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 1 || playlists[0].RemoteID() != "p2" {
			t.Errorf("expected only private playlist, got %d rows", len(playlists))
		}
	})
}

func TestSessionRepository(t *testing.T) {
	t.Run("Save And ListByBaseURL", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession("http://localhost:8000/api/v1", "accessToken", "abc123", nil)

		if err := repo.Save(session); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		sessions, err := repo.ListByBaseURL("http://localhost:8000/api/v1")
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(sessions) != 1 || sessions[0].CookieValue() != "abc123" {
			t.Errorf("expected saved cookie back, got %v", sessions)
		}
	})

	t.Run("Save Replaces Same Cookie", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		baseURL := "http://localhost:8000/api/v1"

		if err := repo.Save(models.NewSession(baseURL, "accessToken", "old", nil)); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}
		if err := repo.Save(models.NewSession(baseURL, "accessToken", "rotated", nil)); err != nil {
			t.Fatalf("failed to save rotated session: %v", err)
		}

		sessions, err := repo.ListByBaseURL(baseURL)
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(sessions) != 1 || sessions[0].CookieValue() != "rotated" {
			t.Errorf("expected single rotated cookie, got %v", sessions)
		}
	})

	t.Run("ListByBaseURL Empty", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		if _, err := repo.ListByBaseURL("http://nowhere"); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("DeleteByBaseURL", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		baseURL := "http://localhost:8000/api/v1"

		if err := repo.Save(models.NewSession(baseURL, "accessToken", "abc", nil)); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}
		if err := repo.DeleteByBaseURL(baseURL); err != nil {
			t.Fatalf("failed to delete sessions: %v", err)
		}

		if _, err := repo.ListByBaseURL(baseURL); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})

	t.Run("PruneExpired", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		baseURL := "http://localhost:8000/api/v1"

		past := time.Now().UTC().Add(-time.Hour)
		future := time.Now().UTC().Add(time.Hour)

		if err := repo.Save(models.NewSession(baseURL, "expired", "x", &past)); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}
		if err := repo.Save(models.NewSession(baseURL, "live", "y", &future)); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		if err := repo.PruneExpired(); err != nil {
			t.Fatalf("failed to prune: %v", err)
		}

		sessions, err := repo.ListByBaseURL(baseURL)
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(sessions) != 1 || sessions[0].CookieName() != "live" {
			t.Errorf("expected only unexpired cookie, got %v", sessions)
		}
	})
}
