package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

func TestPlaylists(t *testing.T) {
	t.Run("Fetch", func(t *testing.T) {
		t.Run("Decodes Bare Array", func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]map[string]any{
					{"_id": "p1", "name": "mixes", "visibility": "public"},
				})
			}))

			store := NewPlaylists(client, nil)
			store.Fetch(context.Background())

			if store.Err() != "" {
				t.Fatalf("expected no error, got %q", store.Err())
			}

			playlists := store.Playlists()
			if len(playlists) != 1 || playlists[0].ID != "p1" {
				t.Errorf("expected playlist from server, got %v", playlists)
			}
		})

		t.Run("Failure Sets Error Flag", func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				envelope(w, http.StatusInternalServerError, nil)
			}))

			store := NewPlaylists(client, nil)
			store.Fetch(context.Background())

			if store.Err() == "" {
				t.Error("expected error flag after failed fetch")
			}
		})

		t.Run("Success Clears Error Flag", func(t *testing.T) {
			failing := true
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if failing {
					envelope(w, http.StatusInternalServerError, nil)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]map[string]any{})
			}))

			store := NewPlaylists(client, nil)
			store.Fetch(context.Background())
			if store.Err() == "" {
				t.Fatal("expected error flag set")
			}

			failing = false
			store.Fetch(context.Background())
			if store.Err() != "" {
				t.Errorf("expected error flag cleared, got %q", store.Err())
			}
		})
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("Appends Server Playlist With Assigned Identity", func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				envelope(w, 201, map[string]any{
					"_id":        "server-assigned",
					"name":       body["name"],
					"visibility": body["visibility"],
				})
			}))

			store := NewPlaylists(client, nil)
			created, err := store.Create(context.Background(), "mixes", models.VisibilityPublic)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if created.ID != "server-assigned" {
				t.Errorf("expected server identity, got %s", created.ID)
			}

			if _, ok := store.Get("server-assigned"); !ok {
				t.Error("expected created playlist in local collection")
			}
		})

		t.Run("Rejects Empty Name", func(t *testing.T) {
			store := NewPlaylists(nil, nil)
			_, err := store.Create(context.Background(), "", models.VisibilityPublic)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Rejects Unknown Visibility", func(t *testing.T) {
			store := NewPlaylists(nil, nil)
			_, err := store.Create(context.Background(), "mixes", "unlisted")
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Failure Leaves Collection Untouched", func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				envelope(w, http.StatusBadRequest, nil)
			}))

			store := NewPlaylists(client, nil)
			_, err := store.Create(context.Background(), "mixes", models.VisibilityPublic)
			if err == nil {
				t.Fatal("expected error")
			}
			if len(store.Playlists()) != 0 {
				t.Error("expected no playlist added on failure")
			}
		})
	})

	t.Run("AddVideo", func(t *testing.T) {
		seed := func(t *testing.T, handler http.HandlerFunc) *Playlists {
			t.Helper()
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					w.Header().Set("Content-Type", "application/json")
					json.NewEncoder(w).Encode([]map[string]any{{"_id": "p1", "name": "mixes", "visibility": "public"}})
					return
				}
				handler(w, r)
			}))

			store := NewPlaylists(client, nil)
			store.Fetch(context.Background())
			return store
		}

		t.Run("Applies Only After Server Accepts", func(t *testing.T) {
			store := seed(t, func(w http.ResponseWriter, r *http.Request) {
				envelope(w, 200, nil)
			})

			if err := store.AddVideo(context.Background(), "p1", "v1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			playlist, _ := store.Get("p1")
			if len(playlist.Videos) != 1 || playlist.Videos[0].ID != "v1" {
				t.Errorf("expected member stub appended, got %v", playlist.Videos)
			}
		})

		t.Run("Failure Leaves Membership Untouched", func(t *testing.T) {
			store := seed(t, func(w http.ResponseWriter, r *http.Request) {
				envelope(w, http.StatusInternalServerError, nil)
			})

			if err := store.AddVideo(context.Background(), "p1", "v1"); err == nil {
				t.Fatal("expected error")
			}

			playlist, _ := store.Get("p1")
			if len(playlist.Videos) != 0 {
				t.Error("expected no local change on failure")
			}
		})
	})

	t.Run("RemoveVideo Filters Member", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]map[string]any{
					{"_id": "p1", "name": "mixes", "videos": []map[string]string{{"_id": "v1"}, {"_id": "v2"}}},
				})
				return
			}
			envelope(w, 200, nil)
		}))

		store := NewPlaylists(client, nil)
		store.Fetch(context.Background())

		if err := store.RemoveVideo(context.Background(), "p1", "v1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		playlist, _ := store.Get("p1")
		if len(playlist.Videos) != 1 || playlist.Videos[0].ID != "v2" {
			t.Errorf("expected v1 filtered out, got %v", playlist.Videos)
		}
	})

	t.Run("Delete Removes From Collection", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]map[string]any{{"_id": "p1", "name": "mixes"}})
				return
			}
			envelope(w, 200, nil)
		}))

		store := NewPlaylists(client, nil)
		store.Fetch(context.Background())

		if err := store.Delete(context.Background(), "p1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(store.Playlists()) != 0 {
			t.Error("expected empty collection after delete")
		}
	})
}
