package store

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestReactions(t *testing.T) {
	t.Run("ToggleSubscription", func(t *testing.T) {
		t.Run("Subscribes When Not Subscribed", func(t *testing.T) {
			var path string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				if body["channel"] != "ch1" {
					t.Errorf("expected channel in body, got %v", body)
				}
				envelope(w, 200, nil)
			}))

			store := NewReactions(client, nil)
			if err := store.ToggleSubscription(context.Background(), "ch1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if path != "/subscription/c/channel/subscribe" {
				t.Errorf("expected subscribe endpoint, got %s", path)
			}
			if !store.IsSubscribed("ch1") {
				t.Error("expected channel in subscribed set")
			}
		})

		t.Run("Unsubscribes When Subscribed", func(t *testing.T) {
			var path string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				envelope(w, 200, nil)
			}))

			store := NewReactions(client, nil)
			store.SetSubscribedChannels([]string{"ch1"})

			if err := store.ToggleSubscription(context.Background(), "ch1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if path != "/subscription/c/channel/unsubscribe" {
				t.Errorf("expected unsubscribe endpoint, got %s", path)
			}
			if store.IsSubscribed("ch1") {
				t.Error("expected channel removed from subscribed set")
			}
		})

		t.Run("Failure Restores Snapshot", func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				envelope(w, http.StatusInternalServerError, nil)
			}))

			store := NewReactions(client, nil)
			store.SetSubscribedChannels([]string{"ch1", "ch2"})

			if err := store.ToggleSubscription(context.Background(), "ch3"); err == nil {
				t.Fatal("expected error")
			}

			channels := store.SubscribedChannels()
			if len(channels) != 2 || store.IsSubscribed("ch3") {
				t.Errorf("expected pre-toggle set restored, got %v", channels)
			}
		})
	})

	t.Run("ToggleLike", func(t *testing.T) {
		t.Run("Likes And Unlikes", func(t *testing.T) {
			var paths []string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				paths = append(paths, r.URL.Path)
				envelope(w, 200, nil)
			}))

			store := NewReactions(client, nil)
			if err := store.ToggleLike(context.Background(), "v1"); err != nil {
				t.Fatalf("like failed: %v", err)
			}
			if !store.IsLiked("v1") {
				t.Error("expected video liked")
			}

			if err := store.ToggleLike(context.Background(), "v1"); err != nil {
				t.Fatalf("unlike failed: %v", err)
			}
			if store.IsLiked("v1") {
				t.Error("expected like removed")
			}

			if len(paths) != 2 || paths[0] != "/videos/v/v1/like" || paths[1] != "/videos/v/v1/unlike" {
				t.Errorf("expected like then unlike endpoints, got %v", paths)
			}
		})

		t.Run("Removes Opposite Reaction", func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				envelope(w, 200, nil)
			}))

			store := NewReactions(client, nil)
			store.SetDislikedVideos([]string{"v1"})

			if err := store.ToggleLike(context.Background(), "v1"); err != nil {
				t.Fatalf("like failed: %v", err)
			}
			if !store.IsLiked("v1") {
				t.Error("expected video liked")
			}
			if store.IsDisliked("v1") {
				t.Error("expected video removed from disliked set")
			}
		})

		t.Run("Failure Restores Like Snapshot", func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				envelope(w, http.StatusInternalServerError, nil)
			}))

			store := NewReactions(client, nil)
			store.SetLikedVideos([]string{"v1"})

			if err := store.ToggleLike(context.Background(), "v2"); err == nil {
				t.Fatal("expected error")
			}

			if store.IsLiked("v2") {
				t.Error("expected v2 reverted out of liked set")
			}
			if !store.IsLiked("v1") {
				t.Error("expected v1 still liked")
			}
		})
	})

	t.Run("ToggleDislike", func(t *testing.T) {
		t.Run("Dislikes And Undislikes", func(t *testing.T) {
			var paths []string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				paths = append(paths, r.URL.Path)
				envelope(w, 200, nil)
			}))

			store := NewReactions(client, nil)
			if err := store.ToggleDislike(context.Background(), "v1"); err != nil {
				t.Fatalf("dislike failed: %v", err)
			}
			if !store.IsDisliked("v1") {
				t.Error("expected video disliked")
			}

			if err := store.ToggleDislike(context.Background(), "v1"); err != nil {
				t.Fatalf("undislike failed: %v", err)
			}
			if store.IsDisliked("v1") {
				t.Error("expected dislike removed")
			}

			if len(paths) != 2 || paths[0] != "/videos/v/v1/dislike" || paths[1] != "/videos/v/v1/undislike" {
				t.Errorf("expected dislike then undislike endpoints, got %v", paths)
			}
		})

		t.Run("Removes Opposite Reaction", func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				envelope(w, 200, nil)
			}))

			store := NewReactions(client, nil)
			store.SetLikedVideos([]string{"v1"})

			if err := store.ToggleDislike(context.Background(), "v1"); err != nil {
				t.Fatalf("dislike failed: %v", err)
			}
			if !store.IsDisliked("v1") {
				t.Error("expected video disliked")
			}
			if store.IsLiked("v1") {
				t.Error("expected video removed from liked set")
			}
		})
	})

	t.Run("Accessors Return Copies", func(t *testing.T) {
		store := NewReactions(nil, nil)
		store.SetSubscribedChannels([]string{"ch1"})

		channels := store.SubscribedChannels()
		channels[0] = "mutated"

		if !store.IsSubscribed("ch1") {
			t.Error("expected internal state unaffected by caller mutation")
		}
	})
}
