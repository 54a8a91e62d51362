package formatter

import (
	"strings"
	"testing"

	"github.com/streamlethq/slx/internal/models"
)

func TestVideosToText(t *testing.T) {
	videos := []models.Video{
		{ID: "v1", Title: "First", Duration: 65, Views: 1200, Owner: models.User{Username: "ada"}},
		{ID: "v2", Title: "Second", Duration: 3700, Views: 12, Owner: models.User{Username: "grace"}},
	}

	out := string(VideosToText("Watch History", videos))

	if !strings.Contains(out, "Watch History (2 videos)") {
		t.Errorf("expected header with count, got %q", out)
	}
	if !strings.Contains(out, "1. First [1:05]") {
		t.Errorf("expected numbered entry with duration, got %q", out)
	}
	if !strings.Contains(out, "ada • 1.2K views") {
		t.Errorf("expected owner and view count, got %q", out)
	}
	if !strings.Contains(out, "2. Second [1:01:40]") {
		t.Errorf("expected hour-long duration format, got %q", out)
	}
}

func TestVideosToCSV(t *testing.T) {
	videos := []models.Video{
		{ID: "v1", Title: "Comma, Title", Duration: 60, Views: 5, Owner: models.User{Username: "ada"}},
	}

	out, err := VideosToCSV(videos)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one record, got %d lines", len(lines))
	}
	if lines[0] != "ID,Title,Owner,Duration,Views" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Comma, Title"`) {
		t.Errorf("expected quoted title, got %q", lines[1])
	}
}

func TestPlaylistsToText(t *testing.T) {
	playlists := []models.Playlist{
		{ID: "p1", Name: "mixes", Visibility: "public", Videos: []models.PlaylistVideo{{ID: "v1"}}},
	}

	out := string(PlaylistsToText(playlists))

	if !strings.Contains(out, "Playlists (1)") {
		t.Errorf("expected header with count, got %q", out)
	}
	if !strings.Contains(out, "mixes (public, 1 videos)") {
		t.Errorf("expected playlist line, got %q", out)
	}
}

func TestPlaylistToMarkdown(t *testing.T) {
	t.Run("With Members", func(t *testing.T) {
		playlist := models.Playlist{
			Name:       "mixes",
			Visibility: "private",
			Videos: []models.PlaylistVideo{
				{ID: "v1", Title: "First"},
				{ID: "v2"},
			},
		}

		out := string(PlaylistToMarkdown(playlist))

		if !strings.Contains(out, "# mixes") {
			t.Errorf("expected title heading, got %q", out)
		}
		if !strings.Contains(out, "**Visibility**: private") {
			t.Errorf("expected visibility line, got %q", out)
		}
		if !strings.Contains(out, "1. First") {
			t.Errorf("expected member title, got %q", out)
		}
		if !strings.Contains(out, "2. v2") {
			t.Errorf("expected placeholder member to fall back to ID, got %q", out)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		out := string(PlaylistToMarkdown(models.Playlist{Name: "empty"}))
		if strings.Contains(out, "## Videos") {
			t.Errorf("expected no members section, got %q", out)
		}
	})
}

func TestUserToText(t *testing.T) {
	t.Run("Logged In", func(t *testing.T) {
		user := &models.User{ID: "u1", Username: "ada", Email: "ada@example.com"}
		out := string(UserToText(user))

		if !strings.Contains(out, "Logged in as ada") {
			t.Errorf("expected username line, got %q", out)
		}
		if !strings.Contains(out, "ada@example.com") {
			t.Errorf("expected email line, got %q", out)
		}
	})

	t.Run("Logged Out", func(t *testing.T) {
		out := string(UserToText(nil))
		if !strings.Contains(out, "Not logged in") {
			t.Errorf("expected logged-out message, got %q", out)
		}
	})
}
