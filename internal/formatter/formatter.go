// package formatter provides functions to render videos and playlists for CLI output (plain text, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// VideosToText renders a video list as numbered plain text.
func VideosToText(title string, videos []models.Video) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s (%d videos)\n\n", title, len(videos)))

	for i, v := range videos {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, v.Title, shared.FormatDuration(v.Duration)))
		buf.WriteString(fmt.Sprintf("   %s • %s views • %s\n", v.Owner.Username, shared.FormatViews(v.Views), v.ID))
	}

	return buf.Bytes()
}

// VideosToCSV renders a video list as CSV with columns: ID, Title, Owner, Duration, Views
func VideosToCSV(videos []models.Video) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Owner", "Duration", "Views"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, v := range videos {
		record := []string{
			v.ID,
			v.Title,
			v.Owner.Username,
			strconv.Itoa(v.Duration),
			strconv.Itoa(v.Views),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// PlaylistsToText renders the playlist collection as plain text.
func PlaylistsToText(playlists []models.Playlist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlists (%d)\n\n", len(playlists)))

	for i, p := range playlists {
		buf.WriteString(fmt.Sprintf("%d. %s (%s, %d videos) • %s\n", i+1, p.Name, p.Visibility, len(p.Videos), p.ID))
	}

	return buf.Bytes()
}

// PlaylistToMarkdown renders a single playlist with its members as Markdown.
func PlaylistToMarkdown(p models.Playlist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", p.Name))
	buf.WriteString(fmt.Sprintf("**Visibility**: %s\n", p.Visibility))
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", len(p.Videos)))

	if len(p.Videos) > 0 {
		buf.WriteString("## Videos\n\n")
		for i, v := range p.Videos {
			title := v.Title
			if title == "" {
				title = v.ID
			}
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, title))
		}
	}

	return buf.Bytes()
}

// UserToText renders the authenticated principal as plain text.
func UserToText(u *models.User) []byte {
	var buf bytes.Buffer

	if u == nil {
		buf.WriteString("Not logged in\n")
		return buf.Bytes()
	}

	buf.WriteString(fmt.Sprintf("Logged in as %s\n", u.Username))
	buf.WriteString(fmt.Sprintf("Email: %s\n", u.Email))
	buf.WriteString(fmt.Sprintf("User ID: %s\n", u.ID))
	if u.CreatedAt != "" {
		buf.WriteString(fmt.Sprintf("Member since: %s\n", u.CreatedAt))
	}

	return buf.Bytes()
}
