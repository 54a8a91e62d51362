package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = videoItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d videos • %s", len(i.playlist.Videos), i.playlist.Visibility)
}

// videoItem wraps [models.Video] to implement [list.Item].
type videoItem struct {
	video      models.Video
	liked      bool
	disliked   bool
	subscribed bool
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string {
	title := i.video.Title
	if title == "" {
		title = i.video.ID
	}
	switch {
	case i.liked:
		return title + " ♥"
	case i.disliked:
		return title + " ✗"
	default:
		return title
	}
}

func (i videoItem) Description() string {
	desc := fmt.Sprintf("%s • %s views", i.video.Owner.Username, shared.FormatViews(i.video.Views))
	if i.video.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.video.Duration))
	}
	if i.subscribed {
		desc += " • subscribed"
	}
	return desc
}
