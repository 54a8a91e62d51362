package ui

import (
	"github.com/streamlethq/slx/internal/models"
)

// playlistsFetchedMsg carries the refreshed playlist collection.
type playlistsFetchedMsg struct {
	playlists []models.Playlist
	errMsg    string
}

// historyFetchedMsg carries the refreshed watch history.
type historyFetchedMsg struct {
	videos []models.Video
}

// historyClearedMsg reports the outcome of a clear-history request.
type historyClearedMsg struct {
	videos []models.Video
}

// toggleDoneMsg reports the outcome of an optimistic engagement toggle. On
// failure the store has already rolled back; the TUI only surfaces the error.
type toggleDoneMsg struct {
	action string
	target string
	err    error
}
