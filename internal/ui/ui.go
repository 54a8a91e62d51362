package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HistoryView ViewState = iota
	PlaylistListView
	PlaylistDetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	stores tasks.Stores

	width  int
	height int

	videoList    list.Model
	playlistList list.Model
	memberList   list.Model
	selected     *models.Playlist

	status string
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided stores.
func NewModel(ctx context.Context, stores tasks.Stores) *Model {
	m := &Model{
		ctx:    ctx,
		view:   HistoryView,
		stores: stores,
		help:   help.New(),
		keys:   newKeyMap(),
	}

	delegate := list.NewDefaultDelegate()
	m.videoList = list.New(nil, delegate, 0, 0)
	m.videoList.Title = "Watch History"
	m.videoList.SetShowHelp(false)

	m.playlistList = list.New(nil, delegate, 0, 0)
	m.playlistList.Title = "Playlists"
	m.playlistList.SetShowHelp(false)

	m.memberList = list.New(nil, delegate, 0, 0)
	m.memberList.SetShowHelp(false)

	return m
}

// Init fetches the watch history and playlists.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchHistory(), m.fetchPlaylists())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.videoList.SetSize(msg.Width-4, msg.Height-8)
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		m.memberList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case historyFetchedMsg:
		m.videoList.SetItems(m.videoItems(msg.videos))
		return m, nil

	case historyClearedMsg:
		m.videoList.SetItems(m.videoItems(msg.videos))
		if len(msg.videos) == 0 {
			m.status = styles.ok.Render("watch history cleared")
		} else {
			m.status = styles.err.Render("failed to clear watch history")
		}
		return m, nil

	case playlistsFetchedMsg:
		if msg.errMsg != "" {
			m.status = styles.err.Render(msg.errMsg)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.playlists))
		for _, p := range msg.playlists {
			items = append(items, playlistItem{playlist: p})
		}
		m.playlistList.SetItems(items)
		return m, nil

	case toggleDoneMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("%s failed for %s, change reverted", msg.action, msg.target))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("%s ok", msg.action))
		}
		return m, m.refreshCurrentList()
	}

	return m, nil
}

// handleKeys routes key presses for the active view.
func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.history):
		m.view = HistoryView
		return m, m.fetchHistory()
	case key.Matches(msg, m.keys.playlists):
		m.view = PlaylistListView
		return m, m.fetchPlaylists()
	}

	switch m.view {
	case HistoryView:
		return m.handleHistoryKeys(msg)
	case PlaylistListView:
		return m.handlePlaylistListKeys(msg)
	case PlaylistDetailView:
		return m.handlePlaylistDetailKeys(msg)
	}

	return m, nil
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.like):
		if item, ok := m.videoList.SelectedItem().(videoItem); ok {
			return m, m.toggleLike(item.video.ID)
		}
	case key.Matches(msg, m.keys.dislike):
		if item, ok := m.videoList.SelectedItem().(videoItem); ok {
			return m, m.toggleDislike(item.video.ID)
		}
	case key.Matches(msg, m.keys.subscribe):
		if item, ok := m.videoList.SelectedItem().(videoItem); ok {
			return m, m.toggleSubscription(item.video.Owner.ID)
		}
	case key.Matches(msg, m.keys.clear):
		return m, m.clearHistory()
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.enter) {
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			p := item.playlist
			m.selected = &p
			m.memberList.Title = p.Name
			items := make([]list.Item, 0, len(p.Videos))
			for _, v := range p.Videos {
				items = append(items, videoItem{video: models.Video{ID: v.ID, Title: v.Title, Thumbnail: v.Thumbnail}})
			}
			m.memberList.SetItems(items)
			m.view = PlaylistDetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		m.selected = nil
		return m, nil
	case key.Matches(msg, m.keys.like):
		if item, ok := m.memberList.SelectedItem().(videoItem); ok {
			return m, m.toggleLike(item.video.ID)
		}
	case key.Matches(msg, m.keys.dislike):
		if item, ok := m.memberList.SelectedItem().(videoItem); ok {
			return m, m.toggleDislike(item.video.ID)
		}
	}

	var cmd tea.Cmd
	m.memberList, cmd = m.memberList.Update(msg)
	return m, cmd
}

// View renders the active view with a status line and help.
func (m *Model) View() string {
	var body string
	switch m.view {
	case HistoryView:
		body = m.videoList.View()
	case PlaylistListView:
		body = m.playlistList.View()
	case PlaylistDetailView:
		body = m.memberList.View()
	}

	header := styles.title.Render("slx")
	if user := m.stores.Auth.CurrentUser(); user != nil {
		header = styles.title.Render(fmt.Sprintf("slx • %s", user.Username))
	}

	out := fmt.Sprintf("%s\n%s\n", header, body)
	if m.status != "" {
		out += m.status + "\n"
	}
	out += styles.help.Render(m.help.View(m.keys))
	return out
}

// videoItems decorates history videos with current reaction state.
func (m *Model) videoItems(videos []models.Video) []list.Item {
	items := make([]list.Item, 0, len(videos))
	for _, v := range videos {
		items = append(items, videoItem{
			video:      v,
			liked:      m.stores.Reactions.IsLiked(v.ID),
			disliked:   m.stores.Reactions.IsDisliked(v.ID),
			subscribed: m.stores.Reactions.IsSubscribed(v.Owner.ID),
		})
	}
	return items
}

func (m *Model) refreshCurrentList() tea.Cmd {
	switch m.view {
	case HistoryView:
		return func() tea.Msg {
			return historyFetchedMsg{videos: m.stores.History.Videos()}
		}
	default:
		return nil
	}
}

func (m *Model) fetchHistory() tea.Cmd {
	return func() tea.Msg {
		m.stores.History.Fetch(m.ctx)
		return historyFetchedMsg{videos: m.stores.History.Videos()}
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		m.stores.Playlists.Fetch(m.ctx)
		return playlistsFetchedMsg{
			playlists: m.stores.Playlists.Playlists(),
			errMsg:    m.stores.Playlists.Err(),
		}
	}
}

func (m *Model) clearHistory() tea.Cmd {
	return func() tea.Msg {
		m.stores.History.Clear(m.ctx)
		return historyClearedMsg{videos: m.stores.History.Videos()}
	}
}

func (m *Model) toggleLike(videoID string) tea.Cmd {
	return func() tea.Msg {
		err := m.stores.Reactions.ToggleLike(m.ctx, videoID)
		return toggleDoneMsg{action: "like", target: videoID, err: err}
	}
}

func (m *Model) toggleDislike(videoID string) tea.Cmd {
	return func() tea.Msg {
		err := m.stores.Reactions.ToggleDislike(m.ctx, videoID)
		return toggleDoneMsg{action: "dislike", target: videoID, err: err}
	}
}

func (m *Model) toggleSubscription(channelID string) tea.Cmd {
	return func() tea.Msg {
		err := m.stores.Reactions.ToggleSubscription(m.ctx, channelID)
		return toggleDoneMsg{action: "subscribe", target: channelID, err: err}
	}
}
