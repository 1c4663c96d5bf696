package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"spotigod/internal/services"
)

// tickMsg drives redraws; playback itself is only re-fetched once
// [pollInterval] has elapsed since the last refresh.
type tickMsg time.Time

// playbackMsg carries the result of a periodic or startup poll.
type playbackMsg struct {
	state *services.PlaybackState
	err   error
}

// actionMsg is the single message a mutating command delivers: the remote
// call outcome plus the snapshot re-fetched afterwards.
type actionMsg struct {
	success   string
	state     *services.PlaybackState
	refreshed bool
	err       error
}

type searchMsg struct {
	tracks []services.Track
	err    error
}

type playlistsMsg struct {
	playlists []services.Playlist
	err       error
}

type favoritesMsg struct {
	tracks []services.Track
	err    error
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) fetchPlayback() tea.Cmd {
	return func() tea.Msg {
		state, err := m.controller.CurrentPlayback(m.ctx)
		return playbackMsg{state: state, err: err}
	}
}

// action wraps one remote mutation. On success it optionally waits for the
// remote state to settle, re-fetches the snapshot, and reports everything as
// one message so the view never sees a half-applied command.
func (m *Model) action(success string, settle bool, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := call(m.ctx); err != nil {
			return actionMsg{err: err}
		}

		if settle {
			time.Sleep(m.settle)
		}

		state, err := m.controller.CurrentPlayback(m.ctx)
		if err != nil {
			// The command itself succeeded; keep the stale snapshot.
			return actionMsg{success: success}
		}

		return actionMsg{success: success, state: state, refreshed: true}
	}
}

func (m *Model) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.controller.SearchTracks(m.ctx, query, services.DefaultSearchLimit)
		return searchMsg{tracks: tracks, err: err}
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.controller.UserPlaylists(m.ctx)
		return playlistsMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchFavorites() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.controller.SavedTracks(m.ctx)
		return favoritesMsg{tracks: tracks, err: err}
	}
}
