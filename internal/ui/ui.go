package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"spotigod/internal/services"
)

const (
	tickInterval = 250 * time.Millisecond
	pollInterval = time.Second
	settleDelay  = 500 * time.Millisecond

	volumeDigits = 3
)

// inputMode selects which key handler owns the next key press.
type inputMode int

const (
	ModeNormal inputMode = iota
	ModeSearch
	ModeVolume
)

// screen selects which collection the content area shows.
type screen int

const (
	ScreenPlayer screen = iota
	ScreenSearch
	ScreenPlaylists
	ScreenFavorites
)

// Controller is the remote surface the player drives. [services.SpotifyService]
// satisfies it.
type Controller interface {
	CurrentPlayback(ctx context.Context) (*services.PlaybackState, error)
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	SetVolume(ctx context.Context, percent int) error
	SetShuffle(ctx context.Context, state bool) error
	SetRepeat(ctx context.Context, mode services.RepeatMode) error
	SearchTracks(ctx context.Context, query string, limit int) ([]services.Track, error)
	UserPlaylists(ctx context.Context) ([]services.Playlist, error)
	SavedTracks(ctx context.Context) ([]services.Track, error)
	PlayTrack(ctx context.Context, uri string) error
	PlayContext(ctx context.Context, contextURI string) error
}

// Model represents the player application state.
type Model struct {
	ctx        context.Context
	controller Controller
	logger     *log.Logger

	inputMode inputMode
	screen    screen
	quitting  bool

	playback      *services.PlaybackState
	searchResults []services.Track
	playlists     []services.Playlist
	favorites     []services.Track

	searchSel   selection
	playlistSel selection
	favoriteSel selection

	searchInput textinput.Model
	volumeInput textinput.Model

	errorMsg   string
	successMsg string

	lastUpdate time.Time
	settle     time.Duration

	width  int
	height int

	help help.Model
	keys keyMap
}

// NewModel creates the player model with the provided dependencies.
func NewModel(ctx context.Context, controller Controller, logger *log.Logger) *Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Escribe para buscar..."

	volumeInput := textinput.New()
	volumeInput.Placeholder = "0-100"
	volumeInput.CharLimit = volumeDigits
	volumeInput.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return fmt.Errorf("sólo dígitos")
			}
		}
		return nil
	}

	return &Model{
		ctx:         ctx,
		controller:  controller,
		logger:      logger,
		inputMode:   ModeNormal,
		screen:      ScreenPlayer,
		searchInput: searchInput,
		volumeInput: volumeInput,
		settle:      settleDelay,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init fetches the first playback snapshot and starts the redraw tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchPlayback(), m.tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Transient messages live for at most one input cycle.
		m.errorMsg = ""
		m.successMsg = ""

		switch m.inputMode {
		case ModeSearch:
			return m.handleSearchKeys(msg)
		case ModeVolume:
			return m.handleVolumeKeys(msg)
		default:
			return m.handleNormalKeys(msg)
		}

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		if time.Since(m.lastUpdate) >= pollInterval {
			return m, tea.Batch(m.fetchPlayback(), m.tick())
		}
		return m, m.tick()

	case playbackMsg:
		if msg.err != nil {
			// Keep the last known snapshot; a blank player would lie.
			m.errorMsg = fmt.Sprintf("Error al actualizar reproducción: %v", msg.err)
			m.lastUpdate = time.Now()
			return m, nil
		}
		m.playback = msg.state
		m.errorMsg = ""
		m.lastUpdate = time.Now()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.successMsg = msg.success
		if msg.refreshed {
			m.playback = msg.state
			m.lastUpdate = time.Now()
		}
		return m, nil

	case searchMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Error en búsqueda: %v", msg.err)
			return m, nil
		}
		m.searchResults = msg.tracks
		m.searchSel.Reset(len(msg.tracks))
		m.successMsg = fmt.Sprintf("Encontradas %d canciones", len(msg.tracks))
		return m, nil

	case playlistsMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Error al cargar playlists: %v", msg.err)
			return m, nil
		}
		m.playlists = msg.playlists
		m.playlistSel.Reset(len(msg.playlists))
		m.successMsg = fmt.Sprintf("Cargadas %d playlists", len(msg.playlists))
		return m, nil

	case favoritesMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Error al cargar favoritos: %v", msg.err)
			return m, nil
		}
		m.favorites = msg.tracks
		m.favoriteSel.Reset(len(msg.tracks))
		m.successMsg = fmt.Sprintf("Cargadas %d canciones favoritas", len(msg.tracks))
		return m, nil
	}

	return m, nil
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case " ":
		return m, m.togglePlayback()

	case "n", "right":
		return m, m.action("Siguiente canción", true, m.controller.Next)

	case "p", "left":
		return m, m.action("Canción anterior", true, m.controller.Previous)

	case "s":
		if m.playback == nil {
			m.errorMsg = "No hay reproducción activa"
			return m, nil
		}
		next := !m.playback.ShuffleState
		return m, m.action("Shuffle cambiado", false, func(ctx context.Context) error {
			return m.controller.SetShuffle(ctx, next)
		})

	case "r":
		if m.playback == nil {
			m.errorMsg = "No hay reproducción activa"
			return m, nil
		}
		next := m.playback.Repeat().Next()
		return m, m.action("Modo repetición cambiado", false, func(ctx context.Context) error {
			return m.controller.SetRepeat(ctx, next)
		})

	case "1":
		m.screen = ScreenPlayer
		return m, nil

	case "2":
		m.screen = ScreenSearch
		return m, nil

	case "3":
		m.screen = ScreenPlaylists
		return m, m.fetchPlaylists()

	case "4":
		m.screen = ScreenFavorites
		return m, m.fetchFavorites()

	case "/":
		m.inputMode = ModeSearch
		m.searchInput.Reset()
		m.searchInput.Focus()
		return m, nil

	case "v":
		m.inputMode = ModeVolume
		m.volumeInput.Reset()
		m.volumeInput.Focus()
		return m, nil

	case "up", "k":
		m.currentSelection().Prev()
		return m, nil

	case "down", "j":
		m.currentSelection().Next()
		return m, nil

	case "enter":
		return m, m.playSelected()
	}

	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := m.searchInput.Value()
		m.inputMode = ModeNormal
		m.searchInput.Blur()
		m.screen = ScreenSearch
		if query == "" {
			return m, nil
		}
		return m, m.performSearch(query)

	case "esc":
		m.inputMode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleVolumeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		raw := m.volumeInput.Value()
		m.inputMode = ModeNormal
		m.volumeInput.Blur()

		percent, err := strconv.Atoi(raw)
		if err != nil {
			m.errorMsg = "Volumen inválido"
			return m, nil
		}
		if percent < 0 || percent > 100 {
			m.errorMsg = "El volumen debe estar entre 0 y 100"
			return m, nil
		}

		return m, m.action(fmt.Sprintf("Volumen: %d%%", percent), false, func(ctx context.Context) error {
			return m.controller.SetVolume(ctx, percent)
		})

	case "esc":
		m.inputMode = ModeNormal
		m.volumeInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.volumeInput, cmd = m.volumeInput.Update(msg)
	return m, cmd
}

// togglePlayback chooses play or pause from the last polled snapshot. The
// flag can be stale relative to the true remote state when another client
// intervenes between polls; the next refresh reconciles.
func (m *Model) togglePlayback() tea.Cmd {
	if m.playback == nil {
		m.errorMsg = "No hay reproducción activa"
		return nil
	}

	if m.playback.IsPlaying {
		return m.action("Pausado", false, m.controller.Pause)
	}
	return m.action("Reproduciendo", false, m.controller.Play)
}

func (m *Model) currentSelection() *selection {
	switch m.screen {
	case ScreenSearch:
		return &m.searchSel
	case ScreenPlaylists:
		return &m.playlistSel
	case ScreenFavorites:
		return &m.favoriteSel
	default:
		return &selection{}
	}
}

func (m *Model) playSelected() tea.Cmd {
	switch m.screen {
	case ScreenSearch:
		i, ok := m.searchSel.Index()
		if !ok || i >= len(m.searchResults) {
			return nil
		}
		track := m.searchResults[i]
		return m.action(fmt.Sprintf("Reproduciendo: %s", track.Name), true, func(ctx context.Context) error {
			return m.controller.PlayTrack(ctx, track.TrackURI())
		})

	case ScreenPlaylists:
		i, ok := m.playlistSel.Index()
		if !ok || i >= len(m.playlists) {
			return nil
		}
		playlist := m.playlists[i]
		return m.action(fmt.Sprintf("Reproduciendo playlist: %s", playlist.Name), true, func(ctx context.Context) error {
			return m.controller.PlayContext(ctx, playlist.ContextURI())
		})

	case ScreenFavorites:
		i, ok := m.favoriteSel.Index()
		if !ok || i >= len(m.favorites) {
			return nil
		}
		track := m.favorites[i]
		return m.action(fmt.Sprintf("Reproduciendo: %s", track.Name), true, func(ctx context.Context) error {
			return m.controller.PlayTrack(ctx, track.TrackURI())
		})
	}

	return nil
}
