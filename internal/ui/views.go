package ui

import (
	"fmt"
	"strings"
	"time"
)

const progressBarWidth = 40

// View renders the UI based on the current screen and input mode.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.title.Render(m.headerTitle()))
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenPlayer:
		b.WriteString(m.renderPlayer())
	case ScreenSearch:
		b.WriteString(m.renderSearch())
	case ScreenPlaylists:
		b.WriteString(m.renderPlaylists())
	case ScreenFavorites:
		b.WriteString(m.renderFavorites())
	}

	switch m.inputMode {
	case ModeSearch:
		b.WriteString("\n\n")
		b.WriteString(styles.popup.Render("Buscar Canciones\n" + m.searchInput.View()))
	case ModeVolume:
		b.WriteString("\n\n")
		b.WriteString(styles.popup.Render("Volumen (%)\n" + m.volumeInput.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) headerTitle() string {
	switch m.screen {
	case ScreenSearch:
		return "🔍 SpotiGod - Búsqueda"
	case ScreenPlaylists:
		return "📋 SpotiGod - Playlists"
	case ScreenFavorites:
		return "🎶 SpotiGod - Favoritos"
	default:
		return "🎵 SpotiGod - Reproductor"
	}
}

func (m *Model) renderPlayer() string {
	var b strings.Builder

	if m.playback == nil {
		b.WriteString("No se detectó reproducción activa\n\n")
		b.WriteString(styles.dim.Render("Asegúrate de que Spotify esté abierto\ny reproduciendo música en algún dispositivo"))
		b.WriteString("\n\n")
		b.WriteString(m.renderControls())
		return b.String()
	}

	if track := m.playback.Item; track != nil {
		b.WriteString(fmt.Sprintf("🎵 %s\n", styles.ok.Render(track.Name)))
		b.WriteString(fmt.Sprintf("👤 %s\n", track.ArtistNames()))
		b.WriteString(fmt.Sprintf("💿 %s\n\n", track.Album.Name))
		b.WriteString(m.renderProgress(track.DurationMS))
		b.WriteString("\n")
	} else {
		b.WriteString("No hay canción reproduciéndose\n\n")
	}

	device := fmt.Sprintf("🎛️  %s | Vol: %d%%", m.playback.Device.Name, m.playback.Volume())
	b.WriteString(device)
	b.WriteString("\n")

	shuffle := "Shuffle OFF"
	if m.playback.ShuffleState {
		shuffle = "Shuffle ON"
	}
	b.WriteString(fmt.Sprintf("🔀 %s | 🔁 Repeat %s\n\n", shuffle, strings.ToUpper(string(m.playback.Repeat()))))

	b.WriteString(m.renderControls())
	return b.String()
}

func (m *Model) renderProgress(durationMS int64) string {
	if m.playback.ProgressMS == nil {
		return styles.dim.Render("-- / --") + "\n"
	}

	progress := *m.playback.ProgressMS
	filled := 0
	if durationMS > 0 {
		filled = int(progress * progressBarWidth / durationMS)
		if filled > progressBarWidth {
			filled = progressBarWidth
		}
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return fmt.Sprintf("%s %s / %s\n", styles.ok.Render(bar), formatDuration(progress), formatDuration(durationMS))
}

func (m *Model) renderControls() string {
	lines := []string{
		"Controles:",
		"SPACE: Play/Pause | ←/p: Anterior | →/n: Siguiente",
		"s: Shuffle | r: Repeat | v: Volumen | /: Buscar",
		"1: Reproductor | 2: Búsqueda | 3: Playlists | 4: Favoritos | q: Salir",
	}
	return styles.help.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSearch() string {
	if len(m.searchResults) == 0 {
		return styles.dim.Render("Presiona '/' para buscar canciones")
	}

	var b strings.Builder
	selected, _ := m.searchSel.Index()
	for i, track := range m.searchResults {
		b.WriteString(renderTrackRow(track.Name, track.ArtistNames(), i == selected))
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("↑/↓: Navegar | Enter: Reproducir | /: Nueva búsqueda"))
	return b.String()
}

func (m *Model) renderPlaylists() string {
	if len(m.playlists) == 0 {
		return styles.dim.Render("No se encontraron playlists")
	}

	var b strings.Builder
	b.WriteString("Tus Playlists\n\n")

	selected, _ := m.playlistSel.Index()
	for i, playlist := range m.playlists {
		row := fmt.Sprintf("%s - %d canciones", playlist.Name, playlist.TrackTotal())
		b.WriteString(renderRow(row, i == selected))
	}

	return b.String()
}

func (m *Model) renderFavorites() string {
	if len(m.favorites) == 0 {
		return styles.dim.Render("No se encontraron canciones favoritas")
	}

	var b strings.Builder
	b.WriteString("Tus Canciones Favoritas\n\n")

	selected, _ := m.favoriteSel.Index()
	for i, track := range m.favorites {
		b.WriteString(renderTrackRow(track.Name, track.ArtistNames(), i == selected))
	}

	return b.String()
}

func renderTrackRow(name, artists string, selected bool) string {
	return renderRow(fmt.Sprintf("%s - %s", name, artists), selected)
}

func renderRow(row string, selected bool) string {
	if selected {
		return styles.selected.Render("► "+row) + "\n"
	}
	return "  " + row + "\n"
}

func (m *Model) renderFooter() string {
	switch {
	case m.errorMsg != "":
		return styles.err.Render("❌ Error: ") + m.errorMsg
	case m.successMsg != "":
		return styles.ok.Render("✅ ") + m.successMsg
	default:
		status := styles.ok.Render("Listo")
		age := styles.dim.Render(fmt.Sprintf("actualizado hace %ds", int(time.Since(m.lastUpdate).Seconds())))
		return fmt.Sprintf("Estado: %s | %s | %s", status, age, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
}

func formatDuration(ms int64) string {
	seconds := ms / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
