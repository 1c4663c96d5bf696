package services

import "strings"

// RepeatMode is the player repeat setting.
type RepeatMode string

const (
	RepeatOff     RepeatMode = "off"
	RepeatContext RepeatMode = "context"
	RepeatTrack   RepeatMode = "track"
)

// ParseRepeatMode maps a provider repeat string to a [RepeatMode], treating
// anything unknown as [RepeatOff].
func ParseRepeatMode(s string) RepeatMode {
	switch RepeatMode(s) {
	case RepeatContext, RepeatTrack:
		return RepeatMode(s)
	default:
		return RepeatOff
	}
}

// Next returns the following mode in the fixed cycle off → context → track → off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatContext
	case RepeatContext:
		return RepeatTrack
	case RepeatTrack:
		return RepeatOff
	default:
		return RepeatContext
	}
}

type followers struct {
	Total int `json:"total"`
}

// UserProfile represents the authenticated user's profile.
type UserProfile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Country     string    `json:"country"`
	Product     string    `json:"product"` // premium, free, etc.
	Followers   followers `json:"followers"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Album represents a Spotify album.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []Artist `json:"artists"`
	ReleaseDate string   `json:"release_date"`
	URI         string   `json:"uri"`
}

// Track represents a Spotify track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int64    `json:"duration_ms"`
	Explicit   bool     `json:"explicit"`
	Popularity int      `json:"popularity"`
	URI        string   `json:"uri"`
}

// ArtistNames joins the track's artist names for display.
func (t Track) ArtistNames() string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// TrackURI returns the playable URI, derived from the ID when the API omits it.
func (t Track) TrackURI() string {
	if t.URI != "" {
		return t.URI
	}
	return "spotify:track:" + t.ID
}

// Owner represents a playlist owner.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistTrackRef struct {
	Total int `json:"total"`
}

// Playlist represents a playlist in the user's library.
type Playlist struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Owner       Owner            `json:"owner"`
	Public      bool             `json:"public"`
	Tracks      playlistTrackRef `json:"tracks"`
	URI         string           `json:"uri"`
}

// TrackTotal returns the number of tracks the playlist holds.
func (p Playlist) TrackTotal() int {
	return p.Tracks.Total
}

// ContextURI returns the playable context URI, derived from the ID when the
// API omits it.
func (p Playlist) ContextURI() string {
	if p.URI != "" {
		return p.URI
	}
	return "spotify:playlist:" + p.ID
}

// Device represents the playback device attached to the active session.
type Device struct {
	ID            string `json:"id"`
	IsActive      bool   `json:"is_active"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	VolumePercent *int   `json:"volume_percent"`
}

// PlaybackState is a point-in-time snapshot of remote playback, replaced
// wholesale on each poll and never partially updated.
type PlaybackState struct {
	Device               Device `json:"device"`
	RepeatState          string `json:"repeat_state"`
	ShuffleState         bool   `json:"shuffle_state"`
	Timestamp            int64  `json:"timestamp"`
	ProgressMS           *int64 `json:"progress_ms"`
	IsPlaying            bool   `json:"is_playing"`
	Item                 *Track `json:"item"`
	CurrentlyPlayingType string `json:"currently_playing_type"`
}

// Repeat returns the snapshot's repeat setting as a [RepeatMode].
func (p *PlaybackState) Repeat() RepeatMode {
	return ParseRepeatMode(p.RepeatState)
}

// Volume returns the device volume, defaulting to 0 when the device hides it.
func (p *PlaybackState) Volume() int {
	if p.Device.VolumePercent == nil {
		return 0
	}
	return *p.Device.VolumePercent
}

// Paginated response wrappers. Only the fields the client consumes are mapped.

type trackPage struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
}

type searchResponse struct {
	Tracks *trackPage `json:"tracks"`
}

type playlistPage struct {
	Items []Playlist `json:"items"`
	Total int        `json:"total"`
}

type savedTrackItem struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

type savedTrackPage struct {
	Items []savedTrackItem `json:"items"`
	Total int              `json:"total"`
}

type playlistTrackItem struct {
	AddedAt string `json:"added_at"`
	Track   *Track `json:"track"` // nil for removed or local-only entries
}

type playlistTrackPage struct {
	Items []playlistTrackItem `json:"items"`
	Total int                 `json:"total"`
}
