package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"spotigod/internal/shared"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"

	requestTimeout = 10 * time.Second

	// DefaultSearchLimit is the page size used when a search caller passes 0.
	DefaultSearchLimit = 20

	// pageLimit is the page size for library listings, the API maximum.
	pageLimit = 50
)

// RemoteCallError is a non-2xx response from the Spotify API.
type RemoteCallError struct {
	Status   int
	Endpoint string
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s: %s devolvió %d", shared.ErrAPIRequest, e.Endpoint, e.Status)
}

func (e *RemoteCallError) Unwrap() error {
	return shared.ErrAPIRequest
}

// TokenProvider supplies a ready-to-use Authorization header value,
// refreshing the underlying token first when it is about to expire.
type TokenProvider interface {
	AuthorizationHeader(ctx context.Context) (string, error)
}

// SpotifyService is the remote playback facade. Every method issues a single
// request against the Web API with a fresh Authorization header.
type SpotifyService struct {
	tokens     TokenProvider
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	logger     *log.Logger
}

func NewSpotifyService(tokens TokenProvider, logger *log.Logger) *SpotifyService {
	return &SpotifyService{
		tokens:     tokens,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(8), 8),
		baseURL:    spotifyBaseURL,
		logger:     logger,
	}
}

// doRequest performs one API call. A non-2xx status is returned as a
// [RemoteCallError]; when result is non-nil the response body is decoded
// into it unless the API answered 204.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body, result any) (int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	header, err := s.tokens.AuthorizationHeader(ctx)
	if err != nil {
		return 0, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", header)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Debug("spotify request failed", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
		return resp.StatusCode, &RemoteCallError{Status: resp.StatusCode, Endpoint: endpoint}
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// CurrentPlayback fetches the playback snapshot. A 204 means nothing is
// playing anywhere and yields a nil state without error.
func (s *SpotifyService) CurrentPlayback(ctx context.Context) (*PlaybackState, error) {
	var state PlaybackState
	status, err := s.doRequest(ctx, http.MethodGet, "/me/player", nil, &state)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNoContent {
		return nil, nil
	}

	return &state, nil
}

// UserProfile fetches the authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if _, err := s.doRequest(ctx, http.MethodGet, "/me", nil, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Play resumes playback on the active device.
func (s *SpotifyService) Play(ctx context.Context) error {
	_, err := s.doRequest(ctx, http.MethodPut, "/me/player/play", nil, nil)
	return err
}

// Pause pauses playback on the active device.
func (s *SpotifyService) Pause(ctx context.Context) error {
	_, err := s.doRequest(ctx, http.MethodPut, "/me/player/pause", nil, nil)
	return err
}

// Next skips to the next track.
func (s *SpotifyService) Next(ctx context.Context) error {
	_, err := s.doRequest(ctx, http.MethodPost, "/me/player/next", nil, nil)
	return err
}

// Previous skips to the previous track.
func (s *SpotifyService) Previous(ctx context.Context) error {
	_, err := s.doRequest(ctx, http.MethodPost, "/me/player/previous", nil, nil)
	return err
}

// SetVolume sets the active device volume. Values outside 0..100 are rejected
// locally without touching the API.
func (s *SpotifyService) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: el volumen debe estar entre 0 y 100, recibido %d", shared.ErrInvalidInput, percent)
	}

	endpoint := fmt.Sprintf("/me/player/volume?volume_percent=%d", percent)
	_, err := s.doRequest(ctx, http.MethodPut, endpoint, nil, nil)
	return err
}

// SetShuffle turns shuffle on or off.
func (s *SpotifyService) SetShuffle(ctx context.Context, state bool) error {
	endpoint := fmt.Sprintf("/me/player/shuffle?state=%t", state)
	_, err := s.doRequest(ctx, http.MethodPut, endpoint, nil, nil)
	return err
}

// SetRepeat sets the repeat mode.
func (s *SpotifyService) SetRepeat(ctx context.Context, mode RepeatMode) error {
	endpoint := fmt.Sprintf("/me/player/repeat?state=%s", mode)
	_, err := s.doRequest(ctx, http.MethodPut, endpoint, nil, nil)
	return err
}

type playRequest struct {
	URIs       []string `json:"uris,omitempty"`
	ContextURI string   `json:"context_uri,omitempty"`
}

// PlayTrack starts playback of a single track on the active device.
func (s *SpotifyService) PlayTrack(ctx context.Context, uri string) error {
	_, err := s.doRequest(ctx, http.MethodPut, "/me/player/play", playRequest{URIs: []string{uri}}, nil)
	return err
}

// PlayContext starts playback of a context (playlist, album, artist).
func (s *SpotifyService) PlayContext(ctx context.Context, contextURI string) error {
	_, err := s.doRequest(ctx, http.MethodPut, "/me/player/play", playRequest{ContextURI: contextURI}, nil)
	return err
}

// SearchTracks searches the catalog for tracks matching query. A limit of 0
// uses [DefaultSearchLimit]; larger requests are clamped to the API maximum.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > pageLimit {
		limit = pageLimit
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), limit)

	var result searchResponse
	if _, err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}

	if result.Tracks == nil {
		return nil, nil
	}

	return result.Tracks.Items, nil
}

// UserPlaylists lists the user's playlists, first page only.
func (s *SpotifyService) UserPlaylists(ctx context.Context) ([]Playlist, error) {
	endpoint := fmt.Sprintf("/me/playlists?limit=%d", pageLimit)

	var result playlistPage
	if _, err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}

	return result.Items, nil
}

// SavedTracks lists the user's saved tracks, first page only.
func (s *SpotifyService) SavedTracks(ctx context.Context) ([]Track, error) {
	endpoint := fmt.Sprintf("/me/tracks?limit=%d", pageLimit)

	var result savedTrackPage
	if _, err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(result.Items))
	for _, item := range result.Items {
		tracks = append(tracks, item.Track)
	}

	return tracks, nil
}

// PlaylistTracks lists the tracks of one playlist, first page only. Entries
// the API returns without a track are skipped.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d", playlistID, pageLimit)

	var result playlistTrackPage
	if _, err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(result.Items))
	for _, item := range result.Items {
		if item.Track == nil {
			continue
		}
		tracks = append(tracks, *item.Track)
	}

	return tracks, nil
}
