// Package session owns the persisted credential-and-token record.
//
// A [Session] holds the Spotify client credentials plus the current token pair.
// It is created once (from the environment on first run), mutated only after a
// successful token exchange or refresh, and rewritten to disk in full after
// every mutation. The process is the single writer.
package session

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"spotigod/internal/shared"
)

// DefaultRedirectURI must match the redirect URI registered with the Spotify app.
const DefaultRedirectURI = "http://127.0.0.1:8888/callback"

//go:embed config.example.toml
var exampleConf []byte

// Session is the durable record of one Spotify credential set and its token state.
//
// AccessToken and ExpiresAt are set and cleared together; RefreshToken may
// outlive an expired access token.
type Session struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	AccessToken  string `toml:"access_token,omitempty"`
	RefreshToken string `toml:"refresh_token,omitempty"`
	ExpiresAt    int64  `toml:"expires_at,omitempty"`
}

// credentials is the first-run environment intake.
type credentials struct {
	ClientID     string `envconfig:"CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"CLIENT_SECRET" required:"true"`
	RedirectURI  string `envconfig:"REDIRECT_URI"`
}

// FromEnv builds a Session from SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET
// (and optional SPOTIFY_REDIRECT_URI). Fails with [shared.ErrMissingCredentials]
// when either required variable is absent.
func FromEnv() (*Session, error) {
	var c credentials
	if err := envconfig.Process("spotify", &c); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
	}

	redirectURI := c.RedirectURI
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}

	return &Session{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURI:  redirectURI,
	}, nil
}

// SetToken records a successful exchange or refresh.
//
// A blank refreshToken keeps the stored one (the provider does not always
// return a new refresh token).
func (s *Session) SetToken(accessToken, refreshToken string, expiresAt int64) {
	s.AccessToken = accessToken
	s.ExpiresAt = expiresAt
	if refreshToken != "" {
		s.RefreshToken = refreshToken
	}
}

// ClearToken drops the token pair, keeping the client credentials.
func (s *Session) ClearToken() {
	s.AccessToken = ""
	s.RefreshToken = ""
	s.ExpiresAt = 0
}

// HasToken reports whether an access token and expiry are both recorded.
func (s *Session) HasToken() bool {
	return s.AccessToken != "" && s.ExpiresAt != 0
}

// Store reads and writes a [Session] at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for the given path, or the per-user default when
// path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return &Store{path: path}, nil
}

// Path returns the file path this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "spotigod", "config.toml"), nil
}

// Exists reports whether a session file is present at the store's path.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and parses the session file.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, s.path)
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := toml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	if sess.ClientID == "" || sess.ClientSecret == "" {
		return nil, fmt.Errorf("%w: session file has no client credentials", shared.ErrMissingCredentials)
	}

	return &sess, nil
}

// LoadOrInit loads the session file, or creates one from the environment on
// first run. Missing environment credentials fail fast and write nothing.
func (s *Store) LoadOrInit() (*Session, error) {
	if s.Exists() {
		return s.Load()
	}

	sess, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := s.Save(sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Save rewrites the session file in full. The file holds a client secret, so
// it is created user-readable only.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(sess); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// CreateExampleFile writes the embedded example config to path for manual editing.
func CreateExampleFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
