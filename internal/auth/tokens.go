package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"spotigod/internal/session"
	"spotigod/internal/shared"
)

const (
	// AuthURL is the Spotify authorization endpoint.
	AuthURL = "https://accounts.spotify.com/authorize"
	// TokenURL is the Spotify token endpoint.
	TokenURL = "https://accounts.spotify.com/api/token"

	// expiryMargin is the safety window before the recorded expiry at which a
	// token is already treated as expired.
	expiryMargin = 60 * time.Second
)

// Scopes is the fixed scope set requested during authorization: playback
// read/modify, currently-playing read, playlist read, library read/modify.
var Scopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"playlist-read-private",
	"playlist-read-collaborative",
	"user-library-read",
	"user-library-modify",
}

// Tokens owns the access/refresh token lifecycle for one [session.Session].
//
// All mutation happens on the caller's goroutine; the session is persisted
// after every successful exchange or refresh. Refresh is lazy, attempted on
// the call path of any authorized request rather than on a background timer.
type Tokens struct {
	store  *session.Store
	sess   *session.Session
	config *oauth2.Config
	now    func() time.Time
}

// NewTokens creates the token lifecycle for a session against the Spotify
// account endpoints.
func NewTokens(store *session.Store, sess *session.Session) *Tokens {
	return newTokens(store, sess, oauth2.Endpoint{AuthURL: AuthURL, TokenURL: TokenURL})
}

func newTokens(store *session.Store, sess *session.Session, endpoint oauth2.Endpoint) *Tokens {
	config := &oauth2.Config{
		ClientID:     sess.ClientID,
		ClientSecret: sess.ClientSecret,
		RedirectURL:  sess.RedirectURI,
		Scopes:       Scopes,
		Endpoint:     endpoint,
	}

	return &Tokens{
		store:  store,
		sess:   sess,
		config: config,
		now:    time.Now,
	}
}

// Valid reports whether the stored access token exists and expires more than
// the safety margin in the future. Pure, no I/O.
func (t *Tokens) Valid() bool {
	if !t.sess.HasToken() {
		return false
	}
	return time.Unix(t.sess.ExpiresAt, 0).After(t.now().Add(expiryMargin))
}

// AuthCodeURL builds the provider authorization URL carrying the given state token.
func (t *Tokens) AuthCodeURL(state string) string {
	return t.config.AuthCodeURL(state)
}

// RedirectURI returns the registered redirect URI the callback listener must match.
func (t *Tokens) RedirectURI() string {
	return t.sess.RedirectURI
}

// ExchangeCode trades a one-time authorization code for a token pair and
// persists the session. The underlying client sends the confidential-client
// Basic authorization header built from the client credentials.
func (t *Tokens) ExchangeCode(ctx context.Context, code string) error {
	tok, err := t.config.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return fmt.Errorf("%w: exchange returned status %d: %s",
				shared.ErrAuthFailed, rerr.Response.StatusCode, string(rerr.Body))
		}
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return t.apply(tok)
}

// Refresh trades the stored refresh token for a fresh access token and
// persists the session.
//
// Fails with [shared.ErrNoRefreshToken] when none is stored; that variant is
// non-retryable and means the user must re-authenticate.
func (t *Tokens) Refresh(ctx context.Context) error {
	if t.sess.RefreshToken == "" {
		return fmt.Errorf("%w: debes autenticarte de nuevo", shared.ErrNoRefreshToken)
	}

	src := t.config.TokenSource(ctx, &oauth2.Token{RefreshToken: t.sess.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return fmt.Errorf("%w: status %d: %s",
				shared.ErrRefreshFailed, rerr.Response.StatusCode, string(rerr.Body))
		}
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	return t.apply(tok)
}

// EnsureValid refreshes the token when it is absent or inside the expiry margin.
func (t *Tokens) EnsureValid(ctx context.Context) error {
	if t.Valid() {
		return nil
	}
	return t.Refresh(ctx)
}

// AuthorizationHeader returns a Bearer header value backed by a valid token,
// refreshing first when needed.
func (t *Tokens) AuthorizationHeader(ctx context.Context) (string, error) {
	if err := t.EnsureValid(ctx); err != nil {
		return "", err
	}
	return "Bearer " + t.sess.AccessToken, nil
}

// ExpiresAt returns the recorded expiry instant, zero when no token is stored.
func (t *Tokens) ExpiresAt() time.Time {
	if t.sess.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(t.sess.ExpiresAt, 0)
}

// apply records a token response on the session and persists it.
func (t *Tokens) apply(tok *oauth2.Token) error {
	expiry := tok.Expiry
	if expiry.IsZero() {
		// Providers always send expires_in, but the session invariant
		// (token and expiry together) must hold regardless.
		expiry = t.now().Add(time.Hour)
	}

	t.sess.SetToken(tok.AccessToken, tok.RefreshToken, expiry.Unix())

	if err := t.store.Save(t.sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return nil
}
