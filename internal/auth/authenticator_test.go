package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"spotigod/internal/shared"
)

// freeLoopbackPort reserves and releases a port for the callback listener.
func freeLoopbackPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestAuthenticate(t *testing.T) {
	t.Run("Full Flow", func(t *testing.T) {
		ts := tokenEndpoint(t, http.StatusOK,
			`{"access_token":"flow_access","token_type":"Bearer","expires_in":3600,"refresh_token":"flow_refresh"}`)

		port := freeLoopbackPort(t)
		store, sess := newTestStore(t)
		sess.RedirectURI = fmt.Sprintf("http://127.0.0.1:%d/callback", port)

		tokens := newTokens(store, sess, oauth2.Endpoint{
			AuthURL:  ts.URL + "/authorize",
			TokenURL: ts.URL + "/api/token",
		})

		var out bytes.Buffer
		a := NewAuthenticator(tokens, shared.NewLogger(&out), &out)
		a.timeout = 5 * time.Second

		// Stand in for the user's browser: follow the redirect back with the
		// state the authorization URL carried.
		a.openBrowser = func(authURL string) error {
			u, err := url.Parse(authURL)
			if err != nil {
				return err
			}
			state := u.Query().Get("state")
			go func() {
				resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/callback?code=the_code&state=%s", port, state))
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		}

		if err := a.Authenticate(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if sess.AccessToken != "flow_access" || sess.RefreshToken != "flow_refresh" {
			t.Errorf("expected full token pair after flow, got %+v", sess)
		}
		if sess.ExpiresAt <= time.Now().Unix() {
			t.Error("expected a future expiry after flow")
		}
	})

	t.Run("Browser Failure Is Not Fatal", func(t *testing.T) {
		ts := tokenEndpoint(t, http.StatusOK,
			`{"access_token":"flow_access","token_type":"Bearer","expires_in":3600}`)

		port := freeLoopbackPort(t)
		store, sess := newTestStore(t)
		sess.RedirectURI = fmt.Sprintf("http://127.0.0.1:%d/callback", port)

		tokens := newTokens(store, sess, oauth2.Endpoint{
			AuthURL:  ts.URL + "/authorize",
			TokenURL: ts.URL + "/api/token",
		})

		var out bytes.Buffer
		a := NewAuthenticator(tokens, shared.NewLogger(&out), &out)
		a.timeout = 5 * time.Second

		var capturedURL string
		a.openBrowser = func(authURL string) error {
			capturedURL = authURL
			return errors.New("no browser available")
		}

		// Drive the callback by hand once the URL has been printed.
		go func() {
			for capturedURL == "" {
				time.Sleep(10 * time.Millisecond)
			}
			u, _ := url.Parse(capturedURL)
			state := u.Query().Get("state")
			resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/callback?code=the_code&state=%s", port, state))
			if err == nil {
				resp.Body.Close()
			}
		}()

		if err := a.Authenticate(context.Background()); err != nil {
			t.Fatalf("expected flow to survive browser failure, got %v", err)
		}

		if !strings.Contains(out.String(), capturedURL) {
			t.Error("expected the authorization URL to be printed as fallback")
		}
	})

	t.Run("Timeout", func(t *testing.T) {
		ts := tokenEndpoint(t, http.StatusOK, `{}`)
		port := freeLoopbackPort(t)
		store, sess := newTestStore(t)
		sess.RedirectURI = fmt.Sprintf("http://127.0.0.1:%d/callback", port)

		tokens := newTokens(store, sess, oauth2.Endpoint{
			AuthURL:  ts.URL + "/authorize",
			TokenURL: ts.URL + "/api/token",
		})

		var out bytes.Buffer
		a := NewAuthenticator(tokens, shared.NewLogger(&out), &out)
		a.timeout = 50 * time.Millisecond
		a.openBrowser = func(string) error { return nil }

		if err := a.Authenticate(context.Background()); !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("Bind Failure", func(t *testing.T) {
		ts := tokenEndpoint(t, http.StatusOK, `{}`)
		store, sess := newTestStore(t)

		// Occupy the port the redirect URI names.
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("failed to occupy port: %v", err)
		}
		defer ln.Close()
		sess.RedirectURI = fmt.Sprintf("http://%s/callback", ln.Addr().String())

		tokens := newTokens(store, sess, oauth2.Endpoint{
			AuthURL:  ts.URL + "/authorize",
			TokenURL: ts.URL + "/api/token",
		})

		var out bytes.Buffer
		a := NewAuthenticator(tokens, shared.NewLogger(&out), &out)
		a.openBrowser = func(string) error { return nil }

		if err := a.Authenticate(context.Background()); !errors.Is(err, shared.ErrCallbackBind) {
			t.Errorf("expected ErrCallbackBind, got %v", err)
		}
	})
}

func TestCallbackAddr(t *testing.T) {
	addr, err := callbackAddr("http://127.0.0.1:8888/callback")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if addr != "127.0.0.1:8888" {
		t.Errorf("expected 127.0.0.1:8888, got %s", addr)
	}

	if _, err := callbackAddr("not-a-url"); err == nil {
		t.Error("expected error for redirect URI without host")
	}
}
