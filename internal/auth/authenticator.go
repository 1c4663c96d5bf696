package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"spotigod/internal/server"
	"spotigod/internal/shared"
)

// defaultTimeout bounds how long the flow waits for the browser redirect.
const defaultTimeout = 2 * time.Minute

// Authenticator drives the full authorization-code flow: state generation,
// browser hand-off, the one-shot callback listener, and the code exchange.
//
// Used once at startup (or on explicit re-auth); the interactive loop never
// runs concurrently with it.
type Authenticator struct {
	tokens      *Tokens
	logger      *log.Logger
	output      io.Writer
	timeout     time.Duration
	openBrowser func(string) error
}

// NewAuthenticator creates an Authenticator writing user-facing prompts to output.
func NewAuthenticator(tokens *Tokens, logger *log.Logger, output io.Writer) *Authenticator {
	if output == nil {
		output = os.Stdout
	}
	return &Authenticator{
		tokens:      tokens,
		logger:      logger,
		output:      output,
		timeout:     defaultTimeout,
		openBrowser: shared.OpenBrowser,
	}
}

// Authenticate runs the flow to completion. On return the session either holds
// a full token pair with a future expiry, or the error says why not.
func (a *Authenticator) Authenticate(ctx context.Context) error {
	state := shared.GenerateState()
	authURL := a.tokens.AuthCodeURL(state)

	addr, err := callbackAddr(a.tokens.RedirectURI())
	if err != nil {
		return err
	}

	handler := server.NewCallbackHandler(state, a.logger)
	router := server.NewBasicRouter()
	router.Use(server.Logging(a.logger))
	router.Handler(handler)

	// Listen before opening the browser so a bind failure surfaces instead of
	// a dead redirect.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCallbackBind, err)
	}

	httpServer := &http.Server{Handler: router}
	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("waiting for authorization callback", "addr", addr)
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("error shutting down callback listener", "error", err)
		}
	}()

	fmt.Fprintln(a.output, "🌐 Abriendo navegador para autenticación...")
	if err := a.openBrowser(authURL); err != nil {
		a.logger.Warnf("failed to open browser automatically %v", err)
		fmt.Fprintln(a.output, "⚠  No se pudo abrir el navegador automáticamente.")
		fmt.Fprintf(a.output, "📋 Copia esta URL en tu navegador:\n%s\n\n", authURL)
	}
	fmt.Fprintln(a.output, "🔄 Esperando callback de Spotify...")

	timer := time.NewTimer(a.timeout)
	defer timer.Stop()

	var result server.CallbackResult
	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return fmt.Errorf("%w: %v", shared.ErrNoCallback, err)
	case <-timer.C:
		return fmt.Errorf("%w: no authorization received after %s", shared.ErrTimeout, a.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := result.Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return a.tokens.ExchangeCode(ctx, result.Code)
}

// callbackAddr derives the listen address from the registered redirect URI.
func callbackAddr(redirectURI string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("%w: invalid redirect URI %q: %v", shared.ErrInvalidConfig, redirectURI, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: redirect URI %q has no host", shared.ErrInvalidConfig, redirectURI)
	}
	return u.Host, nil
}
