package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"spotigod/internal/auth"
)

// Auth runs the browser authentication flow and persists the session.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	_, tokens, err := r.openSession()
	if err != nil {
		return err
	}

	if tokens.Valid() && !cmd.Bool("force") {
		return r.writePlain("✓ Sesión válida hasta %s (usa --force para re-autenticar)\n",
			tokens.ExpiresAt().Format(time.RFC1123))
	}

	authenticator := auth.NewAuthenticator(tokens, r.logger, r.output)
	if err := authenticator.Authenticate(ctx); err != nil {
		return err
	}

	return r.writePlain("✓ Autenticación completada, sesión válida hasta %s\n",
		tokens.ExpiresAt().Format(time.RFC1123))
}
