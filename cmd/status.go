package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"spotigod/internal/services"
)

// Status reports whether the stored session is usable and, when it is, whose
// account it belongs to.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	sess, tokens, err := r.openSession()
	if err != nil {
		return err
	}

	if !sess.HasToken() {
		return r.writePlain("✗ No autenticado\nEjecuta 'spotigod auth' para iniciar sesión\n")
	}

	service := services.NewSpotifyService(tokens, r.logger)
	profile, err := service.UserProfile(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, cmd.Bool("pretty"))
	}

	r.writePlain("✓ Autenticado como %s (%s)\n", profile.DisplayName, profile.ID)
	r.writePlain("Plan: %s | Seguidores: %d\n", profile.Product, profile.Followers.Total)

	if tokens.Valid() {
		r.writePlain("Token válido hasta %s\n", tokens.ExpiresAt().Format(time.RFC1123))
	} else {
		r.writePlain("Token renovado durante esta consulta\n")
	}

	return nil
}
