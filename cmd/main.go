package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"spotigod/internal/session"
	"spotigod/internal/shared"
)

const credentialsGuidance = `Faltan las credenciales de Spotify.

1. Crea una aplicación en https://developer.spotify.com/dashboard
2. Registra la URI de redirección: ` + session.DefaultRedirectURI + `
3. Exporta las credenciales:

   export SPOTIFY_CLIENT_ID=tu_client_id
   export SPOTIFY_CLIENT_SECRET=tu_client_secret

También puedes ponerlas en un archivo .env en este directorio.`

func main() {
	godotenv.Load()

	logger := shared.NewLogger(nil)

	path, err := session.DefaultPath()
	if err != nil {
		logger.Fatalf("failed to resolve config path: %v", err)
	}

	store, err := session.NewStore(path)
	if err != nil {
		logger.Fatalf("failed to open session store: %v", err)
	}

	runner := NewRunner(RunnerOpts{Store: store, Logger: logger})

	app := &cli.Command{
		Name:           "spotigod",
		Usage:          "Controla Spotify desde tu terminal",
		Version:        "0.1.0",
		DefaultCommand: "run",
		Commands:       runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrMissingCredentials) {
			fmt.Fprintln(os.Stderr, credentialsGuidance)
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
