package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"spotigod/internal/session"
)

// ConfigInit writes an example configuration file for manual credential setup.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if path == "" {
		path = "config.example.toml"
	}

	if err := session.CreateExampleFile(path); err != nil {
		return err
	}

	return r.writePlain("✓ Archivo de ejemplo creado en %s\n", path)
}

// ConfigPath prints where the session file lives.
func (r *Runner) ConfigPath(ctx context.Context, cmd *cli.Command) error {
	return r.writePlain("%s\n", r.store.Path())
}
