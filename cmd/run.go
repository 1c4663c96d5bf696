package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"spotigod/internal/services"
	"spotigod/internal/shared"
	"spotigod/internal/ui"
)

// Run authenticates if needed and hands the terminal to the player.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	_, tokens, err := r.openSession()
	if err != nil {
		return err
	}

	if err := r.ensureAuthenticated(ctx, tokens); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotigod-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	service := services.NewSpotifyService(tokens, fileLogger)
	model := ui.NewModel(ctx, service, fileLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
