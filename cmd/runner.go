package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"spotigod/internal/auth"
	"spotigod/internal/session"
	"spotigod/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	store  *session.Store
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Store  *session.Store
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		store:  opts.Store,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// SetLogger replaces the runner's logger, used to redirect logs to a file
// while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, authCommand, statusCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openSession loads the persisted session, creating it from environment
// credentials on first run, and binds the token lifecycle to it.
func (r *Runner) openSession() (*session.Session, *auth.Tokens, error) {
	sess, err := r.store.LoadOrInit()
	if err != nil {
		return nil, nil, err
	}

	return sess, auth.NewTokens(r.store, sess), nil
}

// ensureAuthenticated makes the session usable: a valid token passes
// through, an expired one is refreshed, and anything else falls back to the
// full browser flow.
func (r *Runner) ensureAuthenticated(ctx context.Context, tokens *auth.Tokens) error {
	if tokens.Valid() {
		return nil
	}

	if err := tokens.Refresh(ctx); err == nil {
		return nil
	}

	authenticator := auth.NewAuthenticator(tokens, r.logger, r.output)
	return authenticator.Authenticate(ctx)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
