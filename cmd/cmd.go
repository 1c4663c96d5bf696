// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// runCommand launches the interactive player, the default command.
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"tui", "player"},
		Usage:   "Launch the interactive player",
		Action:  r.Run,
	}
}

// authCommand forces a fresh browser authentication flow.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Re-authenticate even if the stored session is still valid",
			},
		},
		Action: r.Auth,
	}
}

// statusCommand reports session and account state.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show session and account status",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Status,
	}
}

// configCommand handles configuration file operations.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the example file",
						Value:   "config.example.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "path",
				Usage:  "Print the session file location",
				Action: r.ConfigPath,
			},
		},
	}
}
