package main

import (
	"context"
	"errors"
	"os"

	"github.com/love-yuri/qq-music-api/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		ConfigPath: "config.toml",
		Logger:     logger,
	})
	app := newApp(runner)

	err := app.Run(context.Background(), os.Args)
	if cerr := runner.Close(); cerr != nil {
		logger.Warn("failed to close database", "error", cerr)
	}

	if err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrMissingCredentials):
			logger.Error("missing credentials, run 'qqm setup cookie' or set "+shared.EnvUIN+"/"+shared.EnvCookie, "error", err)
			os.Exit(2)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "qqm",
		Usage:   "Manage QQ Music playlists and resolve song download URLs",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}
