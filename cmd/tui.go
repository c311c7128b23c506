package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/love-yuri/qq-music-api/internal/shared"
	"github.com/love-yuri/qq-music-api/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI that adds --song-id songs to a chosen playlist.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	songIDs, err := parseSongIDs(cmd.StringSlice("song-id"))
	if err != nil {
		return err
	}
	if len(songIDs) == 0 {
		return fmt.Errorf("%w: --song-id", shared.ErrMissingArgument)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/qqm-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	svc, err := r.service()
	if err != nil {
		return err
	}
	engine, err := r.playlistEngine()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, svc, engine, ui.Options{
		SongIDs:   songIDs,
		Size:      int(cmd.Int("size")),
		RateLimit: cmd.Float("rate"),
	})
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
