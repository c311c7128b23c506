package main

import (
	"context"
	"fmt"
	"time"

	"github.com/love-yuri/qq-music-api/internal/models"
	"github.com/love-yuri/qq-music-api/internal/shared"
	"github.com/urfave/cli/v3"
)

type operationJSON struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	UIN          string    `json:"uin"`
	DirID        int64     `json:"dir_id,omitempty"`
	PlaylistName string    `json:"playlist_name,omitempty"`
	SongID       uint64    `json:"song_id,omitempty"`
	SongMid      string    `json:"song_mid,omitempty"`
	Format       string    `json:"format,omitempty"`
	Result       string    `json:"result,omitempty"`
	Success      bool      `json:"success"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func newOperationJSON(op *models.Operation) operationJSON {
	return operationJSON{
		ID:           op.ID(),
		Kind:         string(op.Kind()),
		UIN:          op.UIN(),
		DirID:        op.DirID(),
		PlaylistName: op.PlaylistName(),
		SongID:       op.SongID(),
		SongMid:      op.SongMid(),
		Format:       op.Format(),
		Result:       op.Result(),
		Success:      op.Success(),
		Error:        op.Error(),
		CreatedAt:    op.CreatedAt(),
	}
}

// HistoryList prints recorded operations, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	kind := models.OperationKind(cmd.String("kind"))
	if kind != "" && !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidFlag, kind)
	}

	history := r.operations()
	if history == nil {
		return fmt.Errorf("%w: history database unavailable", shared.ErrServiceUnavailable)
	}

	ops, err := history.List(map[string]any{
		"kind":   kind,
		"dir_id": cmd.Int64("dir-id"),
		"limit":  int(cmd.Int("limit")),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := make([]operationJSON, 0, len(ops))
		for _, op := range ops {
			out = append(out, newOperationJSON(op))
		}
		return r.writeJSON(out, true)
	}

	if len(ops) == 0 {
		return r.writePlain("No recorded operations\n")
	}

	for _, op := range ops {
		line := fmt.Sprintf("%s  %s", op.CreatedAt().Local().Format("2006-01-02 15:04:05"), op.Describe())
		if op.Error() != "" {
			line += ": " + op.Error()
		}
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryClear deletes every recorded operation.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	history := r.operations()
	if history == nil {
		return fmt.Errorf("%w: history database unavailable", shared.ErrServiceUnavailable)
	}

	n, err := history.Clear()
	if err != nil {
		return err
	}

	r.logger.Info("history cleared", "count", n)
	return r.writePlain("✓ Removed %d operations\n", n)
}
