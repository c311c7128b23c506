package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/love-yuri/qq-music-api/internal/models"
	"github.com/love-yuri/qq-music-api/internal/services"
	"github.com/love-yuri/qq-music-api/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongURL resolves the download URL of a song and optionally saves the file.
//
// An unavailable song is reported but is only an error when --download is set.
func (r *Runner) SongURL(ctx context.Context, cmd *cli.Command) error {
	mid := cmd.String("mid")
	download := cmd.String("download")

	format, err := services.ParseSongFileFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	svc, err := r.service()
	if err != nil {
		return err
	}

	url, err := svc.GetSongDownloadURL(ctx, mid, format)

	op := models.NewOperation(models.OpSongURL, svc.Credentials().UIN).WithSong(mid, format.Name)
	op.Finish(url != "", url, err)
	r.record(op)

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.SongURL{Mid: mid, Format: format.Name, URL: url}, false)
	}

	if url == "" {
		if download != "" {
			return fmt.Errorf("%w: %s (%s)", shared.ErrSongNotFound, mid, format.Name)
		}
		return r.writePlain("✗ No %s file available for %s\n", format.Name, mid)
	}

	if download == "" {
		return r.writePlain("%s\n", url)
	}

	if isDir(download) {
		download = filepath.Join(download, format.Filename(mid))
	}

	f, err := os.Create(download)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", download, err)
	}
	defer f.Close()

	n, err := svc.Download(ctx, url, f)
	if err != nil {
		os.Remove(download)
		return err
	}

	r.logger.Info("downloaded song", "mid", mid, "format", format.Name, "bytes", n, "path", download)
	return r.writePlain("✓ Saved %s (%d bytes)\n", download, n)
}

// SongFormats prints the supported file formats.
func (r *Runner) SongFormats(ctx context.Context, cmd *cli.Command) error {
	for _, f := range services.SongFileFormats() {
		marker := " "
		if f == services.DefaultSongFileFormat {
			marker = "*"
		}
		if err := r.writePlain("%s %-8s %s\n", marker, f.Name, f.Filename("<mid>")); err != nil {
			return err
		}
	}
	return nil
}

// record stores op in the history, if available.
func (r *Runner) record(op *models.Operation) {
	history := r.operations()
	if history == nil {
		return
	}
	if err := history.Record(op); err != nil {
		r.logger.Warn("failed to record operation", "kind", op.Kind(), "error", err)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
