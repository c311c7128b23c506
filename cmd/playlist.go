package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/love-yuri/qq-music-api/internal/formatter"
	"github.com/love-yuri/qq-music-api/internal/shared"
	"github.com/love-yuri/qq-music-api/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistList lists the playlists created by the configured account.
//
// With --format the listing is exported to a file instead of printed.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	size := int(cmd.Int("size"))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	format := cmd.String("format")

	svc, err := r.service()
	if err != nil {
		return err
	}

	r.logger.Debug("listing playlists", "uin", svc.Credentials().UIN, "size", size)

	res, err := svc.GetUserPlaylists(ctx, size)
	if err != nil {
		return err
	}
	if res.Code != 0 {
		r.logger.Warn("playlist listing returned an error code", "code", res.Code, "subcode", res.Subcode, "message", res.Message)
	}

	listing := &formatter.PlaylistListing{
		HostUIN:   svc.Credentials().UIN,
		HostName:  res.Data.HostName,
		Playlists: res.Playlists(),
	}
	if res.Data.HostUIN != 0 {
		listing.HostUIN = strconv.FormatInt(res.Data.HostUIN, 10)
	}

	if format != "" {
		f, err := formatter.ParseFormat(format)
		if err != nil {
			return err
		}
		path, err := formatter.WriteExport(listing, f, cmd.String("output"))
		if err != nil {
			return err
		}
		r.logger.Info("exported playlists", "count", len(listing.Playlists), "path", path)
		return r.writePlain("✓ Exported %d playlists to %s\n", len(listing.Playlists), path)
	}

	if useJSON {
		return r.writeJSON(listing, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Playlists of %s (%d)", ownerLabel(listing), len(listing.Playlists)))
	for _, p := range listing.Playlists {
		r.writePlain("%-12d %-40s %5d songs\n", p.DirID, p.Name, p.SongCount)
	}
	return nil
}

// PlaylistAdd adds one or more songs to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	return r.mutatePlaylist(ctx, cmd, false)
}

// PlaylistRemove removes one or more songs from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	return r.mutatePlaylist(ctx, cmd, true)
}

func (r *Runner) mutatePlaylist(ctx context.Context, cmd *cli.Command, remove bool) error {
	dirID := cmd.Int64("dir-id")
	songIDs, err := parseSongIDs(cmd.StringSlice("song-id"))
	if err != nil {
		return err
	}
	if len(songIDs) == 0 {
		return fmt.Errorf("%w: --song-id", shared.ErrMissingArgument)
	}

	engine, err := r.playlistEngine()
	if err != nil {
		return err
	}

	verb := "added to"
	if remove {
		verb = "removed from"
	}

	failed := 0
	for _, songID := range songIDs {
		ok, err := engine.Mutate(ctx, remove, dirID, songID, "")
		switch {
		case err != nil:
			return err
		case !ok:
			failed++
			r.writePlain("✗ %d was not %s playlist %d\n", songID, verb, dirID)
		default:
			r.writePlain("✓ %d %s playlist %d\n", songID, verb, dirID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d songs rejected", shared.ErrAPIRequest, failed, len(songIDs))
	}
	return nil
}

// PlaylistBatch adds or removes every song given with --song-id and --file, one request at a
// time, printing progress as it goes.
func (r *Runner) PlaylistBatch(ctx context.Context, cmd *cli.Command) error {
	dirID := cmd.Int64("dir-id")

	songIDs, err := parseSongIDs(cmd.StringSlice("song-id"))
	if err != nil {
		return err
	}

	if path := cmd.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open song list: %w", err)
		}
		fromFile, err := tasks.ReadSongIDs(f)
		f.Close()
		if err != nil {
			return err
		}
		songIDs = append(songIDs, fromFile...)
	}

	if len(songIDs) == 0 {
		return fmt.Errorf("%w: provide --song-id or --file", shared.ErrMissingArgument)
	}

	engine, err := r.playlistEngine()
	if err != nil {
		return err
	}

	useJSON := cmd.Bool("json")
	progress := make(chan tasks.ProgressUpdate, 16)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if !useJSON {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := engine.Batch(ctx, progress, dirID, songIDs, tasks.BatchOpts{
		Remove:       cmd.Bool("remove"),
		RateLimit:    cmd.Float("rate"),
		PlaylistName: cmd.String("name"),
	})
	close(progress)
	wg.Wait()

	if err != nil && result == nil {
		return err
	}

	if useJSON {
		if werr := r.writeJSON(batchSummary(result), true); werr != nil {
			return werr
		}
	}
	return err
}

type batchSongJSON struct {
	SongID  uint64 `json:"song_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type batchJSON struct {
	DirID     int64           `json:"dir_id"`
	Remove    bool            `json:"remove"`
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Songs     []batchSongJSON `json:"songs"`
}

func batchSummary(result *tasks.BatchResult) batchJSON {
	out := batchJSON{
		DirID:     result.DirID,
		Remove:    result.Remove,
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Songs:     make([]batchSongJSON, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		song := batchSongJSON{SongID: res.SongID, Success: res.Success}
		if res.Error != nil {
			song.Error = res.Error.Error()
		}
		out.Songs = append(out.Songs, song)
	}
	return out
}

// parseSongIDs accepts repeated and comma separated --song-id values.
func parseSongIDs(values []string) ([]uint64, error) {
	return tasks.ReadSongIDs(strings.NewReader(strings.Join(values, "\n")))
}

func ownerLabel(listing *formatter.PlaylistListing) string {
	if listing.HostName == "" {
		return listing.HostUIN
	}
	return fmt.Sprintf("%s (%s)", listing.HostName, listing.HostUIN)
}
