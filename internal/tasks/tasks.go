// package tasks implements batch playlist operations against QQ Music.
package tasks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/love-yuri/qq-music-api/internal/models"
	"github.com/love-yuri/qq-music-api/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultRateLimit is the default number of playlist writes per second in a batch.
const DefaultRateLimit = 2.0

// PlaylistWriter mutates playlist membership.
type PlaylistWriter interface {
	AddSongToPlaylist(ctx context.Context, dirID int64, songID uint64) (bool, error)
	DeleteSongFromPlaylist(ctx context.Context, dirID int64, songID uint64) (bool, error)
}

// Recorder persists finished operations.
type Recorder interface {
	Record(op *models.Operation) error
}

// SongResult is the outcome for a single song.
type SongResult struct {
	SongID  uint64
	Success bool
	Error   error
}

// BatchResult contains the outcome of a batch run.
type BatchResult struct {
	DirID     int64
	Remove    bool
	Total     int
	Succeeded int
	Failed    int
	Results   []SongResult
}

// BatchOpts contains configuration for batch runs.
type BatchOpts struct {
	Remove       bool    // Remove songs instead of adding them
	RateLimit    float64 // Requests per second (default: 2)
	PlaylistName string  // Recorded with each operation
}

// PlaylistEngine runs playlist mutations and records them.
type PlaylistEngine struct {
	writer   PlaylistWriter
	recorder Recorder
	uin      string
	logger   *log.Logger
}

// NewPlaylistEngine creates a new PlaylistEngine. recorder may be nil.
func NewPlaylistEngine(writer PlaylistWriter, recorder Recorder, uin string, logger *log.Logger) *PlaylistEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &PlaylistEngine{writer: writer, recorder: recorder, uin: uin, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Mutate adds (or, with remove, deletes) one song and records the attempt.
func (e *PlaylistEngine) Mutate(ctx context.Context, remove bool, dirID int64, songID uint64, playlistName string) (bool, error) {
	if e.writer == nil {
		return false, fmt.Errorf("%w: playlist writer not initialized", shared.ErrServiceUnavailable)
	}

	kind := models.OpAddSong
	call := e.writer.AddSongToPlaylist
	if remove {
		kind = models.OpDeleteSong
		call = e.writer.DeleteSongFromPlaylist
	}

	ok, err := call(ctx, dirID, songID)

	op := models.NewOperation(kind, e.uin).WithPlaylist(dirID, songID)
	op.SetPlaylistName(playlistName)
	op.Finish(ok, "", err)
	e.record(op)

	return ok, err
}

// Batch applies the same mutation to every song in songIDs, one request at a time.
//
// Individual failures are collected in the result. The returned error is non-nil only when
// the batch could not start or ctx was cancelled; the partial result is returned with it.
func (e *PlaylistEngine) Batch(ctx context.Context, prog chan<- ProgressUpdate, dirID int64, songIDs []uint64, opts BatchOpts) (*BatchResult, error) {
	if e.writer == nil {
		return nil, fmt.Errorf("%w: playlist writer not initialized", shared.ErrServiceUnavailable)
	}
	if dirID == 0 {
		return nil, fmt.Errorf("%w: dir id is required", shared.ErrMissingArgument)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}

	phase := phaseFor(opts.Remove)
	result := &BatchResult{
		DirID:   dirID,
		Remove:  opts.Remove,
		Total:   len(songIDs),
		Results: make([]SongResult, 0, len(songIDs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	e.sendProgress(prog, startedUpdate(phase, len(songIDs), dirID))

	for i, songID := range songIDs {
		if err := limiter.Wait(ctx); err != nil {
			e.logger.Warn("batch interrupted", "dir_id", dirID, "done", i, "total", len(songIDs), "error", err)
			return result, fmt.Errorf("batch interrupted after %d of %d songs: %w", i, len(songIDs), err)
		}

		ok, err := e.Mutate(ctx, opts.Remove, dirID, songID, opts.PlaylistName)
		res := SongResult{SongID: songID, Success: ok && err == nil, Error: err}
		result.Results = append(result.Results, res)

		if res.Success {
			result.Succeeded++
		} else {
			result.Failed++
			e.logger.Debug("song failed", "dir_id", dirID, "song_id", songID, "error", err)
		}

		e.sendProgress(prog, songUpdate(phase, i+1, len(songIDs), res))
	}

	e.sendProgress(prog, finishedUpdate(result))
	return result, nil
}

func (e *PlaylistEngine) record(op *models.Operation) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(op); err != nil {
		e.logger.Warn("failed to record operation", "kind", op.Kind(), "error", err)
	}
}

// ReadSongIDs parses song ids from r.
//
// Ids may be separated by newlines, commas or spaces. Text after '#' on a line is ignored.
func ReadSongIDs(r io.Reader) ([]uint64, error) {
	var ids []uint64

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		for _, f := range fields {
			id, err := strconv.ParseUint(f, 10, 64)
			if err != nil || id == 0 {
				return nil, fmt.Errorf("%w: line %d: bad song id %q", shared.ErrInvalidInput, line, f)
			}
			ids = append(ids, id)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read song ids: %w", err)
	}
	return ids, nil
}
