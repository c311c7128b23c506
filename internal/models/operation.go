package models

import (
	"fmt"
	"time"
)

// OperationKind names the API operation an [Operation] records.
type OperationKind string

const (
	OpAddSong    OperationKind = "add_song"
	OpDeleteSong OperationKind = "delete_song"
	OpSongURL    OperationKind = "song_url"
	OpAPICall    OperationKind = "api_call"
)

// Valid reports whether k is a known kind.
func (k OperationKind) Valid() bool {
	switch k {
	case OpAddSong, OpDeleteSong, OpSongURL, OpAPICall:
		return true
	}
	return false
}

// Operation is an audit record of a single API call made from the CLI.
type Operation struct {
	id           string
	kind         OperationKind
	uin          string
	dirID        int64
	playlistName string
	songID       uint64
	songMid      string
	format       string
	result       string
	success      bool
	errMsg       string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewOperation creates an unsaved operation of the given kind for account uin.
func NewOperation(kind OperationKind, uin string) *Operation {
	now := time.Now().UTC()
	return &Operation{kind: kind, uin: uin, createdAt: now, updatedAt: now}
}

// RestoreOperation rebuilds an operation from stored column values.
func RestoreOperation(
	id string, kind OperationKind, uin string,
	dirID int64, playlistName string, songID uint64, songMid, format, result string,
	success bool, errMsg string, createdAt, updatedAt time.Time,
) *Operation {
	return &Operation{
		id: id, kind: kind, uin: uin,
		dirID: dirID, playlistName: playlistName, songID: songID, songMid: songMid, format: format, result: result,
		success: success, errMsg: errMsg, createdAt: createdAt, updatedAt: updatedAt,
	}
}

func (o *Operation) ID() string           { return o.id }
func (o *Operation) Kind() OperationKind  { return o.kind }
func (o *Operation) UIN() string          { return o.uin }
func (o *Operation) DirID() int64         { return o.dirID }
func (o *Operation) PlaylistName() string { return o.playlistName }
func (o *Operation) SongID() uint64       { return o.songID }
func (o *Operation) SongMid() string      { return o.songMid }
func (o *Operation) Format() string       { return o.format }
func (o *Operation) Result() string       { return o.result }
func (o *Operation) Success() bool        { return o.success }
func (o *Operation) Error() string        { return o.errMsg }
func (o *Operation) CreatedAt() time.Time { return o.createdAt }
func (o *Operation) UpdatedAt() time.Time { return o.updatedAt }

func (o *Operation) SetID(id string)             { o.id = id }
func (o *Operation) SetUpdatedAt(t time.Time)    { o.updatedAt = t }
func (o *Operation) SetPlaylistName(name string) { o.playlistName = name }

// WithPlaylist sets the playlist and song targeted by a mutation.
func (o *Operation) WithPlaylist(dirID int64, songID uint64) *Operation {
	o.dirID, o.songID = dirID, songID
	return o
}

// WithSong sets the song mid and file format of a URL resolution.
func (o *Operation) WithSong(mid, format string) *Operation {
	o.songMid, o.format = mid, format
	return o
}

// Finish records the outcome. A non-nil err marks the operation failed regardless of success.
func (o *Operation) Finish(success bool, result string, err error) {
	o.success = success && err == nil
	o.result = result
	if err != nil {
		o.errMsg = err.Error()
	}
	o.updatedAt = time.Now().UTC()
}

// Validate checks required fields for the operation kind.
func (o *Operation) Validate() error {
	if !o.kind.Valid() {
		return fmt.Errorf("unknown operation kind %q", o.kind)
	}

	switch o.kind {
	case OpAddSong, OpDeleteSong:
		if o.dirID == 0 || o.songID == 0 {
			return fmt.Errorf("%s requires dir_id and song_id", o.kind)
		}
	case OpSongURL:
		if o.songMid == "" {
			return fmt.Errorf("%s requires song_mid", o.kind)
		}
	}
	return nil
}

// Describe returns a one-line summary for CLI output.
func (o *Operation) Describe() string {
	status := "ok"
	if !o.success {
		status = "failed"
	}

	switch o.kind {
	case OpAddSong, OpDeleteSong:
		target := fmt.Sprintf("%d", o.dirID)
		if o.playlistName != "" {
			target = fmt.Sprintf("%s (%d)", o.playlistName, o.dirID)
		}
		return fmt.Sprintf("%s song %d → playlist %s [%s]", o.kind, o.songID, target, status)
	case OpSongURL:
		return fmt.Sprintf("%s %s (%s) [%s]", o.kind, o.songMid, o.format, status)
	default:
		return fmt.Sprintf("%s [%s]", o.kind, status)
	}
}
