package models

import (
	"errors"
	"strings"
	"testing"
)

func TestOperation(t *testing.T) {
	t.Run("NewOperation sets timestamps", func(t *testing.T) {
		op := NewOperation(OpAddSong, "42")
		if op.CreatedAt().IsZero() || !op.CreatedAt().Equal(op.UpdatedAt()) {
			t.Errorf("expected equal non-zero timestamps, got %v and %v", op.CreatedAt(), op.UpdatedAt())
		}
		if op.UIN() != "42" || op.Kind() != OpAddSong {
			t.Errorf("unexpected operation %+v", op)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			op      *Operation
			wantErr bool
		}{
			{name: "valid add", op: NewOperation(OpAddSong, "1").WithPlaylist(201, 9001)},
			{name: "add without song", op: NewOperation(OpAddSong, "1").WithPlaylist(201, 0), wantErr: true},
			{name: "delete without playlist", op: NewOperation(OpDeleteSong, "1").WithPlaylist(0, 9001), wantErr: true},
			{name: "valid url", op: NewOperation(OpSongURL, "1").WithSong("003abc", "m4a")},
			{name: "url without mid", op: NewOperation(OpSongURL, "1"), wantErr: true},
			{name: "api call", op: NewOperation(OpAPICall, "1")},
			{name: "unknown kind", op: NewOperation("rename", "1"), wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.op.Validate(); (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("Finish", func(t *testing.T) {
		op := NewOperation(OpSongURL, "1").WithSong("003abc", "m4a")
		op.Finish(true, "http://ws.stream.qqmusic.qq.com/C400003abc.m4a", nil)
		if !op.Success() || op.Error() != "" {
			t.Errorf("expected success, got %v %q", op.Success(), op.Error())
		}

		op = NewOperation(OpAddSong, "1").WithPlaylist(1, 2)
		op.Finish(true, "", errors.New("boom"))
		if op.Success() {
			t.Error("an error must mark the operation failed")
		}
		if op.Error() != "boom" {
			t.Errorf("expected error boom, got %q", op.Error())
		}
	})

	t.Run("Describe", func(t *testing.T) {
		op := NewOperation(OpAddSong, "1").WithPlaylist(201, 9001)
		op.SetPlaylistName("Road Trip")
		op.Finish(true, "", nil)

		got := op.Describe()
		if !strings.Contains(got, "Road Trip (201)") || !strings.Contains(got, "[ok]") {
			t.Errorf("unexpected description %q", got)
		}

		url := NewOperation(OpSongURL, "1").WithSong("003abc", "flac")
		if got := url.Describe(); got != "song_url 003abc (flac) [failed]" {
			t.Errorf("unexpected description %q", got)
		}
	})
}
