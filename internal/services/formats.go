package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/love-yuri/qq-music-api/internal/shared"
)

// SongFileFormat selects the file QQ Music serves for a song.
//
// The requested filename is Prefix + mid + "." + Ext.
type SongFileFormat struct {
	Name   string
	Prefix string
	Ext    string
}

var (
	FormatM4A    = SongFileFormat{Name: "m4a", Prefix: "C400", Ext: "m4a"}
	FormatMP3128 = SongFileFormat{Name: "mp3-128", Prefix: "M500", Ext: "mp3"}
	FormatMP3320 = SongFileFormat{Name: "mp3-320", Prefix: "M800", Ext: "mp3"}
	FormatFLAC   = SongFileFormat{Name: "flac", Prefix: "F000", Ext: "flac"}
	FormatAPE    = SongFileFormat{Name: "ape", Prefix: "A000", Ext: "ape"}
	FormatOGG    = SongFileFormat{Name: "ogg", Prefix: "O600", Ext: "ogg"}
)

// DefaultSongFileFormat is used when no format is requested.
var DefaultSongFileFormat = FormatM4A

var songFileFormats = []SongFileFormat{FormatM4A, FormatMP3128, FormatMP3320, FormatFLAC, FormatAPE, FormatOGG}

// SongFileFormats returns the known formats in preference order.
func SongFileFormats() []SongFileFormat {
	return slices.Clone(songFileFormats)
}

// ParseSongFileFormat looks a format up by name. An empty name yields [DefaultSongFileFormat].
func ParseSongFileFormat(name string) (SongFileFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultSongFileFormat, nil
	}

	for _, f := range songFileFormats {
		if f.Name == name {
			return f, nil
		}
	}

	names := make([]string, len(songFileFormats))
	for i, f := range songFileFormats {
		names[i] = f.Name
	}
	return SongFileFormat{}, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, name, strings.Join(names, ", "))
}

// Filename renders the file name requested for song mid.
func (f SongFileFormat) Filename(mid string) string {
	return f.Prefix + mid + "." + f.Ext
}

func (f SongFileFormat) String() string {
	return f.Name
}
