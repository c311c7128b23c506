package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/love-yuri/qq-music-api/internal/models"
)

var _ list.Item = playlistItem{}

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d songs • dirid %d", i.playlist.SongCount, i.playlist.DirID)
	if i.playlist.ListenCount > 0 {
		desc = fmt.Sprintf("%s • %d listens", desc, i.playlist.ListenCount)
	}
	return desc
}
