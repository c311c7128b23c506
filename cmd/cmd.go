// submodule cmd contains command definitions
package main

import (
	"github.com/love-yuri/qq-music-api/internal/services"
	"github.com/love-yuri/qq-music-api/internal/tasks"
	"github.com/urfave/cli/v3"
)

func dirIDFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "dir-id",
		Aliases:  []string{"d"},
		Usage:    "Playlist dirid (see 'qqm playlist list')",
		Required: true,
	}
}

func songIDFlag(required bool) cli.Flag {
	return &cli.StringSliceFlag{
		Name:     "song-id",
		Aliases:  []string{"s"},
		Usage:    "Numeric song id, repeat or separate with commas for several",
		Required: required,
	}
}

// setupCommand handles setup operations for config, database and credentials.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the history database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:  "cookie",
				Usage: "Store the y.qq.com session cookie from a browser cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringFlag{
						Name:  "uin",
						Usage: "QQ number, when the cookie does not carry one",
					},
				},
				Action: r.SetupCookie,
			},
		},
	}
}

// playlistCommand handles playlist listing and membership changes.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "QQ Music playlist operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List playlists created by the account",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "size",
						Usage: "Maximum number of playlists to return",
						Value: services.DefaultPlaylistSize,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, txt or json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Export file path (default: <uin>_playlists.<ext>)",
					},
				},
				Action: r.PlaylistList,
			},
			{
				Name:   "add",
				Usage:  "Add songs to a playlist",
				Flags:  []cli.Flag{dirIDFlag(), songIDFlag(true)},
				Action: r.PlaylistAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove songs from a playlist",
				Flags:   []cli.Flag{dirIDFlag(), songIDFlag(true)},
				Action:  r.PlaylistRemove,
			},
			{
				Name:  "batch",
				Usage: "Add or remove many songs, paced to stay under the rate limit",
				Flags: []cli.Flag{
					dirIDFlag(),
					songIDFlag(false),
					&cli.StringFlag{
						Name:  "file",
						Usage: "File with one song id per line ('#' starts a comment)",
					},
					&cli.BoolFlag{
						Name:  "remove",
						Usage: "Remove the songs instead of adding them",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second",
						Value: tasks.DefaultRateLimit,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Playlist name recorded in the history",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the batch result as JSON",
					},
				},
				Action: r.PlaylistBatch,
			},
		},
	}
}

// songCommand resolves download URLs.
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Song operations",
		Commands: []*cli.Command{
			{
				Name:  "url",
				Usage: "Resolve the download URL of a song",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "mid",
						Aliases:  []string{"m"},
						Usage:    "Song media id (songmid)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "File format: m4a, mp3-128, mp3-320, flac, ape or ogg",
						Value:   services.DefaultSongFileFormat.Name,
					},
					&cli.StringFlag{
						Name:  "download",
						Usage: "Save the file to this path",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongURL,
			},
			{
				Name:   "formats",
				Usage:  "List supported file formats",
				Action: r.SongFormats,
			},
		},
	}
}

// apiCommand sends raw payloads through the signed musics.fcg pipeline.
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct musics.fcg calls",
		Commands: []*cli.Command{
			{
				Name:  "call",
				Usage: "Sign, encrypt and send a JSON payload, prints the decrypted response",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON payload to send",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Read the payload from a file",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print the response",
					},
				},
				Action: r.APICall,
			},
		},
	}
}

// historyCommand inspects the local operation history.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Recorded playlist writes and URL lookups",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List recorded operations, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Only show add_song, delete_song, song_url or api_call",
					},
					&cli.Int64Flag{
						Name:  "dir-id",
						Usage: "Only show operations on this playlist",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded operations",
				Action: r.HistoryClear,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Pick a playlist interactively and add songs to it",
		Flags: []cli.Flag{
			songIDFlag(true),
			&cli.IntFlag{
				Name:  "size",
				Usage: "Maximum number of playlists to load",
				Value: 50,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second",
				Value: tasks.DefaultRateLimit,
			},
		},
		Action: r.TUI,
	}
}
