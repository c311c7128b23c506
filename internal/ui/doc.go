// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a short workflow for adding songs to a QQ Music playlist:
//  1. [PlaylistListView] : Browse the account's playlists
//  2. [ConfirmView] : Confirm adding the songs given on the command line
//  3. [BatchView] : Monitor per-song progress updates
//  4. [ResultView] : Display how many songs were accepted
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the PlaylistEngine, providing non-blocking status reporting during batches.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
