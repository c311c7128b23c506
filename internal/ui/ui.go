package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/love-yuri/qq-music-api/internal/models"
	"github.com/love-yuri/qq-music-api/internal/services"
	"github.com/love-yuri/qq-music-api/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	ConfirmView
	BatchView
	ResultView
)

// PlaylistSource lists the account's playlists.
type PlaylistSource interface {
	GetUserPlaylists(ctx context.Context, size int) (services.UserPlaylistsResult, error)
}

// Options configures a [Model].
type Options struct {
	SongIDs   []uint64 // songs offered for the selected playlist
	Size      int      // number of playlists to request
	RateLimit float64  // batch requests per second
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	source       PlaylistSource
	engine       *tasks.PlaylistEngine
	opts         Options
	width        int
	height       int
	playlistList list.Model
	playlists    []models.Playlist
	selected     *models.Playlist
	progressChan chan tasks.ProgressUpdate
	done         chan Msg
	progress     tasks.ProgressUpdate
	result       *tasks.BatchResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, source PlaylistSource, engine *tasks.PlaylistEngine, opts Options) *Model {
	return &Model{
		ctx:          ctx,
		view:         PlaylistListView,
		source:       source,
		engine:       engine,
		opts:         opts,
		playlistList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init initializes the TUI by fetching the account's playlists.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(max(msg.Width-4, 0), max(msg.Height-8, 0))
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case BatchView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPlaylistsFetched:
		data := msg.data.(playlistsFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.playlists = data.playlists
		items := make([]list.Item, len(data.playlists))
		for i, pl := range data.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList.Title = "QQ Music Playlists"
		return m, m.playlistList.SetItems(items)

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgBatchComplete:
		data := msg.data.(batchComplete)
		m.result = data.result
		m.err = data.err
		m.progressChan, m.done = nil, nil
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.failed.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case ConfirmView:
		return m.renderConfirm()
	case BatchView:
		return m.renderBatch()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil || (key.Matches(msg, m.keys.quit) && m.playlistList.FilterState() != list.Filtering) {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.choose) && m.playlistList.FilterState() != list.Filtering {
		if pl, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			selected := pl.playlist
			m.selected = &selected
			m.view = ConfirmView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel):
		m.view = PlaylistListView
		m.selected = nil
		return m, nil
	case key.Matches(msg, m.keys.confirm):
		if len(m.opts.SongIDs) == 0 {
			return m, nil
		}
		m.view = BatchView
		return m, m.startBatch()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.view = PlaylistListView
		m.selected = nil
		m.result = nil
		m.err = nil
		m.progress = tasks.ProgressUpdate{}
		return m, m.fetchPlaylists()
	}
	return m, nil
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		result, err := m.source.GetUserPlaylists(m.ctx, m.opts.Size)
		if err != nil {
			return playlistsFetchedMsg(nil, err)
		}
		return playlistsFetchedMsg(result.Playlists(), nil)
	}
}

func (m *Model) startBatch() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan Msg, 1)
	m.progressChan, m.done = progress, done

	dirID, name := m.selected.DirID, m.selected.Name
	songs := append([]uint64(nil), m.opts.SongIDs...)

	go func() {
		result, err := m.engine.Batch(m.ctx, progress, dirID, songs, tasks.BatchOpts{
			RateLimit:    m.opts.RateLimit,
			PlaylistName: name,
		})
		done <- batchCompleteMsg(result, err)
		close(progress)
	}()

	return m.waitForProgress()
}

// waitForProgress yields the next progress update, or the completion message once the
// progress channel is closed.
func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	return func() tea.Msg {
		if progress == nil {
			return nil
		}
		if update, ok := <-progress; ok {
			return progressUpdateMsg(update)
		}
		return <-done
	}
}

func (m *Model) helpView() string {
	return styles.muted.Render(m.help.ShortHelpView(m.keys.forView(m.view)))
}

func (m *Model) renderPlaylistList() string {
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), m.helpView())
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Add %d song(s) to '%s'?", len(m.opts.SongIDs), m.selected.Name))

	ids := make([]string, len(m.opts.SongIDs))
	for i, id := range m.opts.SongIDs {
		ids[i] = fmt.Sprint(id)
	}
	info := fmt.Sprintf("\nPlaylist: %s (dirid %d, %d songs)\nSongs: %s\n", m.selected.Name, m.selected.DirID, m.selected.SongCount, strings.Join(ids, ", "))
	if len(ids) == 0 {
		info += styles.warn.Render("\nNo songs given; pass --song-id to add songs.") + "\n"
	}

	return fmt.Sprintf("%s\n%s\n%s", title, info, m.helpView())
}

func (m *Model) renderBatch() string {
	title := styles.title.Render(fmt.Sprintf("Adding songs to '%s'", m.selected.Name))
	phase := fmt.Sprintf("Progress (%d/%d)", m.progress.Step, m.progress.Total)
	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	helpView := m.helpView()

	if m.result == nil {
		return styles.failed.Render(fmt.Sprintf("Batch failed: %v", m.err)) + "\n\n" + helpView
	}

	title := styles.ok.Render("✓ Done")
	if m.result.Failed > 0 || m.err != nil {
		title = styles.warn.Render("Finished with failures")
	}
	info := fmt.Sprintf("\nPlaylist: %s\nAccepted: %d/%d", m.selected.Name, m.result.Succeeded, m.result.Total)

	var failed string
	for _, res := range m.result.Results {
		if !res.Success {
			failed += "\n  " + songStatus(res)
		}
	}
	if m.err != nil {
		failed += "\n" + styles.failed.Render(m.err.Error())
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
