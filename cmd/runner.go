package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/love-yuri/qq-music-api/internal/helper"
	"github.com/love-yuri/qq-music-api/internal/repositories"
	"github.com/love-yuri/qq-music-api/internal/services"
	"github.com/love-yuri/qq-music-api/internal/shared"
	"github.com/love-yuri/qq-music-api/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The QQ Music service, the history store and the playlist engine are created on first use.
type Runner struct {
	config     *shared.Config
	configPath string
	qq         *services.QQMusicService
	history    *repositories.OperationRepository
	db         *sql.DB
	engine     *tasks.PlaylistEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	QQMusic    *services.QQMusicService
	History    *repositories.OperationRepository
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		qq:         opts.QQMusic,
		history:    opts.History,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, playlistCommand, songCommand, apiCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before runs ahead of every command: it applies --verbose, loads --config when the file
// exists and overlays QQMUSIC_* environment variables.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if cmd.IsSet("config") || r.configPath == "" {
		r.configPath = cmd.String("config")
	}

	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, err
			}
			r.config = config
			r.logger.Debug("loaded config", "path", r.configPath)
		} else {
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		}
	}

	r.config.ApplyEnv()
	return ctx, nil
}

// SetLogger replaces the logger used by the runner and anything it creates afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the history database if it was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) credentials() services.Credentials {
	return services.Credentials{
		UIN:    r.config.Credentials.QQ.UIN,
		Cookie: r.config.Credentials.QQ.Cookie,
	}
}

// service returns the QQ Music client, building it from config on first use.
//
// A missing helper command is not an error here: listing playlists works without it and the
// musics.fcg operations report the misconfiguration themselves.
func (r *Runner) service() (*services.QQMusicService, error) {
	if r.qq != nil {
		return r.qq, nil
	}

	timeout, err := r.config.HTTP.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	client := r.httpClient
	if timeout > 0 {
		client = &http.Client{Transport: r.httpClient.Transport, Timeout: timeout}
	}

	opts := services.QQMusicOpts{
		Credentials: r.credentials(),
		HTTPClient:  client,
		Logger:      r.logger,
		UserAgent:   r.config.HTTP.UserAgent,
	}

	proc, err := helper.FromConfig(r.config.Helper, r.logger)
	switch {
	case err == nil:
		opts.Signer = proc
		opts.Cipher = proc
	case errors.Is(err, shared.ErrInvalidConfig):
		r.logger.Debug("helper not configured", "error", err)
	default:
		return nil, err
	}

	r.qq = services.NewQQMusicService(opts)
	return r.qq, nil
}

// operations returns the history store, opening the database on first use.
//
// History is best effort: when the database cannot be opened the command still runs and
// nil is returned.
func (r *Runner) operations() *repositories.OperationRepository {
	if r.history != nil {
		return r.history
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		r.logger.Warn("history disabled", "path", r.config.Database.Path, "error", err)
		return nil
	}

	r.db = db
	r.history = repositories.NewOperationRepository(db)
	return r.history
}

// playlistEngine returns the engine that performs and records playlist writes.
func (r *Runner) playlistEngine() (*tasks.PlaylistEngine, error) {
	if r.engine != nil {
		return r.engine, nil
	}

	svc, err := r.service()
	if err != nil {
		return nil, err
	}

	var recorder tasks.Recorder
	if history := r.operations(); history != nil {
		recorder = history
	}

	r.engine = tasks.NewPlaylistEngine(svc, recorder, svc.Credentials().UIN, r.logger)
	return r.engine, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
