package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/rankr/internal/library"
	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/repositories"
	"github.com/desertthunder/rankr/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The config is read in [Runner.Before] and the store is opened on first use, so commands
// like "setup config" work before either exists.
type Runner struct {
	config      *shared.Config
	configPath  string
	configFixed bool
	store       models.Store
	db          *sql.DB
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      models.Store
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// A Config given here is used as-is and the --config flag is ignored.
func NewRunner(opts RunnerOpts) *Runner {
	fixed := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		configFixed: fixed,
		store:       opts.Store,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, boardsCommand, showCommand, addCommand, removeCommand, moveCommand, exportCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the file named by --config. A missing file means defaults.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); cmd.IsSet("config") || r.configPath == "" {
		r.configPath = path
	}
	if r.configFixed {
		return ctx, nil
	}

	config, err := shared.LoadConfig(r.configPath)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		config = shared.DefaultConfig()
	case err != nil:
		return ctx, err
	}

	r.config = config
	shared.SetLogLevel(r.logger, config.LogLevel())
	return ctx, nil
}

// After releases the database connection, if one was opened, along with the store using it.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db, r.store = nil, nil
	return err
}

// SetLogger replaces the runner's logger, keeping the configured level.
func (r *Runner) SetLogger(l *log.Logger) {
	shared.SetLogLevel(l, r.config.LogLevel())
	r.logger = l
}

// openStore returns the configured backend, opening it on first use.
func (r *Runner) openStore() (models.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	switch r.config.Storage.Backend {
	case shared.BackendSQLite:
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrPersistence, err)
		}
		r.db = db
		r.store = repositories.NewSQLiteStore(db)
		r.logger.Debug("using sqlite store", "path", r.config.Database.Path)
	default:
		fs, err := repositories.NewFileStore(r.config.Storage.Dir, r.config.Storage.Manifest)
		if err != nil {
			return nil, err
		}
		r.store = fs
		r.logger.Debug("using file store", "dir", fs.Dir())
	}
	return r.store, nil
}

func (r *Runner) openLibrary() (*library.Library, error) {
	store, err := r.openStore()
	if err != nil {
		return nil, err
	}
	return library.New(store, r.logger)
}

// openBoard opens the library with the named board current.
func (r *Runner) openBoard(name string) (*library.Library, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: board name", shared.ErrMissingArgument)
	}

	lib, err := r.openLibrary()
	if err != nil {
		return nil, err
	}
	if err := lib.OpenByName(name); err != nil {
		return nil, err
	}
	return lib, nil
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

func (r *Runner) writePlainHeader(title string) error {
	return r.writePlain("═══════════════════════════════════════\n%v\n═══════════════════════════════════════\n", title)
}
