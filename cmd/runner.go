package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/paperlift/paperlift/internal/docstore"
	"github.com/paperlift/paperlift/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer

	// Preopened handles for testing. When nil, actions open them from config.
	legacy *sql.DB
	store  *docstore.Store
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Legacy *sql.DB
	Store  *docstore.Store
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

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		legacy: opts.Legacy,
		store:  opts.Store,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, migrateCommand, inspectCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reloads the runner config from the --config flag when the file
// exists, falling back to the config the runner was built with.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}
	if _, err := os.Stat(path); err != nil {
		return r.config
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return r.config
	}
	return config
}

// openLegacy returns the legacy database handle, opening it from config when
// the runner was not built with one.
func (r *Runner) openLegacy(config *shared.Config) (*sql.DB, func(), error) {
	if r.legacy != nil {
		return r.legacy, func() {}, nil
	}
	db, err := shared.NewDatabase(config.Legacy.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}
	shared.ConfigureDatabase(db, config.Legacy.MaxOpenConns, config.Legacy.MaxIdleConns)
	return db, func() { db.Close() }, nil
}

// openStore returns the target document store, opening it from config when the
// runner was not built with one.
func (r *Runner) openStore(config *shared.Config) (*docstore.Store, func(), error) {
	if r.store != nil {
		return r.store, func() {}, nil
	}

	var store *docstore.Store
	var err error
	if config.Target.InMemory {
		store, err = docstore.OpenInMemory()
	} else {
		store, err = docstore.Open(config.Target.Dir)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrTargetUnavailable, err)
	}
	return store, func() { store.Close() }, nil
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
