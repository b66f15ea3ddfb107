package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/thomasdelmas/Ecommerce-sub000/pkg/config"
	"github.com/thomasdelmas/Ecommerce-sub000/pkg/di"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "catalog.toml"

// Runner holds the dependencies shared by every command action.
type Runner struct {
	config    *config.Config
	container *di.Container
	logger    *log.Logger
	output    io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A non-nil Container is used as is and never closed by the runner; Config
// takes precedence over the --config flag.
type RunnerOpts struct {
	Config    *config.Config
	Container *di.Container
	Logger    *log.Logger
	Output    io.Writer
}

// NewRunner creates a new Runner with the provided options.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = di.NewLogger(nil, log.InfoLevel)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:    opts.Config,
		container: opts.Container,
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, configCommand, productsCommand, usersCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the configuration for one invocation. A missing file
// at the default path falls back to the built-in defaults; a missing file
// the user asked for is an error.
func (r *Runner) loadConfig(cmd *cli.Command) (*config.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	path := cmd.String("config")
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !cmd.IsSet("config") {
		r.logger.Debug("config file not found, using defaults", "path", path)
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// withContainer runs fn against the injected container or one built from
// the resolved configuration, closing the latter afterwards.
func (r *Runner) withContainer(ctx context.Context, cmd *cli.Command, fn func(*di.Container) error) error {
	if r.container != nil {
		return fn(r.container)
	}

	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return err
	}
	r.logger.SetLevel(level)

	container, err := di.NewContainer(ctx, cfg, di.WithLogger(r.logger))
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			r.logger.Warn("failed to close catalog", "err", err)
		}
	}()

	return fn(container)
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

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
