package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-actionform"
	"github.com/goliatone/go-actionform/internal/logger"
	"github.com/goliatone/go-actionform/pkg/loader"
	"github.com/goliatone/go-actionform/pkg/orchestrator"
	"github.com/goliatone/go-actionform/pkg/renderers/tui"
)

const (
	envPrefix      = "actionform"
	configName     = "actionform"
	defaultTimeout = 10 * time.Second
)

// app carries the IO streams and configuration shared by every command.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	v      *viper.Viper
	logger logger.Logger

	// driver replaces the survey prompts of the prompt command when set.
	driver tui.PromptDriver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return &app{
		in:     in,
		out:    out,
		errOut: errOut,
		v:      v,
		logger: logger.Nop(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "actionform",
		Short:         "Generate and validate writeback action forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ./actionform.yaml when present)")
	flags.String("dir", ".", "directory holding JSON/YAML action definitions")
	flags.String("source", "", "single definition file path or URL, overrides --dir")
	flags.Duration("timeout", defaultTimeout, "timeout for remote definition sources")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		a.listCmd(),
		a.renderCmd(),
		a.schemaCmd(),
		a.validateCmd(),
		a.lintCmd(),
		a.promptCmd(),
	)
	return root
}

func (a *app) setup() error {
	if err := a.readConfig(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: a.v.GetString("log-level")})
	if err != nil {
		return err
	}
	a.logger = log

	if a.v.GetBool("no-color") {
		color.NoColor = true
	}
	return nil
}

func (a *app) readConfig() error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	}

	a.v.SetConfigName(configName)
	a.v.AddConfigPath(".")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// source returns the --source flag as a loader source, or nil when
// definitions come from --dir.
func (a *app) source() loader.Source {
	return parseSource(a.v.GetString("source"))
}

func parseSource(raw string) loader.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return loader.SourceFromURL(path)
	}
	return loader.SourceFromFile(path)
}

func (a *app) definitionLoader() loader.Loader {
	return actionform.NewLoader(loader.WithHTTPFallback(a.v.GetDuration("timeout")))
}

func (a *app) store() (*loader.Store, error) {
	dir := a.v.GetString("dir")
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("definitions: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("definitions: %s is not a directory", dir)
	}

	store, err := actionform.LoadStore(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	a.logger.Debugw("loaded action definitions", "dir", dir, "actions", len(store.IDs()))
	return store, nil
}

func (a *app) orchestrator(options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	opts := []orchestrator.Option{
		orchestrator.WithLoader(a.definitionLoader()),
		orchestrator.WithLogger(a.logger),
	}
	if a.source() == nil {
		store, err := a.store()
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithStore(store))
	}
	return orchestrator.New(append(opts, options...)...), nil
}

// request identifies the action named by args, reading from --source when
// it is set.
func (a *app) request(args []string) orchestrator.Request {
	req := orchestrator.Request{Source: a.source()}
	if len(args) > 0 {
		req.ActionID = args[0]
	}
	return req
}

// definitions loads every definition from --source or --dir.
func (a *app) definitions(ctx context.Context) ([]loader.Definition, error) {
	if src := a.source(); src != nil {
		return a.definitionLoader().Load(ctx, src)
	}

	store, err := a.store()
	if err != nil {
		return nil, err
	}
	ids := store.IDs()
	defs := make([]loader.Definition, 0, len(ids))
	for _, id := range ids {
		def, _ := store.Action(id)
		defs = append(defs, def)
	}
	return defs, nil
}
