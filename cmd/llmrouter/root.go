package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"llmrouter/docs"
	"llmrouter/internal/common/fsutil"
	"llmrouter/internal/config"
	"llmrouter/internal/manager"
	"llmrouter/internal/router"
	"llmrouter/internal/store"
)

// app carries state shared by all subcommands once PersistentPreRunE has run.
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg config.Config
	log zerolog.Logger
	out io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{out: os.Stdout}
	root := &cobra.Command{
		Use:           "llmrouter",
		Short:         "Route chat conversations to Ollama, LM Studio, Mistral and OpenAI-compatible backends",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(root.PersistentFlags(), a)
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		a.out = cmd.OutOrStdout()
		return a.init(cmd.Flags())
	}

	root.AddCommand(
		newServeCmd(a),
		newSendCmd(a),
		newClassifyCmd(a),
		newTestConnectionCmd(a),
		newConfigCmd(a),
		newDiscoverCmd(a),
		newHistoryCmd(a),
	)
	return root
}

func addGlobalFlags(fs *pflag.FlagSet, a *app) {
	fs.StringVar(&a.configPath, "config", envStr("LLMROUTER_CONFIG", ""), "Path to config file (.yaml|.yml|.json|.toml) (defaults LLMROUTER_CONFIG)")
	fs.StringVar(&a.dbPath, "db", envStr("LLMROUTER_DB", ""), "SQLite database path (defaults LLMROUTER_DB or "+config.DefaultDBPath+")")
	fs.StringVar(&a.logLevel, "log-level", envStr("LLMROUTER_LOG_LEVEL", ""), "Log level: debug|info|warn|error (defaults LLMROUTER_LOG_LEVEL or info)")
}

// init loads the config file, applies flag overrides and builds the logger.
// Precedence: explicit flag or environment, then config file, then defaults.
func (a *app) init(fs *pflag.FlagSet) error {
	var cfg config.Config
	if a.configPath != "" {
		p, err := fsutil.ExpandHome(a.configPath)
		if err != nil {
			return err
		}
		if !fsutil.PathExists(p) {
			return fmt.Errorf("config file not found: %s", p)
		}
		if cfg, err = config.Load(p); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	applyServeOverrides(fs, &cfg)
	a.cfg = config.ApplyDefaults(cfg)

	lvl, err := zerolog.ParseLevel(strings.ToLower(a.cfg.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
	docs.SwaggerInfo.Version = version
	return nil
}

func (a *app) dispatcher() *router.Dispatcher {
	opts := []router.Option{
		router.WithLogger(a.log),
		router.WithRequestTimeout(time.Duration(a.cfg.RequestTimeoutSeconds) * time.Second),
		router.WithCompletionOnlyMarkers(a.cfg.CompletionOnlyMarkers),
	}
	if a.cfg.MaxTokens > 0 {
		opts = append(opts, router.WithMaxTokens(a.cfg.MaxTokens))
	}
	if a.cfg.Temperature != nil {
		opts = append(opts, router.WithTemperature(*a.cfg.Temperature))
	}
	return router.New(opts...)
}

// openManager opens the SQLite store and wires a Manager over it. The caller closes it.
func (a *app) openManager() (*manager.Manager, error) {
	st, err := store.Open(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	m := manager.NewWithConfig(manager.ManagerConfig{
		Store:        st,
		Dispatcher:   a.dispatcher(),
		Logger:       &a.log,
		HistoryLimit: a.cfg.HistoryLimit,
		Seed:         a.cfg.Service,
	})
	return m, nil
}
