// Package cmd wires the CLI commands to the session manager and the
// reservation backend.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/skyreserve/skyreserve/internal/api"
	"github.com/skyreserve/skyreserve/internal/config"
	"github.com/skyreserve/skyreserve/internal/log"
	"github.com/skyreserve/skyreserve/internal/session"
	"github.com/skyreserve/skyreserve/internal/storage"
	"github.com/skyreserve/skyreserve/internal/tui"
)

var (
	cfgFile  string
	verbose  bool
	jsonLogs bool
)

// app holds the per-invocation wiring shared by all commands.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	client   *api.Client
	manager  *session.Manager
	renderer tui.Renderer
	cleanup  func()
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "skyreserve",
	Short: "Search, book, and manage flight reservations",
	Long: `skyreserve is the terminal client for the SkyReserve reservation
platform. It keeps a signed-in session on this machine, searches
scheduled flights, and books and cancels reservations.

Sessions persist across invocations, so you only log in once. Run
'skyreserve auth login' to get started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil && current.cleanup != nil {
			current.cleanup()
		}
	},
}

// initApp loads configuration, builds the storage backend and API
// client, and restores any persisted session.
func initApp(cmd *cobra.Command) error {
	// A .env in the working directory can seed SKYRESERVE_* overrides.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := log.ParseLevel(cfg.Log.Level)
	if verbose {
		level = log.LevelDebug
	}
	logger := log.New(log.Config{Level: level, JSON: jsonLogs || cfg.Log.JSON})
	log.SetDefaultLogger(logger)

	store, cleanup, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.BaseURL, api.WithAPIPrefix(cfg.APIPrefix))
	manager := session.NewManager(store, client, logger)
	manager.SetOnForcedLogout(func() {
		fmt.Fprintln(os.Stderr, "Session expired. Please run 'skyreserve auth login'.")
	})
	manager.Restore(cmd.Context())

	current = &app{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		manager:  manager,
		renderer: tui.NewRenderer(),
		cleanup:  cleanup,
	}
	return nil
}

// openStore selects the configured session store.
func openStore(cmd *cobra.Command, cfg config.Config) (storage.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageRedis:
		store, err := storage.OpenRedisStore(cmd.Context(), cfg.RedisURL, "session")
		if err != nil {
			return nil, nil, fmt.Errorf("connect session store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		dir, err := config.Dir()
		if err != nil {
			return nil, nil, err
		}
		return storage.NewFileStore(filepath.Join(dir, "credentials.json")), func() {}, nil
	}
}

// requireLogin guards commands that need an authenticated session.
func requireLogin() error {
	if !current.manager.LoggedIn() {
		return session.NewError(session.ErrAuthMissingInput,
			"not logged in; run 'skyreserve auth login' first")
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.skyreserve/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")
}
