package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/jon4hz/playbox/internal/config"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/jon4hz/playbox/internal/facade"
	"github.com/jon4hz/playbox/internal/repository"
	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	LogFile    string
	ConfigFile string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.playbox, /etc/playbox)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

var rootCmd = &cobra.Command{
	Use:   "playbox",
	Short: "Playbox organizes music, videos and audio books into playlists",
	Long:  `Playbox keeps a personal library of music, videos and audio books in a local store and lets you organize, search and sort them in playlists.`,
	Example: `playbox --config config.yml
  playbox serve -c /path/to/config.yml --log-level debug
  playbox playlists --sort mediaCount --order desc`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		setLogLevel(rootCmdPersistentFlags.LogLevel)
		logToFile()
	},
	Run: startServer,
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "", "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func logToFile() {
	if rootCmdPersistentFlags.LogFile == "" {
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}

	// Create a multi-writer that writes to both console and file
	multiWriter := io.MultiWriter(os.Stderr, file)
	log.SetOutput(multiWriter)
	log.Info("logging to both console and file", "file", rootCmdPersistentFlags.LogFile)
}

// store bundles everything a command needs to talk to the library.
type store struct {
	cfg     *config.Config
	client  *database.Client
	library *facade.Library
}

func (s *store) Close() error {
	return s.client.Close()
}

// openStore loads the configuration and opens the store. seed forces the demo data set.
func openStore(ctx context.Context, seed bool) (*store, error) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if seed {
		cfg.Database.Seed = true
	}

	client, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	observer := facade.ObserverFunc(func(e facade.Event) {
		log.Info("library changed", "aggregate", e.Aggregate, "action", e.Action, "id", e.ID)
	})
	return &store{
		cfg:     cfg,
		client:  client,
		library: facade.NewLibrary(repository.NewFactory(client.DB()), facade.WithObserver(observer)),
	}, nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd)
}
