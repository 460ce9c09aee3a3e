package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/playbox/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Playbox API server",
	Long:  `Start the JSON API server that exposes playlists and media of the library.`,
	Example: `playbox serve --config config.yml
playbox serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s, err := openStore(ctx, false)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer s.Close() //nolint:errcheck

	server, err := api.New(s.cfg, s.library)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	log.Info("playbox started successfully", "database", s.cfg.Database.Path())
	if err := server.Run(ctx); err != nil {
		log.Error("API server error", "error", err)
		return
	}
	log.Info("shut down gracefully")
}
