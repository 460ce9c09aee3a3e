package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
	Long:  `Display the number of playlists and media per type and the total playing time of the library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		overview, err := s.library.Overview(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get library stats: %w", err)
		}

		fmt.Println("Library Statistics:")
		fmt.Printf("Playlists: %s\n", humanize.Comma(int64(overview.Playlists)))
		fmt.Printf("Media: %s\n", humanize.Comma(int64(overview.Media)))
		fmt.Printf("Memberships: %s\n", humanize.Comma(int64(overview.Memberships)))
		fmt.Printf("Total Duration: %s\n", formatSeconds(overview.TotalDuration))

		fmt.Println("\nBy Type:")
		for _, t := range database.MediaTypes {
			fmt.Printf("  %-10s playlists: %s, media: %s\n", t,
				humanize.Comma(int64(overview.PlaylistsByType[t])),
				humanize.Comma(int64(overview.MediaByType[t])))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func formatSeconds(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}
