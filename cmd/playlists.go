package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	apimodels "github.com/jon4hz/playbox/internal/api/models"
	"github.com/jon4hz/playbox/internal/models"
	"github.com/spf13/cobra"
)

var playlistsCmdFlags struct {
	Type  string
	Name  string
	Sort  string
	Order string
}

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List playlists",
	Long:  `List playlists with their media count and total duration, optionally filtered by type or name prefix and sorted.`,
	Example: `playbox playlists --type music
playbox playlists --name rock
playbox playlists --sort totalDuration --order desc`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		listing, err := apimodels.ToPlaylistListing(apimodels.PlaylistQuery{
			Type:  playlistsCmdFlags.Type,
			Name:  playlistsCmdFlags.Name,
			Sort:  playlistsCmdFlags.Sort,
			Order: playlistsCmdFlags.Order,
		})
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		ctx := cmd.Context()
		var playlists []models.PlaylistSummary
		if listing.Name != "" {
			playlists, err = s.library.Playlists.ByName(ctx, listing.Name)
		} else {
			playlists, err = s.library.Playlists.Sorted(ctx, listing.Sort, listing.Order, listing.Type)
		}
		if err != nil {
			return fmt.Errorf("failed to list playlists: %w", err)
		}

		if len(playlists) == 0 {
			fmt.Println("No playlists found.")
			return nil
		}
		for _, p := range playlists {
			fmt.Printf("%s  %-30s %-10s %s items, %s\n",
				p.ID, p.Title, p.Type, humanize.Comma(int64(p.MediaCount)), formatSeconds(p.TotalDuration))
		}
		return nil
	},
}

var playlistCreateCmdFlags struct {
	Title       string
	Description string
	Type        string
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a playlist",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := apimodels.ToMediaType(playlistCreateCmdFlags.Type)
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		saved, err := s.library.Playlists.Save(cmd.Context(), models.PlaylistDetail{
			Title:       playlistCreateCmdFlags.Title,
			Description: playlistCreateCmdFlags.Description,
			Type:        t,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created playlist %s (%s)\n", saved.Title, saved.ID)
		return nil
	},
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <playlist-id>",
	Short: "Delete a playlist and its memberships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid playlist id: %w", err)
		}

		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		if err := s.library.Playlists.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Playlist deleted.")
		return nil
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <medium-id>",
	Short: "Add a medium to a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		playlistID, mediumID, err := parseIDPair(args)
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		added, err := s.library.Playlists.AddMedium(cmd.Context(), playlistID, mediumID)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s to the playlist.\n", added.Title)
		return nil
	},
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-id> <medium-id>",
	Short: "Remove a medium from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		playlistID, mediumID, err := parseIDPair(args)
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		if err := s.library.Playlists.RemoveMedium(cmd.Context(), playlistID, mediumID); err != nil {
			return err
		}
		fmt.Println("Medium removed from the playlist.")
		return nil
	},
}

func init() {
	playlistsCmd.Flags().StringVar(&playlistsCmdFlags.Type, "type", "", "Only list playlists of this type (music, video, audiobook)")
	playlistsCmd.Flags().StringVar(&playlistsCmdFlags.Name, "name", "", "Only list playlists whose title starts with this prefix")
	playlistsCmd.Flags().StringVar(&playlistsCmdFlags.Sort, "sort", "", "Sort by title, mediaCount or totalDuration")
	playlistsCmd.Flags().StringVar(&playlistsCmdFlags.Order, "order", "", "Sort order (asc, desc)")

	playlistCreateCmd.Flags().StringVar(&playlistCreateCmdFlags.Title, "title", "", "Title of the playlist")
	playlistCreateCmd.Flags().StringVar(&playlistCreateCmdFlags.Description, "description", "", "Description of the playlist")
	playlistCreateCmd.Flags().StringVar(&playlistCreateCmdFlags.Type, "type", "", "Type of the playlist (music, video, audiobook)")
	_ = playlistCreateCmd.MarkFlagRequired("title")
	_ = playlistCreateCmd.MarkFlagRequired("type")

	playlistsCmd.AddCommand(playlistCreateCmd, playlistDeleteCmd, playlistAddCmd, playlistRemoveCmd)
	rootCmd.AddCommand(playlistsCmd)
}

func parseIDPair(args []string) (uuid.UUID, uuid.UUID, error) {
	playlistID, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid playlist id: %w", err)
	}
	mediumID, err := uuid.Parse(args[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid medium id: %w", err)
	}
	return playlistID, mediumID, nil
}
