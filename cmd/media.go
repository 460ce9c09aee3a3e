package cmd

import (
	"fmt"

	"github.com/google/uuid"
	apimodels "github.com/jon4hz/playbox/internal/api/models"
	"github.com/jon4hz/playbox/internal/models"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
)

var mediaCmdFlags struct {
	Type     string
	FilterBy string
	Filter   string
	Sort     string
	Order    string
}

var mediaCmd = &cobra.Command{
	Use:   "media [playlist-id]",
	Short: "List media",
	Long:  `List all media of the library, or the media of one playlist filtered and sorted.`,
	Example: `playbox media --type video
playbox media a1000000-0000-4000-8000-000000000001 --filter-by title --filter bohemian
playbox media a1000000-0000-4000-8000-000000000001 --sort addedDate --order desc`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		ctx := cmd.Context()
		var media []models.MediumSummary
		if len(args) == 0 {
			t, err := apimodels.ToMediaType(mediaCmdFlags.Type)
			if err != nil {
				return err
			}
			if t != "" {
				media, err = s.library.Media.ByType(ctx, t)
			} else {
				media, err = s.library.Media.ListSummary(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list media: %w", err)
			}
		} else {
			playlistID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid playlist id: %w", err)
			}
			listing, err := apimodels.ToPlaylistMediaListing(apimodels.PlaylistMediaQuery{
				FilterBy: mediaCmdFlags.FilterBy,
				Filter:   mediaCmdFlags.Filter,
				Sort:     mediaCmdFlags.Sort,
				Order:    mediaCmdFlags.Order,
			})
			if err != nil {
				return err
			}
			media, err = s.library.Playlists.MediaSorted(ctx, playlistID, listing.FilterBy, listing.Filter, listing.Sort, listing.Order)
			if err != nil {
				return fmt.Errorf("failed to list playlist media: %w", err)
			}
		}

		if len(media) == 0 {
			fmt.Println("No media found.")
			return nil
		}
		for _, m := range media {
			line := fmt.Sprintf("%s  %-30s %-20s %-10s", m.ID, m.Title, m.Author, m.Type)
			if m.Duration != nil {
				line += " " + formatSeconds(*m.Duration)
			}
			if m.AddedDate != nil {
				line += ", added " + timediff.TimeDiff(*m.AddedDate)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var mediumDeleteCmd = &cobra.Command{
	Use:   "delete <medium-id>",
	Short: "Delete a medium that is not part of any playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid medium id: %w", err)
		}

		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		if err := s.library.Media.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Medium deleted.")
		return nil
	},
}

func init() {
	mediaCmd.Flags().StringVar(&mediaCmdFlags.Type, "type", "", "Only list media of this type (music, video, audiobook)")
	mediaCmd.Flags().StringVar(&mediaCmdFlags.FilterBy, "filter-by", "", "Field the filter text is matched against (title, author)")
	mediaCmd.Flags().StringVar(&mediaCmdFlags.Filter, "filter", "", "Case-insensitive text the filtered field has to contain")
	mediaCmd.Flags().StringVar(&mediaCmdFlags.Sort, "sort", "", "Sort by title, author, duration or addedDate")
	mediaCmd.Flags().StringVar(&mediaCmdFlags.Order, "order", "", "Sort order (asc, desc)")

	mediaCmd.AddCommand(mediumDeleteCmd)
	rootCmd.AddCommand(mediaCmd)
}
