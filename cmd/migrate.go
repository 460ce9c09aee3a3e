package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Run database migrations to set up or update the database schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		fmt.Println("Database migrations completed successfully!")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty database with demo data",
	Long:  `Fill an empty database with a demo set of playlists and media. A database that already holds data is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer s.Close() //nolint: errcheck

		fmt.Println("Database seeded successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
