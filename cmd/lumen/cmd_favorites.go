package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen/internal/app/favorites"
)

var favoritesSearch string

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite verses",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved verses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := favorites.NewService(a.provider, a.user()).List(cmd.Context())
		if err != nil {
			return err
		}

		query := strings.ToLower(favoritesSearch)
		shown := 0
		for _, f := range list {
			if query != "" &&
				!strings.Contains(strings.ToLower(f.Text), query) &&
				!strings.Contains(strings.ToLower(f.Reference), query) {
				continue
			}
			fmt.Printf("%s  %s\n", f.ID, f.Reference)
			fmt.Printf("    %q\n", f.Text)
			shown++
		}
		if shown == 0 {
			fmt.Println("No favorite verses yet.")
		}
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a verse from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return favorites.NewService(a.provider, a.user()).Remove(cmd.Context(), args[0])
	},
}

func init() {
	favoritesListCmd.Flags().StringVar(&favoritesSearch, "search", "", "filter by text or reference")
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}
