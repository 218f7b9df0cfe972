package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen/internal/app/favorites"
)

var verseSave bool

var verseCmd = &cobra.Command{
	Use:   "verse",
	Short: "Show the verse of the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		verse, err := a.verses.DailyVerse(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%q\n  — %s\n", verse.Text, verse.Reference)

		favs := favorites.NewService(a.provider, a.user())
		saved, err := favs.IsSaved(cmd.Context(), verse.Reference)
		if err == nil && saved {
			fmt.Println("(already in your favorites)")
			return nil
		}
		if verseSave {
			if _, err := favs.Save(cmd.Context(), verse.Reference, verse.Text, favorites.SourceDaily); err != nil {
				return err
			}
			fmt.Println("Saved to favorites.")
		}
		return nil
	},
}

var horoscopeCmd = &cobra.Command{
	Use:   "horoscope <sign>",
	Short: "Show today's horoscope for a zodiac sign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		h, err := a.horoscopes.DailyHoroscope(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(h.Text)
		if len(h.Sources) > 0 {
			fmt.Println("\nSources:")
			for _, s := range h.Sources {
				fmt.Printf("  - %s (%s)\n", s.Title, s.URI)
			}
		}
		return nil
	},
}

func init() {
	verseCmd.Flags().BoolVar(&verseSave, "save", false, "save the verse to favorites")
}
