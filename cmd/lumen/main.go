package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen - your Bible study and spiritual companion",
	Long: `Lumen is a personal spiritual companion: a streaming Bible-study chat,
a prayer wall with reminders, a daily spiritual journey, and a favorites
list, persisted per user.

Without LUMEN_USER_ID set, Lumen runs in guest mode against a
device-local store. With a user id it uses the realtime remote store.

Examples:
  lumen chat                       # interactive Bible study
  lumen chat --topic anxiety       # start from a suggested topic
  lumen prayers add --title "Mom's surgery" --content "..." --remind-in 2h
  lumen verse                      # today's verse
  lumen remind                     # run the reminder listener`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(prayersCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(journeyCmd)
	rootCmd.AddCommand(verseCmd)
	rootCmd.AddCommand(horoscopeCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(accountCmd)
}
