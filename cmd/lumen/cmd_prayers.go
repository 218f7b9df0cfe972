package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen/internal/app/prayers"
	"github.com/lumenlabs/lumen/internal/domain"
)

var prayersCmd = &cobra.Command{
	Use:   "prayers",
	Short: "Manage the prayer wall",
}

var prayersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prayer requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := prayers.NewService(a.provider, a.user()).List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("The prayer wall is empty.")
			return nil
		}
		for _, p := range list {
			status := " "
			if p.IsAnswered {
				status = "✓"
			}
			fmt.Printf("[%s] %s  %s\n", status, p.ID, p.Title)
			fmt.Printf("      %s\n", p.Content)
			if p.ReminderTime != 0 {
				fmt.Printf("      reminder: %s\n", p.ReminderTime.Time().Format(time.RFC1123))
			}
		}
		return nil
	},
}

var (
	prayerTitle    string
	prayerContent  string
	prayerDesc     string
	prayerRemindIn time.Duration
	prayerWithAI   bool
)

var prayersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a prayer request",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		in := prayers.AddInput{
			Title:       prayerTitle,
			Content:     prayerContent,
			Description: prayerDesc,
		}
		if prayerRemindIn > 0 {
			in.ReminderTime = domain.MillisAt(time.Now().Add(prayerRemindIn))
		}

		id, err := prayers.NewService(a.provider, a.user()).Add(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Printf("Prayer added (%s).\n", id)

		if prayerWithAI {
			prompt := prayers.PrayWithAIPrompt(prayerTitle, prayerContent, prayerDesc)
			fmt.Print("[95mLumen[0m: ")
			if err := a.streamer.StreamReply(cmd.Context(), nil, prompt, func(chunk string) error {
				fmt.Print(chunk)
				return nil
			}); err != nil {
				fmt.Println(domain.ApologyText)
				return nil
			}
			fmt.Println()
		}
		return nil
	},
}

var prayersAnsweredCmd = &cobra.Command{
	Use:   "answered <id>",
	Short: "Toggle a request's answered state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		svc := prayers.NewService(a.provider, a.user())
		list, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range list {
			if p.ID == args[0] {
				return svc.ToggleAnswered(cmd.Context(), p.ID, p.IsAnswered)
			}
		}
		fmt.Println("No such prayer request.")
		return nil
	},
}

var prayersRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a prayer request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return prayers.NewService(a.provider, a.user()).Delete(cmd.Context(), args[0])
	},
}

func init() {
	prayersAddCmd.Flags().StringVar(&prayerTitle, "title", "", "request title (required)")
	prayersAddCmd.Flags().StringVar(&prayerContent, "content", "", "request details (required)")
	prayersAddCmd.Flags().StringVar(&prayerDesc, "description", "", "additional context")
	prayersAddCmd.Flags().DurationVar(&prayerRemindIn, "remind-in", 0, "set a reminder this far in the future (e.g. 2h30m)")
	prayersAddCmd.Flags().BoolVar(&prayerWithAI, "pray", false, "ask Lumen to lead a personalized prayer now")

	prayersCmd.AddCommand(prayersListCmd)
	prayersCmd.AddCommand(prayersAddCmd)
	prayersCmd.AddCommand(prayersAnsweredCmd)
	prayersCmd.AddCommand(prayersRemoveCmd)
}
