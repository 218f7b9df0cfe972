package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen/internal/app/reminders"
	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/store"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the prayer reminder listener in the foreground",
	Long: `Watches your prayer requests and rings a notification when a
reminder comes due. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		prayers := store.Open[domain.PrayerRequest](a.provider, a.user(), domain.CollectionPrayers, store.Options{
			TimeField: "date",
			Poll:      reminders.PollInterval,
		})

		sched := reminders.NewScheduler(a.notifier)
		unwatch, err := sched.Watch(ctx, prayers)
		if err != nil {
			return err
		}
		defer unwatch()

		fmt.Println("Watching prayer reminders. Press Ctrl-C to stop.")
		<-ctx.Done()
		fmt.Println("\nStopped.")
		return nil
	},
}
