package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen/internal/app/journey"
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Daily journey tasks and your activity log",
}

var journeyTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show today's suggested tasks",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range journey.Tasks() {
			fmt.Printf("%-12s %s (%s)\n", t.ID, t.Title, t.Duration)
			fmt.Printf("             %s\n", t.Description)
		}
	},
}

var journeyLogCmd = &cobra.Command{
	Use:   "log <task-id> <content>",
	Short: "Record a reflection for a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := journey.NewService(a.provider, a.user()).AddLog(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Reflection saved (%s).\n", id)
		return nil
	},
}

var journeyEditCmd = &cobra.Command{
	Use:   "edit <log-id> <content>",
	Short: "Rewrite a saved reflection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return journey.NewService(a.provider, a.user()).EditLog(cmd.Context(), args[0], args[1])
	},
}

var journeyRemoveCmd = &cobra.Command{
	Use:   "rm <log-id>",
	Short: "Delete a reflection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return journey.NewService(a.provider, a.user()).DeleteLog(cmd.Context(), args[0])
	},
}

var journeyHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List reflections, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		logs, err := journey.NewService(a.provider, a.user()).ListLogs(cmd.Context())
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Println("No reflections yet.")
			return nil
		}
		for _, l := range logs {
			fmt.Printf("%s  %s  [%s]\n", l.ID, l.Timestamp.Time().Format(time.DateOnly), l.TaskTitle)
			fmt.Printf("    %s\n", l.Content)
		}
		return nil
	},
}

func init() {
	journeyCmd.AddCommand(journeyTasksCmd)
	journeyCmd.AddCommand(journeyLogCmd)
	journeyCmd.AddCommand(journeyEditCmd)
	journeyCmd.AddCommand(journeyRemoveCmd)
	journeyCmd.AddCommand(journeyHistoryCmd)
}
