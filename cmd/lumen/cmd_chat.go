package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen/internal/app/chat"
	"github.com/lumenlabs/lumen/internal/app/favorites"
	"github.com/lumenlabs/lumen/internal/app/reminders"
	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/scripture"
	"github.com/lumenlabs/lumen/internal/store"
)

var chatTopicFlag string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive Bible study with Lumen",
	Long: `Opens the streaming chat. Commands inside the session:

  /reset        clear the chat history
  /regenerate   regenerate the last response
  /save         save the cited verse of the last response to favorites
  /context      ask for the surrounding verses of the last citation
  /topics       list suggested topics
  /quit         leave`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return runChat(cmd.Context(), a)
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatTopicFlag, "topic", "", "start from a suggested topic id (see /topics)")
}

func runChat(ctx context.Context, a *app) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		cancel()
	}()

	chats := store.Open[domain.Conversation](a.provider, a.user(), domain.CollectionChats, store.Options{TimeField: "date"})
	engine := chat.NewEngine(chats, a.streamer)
	favs := favorites.NewService(a.provider, a.user())

	// Background reminder listener for the lifetime of the chat surface.
	scheduler := reminders.NewScheduler(a.notifier)
	prayerFeed := store.Open[domain.PrayerRequest](a.provider, a.user(), domain.CollectionPrayers,
		store.Options{TimeField: "date", Poll: reminders.PollInterval})
	unwatch, err := scheduler.Watch(ctx, prayerFeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: reminder listener unavailable: %v\n", err)
	} else {
		defer unwatch()
	}

	// Incremental rendering: print only the unseen tail of the newest model
	// message on each change notification.
	var renderMu sync.Mutex
	printed := map[domain.MessageID]int{}
	engine.OnChange(func(msgs []domain.Message) {
		renderMu.Lock()
		defer renderMu.Unlock()
		if len(msgs) == 0 {
			return
		}
		last := msgs[len(msgs)-1]
		if last.Role != domain.RoleModel {
			return
		}
		if n := printed[last.ID]; len(last.Text) > n {
			fmt.Print(last.Text[n:])
			printed[last.ID] = len(last.Text)
		}
	})

	engine.Load(ctx)

	if verse, err := a.verses.DailyVerse(ctx); err == nil {
		fmt.Printf("📖 Verse of the day — %s\n   %q\n\n", verse.Reference, verse.Text)
	}

	history := engine.Messages()
	fmt.Printf("[95mLumen[0m: %s\n", history[len(history)-1].Text)

	if t, ok := topicByID(chatTopicFlag); ok {
		fmt.Printf("[94mYou[0m: %s\n[95mLumen[0m: ", t.Prompt)
		engine.Send(ctx, t.Prompt)
		fmt.Println()
		printCitationHint(engine)
	} else if chatTopicFlag != "" {
		fmt.Fprintf(os.Stderr, "unknown topic %q, ignoring\n", chatTopicFlag)
	}

	scanner := bufio.NewScanner(os.Stdin)
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	for {
		fmt.Print("[94mYou[0m: ")
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			engine.SaveNow(context.Background())
			fmt.Println("\nGo in peace.")
			return nil
		case line, ok = <-inputCh:
			if !ok {
				engine.SaveNow(context.Background())
				return nil
			}
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case "/quit":
			engine.SaveNow(context.Background())
			fmt.Println("Go in peace.")
			return nil
		case "/topics":
			for _, t := range topics {
				fmt.Printf("  %-14s %s\n", t.ID, t.Label)
			}
			continue
		case "/reset":
			engine.Reset(ctx)
			msgs := engine.Messages()
			fmt.Printf("[95mLumen[0m: %s\n", msgs[len(msgs)-1].Text)
			continue
		case "/regenerate":
			fmt.Print("[95mLumen[0m: ")
			engine.Regenerate(ctx)
			fmt.Println()
			printCitationHint(engine)
			continue
		case "/save":
			saveCitation(ctx, engine, favs)
			continue
		case "/context":
			ref := lastCitation(engine)
			if ref == "" {
				fmt.Println("No Bible reference in the last response.")
				continue
			}
			fmt.Print("[95mLumen[0m: ")
			engine.Send(ctx, fmt.Sprintf("Read surrounding verses for %s", ref))
			fmt.Println()
			continue
		}

		fmt.Print("[95mLumen[0m: ")
		engine.Send(ctx, line)
		fmt.Println()
		printCitationHint(engine)
	}
}

// lastCitation returns the Bible reference cited by the newest finalized
// model message, if any.
func lastCitation(engine *chat.Engine) string {
	msgs := engine.Messages()
	if len(msgs) == 0 {
		return ""
	}
	last := msgs[len(msgs)-1]
	if last.Role != domain.RoleModel || last.IsStreaming || last.IsWelcome() {
		return ""
	}
	return scripture.FindReference(last.Text)
}

func printCitationHint(engine *chat.Engine) {
	if ref := lastCitation(engine); ref != "" {
		fmt.Printf("  (cited %s — /save to favorite, /context to read around it)\n", ref)
	}
}

func saveCitation(ctx context.Context, engine *chat.Engine, favs *favorites.Service) {
	msgs := engine.Messages()
	if len(msgs) == 0 {
		return
	}
	last := msgs[len(msgs)-1]
	ref := lastCitation(engine)
	if ref == "" {
		fmt.Println("No Bible reference in the last response.")
		return
	}
	if _, err := favs.Save(ctx, ref, last.Text, favorites.SourceChat); err != nil {
		fmt.Fprintf(os.Stderr, "Could not save verse: %v\n", err)
		return
	}
	fmt.Println("Verse saved to favorites!")
}
