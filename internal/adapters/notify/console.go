// Package notify is the notification surface. Delivery is fire-and-forget
// and gated on a permission granted once per session start; without the
// grant, notifications are silently dropped.
package notify

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/observability"
)

// Console prints notifications to the terminal with a bell.
type Console struct {
	granted bool
	log     zerolog.Logger
}

func NewConsole(granted bool) *Console {
	log := observability.WithComponent("notify")
	if !granted {
		log.Info().Msg("notification permission not granted, reminders will be silent")
	}
	return &Console{granted: granted, log: log}
}

func (c *Console) Notify(title, body string) {
	if !c.granted {
		return
	}
	fmt.Fprintf(os.Stdout, "\a\n🔔 %s\n   %s\n", title, body)
}
