// Package prayers holds the prayer-wall logic: requests, answered state, and
// the optional reminder time the scheduler watches for.
package prayers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

type Service struct {
	col *store.Collection[domain.PrayerRequest]
	log zerolog.Logger
}

func NewService(p *store.Provider, user domain.UserID) *Service {
	return &Service{
		col: store.Open[domain.PrayerRequest](p, user, domain.CollectionPrayers, store.Options{TimeField: "date"}),
		log: observability.WithComponent("prayers"),
	}
}

type AddInput struct {
	Title        string
	Content      string
	Description  string
	ReminderTime domain.Millis
}

// Add creates a prayer request and returns its id.
func (s *Service) Add(ctx context.Context, in AddInput) (string, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return "", fmt.Errorf("title and content are required")
	}

	id, err := s.col.Append(ctx, domain.PrayerRequest{
		Title:        in.Title,
		Content:      in.Content,
		Description:  in.Description,
		ReminderTime: in.ReminderTime,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("adding prayer")
		return "", err
	}
	s.log.Info().Str("prayer_id", id).Msg("prayer added")
	return id, nil
}

// List returns the prayer wall, newest first.
func (s *Service) List(ctx context.Context) ([]domain.PrayerRequest, error) {
	return s.col.Load(ctx)
}

// ToggleAnswered flips a request's answered flag.
func (s *Service) ToggleAnswered(ctx context.Context, id string, current bool) error {
	return s.col.Update(ctx, id, map[string]any{"isAnswered": !current})
}

// Delete removes a request. Idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.col.Remove(ctx, id)
}

// Subscribe feeds the caller the full wall on every change.
func (s *Service) Subscribe(ctx context.Context, fn func([]domain.PrayerRequest)) (func(), error) {
	return s.col.Subscribe(ctx, fn)
}

// PrayWithAIPrompt builds the personalized chat prompt for a new request, so
// the assistant leads a prayer that names the specifics the user shared.
func PrayWithAIPrompt(title, content, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have a prayer request. Title: %q. Details: %q.", title, content)
	if description != "" {
		fmt.Fprintf(&b, " Additional Context: %q.", description)
	}
	b.WriteString(" Please lead me in a personalized prayer for this specific situation, mentioning the names and details I provided.")
	return b.String()
}
