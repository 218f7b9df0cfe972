package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumenlabs/lumen/internal/domain"
)

// MockClient is a development stand-in for the completion service. It echoes
// the user's text in Lumen's voice, delivered word by word so streaming
// consumers behave as they would against the real service.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) StreamReply(
	ctx context.Context,
	history []domain.Turn,
	text string,
	onChunk func(chunk string) error,
) error {
	reply := fmt.Sprintf("I hear you. You said %q. Psalm 46:1 reminds us that God is our refuge and strength, an ever-present help in trouble.", text)
	for _, word := range strings.SplitAfter(reply, " ") {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := onChunk(word); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockClient) DailyVerse(ctx context.Context) (domain.DailyVerse, error) {
	return fallbackVerse, nil
}

func (m *MockClient) DailyHoroscope(ctx context.Context, sign string) (domain.Horoscope, error) {
	return domain.Horoscope{Text: fallbackHoroscope}, nil
}
