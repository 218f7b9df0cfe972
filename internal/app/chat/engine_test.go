package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen/internal/adapters/storage/localkv"
	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/store"
)

// fakeStreamer records the history it was handed and plays back scripted
// chunks, or fails.
type fakeStreamer struct {
	chunks  []string
	err     error
	history []domain.Turn
	prompts []string
}

func (f *fakeStreamer) StreamReply(ctx context.Context, history []domain.Turn, text string, onChunk func(string) error) error {
	f.history = history
	f.prompts = append(f.prompts, text)
	if f.err != nil {
		return f.err
	}
	for _, c := range f.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func newTestEngine(t *testing.T, streamer domain.CompletionStreamer) (*Engine, *store.Collection[domain.Conversation]) {
	t.Helper()
	kv, err := localkv.OpenKV(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	p := &store.Provider{Local: localkv.NewBackend(kv)}
	chats := store.Open[domain.Conversation](p, domain.GuestUserID, domain.CollectionChats, store.Options{})

	e := NewEngine(chats, streamer)
	// Keep the debounced save parked unless a test is about it.
	e.debounce = time.Hour
	return e, chats
}

func TestLoadFallsBackToWelcome(t *testing.T) {
	e, _ := newTestEngine(t, &fakeStreamer{})
	e.Load(context.Background())

	msgs := e.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.WelcomeID, msgs[0].ID)
	assert.Equal(t, domain.WelcomeText, msgs[0].Text)
	assert.Equal(t, domain.RoleModel, msgs[0].Role)
}

func TestLoadRestoresPersistedHistory(t *testing.T) {
	e, chats := newTestEngine(t, &fakeStreamer{})
	require.NoError(t, chats.Put(context.Background(), domain.ConversationID, domain.Conversation{
		Messages: []domain.Message{
			{ID: domain.WelcomeID, Role: domain.RoleModel, Text: domain.WelcomeText, Timestamp: 1},
			{ID: "u1", Role: domain.RoleUser, Text: "hello", Timestamp: 2},
			{ID: "m1", Role: domain.RoleModel, Text: "hi there", Timestamp: 3},
		},
	}))

	e.Load(context.Background())
	require.Len(t, e.Messages(), 3)

	turns := e.ContextTurns()
	require.Len(t, turns, 2, "welcome is never replayed as context")
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Text)
}

func TestSendStreamsIntoPlaceholder(t *testing.T) {
	s := &fakeStreamer{chunks: []string{"Peace ", "be ", "with you."}}
	e, _ := newTestEngine(t, s)
	e.Load(context.Background())

	var sawStreaming bool
	e.OnChange(func(msgs []domain.Message) {
		for _, m := range msgs {
			if m.IsStreaming {
				sawStreaming = true
			}
		}
	})

	e.Send(context.Background(), "I feel anxious")

	msgs := e.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, domain.RoleUser, msgs[1].Role)
	assert.Equal(t, "I feel anxious", msgs[1].Text)
	assert.Equal(t, domain.RoleModel, msgs[2].Role)
	assert.Equal(t, "Peace be with you.", msgs[2].Text)
	assert.False(t, msgs[2].IsStreaming, "placeholder is finalized on completion")
	assert.True(t, sawStreaming, "render hook observed the streaming placeholder")
	assert.False(t, e.IsLoading())
}

func TestSendExcludesCurrentInputFromHistory(t *testing.T) {
	s := &fakeStreamer{chunks: []string{"reply one"}}
	e, _ := newTestEngine(t, s)
	e.Load(context.Background())

	e.Send(context.Background(), "first question")
	assert.Empty(t, s.history, "first turn replays no prior context")

	e.Send(context.Background(), "second question")
	require.Len(t, s.history, 2, "prior turn replays, current input does not")
	assert.Equal(t, "first question", s.history[0].Text)
	assert.Equal(t, "reply one", s.history[1].Text)
}

func TestSendBlankIsNoOp(t *testing.T) {
	s := &fakeStreamer{chunks: []string{"x"}}
	e, _ := newTestEngine(t, s)
	e.Load(context.Background())

	e.Send(context.Background(), "   \n\t ")
	assert.Len(t, e.Messages(), 1)
	assert.Empty(t, s.prompts)
}

func TestSendErrorReplacesPlaceholderWithApology(t *testing.T) {
	s := &fakeStreamer{err: errors.New("model unavailable")}
	e, _ := newTestEngine(t, s)
	e.Load(context.Background())

	e.Send(context.Background(), "hello?")

	msgs := e.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, domain.ApologyText, msgs[2].Text)
	assert.False(t, msgs[2].IsStreaming)
	for _, m := range msgs {
		assert.NotEmpty(t, m.Text, "no empty placeholder survives a failure")
	}
	assert.False(t, e.IsLoading(), "a failed turn still unlocks the engine")
}

func TestRegenerateReplaysLastUserMessage(t *testing.T) {
	s := &fakeStreamer{chunks: []string{"first answer"}}
	e, _ := newTestEngine(t, s)
	e.Load(context.Background())
	e.Send(context.Background(), "tell me about hope")

	s.chunks = []string{"second answer"}
	e.Regenerate(context.Background())

	msgs := e.Messages()
	require.Len(t, msgs, 3, "the old pair is replaced, not stacked")
	assert.Equal(t, "tell me about hope", msgs[1].Text)
	assert.Equal(t, "second answer", msgs[2].Text)
	require.Len(t, s.prompts, 2)
	assert.Equal(t, s.prompts[0], s.prompts[1])
	assert.Empty(t, s.history, "regenerated turn sees the history without the removed pair")
}

func TestRegenerateWithoutValidPairIsNoOp(t *testing.T) {
	s := &fakeStreamer{chunks: []string{"x"}}
	e, _ := newTestEngine(t, s)
	e.Load(context.Background())

	e.Regenerate(context.Background())
	assert.Len(t, e.Messages(), 1)
	assert.Empty(t, s.prompts)
}

func TestResetClearsAndPersistsImmediately(t *testing.T) {
	s := &fakeStreamer{chunks: []string{"answer"}}
	e, chats := newTestEngine(t, s)
	e.Load(context.Background())
	e.Send(context.Background(), "a question")

	e.Reset(context.Background())

	msgs := e.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.WelcomeID, msgs[0].ID)
	assert.Equal(t, domain.ResetText, msgs[0].Text)
	assert.Empty(t, e.ContextTurns(), "reset welcome is excluded from context like any welcome")

	conv, ok, err := chats.Get(context.Background(), domain.ConversationID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, domain.ResetText, conv.Messages[0].Text)
}

func TestResetCancelsPendingDebouncedSave(t *testing.T) {
	s := &fakeStreamer{chunks: []string{"answer"}}
	e, chats := newTestEngine(t, s)
	e.debounce = 50 * time.Millisecond
	e.Load(context.Background())
	e.Send(context.Background(), "a question")

	// Reset before the debounced save fires; the stale write must never land.
	e.Reset(context.Background())
	time.Sleep(120 * time.Millisecond)

	conv, ok, err := chats.Get(context.Background(), domain.ConversationID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, domain.ResetText, conv.Messages[0].Text)
}

func TestDebouncedSavePersistsCompletedTurn(t *testing.T) {
	s := &fakeStreamer{chunks: []string{"answer"}}
	e, chats := newTestEngine(t, s)
	e.debounce = 5 * time.Millisecond
	e.Load(context.Background())
	e.Send(context.Background(), "a question")

	require.Eventually(t, func() bool {
		conv, ok, err := chats.Get(context.Background(), domain.ConversationID)
		return err == nil && ok && len(conv.Messages) == 3
	}, 2*time.Second, 10*time.Millisecond)

	conv, _, _ := chats.Get(context.Background(), domain.ConversationID)
	assert.Equal(t, "answer", conv.Messages[2].Text)
	assert.False(t, conv.Messages[2].IsStreaming)
}
