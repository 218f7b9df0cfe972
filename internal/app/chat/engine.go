// Package chat owns the conversation: message history, streaming
// completions, context reconstruction across restarts, and the
// reset/regenerate operations.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

// saveDebounce batches the post-turn conversation write so streaming does
// not produce a write per chunk.
const saveDebounce = time.Second

// Engine is the state machine for one user's conversation. All mutations go
// through it; at most one send is in flight at a time.
type Engine struct {
	chats    *store.Collection[domain.Conversation]
	streamer domain.CompletionStreamer
	now      func() time.Time
	debounce time.Duration
	log      zerolog.Logger

	mu        sync.Mutex
	messages  []domain.Message
	isLoading bool
	saveTimer *time.Timer
	saveGen   uint64

	onChange func([]domain.Message)
}

func NewEngine(chats *store.Collection[domain.Conversation], streamer domain.CompletionStreamer) *Engine {
	return &Engine{
		chats:    chats,
		streamer: streamer,
		now:      time.Now,
		debounce: saveDebounce,
		log:      observability.WithComponent("chat"),
	}
}

// OnChange registers the render hook, invoked with a snapshot of the history
// after every mutation, including once per streamed chunk.
func (e *Engine) OnChange(fn func([]domain.Message)) {
	e.onChange = fn
}

// Messages returns a snapshot of the history.
func (e *Engine) Messages() []domain.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isLoading
}

func (e *Engine) snapshotLocked() []domain.Message {
	out := make([]domain.Message, len(e.messages))
	copy(out, e.messages)
	return out
}

func (e *Engine) emit(snapshot []domain.Message) {
	if e.onChange != nil {
		e.onChange(snapshot)
	}
}

func (e *Engine) welcome(text string) domain.Message {
	return domain.Message{
		ID:        domain.WelcomeID,
		Role:      domain.RoleModel,
		Text:      text,
		Timestamp: domain.MillisAt(e.now()),
	}
}

// Load restores the persisted conversation, falling back to a fresh welcome
// when nothing was ever saved or the record cannot be read. Prior-turn
// context is rebuilt from what loads, so a history persisted mid-stream can
// never replay an unfinished message as completed model output.
func (e *Engine) Load(ctx context.Context) {
	conv, ok, err := e.chats.Get(ctx, domain.ConversationID)
	if err != nil {
		e.log.Error().Err(err).Msg("loading conversation, starting fresh")
	}

	e.mu.Lock()
	if ok && err == nil && len(conv.Messages) > 0 {
		e.messages = conv.Messages
	} else {
		e.messages = []domain.Message{e.welcome(domain.WelcomeText)}
	}
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.emit(snapshot)
}

// ContextTurns returns the prior turns that would be replayed to the
// completion service: everything except the synthetic welcome and any
// message still streaming.
func (e *Engine) ContextTurns() []domain.Turn {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.ContextTurns(e.messages)
}

// Send runs one turn: the user message is appended immediately, a streaming
// placeholder follows, chunks grow the placeholder text, and completion
// finalizes it and schedules a debounced save. A failure replaces the
// placeholder with a fixed apology; no partial text is kept. Blank input or
// a send already in flight is a no-op.
func (e *Engine) Send(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	e.mu.Lock()
	if e.isLoading {
		e.mu.Unlock()
		e.log.Debug().Msg("send ignored, request in flight")
		return
	}
	e.isLoading = true

	turns := domain.ContextTurns(e.messages)
	now := domain.MillisAt(e.now())
	e.messages = append(e.messages,
		domain.Message{
			ID:        domain.MessageID(uuid.NewString()),
			Role:      domain.RoleUser,
			Text:      text,
			Timestamp: now,
		})
	placeholderID := domain.MessageID(uuid.NewString())
	e.messages = append(e.messages,
		domain.Message{
			ID:          placeholderID,
			Role:        domain.RoleModel,
			IsStreaming: true,
			Timestamp:   now,
		})
	snapshot := e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snapshot)

	err := e.streamer.StreamReply(ctx, turns, text, func(chunk string) error {
		e.mu.Lock()
		for i := range e.messages {
			if e.messages[i].ID == placeholderID {
				e.messages[i].Text += chunk
				break
			}
		}
		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.emit(snap)
		return nil
	})

	e.mu.Lock()
	if err != nil {
		e.log.Error().Err(err).Msg("completion failed")
		e.dropMessageLocked(placeholderID)
		e.messages = append(e.messages, domain.Message{
			ID:        domain.MessageID(uuid.NewString()),
			Role:      domain.RoleModel,
			Text:      domain.ApologyText,
			Timestamp: domain.MillisAt(e.now()),
		})
	} else {
		for i := range e.messages {
			if e.messages[i].ID == placeholderID {
				e.messages[i].IsStreaming = false
				break
			}
		}
	}
	e.isLoading = false
	e.scheduleSaveLocked()
	snapshot = e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snapshot)
}

func (e *Engine) dropMessageLocked(id domain.MessageID) {
	kept := e.messages[:0]
	for _, m := range e.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	e.messages = kept
}

// Reset discards the history and starts over with a single fresh welcome.
// The pending debounced save is cancelled first so a stale write cannot
// overwrite the reset state; the reset itself persists immediately.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	if e.isLoading {
		e.mu.Unlock()
		return
	}
	if e.saveTimer != nil {
		e.saveTimer.Stop()
		e.saveTimer = nil
	}
	// Invalidate any debounced save that already left the timer but has not
	// persisted yet, so the reset write is causally last.
	e.saveGen++
	e.messages = []domain.Message{e.welcome(domain.ResetText)}
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.emit(snapshot)
	e.persist(ctx, snapshot)
}

// Regenerate removes the trailing (user, model) pair and re-sends the user's
// text against the remaining history. The UI only offers it from a valid
// position, but the precondition is re-checked here; when it does not hold
// this is a no-op.
func (e *Engine) Regenerate(ctx context.Context) {
	e.mu.Lock()
	if e.isLoading || len(e.messages) < 2 {
		e.mu.Unlock()
		return
	}
	last := e.messages[len(e.messages)-1]
	prev := e.messages[len(e.messages)-2]
	if last.Role != domain.RoleModel || last.IsStreaming || prev.Role != domain.RoleUser {
		e.mu.Unlock()
		return
	}
	text := prev.Text
	e.messages = e.messages[:len(e.messages)-2]
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.emit(snapshot)
	e.Send(ctx, text)
}

func (e *Engine) scheduleSaveLocked() {
	if e.saveTimer != nil {
		e.saveTimer.Stop()
	}
	gen := e.saveGen
	e.saveTimer = time.AfterFunc(e.debounce, func() {
		e.mu.Lock()
		if gen != e.saveGen {
			e.mu.Unlock()
			return
		}
		snapshot := e.snapshotLocked()
		e.mu.Unlock()
		e.persist(context.Background(), snapshot)
	})
}

// SaveNow persists the current history. Failures are logged; persistence is
// fire-and-forget and retried naturally on the next completed turn.
func (e *Engine) SaveNow(ctx context.Context) {
	e.mu.Lock()
	snapshot := e.snapshotLocked()
	e.mu.Unlock()
	e.persist(ctx, snapshot)
}

func (e *Engine) persist(ctx context.Context, messages []domain.Message) {
	conv := domain.Conversation{
		Messages: messages,
		Date:     domain.MillisAt(e.now()),
	}
	if err := e.chats.Put(ctx, domain.ConversationID, conv); err != nil {
		e.log.Error().Err(err).Msg("saving conversation")
	}
}
