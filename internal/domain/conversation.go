package domain

// WelcomeID marks every synthetic welcome message. Context reconstruction
// excludes messages with this id, so welcome text is never replayed to the
// completion service as a model turn.
const WelcomeID MessageID = "welcome"

const (
	WelcomeText = "Welcome. I am Lumen. How can I support your spiritual journey today?"
	ResetText   = "Chat cleared. How may I help you anew?"
	ApologyText = "I apologize, but I am having trouble connecting right now."
)

// Message is one entry in the conversation timeline.
type Message struct {
	ID          MessageID `json:"id"`
	Role        Role      `json:"role"`
	Text        string    `json:"text"`
	IsStreaming bool      `json:"isStreaming,omitempty"`
	Timestamp   Millis    `json:"timestamp"`
}

func (m Message) IsWelcome() bool { return m.ID == WelcomeID }

// Conversation is the single persisted chat record per user, stored under the
// fixed id "main" in the "chats" collection.
type Conversation struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
	Date     Millis    `json:"date"`
}

// ConversationID is the fixed record id of the one conversation per user.
const ConversationID = "main"

// Turn is a completed prior exchange handed to the completion service when
// rebuilding context.
type Turn struct {
	Role Role
	Text string
}

// ContextTurns converts persisted history into replayable prior turns.
// The synthetic welcome and any message still streaming are excluded: an
// unfinished message must not be replayed as completed model output.
func ContextTurns(messages []Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		if m.IsWelcome() || m.IsStreaming {
			continue
		}
		turns = append(turns, Turn{Role: m.Role, Text: m.Text})
	}
	return turns
}
