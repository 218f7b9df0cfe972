package domain

import "context"

// CompletionStreamer is the external text-generation service. Prior turns are
// passed explicitly on every call; the service holds no session state of its
// own. Chunks arrive in order through onChunk until the reply is complete; a
// non-nil error from onChunk aborts the stream.
type CompletionStreamer interface {
	StreamReply(ctx context.Context, history []Turn, text string, onChunk func(chunk string) error) error
}

// VerseGenerator produces the daily verse. Implementations must degrade to a
// fixed fallback verse rather than fail.
type VerseGenerator interface {
	DailyVerse(ctx context.Context) (DailyVerse, error)
}

// HoroscopeGenerator produces a daily horoscope reading for a zodiac sign.
type HoroscopeGenerator interface {
	DailyHoroscope(ctx context.Context, sign string) (Horoscope, error)
}

// Notifier is the user-visible notification surface. Delivery is
// fire-and-forget; implementations gated on an ungranted permission simply
// drop the notification.
type Notifier interface {
	Notify(title, body string)
}

// Identity supplies the stable identifier of the active user. DeleteIdentity
// removes the identity itself and is called only after the user's data has
// been erased.
type Identity interface {
	CurrentUser() UserID
	DeleteIdentity(ctx context.Context) error
}
