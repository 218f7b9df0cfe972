package domain

import "time"

type UserID string
type MessageID string

// GuestUserID is the sentinel identity for the unauthenticated local mode.
// Backend selection treats this value, and only this value, as "no network
// identity": every collection it opens lives in the device-local store.
const GuestUserID UserID = "guest-dev-user"

// IsGuest reports whether id is the local-only sentinel identity.
func (id UserID) IsGuest() bool { return id == GuestUserID }

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Millis is a Unix-epoch timestamp in milliseconds, the wire format shared by
// every persisted record's time field.
type Millis int64

func NowMillis() Millis { return Millis(time.Now().UnixMilli()) }

func MillisAt(t time.Time) Millis { return Millis(t.UnixMilli()) }

func (m Millis) Time() time.Time { return time.UnixMilli(int64(m)) }
