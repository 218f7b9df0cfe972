// Package identity supplies the active user identifier. Sign-in screens are
// an external collaborator; this client receives a stable id (or nothing,
// which means guest) from its environment.
package identity

import (
	"context"
	"errors"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
)

// ErrRequiresRecentLogin mirrors the identity provider's demand for a fresh
// sign-in before destructive operations. It is surfaced to the user verbatim
// as an actionable instruction.
var ErrRequiresRecentLogin = errors.New("this operation requires a recent sign-in: please sign in again and retry")

// Static resolves identity from configuration: an empty id is the guest
// sentinel, anything else is a signed-in user.
type Static struct {
	user domain.UserID
}

func NewStatic(userID string) *Static {
	if userID == "" {
		return &Static{user: domain.GuestUserID}
	}
	return &Static{user: domain.UserID(userID)}
}

func (s *Static) CurrentUser() domain.UserID { return s.user }

// DeleteIdentity removes the identity after data erasure. The guest sentinel
// has no network identity to remove.
func (s *Static) DeleteIdentity(ctx context.Context) error {
	if s.user.IsGuest() {
		return nil
	}
	log := observability.WithComponent("identity")
	log.Info().
		Str("user_id", string(s.user)).
		Msg("identity released")
	return nil
}
