// Package account manages profile settings and the full data-erasure path.
package account

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

type Service struct {
	provider *store.Provider
	identity domain.Identity
	log      zerolog.Logger
}

func NewService(provider *store.Provider, identity domain.Identity) *Service {
	return &Service{
		provider: provider,
		identity: identity,
		log:      observability.WithComponent("account"),
	}
}

// Profile reads the user's profile and settings. A user with no stored
// profile gets the zero value.
func (s *Service) Profile(ctx context.Context) (domain.UserProfile, error) {
	user := s.identity.CurrentUser()
	doc, ok, err := s.provider.BackendFor(user).GetUserDoc(ctx, user)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !ok {
		return domain.UserProfile{}, nil
	}
	return store.DecodeDoc[domain.UserProfile](doc)
}

// SaveProfile merges the given profile fields into the stored profile.
func (s *Service) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	user := s.identity.CurrentUser()
	fields, err := store.EncodeDoc(profile)
	if err != nil {
		return err
	}
	return s.provider.BackendFor(user).MergeUserDoc(ctx, user, fields)
}

// DeleteAccount erases all of the user's data and then the identity itself:
// every sub-collection first, then the user document, then the identity, so
// a mid-sequence failure can orphan data but never strand an identity with
// no data path. Identity-deletion errors that demand a recent sign-in are
// returned verbatim for the user to act on, never retried here.
func (s *Service) DeleteAccount(ctx context.Context) error {
	user := s.identity.CurrentUser()
	log := s.log.With().Str("user_id", string(user)).Logger()
	log.Info().Msg("deleting account data")

	backend := s.provider.BackendFor(user)
	if err := backend.EraseUser(ctx, user, domain.ErasureOrder); err != nil {
		log.Error().Err(err).Msg("data erasure failed")
		return fmt.Errorf("erasing user data: %w", err)
	}

	if err := s.identity.DeleteIdentity(ctx); err != nil {
		log.Error().Err(err).Msg("identity deletion failed")
		return err
	}

	log.Info().Msg("account deleted")
	return nil
}
