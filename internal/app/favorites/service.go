// Package favorites manages the user's saved verses.
package favorites

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

const (
	SourceDaily = "daily"
	SourceChat  = "chat"
)

type Service struct {
	col *store.Collection[domain.FavoriteVerse]
	log zerolog.Logger
}

func NewService(p *store.Provider, user domain.UserID) *Service {
	return &Service{
		col: store.Open[domain.FavoriteVerse](p, user, domain.CollectionFavorites, store.Options{TimeField: "date"}),
		log: observability.WithComponent("favorites"),
	}
}

// Save stores a verse and returns its id.
func (s *Service) Save(ctx context.Context, reference, text, source string) (string, error) {
	if strings.TrimSpace(reference) == "" {
		return "", fmt.Errorf("reference is required")
	}

	id, err := s.col.Append(ctx, domain.FavoriteVerse{
		Reference: reference,
		Text:      text,
		Source:    source,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("saving favorite")
		return "", err
	}
	return id, nil
}

// List returns saved verses, newest first.
func (s *Service) List(ctx context.Context) ([]domain.FavoriteVerse, error) {
	return s.col.Load(ctx)
}

// Remove deletes a saved verse. Idempotent.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.col.Remove(ctx, id)
}

// IsSaved reports whether any favorite carries the given reference, used by
// the daily-verse card to mark an already-saved verse.
func (s *Service) IsSaved(ctx context.Context, reference string) (bool, error) {
	favs, err := s.col.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, f := range favs {
		if f.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

// Subscribe feeds the caller the full list on every change.
func (s *Service) Subscribe(ctx context.Context, fn func([]domain.FavoriteVerse)) (func(), error) {
	return s.col.Subscribe(ctx, fn)
}
