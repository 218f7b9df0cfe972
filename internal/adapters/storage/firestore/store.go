// Package firestore implements the remote realtime backend. Records live in
// per-user sub-collections under users/{uid}; subscriptions are served by
// Firestore query snapshots, so every server-side mutation (including ones
// from other sessions) pushes the full ordered state to the consumer.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

type Backend struct {
	client *firestore.Client
	log    zerolog.Logger
}

// NewBackend creates a Firestore-backed store for the given project.
func NewBackend(ctx context.Context, projectID string) (*Backend, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Backend{
		client: client,
		log:    observability.WithComponent("firestore"),
	}, nil
}

func (b *Backend) Close() error { return b.client.Close() }

func (b *Backend) userDoc(user domain.UserID) *firestore.DocumentRef {
	return b.client.Collection("users").Doc(string(user))
}

func (b *Backend) col(user domain.UserID, name string) *firestore.CollectionRef {
	return b.userDoc(user).Collection(name)
}

func (b *Backend) query(user domain.UserID, name string, opts store.Options) firestore.Query {
	q := b.col(user, name).Query
	if opts.TimeField != "" {
		dir := firestore.Desc
		if opts.Ascending {
			dir = firestore.Asc
		}
		q = q.OrderBy(opts.TimeField, dir)
	}
	return q
}

func docsFromIterator(iter *firestore.DocumentIterator) ([]store.Doc, error) {
	defer iter.Stop()

	var out []store.Doc
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		doc := snap.Data()
		doc["id"] = snap.Ref.ID
		out = append(out, doc)
	}
	return out, nil
}

func (b *Backend) Load(ctx context.Context, user domain.UserID, name string, opts store.Options) ([]store.Doc, error) {
	docs, err := docsFromIterator(b.query(user, name, opts).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("firestore load %s: %w", name, err)
	}
	return docs, nil
}

func (b *Backend) Append(ctx context.Context, user domain.UserID, name string, doc store.Doc) (string, error) {
	ref := b.col(user, name).NewDoc()
	if _, err := ref.Create(ctx, doc); err != nil {
		return "", fmt.Errorf("firestore append %s: %w", name, err)
	}
	return ref.ID, nil
}

func (b *Backend) Update(ctx context.Context, user domain.UserID, name, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := b.col(user, name).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		// Missing id is a deliberate no-op.
		return nil
	}
	if err != nil {
		return fmt.Errorf("firestore update %s/%s: %w", name, id, err)
	}
	return nil
}

func (b *Backend) Remove(ctx context.Context, user domain.UserID, name, id string) error {
	if _, err := b.col(user, name).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore remove %s/%s: %w", name, id, err)
	}
	return nil
}

func (b *Backend) Put(ctx context.Context, user domain.UserID, name, id string, doc store.Doc) error {
	if _, err := b.col(user, name).Doc(id).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore put %s/%s: %w", name, id, err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, user domain.UserID, name, id string) (store.Doc, bool, error) {
	snap, err := b.col(user, name).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("firestore get %s/%s: %w", name, id, err)
	}
	doc := snap.Data()
	doc["id"] = snap.Ref.ID
	return doc, true, nil
}

// Subscribe attaches a snapshot listener to the ordered query and pushes the
// full state on every change until unsubscribed.
func (b *Backend) Subscribe(ctx context.Context, user domain.UserID, name string, opts store.Options, fn func([]store.Doc)) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)
	snaps := b.query(user, name, opts).Snapshots(subCtx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					b.log.Error().Err(err).Str("collection", name).Msg("snapshot feed ended")
				}
				return
			}
			docs, err := docsFromIterator(snap.Documents)
			if err != nil {
				b.log.Error().Err(err).Str("collection", name).Msg("reading snapshot")
				continue
			}
			fn(docs)
		}
	}()

	return cancel, nil
}

func (b *Backend) GetUserDoc(ctx context.Context, user domain.UserID) (store.Doc, bool, error) {
	snap, err := b.userDoc(user).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("firestore get user doc: %w", err)
	}
	return snap.Data(), true, nil
}

func (b *Backend) MergeUserDoc(ctx context.Context, user domain.UserID, fields map[string]any) error {
	if _, err := b.userDoc(user).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore merge user doc: %w", err)
	}
	return nil
}

// EraseUser batch-deletes every named sub-collection, then the user document.
// Firestore does not cascade sub-collection deletes, so each must be
// enumerated and cleared before the parent goes; a mid-sequence failure
// leaves orphaned data but never a dangling identity with no data path.
func (b *Backend) EraseUser(ctx context.Context, user domain.UserID, collections []string) error {
	for _, name := range collections {
		if err := b.clearCollection(ctx, user, name); err != nil {
			return fmt.Errorf("erasing %s: %w", name, err)
		}
	}
	if _, err := b.userDoc(user).Delete(ctx); err != nil {
		return fmt.Errorf("erasing user doc: %w", err)
	}
	return nil
}

func (b *Backend) clearCollection(ctx context.Context, user domain.UserID, name string) error {
	iter := b.col(user, name).Documents(ctx)
	defer iter.Stop()

	batch := b.client.Batch()
	count := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		batch.Delete(snap.Ref)
		count++
	}
	if count == 0 {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return err
	}
	b.log.Info().Str("collection", name).Int("deleted", count).Msg("collection cleared")
	return nil
}
