// Package store provides the persisted-collection abstraction shared by every
// feature area. A collection is an ordered set of records owned by one user,
// served either by the device-local ephemeral backend (guest identity) or by
// the realtime remote backend (every other identity). The identity branch
// exists exactly once, in Provider.BackendFor; no other component may select
// a backend on its own.
package store

import (
	"context"
	"time"

	"github.com/lumenlabs/lumen/internal/domain"
)

// Doc is a record in transit between a backend and the typed collection
// layer. The "id" key always carries the document id.
type Doc = map[string]any

// Options configures ordering and change-feed behavior for one collection.
type Options struct {
	// TimeField is the record field used for ordering and stamped on append.
	TimeField string
	// Ascending orders Load results oldest-first. Default is newest-first.
	Ascending bool
	// Poll, when non-zero, makes the ephemeral backend re-read the stored
	// state at this interval inside Subscribe, catching out-of-process
	// edits. The remote backend pushes and ignores it.
	Poll time.Duration
}

// Backend is the untyped storage contract implemented by the ephemeral and
// remote stores.
type Backend interface {
	// Load returns all records ordered per opts. A collection that has never
	// been written loads as empty, not as an error.
	Load(ctx context.Context, user domain.UserID, name string, opts Options) ([]Doc, error)
	// Append inserts doc under a newly assigned id and returns that id.
	Append(ctx context.Context, user domain.UserID, name string, doc Doc) (string, error)
	// Update merges fields into the record with the given id. A missing id
	// is a silent no-op.
	Update(ctx context.Context, user domain.UserID, name, id string, fields map[string]any) error
	// Remove deletes the record. Idempotent.
	Remove(ctx context.Context, user domain.UserID, name, id string) error
	// Put upserts a record under a caller-chosen fixed id.
	Put(ctx context.Context, user domain.UserID, name, id string, doc Doc) error
	// Get reads a single record by id. Absence is (nil, false, nil).
	Get(ctx context.Context, user domain.UserID, name, id string) (Doc, bool, error)
	// Subscribe delivers the full ordered state on every change until the
	// returned unsubscribe func is called. The first delivery reflects the
	// current state.
	Subscribe(ctx context.Context, user domain.UserID, name string, opts Options, fn func([]Doc)) (func(), error)

	// GetUserDoc and MergeUserDoc operate on the user's root document,
	// which holds profile and settings rather than a record collection.
	GetUserDoc(ctx context.Context, user domain.UserID) (Doc, bool, error)
	MergeUserDoc(ctx context.Context, user domain.UserID, fields map[string]any) error
	// EraseUser clears every named collection and then the user document,
	// in that order.
	EraseUser(ctx context.Context, user domain.UserID, collections []string) error
}

// Provider owns the two backends and the single identity branch.
type Provider struct {
	Local  Backend
	Remote Backend
}

// BackendFor resolves the backend for an identity. The guest sentinel always
// maps to the ephemeral local store; every other identity maps to the remote
// store. This is the only place the branch exists.
func (p *Provider) BackendFor(user domain.UserID) Backend {
	if user.IsGuest() {
		return p.Local
	}
	return p.Remote
}

// Collection is a typed view over one user's named collection.
type Collection[T any] struct {
	backend Backend
	user    domain.UserID
	name    string
	opts    Options
}

// Open binds a typed collection to the backend selected for user.
func Open[T any](p *Provider, user domain.UserID, name string, opts Options) *Collection[T] {
	if opts.TimeField == "" {
		opts.TimeField = "date"
	}
	return &Collection[T]{
		backend: p.BackendFor(user),
		user:    user,
		name:    name,
		opts:    opts,
	}
}

// Load returns all records, ordered by the collection's time field.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	docs, err := c.backend.Load(ctx, c.user, c.name, c.opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](docs)
}

// Append inserts rec with a fresh id and a stamped time field, returning the
// assigned id. The caller's record is not mutated; reload to observe the
// stored form.
func (c *Collection[T]) Append(ctx context.Context, rec T) (string, error) {
	doc, err := encode(rec)
	if err != nil {
		return "", err
	}
	delete(doc, "id")
	stampTime(doc, c.opts.TimeField)
	return c.backend.Append(ctx, c.user, c.name, doc)
}

// Update merges fields into the record with the given id. Missing ids no-op.
func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	return c.backend.Update(ctx, c.user, c.name, id, fields)
}

// Remove deletes the record with the given id. Idempotent.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	return c.backend.Remove(ctx, c.user, c.name, id)
}

// Put upserts rec under a fixed id, used for singleton records such as the
// conversation document.
func (c *Collection[T]) Put(ctx context.Context, id string, rec T) error {
	doc, err := encode(rec)
	if err != nil {
		return err
	}
	delete(doc, "id")
	stampTime(doc, c.opts.TimeField)
	return c.backend.Put(ctx, c.user, c.name, id, doc)
}

// Get reads the record with the given id. Absence is (zero, false, nil).
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	doc, ok, err := c.backend.Get(ctx, c.user, c.name, id)
	if err != nil || !ok {
		return zero, false, err
	}
	rec, err := decode[T](doc)
	if err != nil {
		return zero, false, err
	}
	return rec, true, nil
}

// Subscribe invokes fn with the full ordered state now and on every
// subsequent change until the returned unsubscribe func is called.
func (c *Collection[T]) Subscribe(ctx context.Context, fn func([]T)) (func(), error) {
	return c.backend.Subscribe(ctx, c.user, c.name, c.opts, func(docs []Doc) {
		recs, err := decodeAll[T](docs)
		if err != nil {
			return
		}
		fn(recs)
	})
}
