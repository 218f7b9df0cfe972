package localkv

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

const profileKey = "lumen_user_profile"

// Backend serves collections for the guest identity out of the local KV
// store. Each collection is one key holding a JSON array of records.
type Backend struct {
	mu  sync.Mutex
	kv  *KV
	log zerolog.Logger
}

func NewBackend(kv *KV) *Backend {
	return &Backend{
		kv:  kv,
		log: observability.WithComponent("localkv"),
	}
}

// Only the guest sentinel reaches this backend, so keys carry the collection
// name alone; the device store holds a single profile.
func collectionKey(name string) string { return "lumen_" + name }

// read returns the stored records for a collection. Missing or corrupt
// content degrades to empty.
func (b *Backend) read(name string) []store.Doc {
	raw, ok, err := b.kv.Get(collectionKey(name))
	if err != nil {
		b.log.Warn().Err(err).Str("collection", name).Msg("local read failed, serving empty")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var docs []store.Doc
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		b.log.Warn().Err(err).Str("collection", name).Msg("corrupt local state, serving empty")
		return nil
	}
	return docs
}

func (b *Backend) write(name string, docs []store.Doc) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return b.kv.Set(collectionKey(name), string(raw))
}

func sortDocs(docs []store.Doc, opts store.Options) {
	if opts.TimeField == "" {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		ti, tj := docTime(docs[i], opts.TimeField), docTime(docs[j], opts.TimeField)
		if opts.Ascending {
			return ti < tj
		}
		return ti > tj
	})
}

func docTime(doc store.Doc, field string) float64 {
	f, _ := doc[field].(float64)
	return f
}

func (b *Backend) Load(ctx context.Context, user domain.UserID, name string, opts store.Options) ([]store.Doc, error) {
	b.mu.Lock()
	docs := b.read(name)
	b.mu.Unlock()
	sortDocs(docs, opts)
	return docs, nil
}

func (b *Backend) Append(ctx context.Context, user domain.UserID, name string, doc store.Doc) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	doc["id"] = id
	docs := append(b.read(name), doc)
	if err := b.write(name, docs); err != nil {
		return "", err
	}
	return id, nil
}

func (b *Backend) Update(ctx context.Context, user domain.UserID, name, id string, fields map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	docs := b.read(name)
	found := false
	for _, doc := range docs {
		if doc["id"] == id {
			for k, v := range fields {
				doc[k] = v
			}
			found = true
			break
		}
	}
	if !found {
		// Missing id is a deliberate no-op.
		return nil
	}
	return b.write(name, docs)
}

func (b *Backend) Remove(ctx context.Context, user domain.UserID, name, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	docs := b.read(name)
	kept := docs[:0]
	for _, doc := range docs {
		if doc["id"] != id {
			kept = append(kept, doc)
		}
	}
	return b.write(name, kept)
}

func (b *Backend) Put(ctx context.Context, user domain.UserID, name, id string, doc store.Doc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc["id"] = id
	docs := b.read(name)
	for i := range docs {
		if docs[i]["id"] == id {
			docs[i] = doc
			return b.write(name, docs)
		}
	}
	return b.write(name, append(docs, doc))
}

func (b *Backend) Get(ctx context.Context, user domain.UserID, name, id string) (store.Doc, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, doc := range b.read(name) {
		if doc["id"] == id {
			return doc, true, nil
		}
	}
	return nil, false, nil
}

// Subscribe echoes the current state synchronously. With a poll interval set
// it also re-reads the stored state on a ticker so out-of-process edits to
// the same device store are eventually observed.
func (b *Backend) Subscribe(ctx context.Context, user domain.UserID, name string, opts store.Options, fn func([]store.Doc)) (func(), error) {
	deliver := func() {
		docs, _ := b.Load(ctx, user, name, opts)
		fn(docs)
	}
	deliver()

	if opts.Poll <= 0 {
		return func() {}, nil
	}

	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(opts.Poll)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				deliver()
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }, nil
}

func (b *Backend) GetUserDoc(ctx context.Context, user domain.UserID) (store.Doc, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw, ok, err := b.kv.Get(profileKey)
	if err != nil || !ok || raw == "" {
		return nil, false, err
	}
	var doc store.Doc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		b.log.Warn().Err(err).Msg("corrupt local profile, serving empty")
		return nil, false, nil
	}
	return doc, true, nil
}

func (b *Backend) MergeUserDoc(ctx context.Context, user domain.UserID, fields map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc := store.Doc{}
	if raw, ok, _ := b.kv.Get(profileKey); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			doc = store.Doc{}
		}
	}
	for k, v := range fields {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return b.kv.Set(profileKey, string(raw))
}

// EraseUser clears the named collections and the profile. Guest erasure is
// purely local; there is no identity to remove behind it.
func (b *Backend) EraseUser(ctx context.Context, user domain.UserID, collections []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, name := range collections {
		if err := b.kv.Delete(collectionKey(name)); err != nil {
			return err
		}
	}
	return b.kv.Delete(profileKey)
}
