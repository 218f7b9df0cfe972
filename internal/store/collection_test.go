package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen/internal/adapters/storage/localkv"
	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/store"
)

func newProvider(t *testing.T) *store.Provider {
	t.Helper()
	kv, err := localkv.OpenKV(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return &store.Provider{Local: localkv.NewBackend(kv)}
}

func TestBackendForGuestGoesLocal(t *testing.T) {
	kv, err := localkv.OpenKV(":memory:")
	require.NoError(t, err)
	defer kv.Close()

	p := &store.Provider{Local: localkv.NewBackend(kv)}
	assert.Same(t, p.Local, p.BackendFor(domain.GuestUserID))
	assert.Nil(t, p.BackendFor(domain.UserID("someone-else")))
}

func TestAppendAssignsIDAndStampsTime(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	col := store.Open[domain.PrayerRequest](p, domain.GuestUserID, domain.CollectionPrayers, store.Options{})

	id, err := col.Append(ctx, domain.PrayerRequest{Title: "Healing", Content: "For my friend"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := col.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "Healing", got[0].Title)
	assert.NotZero(t, got[0].Date, "time field should be stamped on append")
}

func TestLoadOrdersByTimeField(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	col := store.Open[domain.PrayerRequest](p, domain.GuestUserID, domain.CollectionPrayers, store.Options{})

	_, err := col.Append(ctx, domain.PrayerRequest{Title: "old", Content: "x", Date: 1000})
	require.NoError(t, err)
	_, err = col.Append(ctx, domain.PrayerRequest{Title: "new", Content: "x", Date: 2000})
	require.NoError(t, err)

	got, err := col.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Title, "default order is newest first")

	asc := store.Open[domain.PrayerRequest](p, domain.GuestUserID, domain.CollectionPrayers, store.Options{Ascending: true})
	got, err = asc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", got[0].Title)
}

func TestUpdateMergesAndMissingIDNoOps(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	col := store.Open[domain.PrayerRequest](p, domain.GuestUserID, domain.CollectionPrayers, store.Options{})

	id, err := col.Append(ctx, domain.PrayerRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, col.Update(ctx, id, map[string]any{"isAnswered": true}))
	got, err := col.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsAnswered)
	assert.Equal(t, "t", got[0].Title, "unmentioned fields survive the merge")

	require.NoError(t, col.Update(ctx, "no-such-id", map[string]any{"isAnswered": true}))
	got, err = col.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	col := store.Open[domain.FavoriteVerse](p, domain.GuestUserID, domain.CollectionFavorites, store.Options{})

	id, err := col.Append(ctx, domain.FavoriteVerse{Reference: "John 3:16", Text: "For God so loved"})
	require.NoError(t, err)

	require.NoError(t, col.Remove(ctx, id))
	require.NoError(t, col.Remove(ctx, id))
	require.NoError(t, col.Remove(ctx, "never-existed"))

	got, err := col.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPutGetFixedID(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	col := store.Open[domain.Conversation](p, domain.GuestUserID, domain.CollectionChats, store.Options{})

	_, ok, err := col.Get(ctx, domain.ConversationID)
	require.NoError(t, err)
	assert.False(t, ok, "absence is not an error")

	conv := domain.Conversation{Messages: []domain.Message{
		{ID: "m1", Role: domain.RoleUser, Text: "hello", Timestamp: 1},
	}}
	require.NoError(t, col.Put(ctx, domain.ConversationID, conv))

	got, ok, err := col.Get(ctx, domain.ConversationID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Text)

	conv.Messages = append(conv.Messages, domain.Message{ID: "m2", Role: domain.RoleModel, Text: "hi", Timestamp: 2})
	require.NoError(t, col.Put(ctx, domain.ConversationID, conv))

	got, ok, err = col.Get(ctx, domain.ConversationID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got.Messages, 2, "put replaces the record under the same id")
}

func TestSubscribeDeliversCurrentState(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	col := store.Open[domain.FavoriteVerse](p, domain.GuestUserID, domain.CollectionFavorites, store.Options{})

	_, err := col.Append(ctx, domain.FavoriteVerse{Reference: "Psalm 23:1"})
	require.NoError(t, err)

	var got []domain.FavoriteVerse
	unsub, err := col.Subscribe(ctx, func(recs []domain.FavoriteVerse) { got = recs })
	require.NoError(t, err)
	defer unsub()

	require.Len(t, got, 1)
	assert.Equal(t, "Psalm 23:1", got[0].Reference)
}
