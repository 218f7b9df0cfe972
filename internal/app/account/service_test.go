package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen/internal/adapters/identity"
	"github.com/lumenlabs/lumen/internal/adapters/storage/localkv"
	"github.com/lumenlabs/lumen/internal/app/account"
	"github.com/lumenlabs/lumen/internal/app/prayers"
	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/store"
)

func newFixture(t *testing.T) (*account.Service, *store.Provider) {
	t.Helper()
	kv, err := localkv.OpenKV(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	p := &store.Provider{Local: localkv.NewBackend(kv)}
	return account.NewService(p, identity.NewStatic("")), p
}

func TestProfileDefaultsToZero(t *testing.T) {
	svc, _ := newFixture(t)
	profile, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.UserProfile{}, profile)
}

func TestSaveProfileMerges(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(t)

	require.NoError(t, svc.SaveProfile(ctx, domain.UserProfile{FirstName: "Ana", Bio: "pilgrim"}))

	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ana", profile.FirstName)

	profile.Email = "ana@example.com"
	require.NoError(t, svc.SaveProfile(ctx, profile))

	profile, err = svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.FirstName)
	assert.Equal(t, "pilgrim", profile.Bio)
	assert.Equal(t, "ana@example.com", profile.Email)
}

func TestDeleteAccountErasesEverything(t *testing.T) {
	ctx := context.Background()
	svc, p := newFixture(t)

	wall := prayers.NewService(p, domain.GuestUserID)
	_, err := wall.Add(ctx, prayers.AddInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, svc.SaveProfile(ctx, domain.UserProfile{FirstName: "Ana"}))

	require.NoError(t, svc.DeleteAccount(ctx))

	list, err := wall.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.UserProfile{}, profile)
}
