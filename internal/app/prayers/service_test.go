package prayers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen/internal/adapters/storage/localkv"
	"github.com/lumenlabs/lumen/internal/app/prayers"
	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/store"
)

func newService(t *testing.T) *prayers.Service {
	t.Helper()
	kv, err := localkv.OpenKV(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	p := &store.Provider{Local: localkv.NewBackend(kv)}
	return prayers.NewService(p, domain.GuestUserID)
}

func TestAddRequiresTitleAndContent(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	_, err := s.Add(ctx, prayers.AddInput{Title: "  ", Content: "c"})
	assert.Error(t, err)
	_, err = s.Add(ctx, prayers.AddInput{Title: "t", Content: ""})
	assert.Error(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	remindAt := domain.MillisAt(time.Now().Add(2 * time.Hour))
	id, err := s.Add(ctx, prayers.AddInput{
		Title:        "Mom's surgery",
		Content:      "That it goes well on Friday",
		Description:  "9am at St. Mary's",
		ReminderTime: remindAt,
	})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, remindAt, list[0].ReminderTime)
	assert.False(t, list[0].IsAnswered)
	assert.NotZero(t, list[0].Date)
}

func TestToggleAnswered(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	id, err := s.Add(ctx, prayers.AddInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, s.ToggleAnswered(ctx, id, false))
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.True(t, list[0].IsAnswered)

	require.NoError(t, s.ToggleAnswered(ctx, id, true))
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.False(t, list[0].IsAnswered)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	id, err := s.Add(ctx, prayers.AddInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	require.NoError(t, s.Delete(ctx, id))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPrayWithAIPrompt(t *testing.T) {
	got := prayers.PrayWithAIPrompt("Mom's surgery", "That it goes well", "Friday 9am")
	assert.Contains(t, got, `Title: "Mom's surgery"`)
	assert.Contains(t, got, `Details: "That it goes well"`)
	assert.Contains(t, got, `Additional Context: "Friday 9am"`)

	got = prayers.PrayWithAIPrompt("t", "c", "")
	assert.NotContains(t, got, "Additional Context")
}
