package journey_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen/internal/adapters/storage/localkv"
	"github.com/lumenlabs/lumen/internal/app/journey"
	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/store"
)

func newService(t *testing.T) *journey.Service {
	t.Helper()
	kv, err := localkv.OpenKV(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	p := &store.Provider{Local: localkv.NewBackend(kv)}
	return journey.NewService(p, domain.GuestUserID)
}

func TestTaskCatalog(t *testing.T) {
	tasks := journey.Tasks()
	require.NotEmpty(t, tasks)

	task, ok := journey.TaskByID("journal")
	require.True(t, ok)
	assert.Equal(t, "Spiritual Journal", task.Title)

	_, ok = journey.TaskByID("nope")
	assert.False(t, ok)
}

func TestAddLogDeniesUnknownTask(t *testing.T) {
	_, err := newService(t).AddLog(context.Background(), "nope", "some reflection")
	assert.Error(t, err)
}

func TestAddLogDeniesEmptyContent(t *testing.T) {
	_, err := newService(t).AddLog(context.Background(), "journal", "   ")
	assert.Error(t, err)
}

func TestAddEditAndListLogs(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	id, err := s.AddLog(ctx, "journal", "Grateful for my family today.")
	require.NoError(t, err)

	logs, err := s.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "journal", logs[0].TaskID)
	assert.Equal(t, "Spiritual Journal", logs[0].TaskTitle, "log carries the catalog title")
	assert.NotZero(t, logs[0].Timestamp)

	require.NoError(t, s.EditLog(ctx, id, "Grateful for my family and health."))
	logs, err = s.ListLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Grateful for my family and health.", logs[0].Content)
	assert.Equal(t, "journal", logs[0].TaskID, "edit only touches content")

	require.NoError(t, s.DeleteLog(ctx, id))
	logs, err = s.ListLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
