// Package journey covers the daily-journey activity log: a fixed catalog of
// spiritual tasks and the user's reflections on them.
package journey

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

// Task is one suggested daily activity. ActionPrompt, when set, hands the
// user off to the chat with a prepared prompt.
type Task struct {
	ID           string
	Title        string
	Duration     string
	Description  string
	ActionLabel  string
	ActionPrompt string
}

var tasks = []Task{
	{
		ID:          "journal",
		Title:       "Spiritual Journal",
		Duration:    "1 MIN",
		Description: "Reflect on today's blessings. Write down three things you are grateful for and how you've seen God's hand in your life today.",
	},
	{
		ID:           "verse",
		Title:        "Your Verse",
		Duration:     "3 MIN",
		Description:  "Read Psalm 23 today. Focus on the comfort of the Shepherd's presence in the valley. Meditate on His guidance.",
		ActionLabel:  "Read Psalm 23",
		ActionPrompt: "Please show me Psalm 23 and guide me through a short meditation on it.",
	},
	{
		ID:           "devotional",
		Title:        "Personalized Devotional",
		Duration:     "3 MIN",
		Description:  "Today's devotional focuses on Trust. Learn how letting go of control can bring a deeper sense of peace and purpose.",
		ActionLabel:  "Start Devotional",
		ActionPrompt: "Please share a short devotional about Trust and letting go of control, including a relevant scripture.",
	},
}

// Tasks returns the daily task catalog.
func Tasks() []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// TaskByID looks up a catalog task.
func TaskByID(id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

type Service struct {
	col *store.Collection[domain.ActivityLog]
	log zerolog.Logger
}

func NewService(p *store.Provider, user domain.UserID) *Service {
	return &Service{
		col: store.Open[domain.ActivityLog](p, user, domain.CollectionLogs, store.Options{TimeField: "timestamp"}),
		log: observability.WithComponent("journey"),
	}
}

// AddLog records a reflection for a catalog task.
func (s *Service) AddLog(ctx context.Context, taskID, content string) (string, error) {
	task, ok := TaskByID(taskID)
	if !ok {
		return "", fmt.Errorf("unknown task %q", taskID)
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("content is required")
	}

	id, err := s.col.Append(ctx, domain.ActivityLog{
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Content:   content,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("adding activity log")
		return "", err
	}
	return id, nil
}

// EditLog replaces a reflection's content.
func (s *Service) EditLog(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	return s.col.Update(ctx, id, map[string]any{"content": content})
}

// DeleteLog removes a reflection. Idempotent.
func (s *Service) DeleteLog(ctx context.Context, id string) error {
	return s.col.Remove(ctx, id)
}

// ListLogs returns reflections, newest first.
func (s *Service) ListLogs(ctx context.Context) ([]domain.ActivityLog, error) {
	return s.col.Load(ctx)
}
