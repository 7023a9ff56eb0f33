// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ntask/internal/clock"
	"ntask/internal/service"
)

// ErrNotFound is returned when a task id is unknown.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	media []service.MediaAttachment
	calls []string

	// Clock resolves "today"; nil means the system clock.
	Clock clock.Clock

	// Error injection for testing
	ListTasksErr   error
	SummarizeErr   error
	CreateTaskErr  error
	UpdateTaskErr  error
	AttachMediaErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask adds a task to the fake store. An empty date means no date.
func (f *FakeService) AddTask(id, title, date, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: id, Title: title, Status: status}
	if date != "" {
		t.Date = &date
	}
	f.tasks = append(f.tasks, t)
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Media returns a copy of the recorded attachments.
func (f *FakeService) Media() []service.MediaAttachment {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.MediaAttachment, len(f.media))
	copy(out, f.media)
	return out
}

// Calls returns the names of the operations invoked so far.
func (f *FakeService) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeService) record(op string) {
	f.calls = append(f.calls, op)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, q service.TaskQuery) (service.TaskSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return service.TaskSet{}, f.ListTasksErr
	}

	date := f.Clock.Resolve(q.Date)
	var matched []service.Task
	for _, t := range f.tasks {
		if date != "" && (t.Date == nil || *t.Date != date) {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.Keyword != "" && !strings.Contains(t.Title, q.Keyword) {
			continue
		}
		matched = append(matched, t)
	}
	return service.TaskSet{Tasks: matched}, nil
}

// Summarize implements service.Service.
func (f *FakeService) Summarize(ctx context.Context) (service.Summary, error) {
	if f.SummarizeErr != nil {
		return service.Summary{}, f.SummarizeErr
	}
	set, err := f.ListTasks(ctx, service.TaskQuery{})
	if err != nil {
		return service.Summary{}, err
	}
	return service.Tally(set), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, t service.NewTask) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return "", f.CreateTaskErr
	}
	if strings.TrimSpace(t.Title) == "" {
		return "", &service.InvalidTaskError{Field: "title", Reason: "is required"}
	}
	if t.Date == "" {
		return "", &service.InvalidTaskError{Field: "date", Reason: "is required"}
	}

	status := t.Status
	if status == "" {
		status = service.DefaultStatus
	}
	date := f.Clock.Resolve(t.Date)
	id := uuid.NewString()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: t.Title, Date: &date, Status: status})
	return id, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, p service.TaskPatch) (service.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.IsEmpty() {
		return service.NoOp, nil
	}
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.NoOp, f.UpdateTaskErr
	}

	if strings.TrimSpace(id) == "" {
		return service.NoOp, &service.InvalidTaskError{Field: "id", Reason: "is required"}
	}

	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if service.IsSet(p.Title) {
			f.tasks[i].Title = *p.Title
		}
		if service.IsSet(p.Date) {
			date := f.Clock.Resolve(*p.Date)
			f.tasks[i].Date = &date
		}
		if service.IsSet(p.Status) {
			f.tasks[i].Status = *p.Status
		}
		return service.Updated, nil
	}
	return service.NoOp, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// AttachMedia implements service.Service.
func (f *FakeService) AttachMedia(ctx context.Context, m service.MediaAttachment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AttachMedia")
	if f.AttachMediaErr != nil {
		return "", f.AttachMediaErr
	}
	f.media = append(f.media, m)
	return "Image saved to Notion with caption: " + m.Caption, nil
}
