// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All store API calls go through this interface.
// Commands, the agent and the bot never import the store client directly.
type Service interface {
	// ListTasks returns tasks matching every set criterion in q.
	// A query matching nothing returns an empty TaskSet, not an error.
	ListTasks(ctx context.Context, q TaskQuery) (TaskSet, error)

	// Summarize counts all tasks by canonical status.
	Summarize(ctx context.Context) (Summary, error)

	// CreateTask creates a task and returns the store-assigned id.
	CreateTask(ctx context.Context, t NewTask) (string, error)

	// UpdateTask applies the fields set in p to the task with the given id.
	// An empty patch returns NoOp without contacting the store.
	UpdateTask(ctx context.Context, id string, p TaskPatch) (UpdateResult, error)

	// AttachMedia records an external file reference and returns a confirmation.
	AttachMedia(ctx context.Context, m MediaAttachment) (string, error)
}
