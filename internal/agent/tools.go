// Package agent exposes the task service to an LLM as callable tools and
// runs the tool-calling conversation loop.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"ntask/internal/service"
)

// Tool names as seen by the model.
const (
	ToolGetTasks   = "get_tasks"
	ToolAddTask    = "add_task"
	ToolUpdateTask = "update_task"
	ToolSummary    = "get_task_summary"
)

type getTasksArgs struct {
	DateFilter string `json:"date_filter"`
	Status     string `json:"status"`
	Keyword    string `json:"keyword"`
}

type addTaskArgs struct {
	Title   string `json:"title"`
	DateStr string `json:"date_str"`
	Status  string `json:"status"`
}

type updateTaskArgs struct {
	PageID  string  `json:"page_id"`
	Title   *string `json:"title"`
	DateStr *string `json:"date_str"`
	Status  *string `json:"status"`
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func decodeArgs(tool string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("tool %s: %w: %v", tool, ErrInvalidArguments, err)
	}
	return nil
}

// TaskTools returns the four task actions: list, create, update and summarize.
func TaskTools() []Tool {
	return []Tool{
		{
			Name: ToolGetTasks,
			Description: "Query tasks from the database. All filters are optional and combine with AND. " +
				"Returns a JSON array of {id, title, date, status} or the text 'No tasks found.'",
			Parameters: objectSchema(map[string]any{
				"date_filter": stringProp(`Exact date YYYY-MM-DD, or "today"`),
				"status":      stringProp(`Status name, e.g. "Done", "Not Started", "In Progress"`),
				"keyword":     stringProp("Text the task title must contain"),
			}),
			Handler: getTasks,
		},
		{
			Name:        ToolAddTask,
			Description: "Create a new task. Returns the new task id.",
			Parameters: objectSchema(map[string]any{
				"title":    stringProp("Task title"),
				"date_str": stringProp(`Date YYYY-MM-DD, or "today"`),
				"status":   stringProp(`Status name, defaults to "Not Started"`),
			}, "title", "date_str"),
			Handler: addTask,
		},
		{
			Name: ToolUpdateTask,
			Description: "Update any combination of title, date or status of a task. " +
				"page_id comes from get_tasks.",
			Parameters: objectSchema(map[string]any{
				"page_id":  stringProp("Task id"),
				"title":    stringProp("New title"),
				"date_str": stringProp("New date YYYY-MM-DD"),
				"status":   stringProp("New status name"),
			}, "page_id"),
			Handler: updateTask,
		},
		{
			Name:        ToolSummary,
			Description: "Count tasks grouped by status. Returns a JSON object or 'No tasks found.'",
			Parameters:  objectSchema(map[string]any{}),
			Handler:     taskSummary,
		},
	}
}

// DefaultRegistry returns a registry holding TaskTools.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range TaskTools() {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}

func getTasks(ctx context.Context, svc service.Service, raw json.RawMessage) (string, error) {
	var args getTasksArgs
	if err := decodeArgs(ToolGetTasks, raw, &args); err != nil {
		return "", err
	}
	set, err := svc.ListTasks(ctx, service.TaskQuery{
		Date:    args.DateFilter,
		Status:  args.Status,
		Keyword: args.Keyword,
	})
	if err != nil {
		return "", err
	}
	if set.Empty() {
		return service.NoTasksFound, nil
	}
	data, err := json.Marshal(set)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func addTask(ctx context.Context, svc service.Service, raw json.RawMessage) (string, error) {
	var args addTaskArgs
	if err := decodeArgs(ToolAddTask, raw, &args); err != nil {
		return "", err
	}
	return svc.CreateTask(ctx, service.NewTask{
		Title:  args.Title,
		Date:   args.DateStr,
		Status: args.Status,
	})
}

func updateTask(ctx context.Context, svc service.Service, raw json.RawMessage) (string, error) {
	var args updateTaskArgs
	if err := decodeArgs(ToolUpdateTask, raw, &args); err != nil {
		return "", err
	}
	result, err := svc.UpdateTask(ctx, args.PageID, service.TaskPatch{
		Title:  args.Title,
		Date:   args.DateStr,
		Status: args.Status,
	})
	if err != nil {
		return "", err
	}
	return result.String(), nil
}

func taskSummary(ctx context.Context, svc service.Service, _ json.RawMessage) (string, error) {
	summary, err := svc.Summarize(ctx)
	if err != nil {
		return "", err
	}
	if summary.Empty() {
		return service.NoTasksFound, nil
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
