package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"ntask/internal/service"
)

type queryResponse struct {
	Results []page `json:"results"`
}

// ListTasks queries the task database with the filter built from q.
func (c *Client) ListTasks(ctx context.Context, q service.TaskQuery) (service.TaskSet, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	req := queryRequest{Filter: buildFilter(c.schema, q, c.clock)}
	path := "/databases/" + url.PathEscape(c.databaseID) + "/query"

	status, body, err := c.do(ctx, http.MethodPost, path, req)
	if err != nil {
		return service.TaskSet{}, err
	}
	if status != http.StatusOK {
		return service.TaskSet{}, &service.StoreQueryError{StatusCode: status, Body: string(body)}
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return service.TaskSet{}, fmt.Errorf("notion: decode query response: %w", err)
	}

	tasks := make([]service.Task, 0, len(resp.Results))
	for _, p := range resp.Results {
		task, err := normalize(c.schema, p)
		if err != nil {
			return service.TaskSet{}, err
		}
		tasks = append(tasks, task)
	}

	c.log.Debug().Int("count", len(tasks)).Msg("tasks listed")
	return service.TaskSet{Tasks: tasks}, nil
}

// Summarize counts every task in the database by canonical status.
func (c *Client) Summarize(ctx context.Context) (service.Summary, error) {
	set, err := c.ListTasks(ctx, service.TaskQuery{})
	if err != nil {
		return service.Summary{}, err
	}
	return service.Tally(set), nil
}
