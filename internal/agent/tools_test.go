package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntask/internal/agent"
	"ntask/internal/clock"
	"ntask/internal/service"
	"ntask/internal/testutil"
)

func newDispatcher(svc service.Service) *agent.Dispatcher {
	return agent.NewDispatcher(agent.DefaultRegistry(), svc)
}

func TestDefaultRegistry_HasFourActions(t *testing.T) {
	tools := agent.DefaultRegistry().All()
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		assert.Equal(t, "object", tool.Parameters["type"], tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
	}
	assert.Equal(t, []string{"add_task", "get_task_summary", "get_tasks", "update_task"}, names)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := agent.NewRegistry()
	require.NoError(t, r.Register(agent.Tool{Name: "x"}))
	assert.Error(t, r.Register(agent.Tool{Name: "x"}))
}

func TestDispatch_GetTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Clock = clock.Fixed(time.Date(2026, 2, 20, 9, 0, 0, 0, time.Local))
	svc.AddTask("a", "Meeting", "2026-02-20", "Done")
	svc.AddTask("b", "Gym", "2026-02-21", "Done")

	out, err := newDispatcher(svc).Dispatch(context.Background(), agent.ToolGetTasks, `{"date_filter":"today","status":"Done"}`)
	require.NoError(t, err)

	var tasks []service.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Meeting", tasks[0].Title)
}

func TestDispatch_GetTasksEmpty(t *testing.T) {
	svc := testutil.NewFakeService()

	out, err := newDispatcher(svc).Dispatch(context.Background(), agent.ToolGetTasks, "")
	require.NoError(t, err)
	assert.Equal(t, "No tasks found.", out)
}

func TestDispatch_AddTask(t *testing.T) {
	svc := testutil.NewFakeService()

	id, err := newDispatcher(svc).Dispatch(context.Background(), agent.ToolAddTask, `{"title":"Meeting","date_str":"2026-02-20"}`)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, id, tasks[0].ID)
	assert.Equal(t, "Not Started", tasks[0].Status)
}

func TestDispatch_AddTaskMissingDate(t *testing.T) {
	svc := testutil.NewFakeService()

	_, err := newDispatcher(svc).Dispatch(context.Background(), agent.ToolAddTask, `{"title":"Meeting"}`)
	var invalid *service.InvalidTaskError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, "date", invalid.Field)
}

func TestDispatch_UpdateTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "Meeting", "2026-02-20", "Not Started")
	d := newDispatcher(svc)

	out, err := d.Dispatch(context.Background(), agent.ToolUpdateTask, `{"page_id":"a","status":"Done"}`)
	require.NoError(t, err)
	assert.Equal(t, "Updated successfully", out)
	assert.Equal(t, "Done", svc.Tasks()[0].Status)

	out, err = d.Dispatch(context.Background(), agent.ToolUpdateTask, `{"page_id":"a"}`)
	require.NoError(t, err)
	assert.Equal(t, "Nothing to update", out)
}

func TestDispatch_UpdateTaskEmptyFieldsUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "Meeting", "2026-02-20", "Not Started")
	d := newDispatcher(svc)

	out, err := d.Dispatch(context.Background(), agent.ToolUpdateTask, `{"page_id":"a","title":"","date_str":""}`)
	require.NoError(t, err)
	assert.Equal(t, "Nothing to update", out)

	out, err = d.Dispatch(context.Background(), agent.ToolUpdateTask, `{"page_id":"a","title":"","status":"Done"}`)
	require.NoError(t, err)
	assert.Equal(t, "Updated successfully", out)

	task := svc.Tasks()[0]
	assert.Equal(t, "Meeting", task.Title)
	assert.Equal(t, "2026-02-20", *task.Date)
	assert.Equal(t, "Done", task.Status)
}

func TestDispatch_Summary(t *testing.T) {
	svc := testutil.NewFakeService()
	d := newDispatcher(svc)

	out, err := d.Dispatch(context.Background(), agent.ToolSummary, `{}`)
	require.NoError(t, err)
	assert.Equal(t, "No tasks found.", out)

	svc.AddTask("a", "A", "", "Done")
	svc.AddTask("b", "B", "", "Done")
	svc.AddTask("c", "C", "", "Pending")

	out, err = d.Dispatch(context.Background(), agent.ToolSummary, `{}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Done":2,"Pending":1}`, out)
}

func TestDispatch_ErrorsReturnedUnmodified(t *testing.T) {
	storeErr := &service.StoreQueryError{StatusCode: 400, Body: "bad filter"}
	svc := testutil.NewFakeService()
	svc.ListTasksErr = storeErr

	_, err := newDispatcher(svc).Dispatch(context.Background(), agent.ToolGetTasks, `{}`)
	assert.Same(t, storeErr, err)
}

func TestDispatch_UnknownToolAndBadArgs(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())

	_, err := d.Dispatch(context.Background(), "delete_task", `{}`)
	assert.ErrorIs(t, err, agent.ErrUnknownTool)

	_, err = d.Dispatch(context.Background(), agent.ToolAddTask, `{"title":`)
	assert.ErrorIs(t, err, agent.ErrInvalidArguments)
	assert.True(t, agent.IsCallError(err))
}

func TestIsCallError(t *testing.T) {
	assert.True(t, agent.IsCallError(&service.InvalidTaskError{Field: "date", Reason: "is required"}))
	assert.False(t, agent.IsCallError(&service.StoreQueryError{StatusCode: 401, Body: "unauthorized"}))
	assert.False(t, agent.IsCallError(&service.StoreWriteError{Op: "create", StatusCode: 400, Body: "bad"}))
	assert.False(t, agent.IsCallError(&service.SchemaMismatchError{RecordID: "p1", Reason: "no title"}))
	assert.False(t, agent.IsCallError(context.Canceled))
}
