package service_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"ntask/internal/service"
)

func TestTaskSet_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(service.TaskSet{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"No tasks found."` {
		t.Errorf("expected sentinel string, got %s", data)
	}
}

func TestTaskSet_MarshalTasks(t *testing.T) {
	date := "2026-02-20"
	set := service.TaskSet{Tasks: []service.Task{
		{ID: "a", Title: "Meeting", Date: &date, Status: "Done"},
		{ID: "b", Title: "Untitled", Status: "No Status"},
	}}

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	expected := `[{"id":"a","title":"Meeting","date":"2026-02-20","status":"Done"},` +
		`{"id":"b","title":"Untitled","date":null,"status":"No Status"}]`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}

func TestSummary_Marshal(t *testing.T) {
	data, err := json.Marshal(service.Summary{Counts: map[string]int{"Pending": 1, "Done": 2}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"Done":2,"Pending":1}` {
		t.Errorf("unexpected summary json %s", data)
	}

	data, err = json.Marshal(service.Summary{Counts: map[string]int{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"No tasks found."` {
		t.Errorf("expected sentinel string, got %s", data)
	}
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	if !(service.TaskPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	s := "Done"
	if (service.TaskPatch{Status: &s}).IsEmpty() {
		t.Error("patch with status should not be empty")
	}
	blank := ""
	if !(service.TaskPatch{Title: &blank, Date: &blank}).IsEmpty() {
		t.Error("patch with only empty strings should be empty")
	}
}

func TestUpdateResult_String(t *testing.T) {
	if service.Updated.String() != "Updated successfully" {
		t.Errorf("unexpected %q", service.Updated.String())
	}
	if service.NoOp.String() != "Nothing to update" {
		t.Errorf("unexpected %q", service.NoOp.String())
	}
}

func TestStatusCode(t *testing.T) {
	wrapped := fmt.Errorf("listing: %w", &service.StoreQueryError{StatusCode: 400, Body: "bad"})
	if got := service.StatusCode(wrapped); got != 400 {
		t.Errorf("expected 400, got %d", got)
	}
	if got := service.StatusCode(&service.StoreWriteError{Op: "update", StatusCode: 409}); got != 409 {
		t.Errorf("expected 409, got %d", got)
	}
	if got := service.StatusCode(&service.InvalidTaskError{Field: "title"}); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
