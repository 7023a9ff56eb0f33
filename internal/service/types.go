// Package service defines the backend-agnostic interface for task operations.
package service

import "encoding/json"

// NoTasksFound is the user-facing rendering of an empty result.
const NoTasksFound = "No tasks found."

// DefaultStatus is the status given to tasks created without one.
const DefaultStatus = "Not Started"

// Task represents a single normalized task record.
type Task struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Date   *string `json:"date"` // ISO date or nil, never ""
	Status string  `json:"status"`
}

// TaskQuery holds the optional list criteria. Empty fields are ignored.
type TaskQuery struct {
	Date    string // YYYY-MM-DD or "today"
	Status  string // exact match
	Keyword string // substring of the title
}

// IsZero reports whether no criterion is set.
func (q TaskQuery) IsZero() bool {
	return q.Date == "" && q.Status == "" && q.Keyword == ""
}

// NewTask holds the fields for task creation.
type NewTask struct {
	Title  string
	Date   string
	Status string // defaults to DefaultStatus
}

// TaskPatch holds a partial update. Nil and empty fields are left unchanged.
type TaskPatch struct {
	Title  *string
	Date   *string
	Status *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return !IsSet(p.Title) && !IsSet(p.Date) && !IsSet(p.Status)
}

// IsSet reports whether a patch field carries a value.
func IsSet(v *string) bool {
	return v != nil && *v != ""
}

// MediaAttachment describes an external file to record in the media database.
type MediaAttachment struct {
	TargetID string // media database id; backend default when empty
	URL      string
	Caption  string
}

// UpdateResult reports the outcome of UpdateTask.
type UpdateResult int

const (
	// NoOp means the patch was empty and nothing was sent.
	NoOp UpdateResult = iota
	// Updated means the store accepted the patch.
	Updated
)

func (r UpdateResult) String() string {
	if r == Updated {
		return "Updated successfully"
	}
	return "Nothing to update"
}

// TaskSet is the result of a list query.
// An empty set is the "no results" sentinel and serializes as NoTasksFound.
type TaskSet struct {
	Tasks []Task
}

// Empty reports whether no task matched.
func (s TaskSet) Empty() bool { return len(s.Tasks) == 0 }

// MarshalJSON renders the tasks as an array, or NoTasksFound when empty.
func (s TaskSet) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return json.Marshal(NoTasksFound)
	}
	return json.Marshal(s.Tasks)
}

// Summary maps canonical status to task count.
// An empty summary means no tasks exist and serializes as NoTasksFound.
type Summary struct {
	Counts map[string]int
}

// Empty reports whether the summary covers no tasks.
func (s Summary) Empty() bool { return len(s.Counts) == 0 }

// MarshalJSON renders the counts as an object, or NoTasksFound when empty.
func (s Summary) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return json.Marshal(NoTasksFound)
	}
	return json.Marshal(s.Counts)
}

// Tally counts tasks by canonical status. An empty set yields an empty Summary.
func Tally(set TaskSet) Summary {
	if set.Empty() {
		return Summary{}
	}
	counts := make(map[string]int)
	for _, t := range set.Tasks {
		counts[t.Status]++
	}
	return Summary{Counts: counts}
}
