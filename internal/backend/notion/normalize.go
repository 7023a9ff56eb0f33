package notion

import "ntask/internal/service"

const (
	untitled = "Untitled"
	noStatus = "No Status"
)

// page is a raw database record as returned by the query endpoint.
type page struct {
	ID         string                   `json:"id"`
	Properties map[string]propertyValue `json:"properties"`
}

// propertyValue is the union of the property shapes the normalizer reads.
// Only the member named by Type is populated by the store.
type propertyValue struct {
	Type   string     `json:"type"`
	Title  []richText `json:"title"`
	Status *option    `json:"status"`
	Select *option    `json:"select"`
	Date   *dateRange `json:"date"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type option struct {
	Name string `json:"name"`
}

type dateRange struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// statusKind discriminates how a record carries its status.
type statusKind int

const (
	statusAbsent statusKind = iota
	statusNative            // "status"-typed property
	statusSelect            // legacy "select"-typed property
)

func (p propertyValue) statusKind() statusKind {
	switch {
	case p.Status != nil && p.Status.Name != "":
		return statusNative
	case p.Select != nil && p.Select.Name != "":
		return statusSelect
	default:
		return statusAbsent
	}
}

// canonicalStatus resolves the status property into one status string.
func (p propertyValue) canonicalStatus() string {
	switch p.statusKind() {
	case statusNative:
		return p.Status.Name
	case statusSelect:
		return p.Select.Name
	case statusAbsent:
		return noStatus
	}
	return noStatus
}

// normalize converts a raw record into a Task. Only a missing id or a title
// property without its segment list is an error.
func normalize(s Schema, p page) (service.Task, error) {
	if p.ID == "" {
		return service.Task{}, &service.SchemaMismatchError{Reason: "record has no id"}
	}

	titleProp, ok := p.Properties[s.Title]
	if !ok || titleProp.Title == nil {
		return service.Task{}, &service.SchemaMismatchError{
			RecordID: p.ID,
			Reason:   "property " + s.Title + " has no title segments list",
		}
	}

	task := service.Task{
		ID:     p.ID,
		Title:  untitled,
		Status: noStatus,
	}

	if len(titleProp.Title) > 0 && titleProp.Title[0].PlainText != "" {
		task.Title = titleProp.Title[0].PlainText
	}

	if statusProp, ok := p.Properties[s.Status]; ok {
		task.Status = statusProp.canonicalStatus()
	}

	if dateProp, ok := p.Properties[s.Date]; ok && dateProp.Date != nil && dateProp.Date.Start != "" {
		start := dateProp.Date.Start
		task.Date = &start
	}

	return task, nil
}
