package notion

import (
	"encoding/json"
	"testing"
	"time"

	"ntask/internal/clock"
	"ntask/internal/service"
)

func filterJSON(t *testing.T, f *Filter) string {
	t.Helper()
	data, err := json.Marshal(queryRequest{Filter: f})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestBuildFilter_Combinations(t *testing.T) {
	c := clock.Fixed(fixedDay)

	dateClause := `{"property":"Date","date":{"equals":"2026-01-05"}}`
	statusClause := `{"property":"Status","status":{"equals":"Done"}}`
	keywordClause := `{"property":"Task","rich_text":{"contains":"report"}}`

	tests := []struct {
		name     string
		query    service.TaskQuery
		expected string
	}{
		{"none", service.TaskQuery{}, `{}`},
		{"date", service.TaskQuery{Date: "2026-01-05"}, `{"filter":` + dateClause + `}`},
		{"status", service.TaskQuery{Status: "Done"}, `{"filter":` + statusClause + `}`},
		{"keyword", service.TaskQuery{Keyword: "report"}, `{"filter":` + keywordClause + `}`},
		{"date+status", service.TaskQuery{Date: "2026-01-05", Status: "Done"},
			`{"filter":{"and":[` + dateClause + `,` + statusClause + `]}}`},
		{"date+keyword", service.TaskQuery{Date: "2026-01-05", Keyword: "report"},
			`{"filter":{"and":[` + dateClause + `,` + keywordClause + `]}}`},
		{"status+keyword", service.TaskQuery{Status: "Done", Keyword: "report"},
			`{"filter":{"and":[` + statusClause + `,` + keywordClause + `]}}`},
		{"all three", service.TaskQuery{Keyword: "report", Status: "Done", Date: "2026-01-05"},
			`{"filter":{"and":[` + dateClause + `,` + statusClause + `,` + keywordClause + `]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterJSON(t, buildFilter(DefaultSchema, tt.query, c))
			if got != tt.expected {
				t.Errorf("expected %s\ngot      %s", tt.expected, got)
			}
		})
	}
}

func TestBuildFilter_TodayFollowsClock(t *testing.T) {
	q := service.TaskQuery{Date: "today"}

	first := buildFilter(DefaultSchema, q, clock.Fixed(time.Date(2026, 2, 20, 8, 0, 0, 0, time.Local)))
	second := buildFilter(DefaultSchema, q, clock.Fixed(time.Date(2027, 7, 4, 8, 0, 0, 0, time.Local)))

	if first.Date.Equals != "2026-02-20" {
		t.Errorf("expected 2026-02-20, got %s", first.Date.Equals)
	}
	if second.Date.Equals != "2027-07-04" {
		t.Errorf("expected 2027-07-04, got %s", second.Date.Equals)
	}
}

func TestBuildFilter_CustomSchema(t *testing.T) {
	s := Schema{Title: "Name", Status: "State", Date: "Due"}
	got := filterJSON(t, buildFilter(s, service.TaskQuery{Status: "Open", Keyword: "x"}, clock.Fixed(fixedDay)))
	expected := `{"filter":{"and":[{"property":"State","status":{"equals":"Open"}},{"property":"Name","rich_text":{"contains":"x"}}]}}`
	if got != expected {
		t.Errorf("expected %s\ngot      %s", expected, got)
	}
}
