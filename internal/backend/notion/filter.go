package notion

import (
	"ntask/internal/clock"
	"ntask/internal/service"
)

// Filter is one node of the query filter grammar: either a property clause
// or an "and" conjunction of clauses.
type Filter struct {
	Property string        `json:"property,omitempty"`
	Date     *equalsCond   `json:"date,omitempty"`
	Status   *equalsCond   `json:"status,omitempty"`
	RichText *containsCond `json:"rich_text,omitempty"`
	And      []Filter      `json:"and,omitempty"`
}

type equalsCond struct {
	Equals string `json:"equals"`
}

type containsCond struct {
	Contains string `json:"contains"`
}

type queryRequest struct {
	Filter *Filter `json:"filter,omitempty"`
}

// buildFilter returns nil for an empty query, the lone clause for a single
// criterion, and an "and" of clauses in date, status, keyword order otherwise.
func buildFilter(s Schema, q service.TaskQuery, c clock.Clock) *Filter {
	var clauses []Filter

	if q.Date != "" {
		clauses = append(clauses, Filter{
			Property: s.Date,
			Date:     &equalsCond{Equals: c.Resolve(q.Date)},
		})
	}
	if q.Status != "" {
		clauses = append(clauses, Filter{
			Property: s.Status,
			Status:   &equalsCond{Equals: q.Status},
		})
	}
	if q.Keyword != "" {
		clauses = append(clauses, Filter{
			Property: s.Title,
			RichText: &containsCond{Contains: q.Keyword},
		})
	}

	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return &clauses[0]
	default:
		return &Filter{And: clauses}
	}
}
