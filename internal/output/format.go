// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"ntask/internal/service"
)

// NoDate is printed in the date column of undated tasks.
const NoDate = "----------"

// FormatTask formats a numbered task line.
// Format: "{N:>4}  {DATE}  [{STATUS}]  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s  [%s]  %s\n", num, date(task), task.Status, normalizeTitle(task.Title))
}

// FormatTaskWithID formats a task line keyed by its page id, used when the
// listing is filtered and row numbers would not match the full list.
func FormatTaskWithID(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%s  %s  [%s]  %s\n", task.ID, date(task), task.Status, normalizeTitle(task.Title))
}

// FormatSummary prints one "status  count" line per status, sorted by status.
func FormatSummary(w io.Writer, s service.Summary) {
	statuses := make([]string, 0, len(s.Counts))
	width := 0
	for status := range s.Counts {
		statuses = append(statuses, status)
		if len(status) > width {
			width = len(status)
		}
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(w, "%-*s  %d\n", width, status, s.Counts[status])
	}
}

// FormatJSON writes v as indented JSON.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func date(task service.Task) string {
	if task.Date == nil || *task.Date == "" {
		return NoDate
	}
	return *task.Date
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
