package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ntask/internal/config"
	"ntask/internal/exitcode"
	"ntask/internal/output"
	"ntask/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `ntask` (no args) and `ntask list [filters]`.
type ListCmd struct {
	date    string
	status  string
	keyword string
	json    bool
}

// SetFilters sets the query filters (for testing).
func (c *ListCmd) SetFilters(date, status, keyword string) {
	c.date, c.status, c.keyword = date, status, keyword
}

// SetJSON selects JSON output (for testing).
func (c *ListCmd) SetJSON(v bool) {
	c.json = v
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "ntask list [--date <date|today>] [--status <status>] [--keyword <text>] [--json]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.keyword, "keyword", "", "")
	fs.BoolVar(&c.json, "json", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	q := service.TaskQuery{Date: c.date, Status: c.status, Keyword: c.keyword}
	set, err := svc.ListTasks(ctx, q)
	if err != nil {
		return reportError(errOut, err)
	}

	if c.json {
		if err := output.FormatJSON(out, set); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	}

	if set.Empty() {
		if !cfg.Quiet {
			fmt.Fprintln(out, service.NoTasksFound)
		}
		return exitcode.Success
	}

	// Row numbers are only stable references for the unfiltered list.
	for i, task := range set.Tasks {
		if q.IsZero() {
			output.FormatTask(out, i+1, task)
		} else {
			output.FormatTaskWithID(out, task)
		}
	}
	return exitcode.Success
}
