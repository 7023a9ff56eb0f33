package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ntask/internal/config"
	"ntask/internal/exitcode"
	"ntask/internal/service"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command.
type UpdateCmd struct {
	title  string
	date   string
	status string
}

// SetFields sets the fields to change (for testing). Empty values are left alone.
func (c *UpdateCmd) SetFields(title, date, status string) {
	c.title, c.date, c.status = title, date, status
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return []string{"edit"} }
func (c *UpdateCmd) Synopsis() string  { return "Change a task's title, date or status" }
func (c *UpdateCmd) Usage() string {
	return "ntask update [--title <title>] [--date <date|today>] [--status <status>] <ref>"
}
func (c *UpdateCmd) NeedsAuth() bool { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	var patch service.TaskPatch
	if c.title != "" {
		patch.Title = &c.title
	}
	if c.date != "" {
		patch.Date = &c.date
	}
	if c.status != "" {
		patch.Status = &c.status
	}

	return runUpdate(ctx, cfg, svc, args, patch, out, errOut)
}

// runUpdate is the shared implementation for update and done.
func runUpdate(ctx context.Context, cfg *config.Config, svc service.Service, args []string, patch service.TaskPatch, out, errOut io.Writer) int {
	id, code := resolveRefArgs(ctx, svc, args, errOut)
	if code != exitcode.Success {
		return code
	}

	result, err := svc.UpdateTask(ctx, id, patch)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, result)
	}
	return exitcode.Success
}
