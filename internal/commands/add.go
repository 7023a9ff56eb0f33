package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ntask/internal/config"
	"ntask/internal/exitcode"
	"ntask/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	date   string
	status string
}

// SetDate sets the task date (for testing).
func (c *AddCmd) SetDate(date string) {
	c.date = date
}

// SetStatus sets the task status (for testing).
func (c *AddCmd) SetStatus(status string) {
	c.status = status
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "ntask add --date <date|today> [--status <status>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	id, err := svc.CreateTask(ctx, service.NewTask{Title: title, Date: c.date, Status: c.status})
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, id)
	}
	return exitcode.Success
}
