package commands

import (
	"context"
	"flag"
	"io"

	"ntask/internal/config"
	"ntask/internal/service"
)

// DoneStatus is the status written by the done command.
const DoneStatus = "Done"

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task Done" }
func (c *DoneCmd) Usage() string     { return "ntask done <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	status := DoneStatus
	return runUpdate(ctx, cfg, svc, args, service.TaskPatch{Status: &status}, out, errOut)
}
