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
	Register(&SummaryCmd{})
}

// SummaryCmd implements the summary command.
type SummaryCmd struct {
	json bool
}

// SetJSON selects JSON output (for testing).
func (c *SummaryCmd) SetJSON(v bool) {
	c.json = v
}

func (c *SummaryCmd) Name() string      { return "summary" }
func (c *SummaryCmd) Aliases() []string { return []string{"stats"} }
func (c *SummaryCmd) Synopsis() string  { return "Count tasks by status" }
func (c *SummaryCmd) Usage() string     { return "ntask summary [--json]" }
func (c *SummaryCmd) NeedsAuth() bool   { return true }

func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.json, "json", false, "")
}

func (c *SummaryCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	summary, err := svc.Summarize(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	switch {
	case c.json:
		if err := output.FormatJSON(out, summary); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
	case summary.Empty():
		if !cfg.Quiet {
			fmt.Fprintln(out, service.NoTasksFound)
		}
	default:
		output.FormatSummary(out, summary)
	}
	return exitcode.Success
}
