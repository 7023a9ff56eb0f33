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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "ntask help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	if aliases := DefaultRegistry.Aliases(); len(aliases) > 0 {
		fmt.Fprintln(out, "\nAliases:")
		for _, a := range aliases {
			fmt.Fprintf(out, "  %-8s %s\n", a.Name, a.Command)
		}
	}
	return exitcode.Success
}

const helpText = `Usage:
  ntask                                              List all tasks
  ntask list [common flags] [--date <date|today>] [--status <status>] [--keyword <text>] [--json]
  ntask add [common flags] --date <date|today> [--status <status>] <title...>
  ntask update [common flags] [--title <title>] [--date <date|today>] [--status <status>] <ref>
  ntask done [common flags] <ref>
  ntask summary [common flags] [--json]
  ntask attach [common flags] [--caption <text>] [--target <database-id>] <url>
  ntask chat [common flags] <message...>
  ntask serve [common flags]
  ntask login [common flags] [--notion-key <key>] [--database-id <id>] [--media-database-id <id>]
              [--llm-key <key>] [--telegram-token <token>]
  ntask logout [common flags]
  ntask help
  ntask version

A <ref> is a row number from the unfiltered list or a page id.

Common flags:
  --config <dir>   Override config directory (holds .env)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
