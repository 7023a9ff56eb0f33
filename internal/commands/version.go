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

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "ntask version" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run prints the version. With --debug it also shows the pinned Notion API
// version and the chat model the agent would use.
func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "%s %s\n", config.AppName, Version)
	if cfg.Debug {
		fmt.Fprintf(out, "notion-version: %s\nmodel: %s\n", orDefault(cfg.Notion.Version, config.DefaultNotionVersion), orDefault(cfg.LLM.Model, config.DefaultLLMModel))
	}
	return exitcode.Success
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
