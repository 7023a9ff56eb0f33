package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ntask/internal/agent"
	"ntask/internal/config"
	"ntask/internal/exitcode"
	"ntask/internal/logging"
	"ntask/internal/service"
)

func init() {
	Register(&ChatCmd{})
}

// ChatCmd sends one message to the task agent and prints its reply.
type ChatCmd struct{}

func (c *ChatCmd) Name() string      { return "chat" }
func (c *ChatCmd) Aliases() []string { return []string{"ask"} }
func (c *ChatCmd) Synopsis() string  { return "Ask the task agent in plain language" }
func (c *ChatCmd) Usage() string     { return "ntask chat <message...>" }
func (c *ChatCmd) NeedsAuth() bool   { return true }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		fmt.Fprintln(errOut, "error: message required")
		return exitcode.UserError
	}
	if err := cfg.RequireLLM(); err != nil {
		return reportError(errOut, err)
	}

	a := newAgent(cfg, svc, errOut)
	reply, err := a.Run(ctx, agent.Input{Text: message})
	if err != nil {
		return reportError(errOut, err)
	}

	fmt.Fprintln(out, reply)
	return exitcode.Success
}

func newAgent(cfg *config.Config, svc service.Service, logOut io.Writer) *agent.Agent {
	log := logging.New(logOut, cfg.Debug).With().Str("component", "agent").Logger()
	return agent.New(cfg.LLM, agent.NewDispatcher(agent.DefaultRegistry(), svc), agent.WithLogger(log))
}
