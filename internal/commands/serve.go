package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ntask/internal/bot"
	"ntask/internal/config"
	"ntask/internal/exitcode"
	"ntask/internal/logging"
	"ntask/internal/service"
	"ntask/internal/telegram"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd runs the Telegram bot until interrupted.
type ServeCmd struct{}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return []string{"bot"} }
func (c *ServeCmd) Synopsis() string  { return "Run the Telegram bot" }
func (c *ServeCmd) Usage() string     { return "ntask serve" }
func (c *ServeCmd) NeedsAuth() bool   { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if err := cfg.RequireTelegram(); err != nil {
		return reportError(errOut, err)
	}
	if err := cfg.RequireLLM(); err != nil {
		return reportError(errOut, err)
	}

	log := logging.New(errOut, cfg.Debug).With().Str("component", "bot").Logger()
	b := bot.New(telegram.New(cfg.Telegram.BotToken), newAgent(cfg, svc, errOut), svc, bot.WithLogger(log))

	if !cfg.Quiet {
		fmt.Fprintln(out, "bot is running, press Ctrl+C to stop")
	}
	if err := b.Run(ctx); err != nil {
		return reportError(errOut, err)
	}
	return exitcode.Success
}
