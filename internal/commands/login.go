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
	Register(&LoginCmd{})
}

// LoginCmd stores credentials in the config directory's .env file.
// Settings already in the file are kept unless overridden by a flag.
type LoginCmd struct {
	notionKey     string
	databaseID    string
	mediaDatabase string
	llmKey        string
	telegramToken string
}

// SetCredentials sets the flag values (for testing).
func (c *LoginCmd) SetCredentials(notionKey, databaseID, mediaDatabase, llmKey, telegramToken string) {
	c.notionKey = notionKey
	c.databaseID = databaseID
	c.mediaDatabase = mediaDatabase
	c.llmKey = llmKey
	c.telegramToken = telegramToken
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Save credentials to the config directory" }
func (c *LoginCmd) Usage() string {
	return "ntask login [--notion-key <key>] [--database-id <id>] [--media-database-id <id>] [--llm-key <key>] [--telegram-token <token>]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.notionKey, "notion-key", "", "")
	fs.StringVar(&c.databaseID, "database-id", "", "")
	fs.StringVar(&c.mediaDatabase, "media-database-id", "", "")
	fs.StringVar(&c.llmKey, "llm-key", "", "")
	fs.StringVar(&c.telegramToken, "telegram-token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	updates := map[string]string{
		config.EnvNotionKey:       c.notionKey,
		config.EnvDatabaseID:      c.databaseID,
		config.EnvMediaDatabaseID: c.mediaDatabase,
		config.EnvLLMAPIKey:       c.llmKey,
		config.EnvTelegramToken:   c.telegramToken,
	}

	stored, err := cfg.ReadEnvFile()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	for k, v := range updates {
		if v != "" {
			stored[k] = v
		}
	}

	if stored[config.EnvNotionKey] == "" || stored[config.EnvDatabaseID] == "" {
		fmt.Fprintf(errOut, "error: --notion-key and --database-id are required (no saved values in %s)\n", cfg.EnvPath())
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := cfg.WriteEnvFile(stored); err != nil {
		fmt.Fprintf(errOut, "error: failed to save credentials: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
