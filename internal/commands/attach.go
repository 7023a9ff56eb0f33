package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"

	"ntask/internal/config"
	"ntask/internal/exitcode"
	"ntask/internal/service"
)

func init() {
	Register(&AttachCmd{})
}

// AttachCmd implements the attach command.
type AttachCmd struct {
	caption string
	target  string
}

// SetCaption sets the caption (for testing).
func (c *AttachCmd) SetCaption(caption string) {
	c.caption = caption
}

// SetTarget sets the target database id (for testing).
func (c *AttachCmd) SetTarget(target string) {
	c.target = target
}

func (c *AttachCmd) Name() string      { return "attach" }
func (c *AttachCmd) Aliases() []string { return nil }
func (c *AttachCmd) Synopsis() string  { return "Save an image URL to the media database" }
func (c *AttachCmd) Usage() string {
	return "ntask attach [--caption <text>] [--target <database-id>] <url>"
}
func (c *AttachCmd) NeedsAuth() bool { return true }

func (c *AttachCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.caption, "caption", "", "")
	fs.StringVar(&c.caption, "c", "", "")
	fs.StringVar(&c.target, "target", "", "")
}

func (c *AttachCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: exactly one url required")
		return exitcode.UserError
	}
	u, err := url.Parse(args[0])
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fmt.Fprintf(errOut, "error: invalid url: %s\n", args[0])
		return exitcode.UserError
	}

	msg, err := svc.AttachMedia(ctx, service.MediaAttachment{TargetID: c.target, URL: args[0], Caption: c.caption})
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}
