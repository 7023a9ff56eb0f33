// Package bot runs the Telegram front end: text goes to the agent, photos
// are filed in the media database.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ntask/internal/agent"
	"ntask/internal/service"
	"ntask/internal/telegram"
)

// WelcomeText is the reply to /start.
const WelcomeText = "👋 *Welcome to the Notion Task Manager Bot!*\n\n" +
	"I can help you manage your Notion tasks. Try:\n" +
	"• _Show me all tasks_\n" +
	"• _What are today's tasks?_\n" +
	"• _Add a task called 'Meeting' for 2026-02-20_\n" +
	"• _Update the 'Meeting' task to Done_\n" +
	"• _Give me a task summary_\n" +
	"• Send a photo and I'll save it to Notion!\n\n" +
	"Just type a message and I'll handle it! 🚀"

const defaultRetryDelay = 3 * time.Second

// Messenger is the subset of the Bot API the bot needs.
type Messenger interface {
	GetUpdates(ctx context.Context, offset int) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string, markdown bool) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
	FileURL(ctx context.Context, fileID string) (string, error)
}

// Responder produces a reply to a user turn.
type Responder interface {
	Run(ctx context.Context, in agent.Input) (string, error)
}

// Bot dispatches incoming messages.
type Bot struct {
	tg         Messenger
	agent      Responder
	svc        service.Service
	log        zerolog.Logger
	retryDelay time.Duration
}

// Option configures a Bot.
type Option func(*Bot)

// WithLogger sets the bot logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Bot) { b.log = l }
}

// WithRetryDelay sets the pause after a failed getUpdates.
func WithRetryDelay(d time.Duration) Option {
	return func(b *Bot) { b.retryDelay = d }
}

// New creates a bot.
func New(tg Messenger, a Responder, svc service.Service, opts ...Option) *Bot {
	b := &Bot{
		tg:         tg,
		agent:      a,
		svc:        svc,
		log:        zerolog.Nop(),
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run polls for updates until ctx is cancelled. Updates are handled one at
// a time, in order.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info().Msg("bot is running")

	offset := 0
	for {
		updates, err := b.tg.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.Error().Err(err).Msg("get updates failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message != nil {
				b.Handle(ctx, *u.Message)
			}
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

// Handle processes a single message.
func (b *Bot) Handle(ctx context.Context, msg telegram.Message) {
	log := b.log.With().
		Str("request_id", uuid.NewString()).
		Int64("chat_id", msg.Chat.ID).
		Str("user", senderName(msg)).
		Logger()

	switch {
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, log, msg)
	case msg.Command() == "start":
		b.reply(ctx, log, msg.Chat.ID, WelcomeText, true)
	case msg.IsCommand():
		log.Debug().Str("command", msg.Command()).Msg("ignoring command")
	case msg.Text != "":
		b.handleText(ctx, log, msg)
	}
}

func (b *Bot) handleText(ctx context.Context, log zerolog.Logger, msg telegram.Message) {
	log.Info().Str("text", msg.Text).Msg("message")
	b.typing(ctx, log, msg.Chat.ID)

	response, err := b.agent.Run(ctx, agent.Input{Text: msg.Text})
	if err != nil {
		log.Error().Err(err).Msg("agent failed")
		response = fmt.Sprintf("⚠️ Something went wrong:\n`%v`", err)
	}
	b.reply(ctx, log, msg.Chat.ID, response, true)
}

func (b *Bot) handlePhoto(ctx context.Context, log zerolog.Logger, msg telegram.Message) {
	log.Info().Str("caption", msg.Caption).Msg("photo")
	b.typing(ctx, log, msg.Chat.ID)

	response, err := b.savePhoto(ctx, msg)
	if err != nil {
		log.Error().Err(err).Msg("saving photo failed")
		response = fmt.Sprintf("Something went wrong: %v", err)
	}
	b.reply(ctx, log, msg.Chat.ID, response, false)
}

func (b *Bot) savePhoto(ctx context.Context, msg telegram.Message) (string, error) {
	largest := msg.Photo[len(msg.Photo)-1]
	fileURL, err := b.tg.FileURL(ctx, largest.FileID)
	if err != nil {
		return "", err
	}

	if _, err := b.svc.AttachMedia(ctx, service.MediaAttachment{URL: fileURL, Caption: msg.Caption}); err != nil {
		return "", err
	}
	if msg.Caption != "" {
		return "Saved to Notion!\n" + msg.Caption, nil
	}
	return "Image saved to Notion!", nil
}

func (b *Bot) typing(ctx context.Context, log zerolog.Logger, chatID int64) {
	if err := b.tg.SendChatAction(ctx, chatID, telegram.ActionTyping); err != nil {
		log.Warn().Err(err).Msg("chat action failed")
	}
}

// reply sends text, falling back to plain text when Telegram rejects the
// Markdown.
func (b *Bot) reply(ctx context.Context, log zerolog.Logger, chatID int64, text string, markdown bool) {
	err := b.tg.SendMessage(ctx, chatID, text, markdown)
	var apiErr *telegram.APIError
	if err != nil && markdown && errors.As(err, &apiErr) {
		log.Debug().Err(err).Msg("markdown rejected, resending as plain text")
		err = b.tg.SendMessage(ctx, chatID, text, false)
	}
	if err != nil {
		log.Error().Err(err).Msg("send message failed")
	}
}

func senderName(msg telegram.Message) string {
	if msg.From == nil {
		return ""
	}
	if msg.From.FirstName != "" {
		return msg.From.FirstName
	}
	return msg.From.Username
}
