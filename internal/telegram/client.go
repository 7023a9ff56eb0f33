// Package telegram is a minimal Telegram Bot API client: long polling,
// text replies, chat actions and file lookups.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Bot API root.
	DefaultBaseURL = "https://api.telegram.org"

	// PollTimeout is the long-poll wait passed to getUpdates.
	PollTimeout = 30 * time.Second

	// ActionTyping is the chat action shown while a reply is prepared.
	ActionTyping = "typing"
)

// Update is one incoming event.
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an incoming chat message.
type Message struct {
	MessageID int         `json:"message_id"`
	From      *User       `json:"from,omitempty"`
	Chat      Chat        `json:"chat"`
	Text      string      `json:"text"`
	Caption   string      `json:"caption,omitempty"`
	Photo     []PhotoSize `json:"photo,omitempty"`
}

// IsCommand reports whether the message text is a bot command.
func (m Message) IsCommand() bool {
	return strings.HasPrefix(m.Text, "/")
}

// Command returns the command name without the slash or @botname suffix.
func (m Message) Command() string {
	if !m.IsCommand() {
		return ""
	}
	name := strings.TrimPrefix(strings.Fields(m.Text)[0], "/")
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	return name
}

// User is a message sender.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// Chat identifies the conversation.
type Chat struct {
	ID int64 `json:"id"`
}

// PhotoSize is one resolution of a photo; Telegram lists them smallest first.
type PhotoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// APIError is a Bot API call that returned ok=false or a non-200 status.
type APIError struct {
	Method      string
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s failed (HTTP %d): %s", e.Method, e.StatusCode, e.Description)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// Client calls the Bot API with a bot token.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// New creates a client for the given bot token.
func New(token string) *Client {
	return NewWithBaseURL(token, DefaultBaseURL, &http.Client{Timeout: PollTimeout + 10*time.Second})
}

// NewWithBaseURL creates a client against another API root (for testing).
func NewWithBaseURL(token, baseURL string, httpClient *http.Client) *Client {
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("telegram: marshal %s: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create %s request: %w", method, stripURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, stripURL(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: read %s response: %w", method, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return &APIError{Method: method, StatusCode: resp.StatusCode, Description: string(data)}
	}
	if resp.StatusCode != http.StatusOK || !envelope.OK {
		return &APIError{Method: method, StatusCode: resp.StatusCode, Description: envelope.Description}
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("telegram: decode %s result: %w", method, err)
	}
	return nil
}

// GetUpdates long-polls for updates with id >= offset.
func (c *Client) GetUpdates(ctx context.Context, offset int) ([]Update, error) {
	params := map[string]any{
		"offset":          offset,
		"timeout":         int(PollTimeout / time.Second),
		"allowed_updates": []string{"message"},
	}
	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends text to a chat, rendered as Markdown when markdown is set.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markdown bool) error {
	params := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if markdown {
		params["parse_mode"] = "Markdown"
	}
	return c.call(ctx, "sendMessage", params, nil)
}

// SendChatAction shows a transient status such as ActionTyping.
func (c *Client) SendChatAction(ctx context.Context, chatID int64, action string) error {
	params := map[string]any{
		"chat_id": chatID,
		"action":  action,
	}
	return c.call(ctx, "sendChatAction", params, nil)
}

// FileURL resolves a file id to its download URL.
func (c *Client) FileURL(ctx context.Context, fileID string) (string, error) {
	var file struct {
		FilePath string `json:"file_path"`
	}
	if err := c.call(ctx, "getFile", map[string]any{"file_id": fileID}, &file); err != nil {
		return "", err
	}
	if file.FilePath == "" {
		return "", &APIError{Method: "getFile", StatusCode: http.StatusOK, Description: "empty file_path for " + fileID}
	}
	return fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, escapePath(file.FilePath)), nil
}

// stripURL drops the request URL from transport errors; it carries the token.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
