package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"

	"ntask/internal/clock"
	"ntask/internal/config"
)

const (
	// DefaultMaxSteps bounds the model round-trips for one message.
	DefaultMaxSteps = 6

	// FallbackReply is returned when the model produced no text.
	FallbackReply = "Sorry, I could not process that request."

	defaultImagePrompt = "What do you see in this image?"
	maxTokens          = 512
	maxRetries         = 2
)

// Input is one user turn.
type Input struct {
	Text string
	// ImageBase64 is an optional JPEG sent alongside the text.
	ImageBase64 string
}

// Agent answers user messages by letting the model call the task tools.
type Agent struct {
	client     openai.Client
	model      string
	dispatcher *Dispatcher
	clock      clock.Clock
	maxSteps   int
	log        zerolog.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithClock sets the clock used for the date line of the system prompt.
func WithClock(c clock.Clock) Option {
	return func(a *Agent) { a.clock = c }
}

// WithLogger sets the agent logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Agent) { a.log = l }
}

// WithMaxSteps overrides DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(a *Agent) { a.maxSteps = n }
}

// New creates an agent talking to the OpenAI-compatible endpoint in cfg.
func New(cfg config.LLMConfig, d *Dispatcher, opts ...Option) *Agent {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(maxRetries),
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultLLMModel
	}

	a := &Agent{
		client:     openai.NewClient(reqOpts...),
		model:      model,
		dispatcher: d,
		clock:      clock.System,
		maxSteps:   DefaultMaxSteps,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run sends the user turn to the model, executes any tool calls it makes and
// returns the model's final text.
func (a *Agent) Run(ctx context.Context, in Input) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt(a.clock.Today())),
			userMessage(in),
		},
		Tools:               a.toolParams(),
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(maxTokens),
	}

	for step := 0; step < a.maxSteps; step++ {
		completion, err := a.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("agent: chat completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return "", errors.New("agent: no choices in response")
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			if text := strings.TrimSpace(msg.Content); text != "" {
				return text, nil
			}
			return FallbackReply, nil
		}

		params.Messages = append(params.Messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			result, err := a.callTool(ctx, call.Function.Name, call.Function.Arguments)
			if err != nil {
				return "", fmt.Errorf("agent: tool %s: %w", call.Function.Name, err)
			}
			params.Messages = append(params.Messages, openai.ToolMessage(result, call.ID))
		}
	}

	a.log.Warn().Int("steps", a.maxSteps).Msg("agent step limit reached")
	return FallbackReply, nil
}

// callTool runs a tool. Mistakes in the call itself come back as the tool
// result so the model can correct them; store failures are returned.
func (a *Agent) callTool(ctx context.Context, name, args string) (string, error) {
	a.log.Debug().Str("tool", name).Str("args", args).Msg("tool call")

	result, err := a.dispatcher.Dispatch(ctx, name, args)
	if err == nil {
		return result, nil
	}
	if !IsCallError(err) {
		return "", err
	}
	a.log.Warn().Err(err).Str("tool", name).Msg("tool call rejected")
	return "Error: " + err.Error(), nil
}

func (a *Agent) toolParams() []openai.ChatCompletionToolUnionParam {
	tools := a.dispatcher.Tools()
	params := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		params = append(params, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        t.Name,
			Description: openai.String(t.Description),
			Parameters:  openai.FunctionParameters(t.Parameters),
		}))
	}
	return params
}

func userMessage(in Input) openai.ChatCompletionMessageParamUnion {
	if in.ImageBase64 == "" {
		return openai.UserMessage(in.Text)
	}
	text := in.Text
	if text == "" {
		text = defaultImagePrompt
	}
	return openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(text),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:image/jpeg;base64," + in.ImageBase64,
		}),
	})
}
