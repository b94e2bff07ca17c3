// Package llm owns the transport to the remote text-generation service. The
// transport is stateless per call: chat history is replayed in full on every
// send, and the conversation layer, not this package, is the source of truth
// for turn order.
package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"frauddetect/internal/domain"
)

// Low temperature keeps risk assessments near-deterministic.
const analysisTemperature = 0.1

const defaultTimeout = 60 * time.Second

type Config struct {
	APIKey    string
	Model     string
	BaseURL   string // overrides the default OpenAI endpoint when set
	Timeout   time.Duration
	MaxTokens int
}

// OpenAIClient issues one-shot analysis completions and history-replaying
// chat completions against an OpenAI-compatible endpoint.
type OpenAIClient struct {
	client      openai.Client
	instruction string
	model       string
	maxTokens   int
	hasKey      bool
}

func NewOpenAIClient(cfg Config, instruction string) *OpenAIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Single attempt per user action; resubmission is the human's call.
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		instruction: instruction,
		model:       model,
		maxTokens:   maxTokens,
		hasKey:      cfg.APIKey != "",
	}
}

// Complete sends one analysis prompt under the shared system instruction and
// returns the model's raw reply text.
func (c *OpenAIClient) Complete(ctx context.Context, userPrompt string) (string, error) {
	if !c.hasKey {
		return "", &TransportError{Op: "complete", Err: ErrMissingAPIKey}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.instruction),
			openai.UserMessage(userPrompt),
		},
		Temperature:         openai.Float(analysisTemperature),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", &TransportError{Op: "complete", Err: err}
	}
	return firstChoice(resp, "complete")
}

// CompleteChat replays the full prior transcript and sends one new user
// message. History roles map user→user and everything else→assistant.
func (c *OpenAIClient) CompleteChat(ctx context.Context, history []domain.ConversationMessage, message string) (string, error) {
	if !c.hasKey {
		return "", &TransportError{Op: "chat", Err: ErrMissingAPIKey}
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(c.instruction))
	for _, turn := range history {
		if turn.Role == domain.RoleUser {
			messages = append(messages, openai.UserMessage(turn.Content))
		} else {
			messages = append(messages, openai.AssistantMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", &TransportError{Op: "chat", Err: err}
	}
	return firstChoice(resp, "chat")
}

func firstChoice(resp *openai.ChatCompletion, op string) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", &TransportError{Op: op, Err: errNoChoices}
	}
	return resp.Choices[0].Message.Content, nil
}
