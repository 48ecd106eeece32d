package enricher

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"daily-paper-bot/internal/infra/metrics"
)

const maxTokens = 1000

// AnthropicClient runs single-turn completions against the Anthropic
// messages API with deterministic sampling.
type AnthropicClient struct {
	client  *anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

// NewAnthropicClient creates the model client.
func NewAnthropicClient(apiKey, model string, timeout time.Duration) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AnthropicClient{
		client:  &client,
		model:   anthropic.Model(model),
		timeout: timeout,
	}
}

// Complete sends one system+user exchange and returns the text answer.
func (c *AnthropicClient) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(0),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	metrics.ObserveNetworkRequest("anthropic", "messages", string(c.model), start, err)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("anthropic: empty response")
	}
	metrics.ObserveLLMGeneration(string(c.model), time.Since(start), int(resp.Usage.InputTokens), int(resp.Usage.OutputTokens))
	return resp.Content[0].Text, nil
}
