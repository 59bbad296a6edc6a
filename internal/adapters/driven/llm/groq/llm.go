// Package groq provides an LLM client adapter using the Groq API,
// which speaks the OpenAI chat-completions protocol.
package groq

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.LLMClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "meta-llama/llama-4-scout-17b-16e-instruct"

	// Generation is deterministic-leaning and bounded: answers must
	// stay grounded in the supplied context.
	temperature = 0.1
	maxTokens   = 1024
)

// Config holds configuration for the Groq LLM client.
type Config struct {
	// APIKey is the Groq API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// Model is the model to use (default: llama-4-scout).
	Model string
}

// Client provides LLM completion using Groq.
type Client struct {
	client *goopenai.Client
	model  string
}

// NewClient creates a new Groq LLM client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Client{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Generate produces a completion. Provider failures come back in the
// response's Error field.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) domain.LLMResponse {
	var messages []goopenai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role: goopenai.ChatMessageRoleUser, Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return domain.LLMResponse{Error: err.Error()}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return domain.LLMResponse{Error: "empty response from provider"}
	}
	return domain.LLMResponse{Content: resp.Choices[0].Message.Content}
}

// ModelName returns the model in use.
func (c *Client) ModelName() string {
	return c.model
}

// Ping validates the service is reachable with a one-token completion.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: "ping"},
		},
		MaxTokens: 1,
	})
	return err
}

// Close releases resources.
func (c *Client) Close() error {
	return nil
}
