package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"

	openai "github.com/sashabaranov/go-openai"

	"github.com/commitgpt/commitgpt/internal/app"
	"github.com/commitgpt/commitgpt/internal/observability"
	"github.com/commitgpt/commitgpt/internal/ports"
)

// Client implements ports.Completer against OpenAI's chat-completion API.
// An OpenAI-compatible endpoint (Groq etc.) is reached via baseURL.
type Client struct {
	client *openai.Client
}

// NewClient creates the transport. apiKey must be non-empty; the config
// loader is responsible for catching that earlier with a friendlier message.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{client: openai.NewClientWithConfig(cfg)}, nil
}

// Complete issues one chat-completion call asking for req.N choices and
// returns their contents in service order.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) ([]string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: effectiveTemperature(req.Temperature),
		N:           req.N,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	if err != nil {
		observability.Logger().Printf("chat completion failed: %s",
			observability.Snip(observability.RedactForLog(err.Error()), 600))
		return nil, classify(err)
	}

	batch := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		batch = append(batch, choice.Message.Content)
	}
	return batch, nil
}

// effectiveTemperature works around the client library omitting a zero
// temperature from the request body, which makes the service fall back to
// its own default instead of deterministic sampling.
func effectiveTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// classify maps transport and service failures onto the pipeline's error
// kinds so the retry policy can act on them.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return classifyStatus(reqErr.HTTPStatusCode, err)
		}
		return fmt.Errorf("%w: %v", app.ErrTransport, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", app.ErrTransport)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", app.ErrTransport, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", app.ErrTransport, err)
	}

	return fmt.Errorf("%w: %v", app.ErrService, err)
}

func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %v", app.ErrUnauthorized, err)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", app.ErrRateLimited, err)
	case status >= 500:
		return fmt.Errorf("%w: %v", app.ErrService, err)
	default:
		return fmt.Errorf("%w: %v", app.ErrService, err)
	}
}
