package vllm

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/longevity-genie/cell2sentence-mcp/internal/config"
)

// End-of-turn tokens for the Gemma-based age prediction model.
var stopTokens = []string{"<ctrl100>", "<end_of_turn>", "<eos>"}

// Client talks to a vLLM server through its OpenAI-compatible API.
type Client struct {
	client *openai.Client
	cfg    *config.VLLMConfig
}

func NewClient(cfg *config.VLLMConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("vLLM base URL cannot be empty")
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")+"/v1/"),
		option.WithRequestTimeout(cfg.Timeout),
		// The knockout contract is a single attempt per prediction.
		option.WithMaxRetries(0),
	)

	return &Client{
		client: client,
		cfg:    cfg,
	}, nil
}

// Model returns the configured model id.
func (c *Client) Model() string {
	return c.cfg.Model
}

func (c *Client) Complete(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	resp, err := c.client.Completions.New(
		ctx,
		openai.CompletionNewParams{
			Model:       openai.F(openai.CompletionNewParamsModel(c.cfg.Model)),
			Prompt:      openai.F[openai.CompletionNewParamsPromptUnion](shared.UnionString(prompt)),
			MaxTokens:   openai.F(int64(params.MaxTokens)),
			Temperature: openai.F(params.Temperature),
			TopP:        openai.F(params.TopP),
			N:           openai.F(int64(1)),
			Stop:        openai.F[openai.CompletionNewParamsStopUnion](openai.CompletionNewParamsStopArray(stopTokens)),
		},
	)
	if err != nil {
		return "", mapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Status: 200, Body: "completion response has no choices"}
	}

	raw := strings.TrimSpace(resp.Choices[0].Text)
	slog.Debug("completion received", "model", c.cfg.Model, "response", raw)
	return raw, nil
}

// Models lists the model ids served by the vLLM endpoint.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func mapError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &UpstreamError{
			Status: apierr.StatusCode,
			Body:   string(apierr.DumpResponse(true)),
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ErrTimeout
	}

	return err
}
