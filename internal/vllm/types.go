package vllm

import (
	"context"
	"errors"
	"fmt"
)

// Completer is the completion-side contract of the vLLM server.
type Completer interface {
	// Complete sends a single-shot completion request and returns the
	// first candidate's trimmed text.
	Complete(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// GenerationParams control text generation on the vLLM side.
type GenerationParams struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// DefaultGenerationParams returns the generation defaults used across the
// CLI and the MCP tools.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		MaxTokens:   20,
		Temperature: 0.0,
		TopP:        1.0,
	}
}

// ErrTimeout indicates the completion call exceeded the configured bound.
var ErrTimeout = errors.New("vllm request timed out")

// UpstreamError carries a non-2xx response from the vLLM server.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("vllm returned status %d: %s", e.Status, e.Body)
}
