package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/longevity-genie/cell2sentence-mcp/internal/predict"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		"resource://cell2sentence/example-prompt",
		"example-prompt",
		mcp.WithResourceDescription("An example of how to format the input for age prediction, "+
			"including the gene expression sentence and metadata."),
		mcp.WithMIMEType("text/plain"),
	), s.handleExamplePrompt)

	s.mcp.AddResource(mcp.NewResource(
		"resource://cell2sentence/model-info",
		"model-info",
		mcp.WithResourceDescription("Information about the age prediction model, its endpoint and capabilities."),
		mcp.WithMIMEType("text/plain"),
	), s.handleModelInfo)
}

func (s *Server) handleExamplePrompt(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text := s.examplePromptText()
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

// examplePayloadPath resolves the configured example payload location. A
// relative path is tried against the working directory first and then
// against the executable's directory, so the resource survives being
// launched from anywhere.
func (s *Server) examplePayloadPath() string {
	path := s.cfg.Server.ExamplePayload
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if exe, err := os.Executable(); err == nil {
		alt := filepath.Join(filepath.Dir(exe), path)
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return path
}

// examplePromptText returns the prompt field of the example payload file.
// A missing or unreadable file is reported as resource text rather than an
// error so clients always get something actionable back.
func (s *Server) examplePromptText() string {
	path := s.examplePayloadPath()
	if _, err := os.Stat(path); err != nil {
		slog.Warn("example payload file not found", "path", path)
		return "Example payload file not found. Please check the " + path + " file."
	}

	payload, err := predict.LoadPayload(path)
	if err != nil {
		slog.Error("failed to read example payload", "error", err)
		return fmt.Sprintf("Error reading example payload: %v", err)
	}
	return payload.Prompt
}

func (s *Server) handleModelInfo(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	info := fmt.Sprintf(`Cell2Sentence4Longevity Age Prediction Model

Model: %s
vLLM Endpoint: %s

This model predicts the age of a cell donor based on gene expression patterns.
Input: A "cell sentence" - a space-separated list of aging-related gene names ordered by descending expression level
Output: Predicted age in years

The model was fine-tuned on the C2S-Scale-Gemma-2-27B architecture for age prediction from gene expression data.

Metadata that can be provided:
- Sex (male/female)
- Smoking status (0 = non-smoker, 1 = smoker)
- Tissue (e.g., blood, brain, liver)
- Cell type (e.g., CD14-low, CD16-positive monocyte)

The gene names should come from aging-related genes (e.g., from the OpenGenes database) and be ordered by expression level (highest to lowest).
`, s.cfg.VLLM.Model, s.cfg.VLLM.BaseURL)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     info,
		},
	}, nil
}
