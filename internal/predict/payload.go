package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/longevity-genie/cell2sentence-mcp/internal/vllm"
)

// ErrNoSentenceInPrompt indicates a payload prompt without a cell sentence.
var ErrNoSentenceInPrompt = errors.New("could not extract gene sentence from payload prompt")

// Payload is a pre-built vLLM request stored as JSON, as produced for the
// completions endpoint directly.
type Payload struct {
	Prompt      string   `json:"prompt"`
	Model       string   `json:"model,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

// LoadPayload reads a payload JSON file from disk.
func LoadPayload(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse payload file: %w", err)
	}
	return &p, nil
}

// GenerationParams returns the payload's generation parameters, falling back
// to the defaults for any value the payload omits.
func (p *Payload) GenerationParams() vllm.GenerationParams {
	params := vllm.DefaultGenerationParams()
	if p.MaxTokens != nil {
		params.MaxTokens = *p.MaxTokens
	}
	if p.Temperature != nil {
		params.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		params.TopP = *p.TopP
	}
	return params
}

// PromptFields are the request values recovered from a pre-built prompt.
type PromptFields struct {
	Metadata     Metadata
	GeneSentence string
}

// ParsePromptTemplate recovers the original request values from a prompt
// built with the fixed field labels. It fails when no cell sentence line is
// present.
func ParsePromptTemplate(prompt string) (PromptFields, error) {
	var fields PromptFields

	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Sex:"):
			fields.Metadata.Sex = valueAfterLabel(line)
		case strings.HasPrefix(line, "Smoking status:"):
			status, err := strconv.Atoi(valueAfterLabel(line))
			if err != nil {
				return PromptFields{}, fmt.Errorf("invalid smoking status in prompt: %w", err)
			}
			fields.Metadata.SmokingStatus = &status
		case strings.HasPrefix(line, "Tissue:"):
			fields.Metadata.Tissue = valueAfterLabel(line)
		case strings.HasPrefix(line, "Cell type:"):
			fields.Metadata.CellType = valueAfterLabel(line)
		case strings.HasPrefix(line, "Aging related cell sentence:"):
			fields.GeneSentence = valueAfterLabel(line)
		}
	}

	if fields.GeneSentence == "" {
		return PromptFields{}, ErrNoSentenceInPrompt
	}
	return fields, nil
}

func valueAfterLabel(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}
