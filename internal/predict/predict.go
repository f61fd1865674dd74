package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/longevity-genie/cell2sentence-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence-mcp/internal/vllm"
)

var (
	// ErrEmptySentence indicates a prediction request with no genes.
	ErrEmptySentence = errors.New("gene sentence is empty")

	// ErrNoAgeInResponse indicates the model response contained no number.
	ErrNoAgeInResponse = errors.New("could not extract age from response")
)

// PredictionRequest describes a single age prediction.
type PredictionRequest struct {
	GeneSentence string
	Metadata     Metadata
	Params       vllm.GenerationParams

	// GeneToRemove, when non-empty, is surgically removed from the
	// assembled prompt text before the completion call.
	GeneToRemove string
}

// Predictor orchestrates prompt construction, completion calls and age
// parsing against a single configured model.
type Predictor struct {
	completer vllm.Completer
	model     string
}

func New(completer vllm.Completer, model string) *Predictor {
	return &Predictor{
		completer: completer,
		model:     model,
	}
}

// Model returns the model id predictions are made with.
func (p *Predictor) Model() string {
	return p.model
}

// Predict runs a single age prediction. Upstream and timeout failures
// propagate; a response that contains no parsable number is not an error
// here and leaves PredictedAge null with the raw response recorded.
func (p *Predictor) Predict(ctx context.Context, req PredictionRequest) (*apimodels.AgePrediction, error) {
	if len(strings.Fields(req.GeneSentence)) == 0 {
		return nil, ErrEmptySentence
	}

	prompt, raw, err := p.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &apimodels.AgePrediction{
		RawResponse: raw,
		PromptUsed:  prompt,
		Model:       p.model,
	}

	age, err := ParseAge(raw)
	if err != nil {
		slog.Warn("could not parse age from response", "response", raw)
		return result, nil
	}
	result.PredictedAge = &age

	slog.Info("age predicted", "predicted_age", age, "gene_count", len(strings.Fields(req.GeneSentence)))
	return result, nil
}

// predictAge is the strict prediction path used by the knockout engine: any
// upstream, timeout or parse failure propagates to the caller.
func (p *Predictor) predictAge(ctx context.Context, req PredictionRequest) (float64, error) {
	_, raw, err := p.complete(ctx, req)
	if err != nil {
		return 0, err
	}

	age, err := ParseAge(raw)
	if err != nil {
		return 0, err
	}
	return age, nil
}

func (p *Predictor) complete(ctx context.Context, req PredictionRequest) (prompt, raw string, err error) {
	prompt = BuildPrompt(req.GeneSentence, req.Metadata)
	if req.GeneToRemove != "" {
		prompt = RemoveGeneFromPrompt(prompt, req.GeneToRemove)
		slog.Debug("gene removed from prompt", "gene", req.GeneToRemove)
	}

	raw, err = p.completer.Complete(ctx, prompt, req.Params)
	if err != nil {
		return "", "", fmt.Errorf("completion call failed: %w", err)
	}
	return prompt, raw, nil
}
