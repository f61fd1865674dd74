package predict

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/longevity-genie/cell2sentence-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence-mcp/internal/vllm"
)

// Knockout performs an insilico knockout experiment: it predicts age from
// the original gene sentence, predicts again with the gene symbol removed
// from the entire prompt, and reports the delta.
//
// A gene that is not present in the sentence is not an error: removal is
// still attempted textually (which can leave the knockout prompt identical
// to the original) and the result carries an advisory warning.
func (p *Predictor) Knockout(ctx context.Context, geneSymbol, geneSentence string, meta Metadata, params vllm.GenerationParams) (*apimodels.KnockoutResult, error) {
	genes := strings.Fields(geneSentence)
	if len(genes) == 0 {
		return nil, ErrEmptySentence
	}

	found := slices.Contains(genes, geneSymbol)
	warning := ""
	if !found {
		warning = fmt.Sprintf("Warning: Gene '%s' not found in the gene sentence", geneSymbol)
		slog.Warn("gene not found in sentence", "gene", geneSymbol)
	}

	knockoutGenes := make([]string, 0, len(genes))
	for _, g := range genes {
		if g != geneSymbol {
			knockoutGenes = append(knockoutGenes, g)
		}
	}

	slog.Info("running knockout",
		"gene", geneSymbol,
		"found", found,
		"original_count", len(genes),
		"knockout_count", len(knockoutGenes),
	)

	ageOriginal, err := p.predictAge(ctx, PredictionRequest{
		GeneSentence: geneSentence,
		Metadata:     meta,
		Params:       params,
	})
	if err != nil {
		return nil, fmt.Errorf("original prediction failed: %w", err)
	}

	ageKnockout, err := p.predictAge(ctx, PredictionRequest{
		GeneSentence: geneSentence,
		Metadata:     meta,
		Params:       params,
		GeneToRemove: geneSymbol,
	})
	if err != nil {
		return nil, fmt.Errorf("knockout prediction failed: %w", err)
	}

	return &apimodels.KnockoutResult{
		GeneKnockedOut:            geneSymbol,
		AgePrediction:             ageOriginal,
		AgePredictionWithKnockout: ageKnockout,
		DeltaAge:                  ageKnockout - ageOriginal,
		OriginalGeneSentence:      geneSentence,
		KnockoutGeneSentence:      strings.Join(knockoutGenes, " "),
		Model:                     p.model,
		Warning:                   warning,
	}, nil
}
