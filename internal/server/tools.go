package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/longevity-genie/cell2sentence-mcp/internal/predict"
	"github.com/longevity-genie/cell2sentence-mcp/internal/vllm"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("predict_age",
		mcp.WithDescription("Predict the age of a cell donor from a gene expression sentence. "+
			"The gene expression sentence should be a space-separated list of aging-related gene names "+
			"ordered by descending expression level."),
		mcp.WithString("gene_sentence", mcp.Required(),
			mcp.Description("Space-separated list of gene names ordered by descending expression level")),
		mcp.WithNumber("max_tokens", mcp.Description("Maximum number of tokens to generate (default: 20)")),
		mcp.WithNumber("temperature", mcp.Description("Sampling temperature (default: 0.0 for deterministic output)")),
		mcp.WithNumber("top_p", mcp.Description("Nucleus sampling parameter (default: 1.0)")),
	), s.handlePredictAge)

	s.mcp.AddTool(mcp.NewTool("predict_age_with_metadata",
		mcp.WithDescription("Predict the age of a cell donor from a gene expression sentence with additional "+
			"metadata. Provide the gene expression sentence, sex, tissue, cell type, and other relevant metadata."),
		mcp.WithString("gene_sentence", mcp.Required(),
			mcp.Description("Space-separated list of gene names ordered by descending expression level")),
		mcp.WithString("sex", mcp.Description("Sex of the donor (e.g., 'male', 'female')")),
		mcp.WithNumber("smoking_status", mcp.Description("Smoking status (0 = non-smoker, 1 = smoker)")),
		mcp.WithString("tissue", mcp.Description("Tissue type (e.g., 'blood', 'brain', 'liver')")),
		mcp.WithString("cell_type", mcp.Description("Cell type (e.g., 'CD14-low, CD16-positive monocyte')")),
		mcp.WithNumber("max_tokens", mcp.Description("Maximum number of tokens to generate (default: 20)")),
		mcp.WithNumber("temperature", mcp.Description("Sampling temperature (default: 0.0 for deterministic output)")),
		mcp.WithNumber("top_p", mcp.Description("Nucleus sampling parameter (default: 1.0)")),
	), s.handlePredictAge)

	s.mcp.AddTool(mcp.NewTool("insilico_knockout",
		mcp.WithDescription("Perform an insilico knockout experiment by removing a specific gene from the gene "+
			"expression sentence and comparing age predictions. Provide the gene symbol to knock out and the gene "+
			"expression sentence. Returns original age, knockout age, delta, and a warning if the gene was not found."),
		mcp.WithString("gene_symbol", mcp.Required(),
			mcp.Description("The gene symbol to knock out (remove from the sentence)")),
		mcp.WithString("gene_sentence", mcp.Required(),
			mcp.Description("Space-separated list of gene names ordered by descending expression level")),
		mcp.WithString("sex", mcp.Description("Sex of the donor (e.g., 'male', 'female')")),
		mcp.WithNumber("smoking_status", mcp.Description("Smoking status (0 = non-smoker, 1 = smoker)")),
		mcp.WithString("tissue", mcp.Description("Tissue type (e.g., 'blood', 'brain', 'liver')")),
		mcp.WithString("cell_type", mcp.Description("Cell type (e.g., 'CD14-low, CD16-positive monocyte')")),
		mcp.WithNumber("max_tokens", mcp.Description("Maximum number of tokens to generate (default: 20)")),
		mcp.WithNumber("temperature", mcp.Description("Sampling temperature (default: 0.0 for deterministic output)")),
		mcp.WithNumber("top_p", mcp.Description("Nucleus sampling parameter (default: 1.0)")),
	), s.handleKnockout)
}

// handlePredictAge serves both predict_age and predict_age_with_metadata:
// the metadata arguments are simply absent on the plain variant.
func (s *Server) handlePredictAge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	geneSentence, err := request.RequireString("gene_sentence")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.predictor.Predict(ctx, predict.PredictionRequest{
		GeneSentence: geneSentence,
		Metadata:     metadataFromRequest(request),
		Params:       paramsFromRequest(request),
	})
	if err != nil {
		slog.Error("prediction failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResultJSON(result)
}

func (s *Server) handleKnockout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	geneSymbol, err := request.RequireString("gene_symbol")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	geneSentence, err := request.RequireString("gene_sentence")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.predictor.Knockout(ctx, geneSymbol, geneSentence,
		metadataFromRequest(request), paramsFromRequest(request))
	if err != nil {
		slog.Error("knockout failed", "gene", geneSymbol, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResultJSON(result)
}

func metadataFromRequest(request mcp.CallToolRequest) predict.Metadata {
	meta := predict.Metadata{
		Sex:      request.GetString("sex", ""),
		Tissue:   request.GetString("tissue", ""),
		CellType: request.GetString("cell_type", ""),
	}
	// An explicit 0 still renders the prompt line, so presence matters.
	if _, ok := request.GetArguments()["smoking_status"]; ok {
		status := request.GetInt("smoking_status", 0)
		meta.SmokingStatus = &status
	}
	return meta
}

func paramsFromRequest(request mcp.CallToolRequest) vllm.GenerationParams {
	defaults := vllm.DefaultGenerationParams()
	return vllm.GenerationParams{
		MaxTokens:   request.GetInt("max_tokens", defaults.MaxTokens),
		Temperature: request.GetFloat("temperature", defaults.Temperature),
		TopP:        request.GetFloat("top_p", defaults.TopP),
	}
}

func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
