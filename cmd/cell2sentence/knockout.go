package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/longevity-genie/cell2sentence-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence-mcp/internal/predict"
	"github.com/longevity-genie/cell2sentence-mcp/internal/vllm"
)

type knockoutFlags struct {
	sex           string
	smokingStatus int
	tissue        string
	cellType      string
	vllmURL       string
	model         string
	maxTokens     int
	temperature   float64
	topP          float64
	format        string
	logDir        string
}

func (f *knockoutFlags) register(cmd *cobra.Command) {
	defaults := vllm.DefaultGenerationParams()
	cmd.Flags().StringVar(&f.sex, "sex", "", "Sex of the donor (e.g., 'male', 'female')")
	cmd.Flags().IntVar(&f.smokingStatus, "smoking-status", -1, "Smoking status (0 = non-smoker, 1 = smoker)")
	cmd.Flags().StringVar(&f.tissue, "tissue", "", "Tissue type (e.g., 'blood', 'brain', 'liver')")
	cmd.Flags().StringVar(&f.cellType, "cell-type", "", "Cell type (e.g., 'CD14-low, CD16-positive monocyte')")
	cmd.Flags().StringVar(&f.vllmURL, "vllm-url", "", "Base URL for the vLLM API server")
	cmd.Flags().StringVar(&f.model, "model", "", "Model name to use for prediction")
	cmd.Flags().IntVar(&f.maxTokens, "max-tokens", defaults.MaxTokens, "Maximum number of tokens to generate")
	cmd.Flags().Float64Var(&f.temperature, "temperature", defaults.Temperature, "Sampling temperature")
	cmd.Flags().Float64Var(&f.topP, "top-p", defaults.TopP, "Nucleus sampling parameter")
	cmd.Flags().StringVar(&f.format, "format", "text", "Output format: text, json, or csv")
	cmd.Flags().StringVar(&f.logDir, "log-dir", "logs", "Directory for log files")
}

func (f *knockoutFlags) metadata() predict.Metadata {
	meta := predict.Metadata{
		Sex:      f.sex,
		Tissue:   f.tissue,
		CellType: f.cellType,
	}
	if f.smokingStatus >= 0 {
		status := f.smokingStatus
		meta.SmokingStatus = &status
	}
	return meta
}

func (f *knockoutFlags) params() vllm.GenerationParams {
	return vllm.GenerationParams{
		MaxTokens:   f.maxTokens,
		Temperature: f.temperature,
		TopP:        f.topP,
	}
}

func newKnockoutCmd() *cobra.Command {
	flags := &knockoutFlags{}
	cmd := &cobra.Command{
		Use:   "knockout <gene-symbol> <gene-sentence>",
		Short: "Perform an insilico knockout experiment",
		Long: `Perform an insilico knockout experiment by removing a specific gene from the sentence.

This command predicts age from the original gene sentence, predicts again
with the gene removed from the prompt, computes the delta, and warns if the
gene was not found in the sentence.

Example:
  cell2sentence knockout MT-CO1 "MT-CO1 FTL EEF1A1 HLA-B LST1" --sex female --tissue blood`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags.logDir)

			predictor, _, err := newPredictor(flags.vllmURL, flags.model)
			if err != nil {
				return err
			}

			result, err := predictor.Knockout(cmd.Context(), args[0], args[1], flags.metadata(), flags.params())
			if err != nil {
				return err
			}
			return printKnockoutResult(result, flags.format)
		},
	}
	flags.register(cmd)
	return cmd
}

func newKnockoutFromPayloadCmd() *cobra.Command {
	var (
		geneSymbol string
		vllmURL    string
		model      string
		format     string
		logDir     string
	)
	cmd := &cobra.Command{
		Use:   "knockout-from-payload <payload-file>",
		Short: "Perform an insilico knockout experiment using a payload file",
		Long: `Perform an insilico knockout experiment using a pre-built vLLM payload file.

The payload file contains the full prompt with metadata and gene sentence,
plus optional model and generation parameters. If --gene-symbol is not
provided, the first gene in the sentence is knocked out.

Example:
  cell2sentence knockout-from-payload data/example/vllm_payload.json --gene-symbol FTL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logDir)
			return knockoutFromPayload(cmd.Context(), args[0], geneSymbol, vllmURL, model, format)
		},
	}
	cmd.Flags().StringVar(&geneSymbol, "gene-symbol", "", "Gene symbol to knock out (defaults to first gene in sentence)")
	cmd.Flags().StringVar(&vllmURL, "vllm-url", "", "Base URL for the vLLM API server")
	cmd.Flags().StringVar(&model, "model", "", "Model name (overrides payload)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, or csv")
	cmd.Flags().StringVar(&logDir, "log-dir", "logs", "Directory for log files")
	return cmd
}

func newKoCmd() *cobra.Command {
	var (
		payloadFile string
		vllmURL     string
		model       string
		format      string
		logDir      string
	)
	cmd := &cobra.Command{
		Use:   "ko <gene-symbol>",
		Short: "Short command for insilico knockout experiments over a payload file",
		Long: `Short command for insilico knockout experiments.

Examples:
  cell2sentence ko KLF6
  cell2sentence ko MT-CO1 -p data/example/vllm_payload.json
  cell2sentence ko FTL --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logDir)
			return knockoutFromPayload(cmd.Context(), payloadFile, args[0], vllmURL, model, format)
		},
	}
	cmd.Flags().StringVarP(&payloadFile, "payload", "p", "data/example/vllm_payload.json", "Path to payload JSON file")
	cmd.Flags().StringVar(&vllmURL, "vllm-url", "", "Base URL for the vLLM API server")
	cmd.Flags().StringVar(&model, "model", "", "Model name (overrides payload)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, or csv")
	cmd.Flags().StringVar(&logDir, "log-dir", "logs", "Directory for log files")
	return cmd
}

// knockoutFromPayload recovers the request values from a payload file's
// prompt and runs the knockout with them.
func knockoutFromPayload(ctx context.Context, payloadFile, geneSymbol, vllmURL, model, format string) error {
	payload, err := predict.LoadPayload(payloadFile)
	if err != nil {
		return err
	}

	fields, err := predict.ParsePromptTemplate(payload.Prompt)
	if err != nil {
		return err
	}

	if geneSymbol == "" {
		genes := strings.Fields(fields.GeneSentence)
		geneSymbol = genes[0]
		fmt.Printf("No gene symbol specified, defaulting to first gene: %s\n", geneSymbol)
	}

	// CLI flag beats the payload's model, which beats the environment.
	if model == "" {
		model = payload.Model
	}

	predictor, _, err := newPredictor(vllmURL, model)
	if err != nil {
		return err
	}

	result, err := predictor.Knockout(ctx, geneSymbol, fields.GeneSentence, fields.Metadata, payload.GenerationParams())
	if err != nil {
		return err
	}
	return printKnockoutResult(result, format)
}

func printKnockoutResult(result *apimodels.KnockoutResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "csv":
		fmt.Println("gene_knocked_out,age_prediction,age_prediction_with_knockout,delta_age,warning")
		fmt.Printf("%s,%s,%s,%s,%s\n",
			result.GeneKnockedOut,
			formatFloat(result.AgePrediction),
			formatFloat(result.AgePredictionWithKnockout),
			formatFloat(result.DeltaAge),
			result.Warning,
		)
	default: // text
		fmt.Printf("Gene knocked out: %s\n", result.GeneKnockedOut)
		fmt.Printf("Age prediction (original): %s\n", formatFloat(result.AgePrediction))
		fmt.Printf("Age prediction (knockout): %s\n", formatFloat(result.AgePredictionWithKnockout))
		fmt.Printf("Delta age: %s\n", formatFloat(result.DeltaAge))
		if result.Warning != "" {
			fmt.Println(result.Warning)
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
