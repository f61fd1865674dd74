// Command cell2sentence provides CLI access to the Cell2Sentence4Longevity
// tools: insilico knockout experiments and dataset utilities.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/longevity-genie/cell2sentence-mcp/internal/config"
	"github.com/longevity-genie/cell2sentence-mcp/internal/logging"
	"github.com/longevity-genie/cell2sentence-mcp/internal/predict"
	"github.com/longevity-genie/cell2sentence-mcp/internal/vllm"
)

var rootCmd = &cobra.Command{
	Use:           "cell2sentence",
	Short:         "Cell2Sentence4Longevity CLI tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// setupLogging wires slog to a JSON file under the given directory.
func setupLogging(logDir string) {
	if _, err := logging.Setup(logDir, "knockout"); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
}

// newPredictor builds a predictor against the vLLM endpoint, letting CLI
// flags override the environment configuration.
func newPredictor(baseURL, model string) (*predict.Predictor, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if baseURL != "" {
		cfg.VLLM.BaseURL = baseURL
	}
	if model != "" {
		cfg.VLLM.Model = model
	}

	client, err := vllm.NewClient(&cfg.VLLM)
	if err != nil {
		return nil, nil, err
	}
	return predict.New(client, cfg.VLLM.Model), cfg, nil
}

func main() {
	rootCmd.AddCommand(
		newKnockoutCmd(),
		newKnockoutFromPayloadCmd(),
		newKoCmd(),
		newModelsCmd(),
		newFilterCmd(),
		newFirstGenesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
