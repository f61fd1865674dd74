package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longevity-genie/cell2sentence-mcp/internal/config"
	"github.com/longevity-genie/cell2sentence-mcp/internal/vllm"
)

func newModelsCmd() *cobra.Command {
	var vllmURL string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List model ids served by the vLLM endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if vllmURL != "" {
				cfg.VLLM.BaseURL = vllmURL
			}

			client, err := vllm.NewClient(&cfg.VLLM)
			if err != nil {
				return err
			}

			ids, err := client.Models(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&vllmURL, "vllm-url", "", "Base URL for the vLLM API server")
	return cmd
}
