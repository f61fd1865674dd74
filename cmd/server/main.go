// Command server runs the Cell2Sentence4Longevity MCP server.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/longevity-genie/cell2sentence-mcp/internal/config"
	"github.com/longevity-genie/cell2sentence-mcp/internal/logging"
	"github.com/longevity-genie/cell2sentence-mcp/internal/predict"
	"github.com/longevity-genie/cell2sentence-mcp/internal/server"
	"github.com/longevity-genie/cell2sentence-mcp/internal/vllm"
)

var (
	flagHost      string
	flagPort      string
	flagTransport string
)

var rootCmd = &cobra.Command{
	Use:          "cell2sentence-mcp",
	Short:        "Cell2Sentence4Longevity MCP Server - Age prediction interface using vLLM",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the MCP server with the configured transport",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(flagTransport)
	},
}

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Run the MCP server with stdio transport",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve("stdio")
	},
}

var sseCmd = &cobra.Command{
	Use:   "sse",
	Short: "Run the MCP server with SSE transport",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve("sse")
	},
}

func serve(transport string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if flagHost != "" {
		cfg.Server.Host = flagHost
	}
	if flagPort != "" {
		cfg.Server.Port = flagPort
	}
	if transport != "" {
		cfg.Server.Transport = transport
	}

	// Logs go to a file only: the stdio transport owns the standard streams.
	logFile, err := logging.Setup("logs", "mcp_server")
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer logFile.Close()

	client, err := vllm.NewClient(&cfg.VLLM)
	if err != nil {
		log.Fatalf("failed to create vLLM client: %v", err)
	}

	predictor := predict.New(client, cfg.VLLM.Model)

	srv := server.New(*cfg, predictor)
	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"transport", cfg.Server.Transport,
	)
	return srv.Run()
}

func main() {
	runCmd.Flags().StringVar(&flagHost, "host", "", "Host to bind to")
	runCmd.Flags().StringVar(&flagPort, "port", "", "Port to bind to")
	runCmd.Flags().StringVar(&flagTransport, "transport", "", "Transport type (streamable-http, sse, stdio)")
	sseCmd.Flags().StringVar(&flagHost, "host", "", "Host to bind to")
	sseCmd.Flags().StringVar(&flagPort, "port", "", "Port to bind to")

	rootCmd.AddCommand(runCmd, stdioCmd, sseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
