package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longevity-genie/cell2sentence-mcp/internal/dataset"
)

func newFilterCmd() *cobra.Command {
	var (
		genesDB string
		logDir  string
	)
	cmd := &cobra.Command{
		Use:   "filter <input-csv> <output-csv>",
		Short: "Filter a cell-sentence dataset by the reference gene panel",
		Long: `Filter a cell-sentence dataset to keep only cells whose sentence starts with
a gene symbol from the reference OpenGenes panel. Rows stream through one at
a time, so arbitrarily large inputs are fine.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logDir)

			if _, err := os.Stat(genesDB); err != nil {
				fmt.Printf("Genes database not found at %s, downloading from HuggingFace Hub...\n", genesDB)
				if err := dataset.DownloadGeneDatabase(cmd.Context(), dataset.GeneDatabaseURL, genesDB); err != nil {
					return err
				}
			}

			genes, err := dataset.LoadGeneSymbols(cmd.Context(), genesDB)
			if err != nil {
				return err
			}
			fmt.Printf("Loaded %d gene symbols from OpenGenes database\n", len(genes))

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer out.Close()

			stats, err := dataset.FilterCells(in, out, genes)
			if err != nil {
				return err
			}

			fmt.Printf("Filtered dataset saved to %s\n", args[1])
			fmt.Printf("Filtered cells: %d of %d\n", stats.Kept, stats.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&genesDB, "genes-db", "data/open_genes.sqlite", "Path to the OpenGenes sqlite database")
	cmd.Flags().StringVar(&logDir, "log-dir", "logs", "Directory for log files")
	return cmd
}

func newFirstGenesCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
	)
	cmd := &cobra.Command{
		Use:   "first-genes <input-csv>",
		Short: "Extract the first gene symbol from each cell sentence",
		Long: `Extract the first (highest expressed) gene symbol from each cell sentence
in the dataset and report the unique set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			genes, err := dataset.FirstGenes(in)
			if err != nil {
				return err
			}
			unique := dataset.UniqueFirstGenes(genes)

			fmt.Printf("Total cell sentences: %d\n", len(genes))
			fmt.Printf("Unique first genes: %d\n", len(unique))

			switch outputFormat {
			case "json":
				data, err := json.MarshalIndent(map[string]any{
					"total_sentences":    len(genes),
					"unique_genes_count": len(unique),
					"unique_genes":       unique,
					"all_first_genes":    genes,
				}, "", "  ")
				if err != nil {
					return err
				}
				return writeOutput(outputFile, string(data))
			case "txt":
				out := ""
				for i, g := range unique {
					if i > 0 {
						out += "\n"
					}
					out += g
				}
				return writeOutput(outputFile, out)
			default: // print
				for _, g := range unique {
					fmt.Println(g)
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "output-format", "f", "print", "Output format: 'print', 'json', or 'txt'")
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "Path to output file (for json or txt format)")
	return cmd
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	fmt.Printf("Saved to %s\n", path)
	return nil
}
