package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// FirstGenes streams a CSV of cell sentences and returns the first (highest
// expressed) gene of every row, in row order. Rows with an empty sentence
// are skipped.
func FirstGenes(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	col, err := sentenceColumnIndex(header)
	if err != nil {
		return nil, err
	}

	var genes []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		if first := firstGene(record[col]); first != "" {
			genes = append(genes, first)
		}
	}
	return genes, nil
}

// UniqueFirstGenes returns the sorted set of gene symbols.
func UniqueFirstGenes(genes []string) []string {
	seen := make(map[string]struct{}, len(genes))
	unique := make([]string, 0, len(genes))
	for _, g := range genes {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		unique = append(unique, g)
	}
	sort.Strings(unique)
	return unique
}
