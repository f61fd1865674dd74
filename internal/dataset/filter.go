// Package dataset filters cell-sentence tables against a reference gene
// panel. Rows are processed one at a time so arbitrarily large datasets can
// be filtered in bounded memory.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const sentenceColumn = "cell_sentence"

// ErrNoSentenceColumn indicates an input table without a cell_sentence column.
var ErrNoSentenceColumn = errors.New("input has no cell_sentence column")

// FilterStats reports the outcome of a filtering run.
type FilterStats struct {
	Total int
	Kept  int
}

// FilterCells streams a CSV of cell sentences from r to w, keeping only rows
// whose first gene is a member of the reference set. The header row is
// copied through unchanged.
func FilterCells(r io.Reader, w io.Writer, genes map[string]struct{}) (FilterStats, error) {
	reader := csv.NewReader(r)
	writer := csv.NewWriter(w)

	header, err := reader.Read()
	if err != nil {
		return FilterStats{}, fmt.Errorf("failed to read header: %w", err)
	}

	col, err := sentenceColumnIndex(header)
	if err != nil {
		return FilterStats{}, err
	}

	if err := writer.Write(header); err != nil {
		return FilterStats{}, fmt.Errorf("failed to write header: %w", err)
	}

	var stats FilterStats
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read row %d: %w", stats.Total+1, err)
		}

		stats.Total++
		first := firstGene(record[col])
		if first == "" {
			continue
		}
		if _, ok := genes[first]; !ok {
			continue
		}

		if err := writer.Write(record); err != nil {
			return stats, fmt.Errorf("failed to write row: %w", err)
		}
		stats.Kept++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}

	slog.Info("filtered cell sentences", "total", stats.Total, "kept", stats.Kept)
	return stats, nil
}

func sentenceColumnIndex(header []string) (int, error) {
	for i, name := range header {
		if name == sentenceColumn {
			return i, nil
		}
	}
	return 0, ErrNoSentenceColumn
}

func firstGene(sentence string) string {
	fields := strings.Fields(sentence)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
