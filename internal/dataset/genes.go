package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// LoadGeneSymbols reads the reference gene panel out of an OpenGenes sqlite
// database. The database is opened read-only.
func LoadGeneSymbols(ctx context.Context, dbPath string) (map[string]struct{}, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open genes database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT DISTINCT HGNC FROM gene_criteria")
	if err != nil {
		return nil, fmt.Errorf("failed to query gene symbols: %w", err)
	}
	defer rows.Close()

	genes := make(map[string]struct{})
	for rows.Next() {
		var symbol sql.NullString
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan gene symbol: %w", err)
		}
		if symbol.Valid && symbol.String != "" {
			genes[symbol.String] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gene symbols: %w", err)
	}

	slog.Info("loaded reference gene symbols", "count", len(genes))
	return genes, nil
}
