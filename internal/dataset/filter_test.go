package dataset

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geneSet(genes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(genes))
	for _, g := range genes {
		set[g] = struct{}{}
	}
	return set
}

func TestFilterCells(t *testing.T) {
	input := strings.Join([]string{
		"cell_id,cell_sentence",
		"c1,MT-CO1 FTL EEF1A1",
		"c2,XYZ FTL",
		"c3,FTL MT-CO1",
		"c4,",
	}, "\n") + "\n"

	var out bytes.Buffer
	stats, err := FilterCells(strings.NewReader(input), &out, geneSet("MT-CO1", "FTL"))
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Kept)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "cell_id,cell_sentence", lines[0])
	assert.Equal(t, "c1,MT-CO1 FTL EEF1A1", lines[1])
	assert.Equal(t, "c3,FTL MT-CO1", lines[2])
}

func TestFilterCellsMissingColumn(t *testing.T) {
	input := "cell_id,other\nc1,x\n"

	var out bytes.Buffer
	_, err := FilterCells(strings.NewReader(input), &out, geneSet("FTL"))
	assert.ErrorIs(t, err, ErrNoSentenceColumn)
}

func TestFirstGenes(t *testing.T) {
	input := strings.Join([]string{
		"cell_sentence",
		"MT-CO1 FTL",
		"FTL EEF1A1",
		"MT-CO1",
		"",
	}, "\n") + "\n"

	genes, err := FirstGenes(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"MT-CO1", "FTL", "MT-CO1"}, genes)

	unique := UniqueFirstGenes(genes)
	assert.Equal(t, []string{"FTL", "MT-CO1"}, unique)
}

func TestLoadGeneSymbols(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "open_genes.sqlite")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE gene_criteria (HGNC TEXT, criteria TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO gene_criteria (HGNC, criteria) VALUES ('FTL', 'a'), ('MT-CO1', 'b'), ('FTL', 'c'), (NULL, 'd')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	genes, err := LoadGeneSymbols(context.Background(), dbPath)
	require.NoError(t, err)

	assert.Len(t, genes, 2)
	assert.Contains(t, genes, "FTL")
	assert.Contains(t, genes, "MT-CO1")
}

func TestLoadGeneSymbolsMissingDB(t *testing.T) {
	_, err := LoadGeneSymbols(context.Background(), filepath.Join(t.TempDir(), "missing.sqlite"))
	assert.Error(t, err)
}
