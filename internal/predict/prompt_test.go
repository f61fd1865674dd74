package predict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBuildPromptAllMetadata(t *testing.T) {
	prompt := BuildPrompt("MT-CO1 FTL EEF1A1", Metadata{
		Sex:           "female",
		SmokingStatus: intPtr(0),
		Tissue:        "blood",
		CellType:      "CD14-low, CD16-positive monocyte",
	})

	expected := "The following is a list of aging related gene names ordered by descending expression level in a cell.\n" +
		"\n" +
		"Sex: female\n" +
		"Smoking status: 0\n" +
		"Tissue: blood\n" +
		"Cell type: CD14-low, CD16-positive monocyte\n" +
		"Aging related cell sentence: MT-CO1 FTL EEF1A1\n" +
		"Predict the Age of the donor from whom these cells were taken.\n" +
		"Answer only with age value in years:"
	assert.Equal(t, expected, prompt)
}

func TestBuildPromptNoMetadata(t *testing.T) {
	prompt := BuildPrompt("MT-CO1 FTL", Metadata{})

	assert.NotContains(t, prompt, "Sex:")
	assert.NotContains(t, prompt, "Smoking status:")
	assert.NotContains(t, prompt, "Tissue:")
	assert.NotContains(t, prompt, "Cell type:")
	assert.Contains(t, prompt, "Aging related cell sentence: MT-CO1 FTL")
	assert.True(t, strings.HasSuffix(prompt, "Answer only with age value in years:"))
}

func TestBuildPromptFieldOrder(t *testing.T) {
	prompt := BuildPrompt("A", Metadata{
		Sex:           "male",
		SmokingStatus: intPtr(1),
		Tissue:        "liver",
		CellType:      "hepatocyte",
	})

	sex := strings.Index(prompt, "Sex:")
	smoking := strings.Index(prompt, "Smoking status:")
	tissue := strings.Index(prompt, "Tissue:")
	cellType := strings.Index(prompt, "Cell type:")
	sentence := strings.Index(prompt, "Aging related cell sentence:")

	require.NotEqual(t, -1, sex)
	assert.Less(t, sex, smoking)
	assert.Less(t, smoking, tissue)
	assert.Less(t, tissue, cellType)
	assert.Less(t, cellType, sentence)
}

func TestBuildPromptPartialMetadata(t *testing.T) {
	prompt := BuildPrompt("A B", Metadata{Tissue: "brain"})

	assert.NotContains(t, prompt, "Sex:")
	assert.NotContains(t, prompt, "Smoking status:")
	assert.Contains(t, prompt, "Tissue: brain")
	assert.NotContains(t, prompt, "Cell type:")
}

func TestBuildPromptSmokingStatusZeroIncluded(t *testing.T) {
	prompt := BuildPrompt("A", Metadata{SmokingStatus: intPtr(0)})
	assert.Contains(t, prompt, "Smoking status: 0")
}

func TestRemoveGeneFromPrompt(t *testing.T) {
	prompt := BuildPrompt("MT-CO1 FTL EEF1A1", Metadata{})
	got := RemoveGeneFromPrompt(prompt, "MT-CO1")

	assert.NotContains(t, got, "MT-CO1")
	assert.Contains(t, got, "Aging related cell sentence: FTL EEF1A1 Predict the Age")
	assert.NotContains(t, got, "  ", "no double spaces after removal")
	assert.NotContains(t, got, "\n", "whitespace collapses to single spaces")
}

func TestRemoveGeneFromPromptLastGene(t *testing.T) {
	prompt := BuildPrompt("MT-CO1 FTL EEF1A1", Metadata{})
	got := RemoveGeneFromPrompt(prompt, "EEF1A1")

	assert.NotContains(t, got, "EEF1A1")
	assert.Contains(t, got, "MT-CO1 FTL Predict the Age")
}

func TestRemoveGeneFromPromptAllOccurrences(t *testing.T) {
	prompt := BuildPrompt("FTL MT-CO1 FTL EEF1A1 FTL", Metadata{})
	got := RemoveGeneFromPrompt(prompt, "FTL")

	assert.NotContains(t, got, "FTL")
	assert.Contains(t, got, "MT-CO1 EEF1A1")
}

func TestRemoveGeneFromPromptWholePromptScope(t *testing.T) {
	// Removal deliberately covers metadata text too, not only the
	// cell-sentence segment.
	prompt := BuildPrompt("MT-CO1 EEF1A1", Metadata{Tissue: "FTL"})
	got := RemoveGeneFromPrompt(prompt, "FTL")

	assert.NotContains(t, got, "FTL")
	assert.Contains(t, got, "Tissue: Aging related cell sentence:")
}

func TestRemoveGeneFromPromptSubstringLeftAlone(t *testing.T) {
	prompt := BuildPrompt("MT-CO1 FTL", Metadata{})
	got := RemoveGeneFromPrompt(prompt, "CO1")

	assert.Contains(t, got, "MT-CO1 FTL")
}

func TestRemoveGeneFromPromptAbsentGene(t *testing.T) {
	prompt := BuildPrompt("MT-CO1 FTL", Metadata{})
	got := RemoveGeneFromPrompt(prompt, "NONEXISTENT")

	// Same tokens, flattened to one line.
	assert.Equal(t, strings.Join(strings.Fields(prompt), " "), got)
}

func TestRemoveGeneFromPromptEmptyGene(t *testing.T) {
	prompt := BuildPrompt("MT-CO1 FTL", Metadata{})
	assert.Equal(t, prompt, RemoveGeneFromPrompt(prompt, ""))
}
