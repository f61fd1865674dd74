package predict

import (
	"fmt"
	"strings"
)

const promptHeader = "The following is a list of aging related gene names ordered by descending expression level in a cell.\n"

// Metadata holds the optional donor annotations for a prediction. Empty
// strings and a nil smoking status mean the field is absent and its line is
// omitted from the prompt entirely.
type Metadata struct {
	Sex           string
	SmokingStatus *int
	Tissue        string
	CellType      string
}

// BuildPrompt assembles the model prompt from a gene sentence and optional
// metadata. Field order is fixed: Sex, Smoking status, Tissue, Cell type.
func BuildPrompt(geneSentence string, meta Metadata) string {
	parts := []string{promptHeader}

	if meta.Sex != "" {
		parts = append(parts, "Sex: "+meta.Sex)
	}
	if meta.SmokingStatus != nil {
		parts = append(parts, fmt.Sprintf("Smoking status: %d", *meta.SmokingStatus))
	}
	if meta.Tissue != "" {
		parts = append(parts, "Tissue: "+meta.Tissue)
	}
	if meta.CellType != "" {
		parts = append(parts, "Cell type: "+meta.CellType)
	}

	parts = append(parts,
		"Aging related cell sentence: "+geneSentence,
		"Predict the Age of the donor from whom these cells were taken.",
		"Answer only with age value in years:",
	)

	return strings.Join(parts, "\n")
}

// RemoveGeneFromPrompt removes every whole whitespace-delimited occurrence of
// the gene symbol from the assembled prompt and collapses the remaining
// whitespace to single spaces, flattening the prompt to one line.
//
// The removal deliberately operates on the whole prompt text, not just the
// cell-sentence segment: a gene symbol that also appears in a metadata field
// is removed from there too. Occurrences embedded inside a longer token are
// left alone.
func RemoveGeneFromPrompt(prompt, gene string) string {
	if gene == "" {
		return prompt
	}

	fields := strings.Fields(prompt)
	kept := fields[:0]
	for _, f := range fields {
		if f != gene {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
