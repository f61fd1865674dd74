package apimodels

// AgePrediction is the result of a single age prediction.
type AgePrediction struct {
	// Predicted age in years; null when no number could be parsed
	// out of the model response.
	PredictedAge *float64 `json:"predicted_age"`

	// Raw text returned by the model
	RawResponse string `json:"raw_response"`

	// The prompt that was sent to the model
	PromptUsed string `json:"prompt_used"`

	// Model used for the prediction
	Model string `json:"model"`
}

// KnockoutResult is the result of an insilico knockout experiment.
type KnockoutResult struct {
	// The gene that was knocked out (removed)
	GeneKnockedOut string `json:"gene_knocked_out"`

	// Predicted age with the full gene sentence
	AgePrediction float64 `json:"age_prediction"`

	// Predicted age after the gene knockout
	AgePredictionWithKnockout float64 `json:"age_prediction_with_knockout"`

	// Change in predicted age (knockout - original)
	DeltaAge float64 `json:"delta_age"`

	// Original gene expression sentence
	OriginalGeneSentence string `json:"original_gene_sentence"`

	// Gene expression sentence after knockout
	KnockoutGeneSentence string `json:"knockout_gene_sentence"`

	// Model used for both predictions
	Model string `json:"model"`

	// Warning message if the gene was not found in the sentence
	Warning string `json:"warning,omitempty"`
}
