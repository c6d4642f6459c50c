// internal/narrative/models.go
package narrative

import "context"

// Request describes one company/persona pair to assess.
type Request struct {
	Symbol      string
	Name        string
	Persona     string
	Description string
	Sources     SourceSummary
}

// SourceSummary carries the one-line data summaries embedded in the prompt.
// Empty lines mean the source had no data; HasData false switches the prompt
// to general-knowledge mode.
type SourceSummary struct {
	Donations      string
	Sustainability string
	Leadership     string
	News           string
	HasData        bool
}

// Result is a parsed narrative assessment.
type Result struct {
	Score     float64
	Reasoning string
	Prompt    string
}

// Scorer produces a narrative alignment assessment for a company.
type Scorer interface {
	Score(ctx context.Context, req Request) (*Result, error)
}
