package engine

// SurveyRecord is one reconstructed survey entry. Records are built once per
// parse and never mutated afterwards.
type SurveyRecord struct {
	ID             string `json:"id"`
	UnitCode       string `json:"unit_code"`
	Score          *int   `json:"score,omitempty"`
	Comment        string `json:"comment"`
	LeaderFeedback string `json:"leader_feedback"`
}

// BlockDiagnostic describes a block that was skipped because parsing it
// failed unexpectedly. Malformed blocks (missing id or unit code) are
// dropped silently and do not appear here.
type BlockDiagnostic struct {
	Index   int    `json:"index"`
	Snippet string `json:"snippet"`
	Reason  string `json:"reason"`
}

// Result is the outcome of a single parse invocation: the records that were
// reconstructed, in document order, plus diagnostics for blocks that were
// skipped on unexpected failures.
type Result struct {
	Records []SurveyRecord    `json:"records"`
	Skipped []BlockDiagnostic `json:"skipped,omitempty"`
}
