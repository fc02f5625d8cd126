package dataset

import (
	"encoding/json"
	"fmt"
)

// Answer is the parsed structured reply.
type Answer struct {
	Question   string      `json:"question"`
	Violations []Violation `json:"violations"`
	Citations  []Citation  `json:"citations"`
	Penalties  []Penalty   `json:"penalties"`
	Summary    string      `json:"summary"`
}

// Violation is one offending behavior found in the situation.
type Violation struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// Citation is one legal reference: statute, article, clause.
type Citation struct {
	Law     string `json:"law"`
	Article string `json:"article"`
	Clause  string `json:"clause"`
}

// Penalty is the sanction range for one violation. Fines are float64
// because models emit both integers and decimals for VND amounts.
type Penalty struct {
	Violation        string  `json:"violation"`
	FineMinVND       float64 `json:"fine_min_vnd"`
	FineMaxVND       float64 `json:"fine_max_vnd"`
	SuspensionMonths float64 `json:"license_suspension_months"`
}

// FormatError indicates a structured reply could not be parsed into an
// Answer. Raw carries the original text for the fallback policy.
type FormatError struct {
	Raw string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("structured answer does not match expected shape: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ParseAnswer decodes a structured reply. Returns *FormatError when the
// raw bytes are not a JSON object of the expected shape.
func ParseAnswer(raw json.RawMessage) (*Answer, error) {
	var a Answer
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, &FormatError{Raw: string(raw), Err: err}
	}
	return &a, nil
}
