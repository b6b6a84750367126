package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidComment is the only hard failure of an evaluation: the
	// input comment is malformed (missing id or author).
	ErrInvalidComment = errors.New("invalid comment")

	// ErrAnalyzerTimeout marks an analyzer that exceeded its timeout
	// budget. Recovered locally; the analyzer is recorded as degraded.
	ErrAnalyzerTimeout = errors.New("analyzer timeout")

	// ErrAnalyzerFailure marks a provider or internal analyzer error.
	ErrAnalyzerFailure = errors.New("analyzer failure")

	// ErrAdmissionDenied marks a rate-limiter refusal for an analyzer
	// that delegates to a remote classification provider.
	ErrAdmissionDenied = errors.New("admission denied")
)

// AnalyzerError wraps a soft analyzer failure with the analyzer name so
// the runner can record it as degraded.
type AnalyzerError struct {
	Analyzer string
	Err      error
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("analyzer %s: %v", e.Analyzer, e.Err)
}

func (e *AnalyzerError) Unwrap() error {
	return e.Err
}
