package types

import (
	"time"
)

// Severity levels for findings and violations, ordered by escalation.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the escalation order of the severity. Unknown values rank
// below SeverityNone so malformed input never escalates a decision.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// ModerationAction is the final decision for a comment, totally ordered
// by escalation: APPROVE < FLAG < HIDE < REMOVE.
type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionFlag    ModerationAction = "flag"
	ActionHide    ModerationAction = "hide"
	ActionRemove  ModerationAction = "remove"
)

var actionRank = map[ModerationAction]int{
	ActionApprove: 0,
	ActionFlag:    1,
	ActionHide:    2,
	ActionRemove:  3,
}

func (a ModerationAction) Rank() int {
	if r, ok := actionRank[a]; ok {
		return r
	}
	return -1
}

// Comment is an immutable value supplied by a platform adapter. The core
// never mutates it.
type Comment struct {
	ID         string          `json:"id"`
	PlatformID string          `json:"platform_id"`
	Text       string          `json:"text"`
	AuthorID   string          `json:"author_id"`
	AuthorName string          `json:"author_name,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Context    *CommentContext `json:"context,omitempty"`
}

// CommentContext carries optional surrounding signal a platform adapter
// may supply. Metrics that need missing context treat their condition as
// not met rather than erroring.
type CommentContext struct {
	ParentText      string   `json:"parent_text,omitempty"`
	AuthorFollowers int      `json:"author_followers,omitempty"`
	Likes           int      `json:"likes,omitempty"`
	RepliesCount    int      `json:"replies_count,omitempty"`
	RecentComments  []string `json:"recent_comments,omitempty"`
}

// NormalizedText is the canonical plain-text view of one comment. It is
// derived per evaluation and never cached across comments.
type NormalizedText struct {
	Plain     string   `json:"plain"`
	WordCount int      `json:"word_count"`
	CharCount int      `json:"char_count"`
	Links     []string `json:"links,omitempty"`
	CapsRatio float64  `json:"caps_ratio"`
}

// Finding is one analyzer's raw detection output.
type Finding struct {
	Analyzer     string   `json:"analyzer"`
	Kind         string   `json:"kind"`
	Confidence   float64  `json:"confidence"`
	SeverityHint Severity `json:"severity_hint"`
	Evidence     string   `json:"evidence,omitempty"`
}

// Violation is a metric that matched for a comment. Confidence is the
// maximum confidence among the findings backing it; zero means the
// violation derives purely from deterministic text metrics.
type Violation struct {
	Standard   string   `json:"standard"`
	Metric     string   `json:"metric"`
	Severity   Severity `json:"severity"`
	Evidence   string   `json:"evidence,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
}

// DegradedAnalyzer records an analyzer that contributed no findings to
// an evaluation because it failed, timed out, or was denied admission.
type DegradedAnalyzer struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// StandardBreakdown groups the violations of one standard for auditing.
type StandardBreakdown struct {
	Standard   string      `json:"standard"`
	Violations []Violation `json:"violations"`
}

// Reasoning is the structured explanation attached to a result.
type Reasoning struct {
	Summary   string              `json:"summary"`
	Standards []StandardBreakdown `json:"standards,omitempty"`
}

// ModerationResult is the terminal artifact of one evaluation. It is
// immutable once constructed and handed to the ActionExecutor
// collaborator.
type ModerationResult struct {
	EvaluationID      string             `json:"evaluation_id"`
	CommentID         string             `json:"comment_id"`
	PlatformID        string             `json:"platform_id,omitempty"`
	Action            ModerationAction   `json:"action"`
	Violations        []Violation        `json:"violations"`
	OverallSeverity   Severity           `json:"overall_severity"`
	EscalationReason  string             `json:"escalation_reason,omitempty"`
	Confidence        float64            `json:"confidence"`
	Degraded          bool               `json:"degraded"`
	DegradedAnalyzers []DegradedAnalyzer `json:"degraded_analyzers,omitempty"`
	Reasoning         Reasoning          `json:"reasoning"`
	EvaluatedAt       time.Time          `json:"evaluated_at"`
}

// HasViolations reports whether any standard was violated.
func (r *ModerationResult) HasViolations() bool {
	return len(r.Violations) > 0
}

// IsSevere reports whether any violation is HIGH or CRITICAL.
func (r *ModerationResult) IsSevere() bool {
	for _, v := range r.Violations {
		if v.Severity.Rank() >= SeverityHigh.Rank() {
			return true
		}
	}
	return false
}
