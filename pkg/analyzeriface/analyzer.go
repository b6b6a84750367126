// Package analyzeriface defines the capability interface every content
// analyzer implements. Analyzers are registered explicitly at startup;
// there is no runtime discovery.
package analyzeriface

import (
	"context"
	"time"

	"github.com/ModerationAI/modcore/pkg/types"
)

// Analyzer consumes a comment plus its normalized text and produces zero
// or more findings. Implementations must be side-effect-free on shared
// state: they may only read the comment, the text, and their own
// pre-loaded lexicon or configuration.
//
// A failing analyzer (timeout, provider error, admission denied)
// contributes zero findings and is recorded as degraded; it never aborts
// the pipeline.
type Analyzer interface {
	Name() string
	TimeoutBudget() time.Duration
	Analyze(ctx context.Context, comment types.Comment, text types.NormalizedText) ([]types.Finding, error)
}
