// Package provider wraps remote content-classification services behind
// a small interface. The core never implements platform HTTP APIs; this
// client only speaks a generic moderation endpoint.
package provider

import (
	"context"
)

// Classification is the normalized output of a remote moderation call.
type Classification struct {
	Flagged    bool
	Categories map[string]bool
	Scores     map[string]float64
}

// Classifier scores a piece of text against the provider's category
// taxonomy.
type Classifier interface {
	ProviderID() string
	Classify(ctx context.Context, input string) (*Classification, error)
}
