// Package ratelimit provides admission control for analyzers that
// delegate to remote classification providers. Controllers are safe for
// concurrent acquisition from analyzer tasks evaluating different
// comments simultaneously.
package ratelimit

import (
	"context"
	"time"
)

// AdmissionController is the shared admission-control interface remote
// analyzers must go through. A request either acquires immediately or
// waits up to a bounded maxWait, after which it fails fast; the analyzer
// treats a denial as its own failure and contributes zero findings.
type AdmissionController interface {
	TryAcquire(ctx context.Context, providerID string) (bool, error)
	AcquireOrTimeout(ctx context.Context, providerID string, maxWait time.Duration) (bool, error)
}
