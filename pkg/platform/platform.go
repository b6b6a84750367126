// Package platform defines the boundary between the decision core and
// the platforms it moderates for. Adapters supply comments and carry
// out decisions; the core never talks to a platform directly.
package platform

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/types"
)

// CommentSource yields comments to moderate. Implementations own
// pagination, retries and credentials for their platform.
type CommentSource interface {
	// Next returns the next comment, or an error wrapping io.EOF when
	// the source is drained.
	Next(ctx context.Context) (types.Comment, error)
}

// ActionExecutor carries a decision out on the originating platform.
// Executors must be idempotent per evaluation id: the core may retry
// delivery after transient failures.
type ActionExecutor interface {
	Execute(ctx context.Context, result *types.ModerationResult) error
}

// LogExecutor records decisions without touching any platform. It is
// the executor of last resort and the default for dry runs.
type LogExecutor struct {
	Logger *logrus.Logger
}

func (e *LogExecutor) Execute(_ context.Context, result *types.ModerationResult) error {
	e.Logger.WithFields(logrus.Fields{
		"evaluation_id": result.EvaluationID,
		"comment_id":    result.CommentID,
		"platform_id":   result.PlatformID,
		"action":        result.Action,
		"severity":      result.OverallSeverity,
	}).Info("moderation decision recorded")
	return nil
}
