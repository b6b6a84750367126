package moderation

import (
	"github.com/ModerationAI/modcore/pkg/types"
)

// severityLadder maps overall severity to the default action. The
// ladder is monotone: a higher severity never yields a softer action.
var severityLadder = map[types.Severity]types.ModerationAction{
	types.SeverityNone:     types.ActionApprove,
	types.SeverityLow:      types.ActionFlag,
	types.SeverityMedium:   types.ActionFlag,
	types.SeverityHigh:     types.ActionHide,
	types.SeverityCritical: types.ActionRemove,
}

// Resolver maps the aggregated severity to a final action. The only
// data-driven override is at MEDIUM: violations of the configured
// standards (spam and safety by default) hide instead of flag because
// leaving them visible pending review is itself harm.
type Resolver struct {
	mediumHide map[string]bool
}

func NewResolver(mediumHideStandards []string) *Resolver {
	hide := make(map[string]bool, len(mediumHideStandards))
	for _, s := range mediumHideStandards {
		hide[s] = true
	}
	return &Resolver{mediumHide: hide}
}

// Resolve returns the action for the aggregated severity. Unknown
// severities resolve to FLAG so a malformed value never auto-approves
// or auto-removes.
func (r *Resolver) Resolve(severity types.Severity, violations []types.Violation) types.ModerationAction {
	action, ok := severityLadder[severity]
	if !ok {
		return types.ActionFlag
	}
	if severity == types.SeverityMedium {
		for _, v := range violations {
			if v.Severity == types.SeverityMedium && r.mediumHide[v.Standard] {
				return types.ActionHide
			}
		}
	}
	return action
}
