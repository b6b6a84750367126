package abuse

import "regexp"

// Epithet-adjacent lexicon. Real deployments extend this with
// platform-specific slur lists via custom_slurs; the defaults cover
// dehumanizing terms that are unambiguous on their own.
var slurLexicon = []string{
	"subhuman",
	"untermensch",
	"vermin",
	"degenerates?",
}

// Claim-of-inferiority keyed to a protected-characteristic style
// generalization: "all/those <group> are inferior/scum/...".
var inferiorityPattern = regexp.MustCompile(
	`(?i)\b(?:all|every|those|these)\s+\w+(?:\s+people)?\s+(?:are|is)\s+(?:inferior|subhuman|worthless|scum|filth|trash|animals|vermin)\b`)

// Group-directed violence: harm verbs aimed at a plural or group
// target.
var groupViolencePattern = regexp.MustCompile(
	`(?i)\b(?:kill|exterminate|wipe\s+out|get\s+rid\s+of|destroy)\s+(?:all|every|them\s+all|those\s+people|these\s+people|every\s+one\s+of\s+them)\b`)

var selfHarmPattern = regexp.MustCompile(
	`(?i)\b(?:kill\s+myself|end\s+it\s+all|hurt\s+myself|suicide)\b`)
