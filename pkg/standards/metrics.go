package standards

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ModerationAI/modcore/pkg/normalizer"
	"github.com/ModerationAI/modcore/pkg/types"
)

// Builtin metric ids. Configuration references metrics by id; unknown
// ids are a construction-time error.
const (
	MetricDirectThreats        = "direct_threats"
	MetricHateSpeech           = "hate_speech"
	MetricSelfHarm             = "self_harm"
	MetricEngagementQuality    = "engagement_quality"
	MetricIncoherentRepetition = "incoherent_repetition"
	MetricPromotional          = "promotional"
	MetricLinkDensity          = "link_density"
	MetricRepetition           = "repetition"
	MetricExplicitContent      = "explicit_content"
	MetricMisinformation       = "misinformation"
	MetricProfanity            = "profanity"
	MetricNegativeTone         = "negative_tone"
	MetricLowCivility          = "low_civility"
)

const repetitionSimilarityThreshold = 0.8

var (
	threatTextPattern = regexp.MustCompile(
		`(?i)\b(?:i'?m\s+going\s+to|i\s+will|we\s+will|gonna)\s+(?:get|find|hunt|hurt|kill|end|destroy)\s+(?:you|u|him|her|them)\b` +
			`|\b(?:kill|murder|destroy|hurt|harm)\s+(?:you|your)\b`)

	groupViolenceTextPattern = regexp.MustCompile(
		`(?i)\b(?:kill|exterminate|wipe\s+out|get\s+rid\s+of)\s+(?:all|every|them\s+all|those\s+people|these\s+people)\b`)

	inferiorityTextPattern = regexp.MustCompile(
		`(?i)\b(?:all|every|those|these)\s+\w+(?:\s+people)?\s+(?:are|is)\s+(?:inferior|subhuman|worthless|scum|filth|trash|animals|vermin)\b`)

	selfHarmTextPattern = regexp.MustCompile(
		`(?i)\b(?:kill\s+myself|end\s+it\s+all|hurt\s+myself|suicide)\b`)

	charRunTextPattern = regexp.MustCompile(`(.)\1{3,}`)

	ctaTextPattern = regexp.MustCompile(
		`(?i)\b(?:buy\s+now|check\s+out\s+my|click\s+here|subscribe|follow\s+me|visit\s+my|limited\s+offer|use\s+my\s+code|link\s+in\s+bio|dm\s+me)\b`)

	recruitmentTextPattern = regexp.MustCompile(
		`(?i)\b(?:join\s+my|work\s+from\s+home|be\s+your\s+own\s+boss|make\s+money\s+fast|passive\s+income)\b`)

	explicitContentPattern = regexp.MustCompile(
		`(?i)\b(?:porn|pornographic|xxx|nsfw|explicit\s+sex|hardcore\s+sex)\b`)

	minorContextPattern = regexp.MustCompile(
		`(?i)\b(?:minor|underage|under\s+18|child|children|kid|kids|teen|teens)\b`)

	misinformationPattern = regexp.MustCompile(
		`(?i)\b(?:fake\s+news|conspiracy|hoax|debunked|plandemic|false\s+flag)\b`)
)

// bestFinding returns the highest-confidence finding among the given
// kinds.
func bestFinding(in Input, kinds ...string) (types.Finding, bool) {
	var best types.Finding
	found := false
	for _, f := range in.Findings {
		for _, k := range kinds {
			if f.Kind != k {
				continue
			}
			if !found || f.Confidence > best.Confidence {
				best = f
				found = true
			}
		}
	}
	return best, found
}

func truncateEvidence(s string) string {
	if len(s) > 100 {
		return s[:97] + "..."
	}
	return s
}

// directThreats: imperative or future-threat phrasing with an
// identifiable target and a harm reference. HIGH, or CRITICAL when the
// harm is group-directed violence.
func directThreats(in Input) (Match, bool) {
	if f, ok := bestFinding(in, "group_violence"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Severity: types.SeverityCritical, Confidence: f.Confidence}, true
	}
	if m := groupViolenceTextPattern.FindString(in.Text.Plain); m != "" {
		return Match{Evidence: truncateEvidence(m), Severity: types.SeverityCritical}, true
	}
	if f, ok := bestFinding(in, "harassment_threat", "toxicity_violence", "toxicity_threat"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
	}
	if m := threatTextPattern.FindString(in.Text.Plain); m != "" {
		return Match{Evidence: truncateEvidence(m)}, true
	}
	return Match{}, false
}

// hateSpeech: slur lexicon hit is CRITICAL; a claim-of-inferiority
// pattern keyed to a protected-characteristic term is HIGH.
func hateSpeech(in Input) (Match, bool) {
	if f, ok := bestFinding(in, "hate_slur", "toxicity_hate"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
	}
	if f, ok := bestFinding(in, "inferiority_claim"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Severity: types.SeverityHigh, Confidence: f.Confidence}, true
	}
	if m := inferiorityTextPattern.FindString(in.Text.Plain); m != "" {
		return Match{Evidence: truncateEvidence(m), Severity: types.SeverityHigh}, true
	}
	return Match{}, false
}

func selfHarm(in Input) (Match, bool) {
	if f, ok := bestFinding(in, "self_harm", "toxicity_self-harm"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
	}
	if m := selfHarmTextPattern.FindString(in.Text.Plain); m != "" {
		return Match{Evidence: truncateEvidence(m)}, true
	}
	return Match{}, false
}

// engagementQuality: effectively empty comment with no question and no
// reference token.
func engagementQuality(in Input) (Match, bool) {
	if in.Text.WordCount >= 2 {
		return Match{}, false
	}
	if strings.ContainsAny(in.Text.Plain, "?@") || strings.HasPrefix(in.Text.Plain, ">") {
		return Match{}, false
	}
	return Match{Evidence: fmt.Sprintf("word_count=%d", in.Text.WordCount)}, true
}

func incoherentRepetition(in Input) (Match, bool) {
	if f, ok := bestFinding(in, "char_repetition"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
	}
	if m := charRunTextPattern.FindString(in.Text.Plain); m != "" {
		return Match{Evidence: truncateEvidence(m)}, true
	}
	return Match{}, false
}

// promotional: at least one external link plus call-to-action or
// recruitment language.
func promotional(in Input) (Match, bool) {
	if len(in.Text.Links) == 0 {
		return Match{}, false
	}
	if f, ok := bestFinding(in, "spam_cta", "spam_recruitment"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
	}
	if m := ctaTextPattern.FindString(in.Text.Plain); m != "" {
		return Match{Evidence: truncateEvidence(m)}, true
	}
	if m := recruitmentTextPattern.FindString(in.Text.Plain); m != "" {
		return Match{Evidence: truncateEvidence(m)}, true
	}
	return Match{}, false
}

func linkDensity(in Input) (Match, bool) {
	links := len(in.Text.Links)
	if links >= 3 {
		return Match{Evidence: fmt.Sprintf("links=%d", links)}, true
	}
	if links > 0 && in.Text.WordCount > 0 && float64(links)/float64(in.Text.WordCount) >= 0.5 {
		return Match{Evidence: fmt.Sprintf("links=%d words=%d", links, in.Text.WordCount)}, true
	}
	return Match{}, false
}

// repetition: near-duplicate of another comment from the same author
// within the caller-supplied recent window. Without the window the
// metric does not fire; it never guesses.
func repetition(in Input) (Match, bool) {
	if in.Comment.Context == nil || len(in.Comment.Context.RecentComments) == 0 {
		return Match{}, false
	}
	for _, recent := range in.Comment.Context.RecentComments {
		sim := normalizer.Similarity(in.Text.Plain, recent)
		if sim >= repetitionSimilarityThreshold {
			return Match{Evidence: fmt.Sprintf("similarity=%.2f", sim)}, true
		}
	}
	return Match{}, false
}

// explicitContent: graphic sexual-content lexicon hit, MEDIUM baseline.
// Co-occurrence with a minor-context signal escalates to CRITICAL.
func explicitContent(in Input) (Match, bool) {
	var evidence string
	var confidence float64

	if f, ok := bestFinding(in, "explicit_content", "toxicity_sexual"); ok {
		evidence, confidence = f.Evidence, f.Confidence
	} else if m := explicitContentPattern.FindString(in.Text.Plain); m != "" {
		evidence = m
	} else {
		return Match{}, false
	}

	match := Match{Evidence: truncateEvidence(evidence), Confidence: confidence}
	if minorContextPattern.MatchString(in.Text.Plain) {
		match.Severity = types.SeverityCritical
	}
	return match, true
}

func misinformation(in Input) (Match, bool) {
	if f, ok := bestFinding(in, "misinformation"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
	}
	if m := misinformationPattern.FindString(in.Text.Plain); m != "" {
		return Match{Evidence: truncateEvidence(m)}, true
	}
	return Match{}, false
}

func profanityMetric(in Input) (Match, bool) {
	if f, ok := bestFinding(in, "profanity"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
	}
	return Match{}, false
}

func negativeTone(in Input) (Match, bool) {
	f, ok := bestFinding(in, "negative_tone")
	if !ok || f.Confidence < 0.5 {
		return Match{}, false
	}
	return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
}

func lowCivility(in Input) (Match, bool) {
	if f, ok := bestFinding(in, "hostile_tone"); ok {
		return Match{Evidence: truncateEvidence(f.Evidence), Confidence: f.Confidence}, true
	}
	return Match{}, false
}
