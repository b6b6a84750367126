package harassment

import "regexp"

// Threats against an identifiable target: imperative or future-tense
// harm phrasing directed at a person.
var threatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:kill|murder|destroy|hurt|harm|beat)\s+(?:you|your|u)\b`),
	regexp.MustCompile(`(?i)\b(?:i'?m\s+going\s+to|i\s+will|we\s+will|gonna)\s+(?:get|find|hunt|hurt|end|destroy)\s+(?:you|u|him|her)\b`),
	regexp.MustCompile(`(?i)\b(?:find|hunt|track)\s+you(?:\s+down)?\b`),
	regexp.MustCompile(`(?i)\byou'?ll\s+regret\b`),
	regexp.MustCompile(`(?i)\b(?:dox+ing?|expose)\s+(?:you|your\s+address)\b`),
}

// Direct personal attacks.
var directAttackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:you\s+are|you'?re|ur)\s+(?:stupid|an?\s+idiot|a\s+moron|a\s+loser|pathetic|useless|worthless)\b`),
	regexp.MustCompile(`(?i)\b(?:everyone|nobody|no\s+one)\s+(?:knows|sees|likes)\s+(?:that\s+)?you\b`),
}

// Lower-grade harassment phrasing.
var harassmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:get\s+a\s+life|shut\s+up|go\s+away)\b`),
	regexp.MustCompile(`(?i)\bleave\s+(?:me|us)\s+alone\b`),
	regexp.MustCompile(`(?i)\b(?:stupid|idiotic|pathetic)\s+(?:comment|post|message)\b`),
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
