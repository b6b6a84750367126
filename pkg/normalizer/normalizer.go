// Package normalizer produces the canonical plain-text view of a comment
// consumed by every analyzer and metric predicate.
package normalizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/ModerationAI/modcore/pkg/types"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	urlPattern        = regexp.MustCompile(`https?://[^\s<>"']+`)
)

// Normalize strips markup, decodes entities, collapses whitespace and
// computes the derived text properties. Pure function; empty input is
// valid and yields an empty NormalizedText, not an error.
func Normalize(raw string) types.NormalizedText {
	decoded := html.UnescapeString(raw)
	links := urlPattern.FindAllString(decoded, -1)

	plain := tagPattern.ReplaceAllString(decoded, " ")
	plain = whitespacePattern.ReplaceAllString(plain, " ")
	plain = strings.TrimSpace(plain)

	var upper, letters int
	for _, r := range plain {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}

	capsRatio := 0.0
	if letters > 0 {
		capsRatio = float64(upper) / float64(letters)
	}

	wordCount := 0
	if plain != "" {
		wordCount = len(strings.Fields(plain))
	}

	return types.NormalizedText{
		Plain:     plain,
		WordCount: wordCount,
		CharCount: len(plain),
		Links:     links,
		CapsRatio: capsRatio,
	}
}
