package faq

import "regexp"

var questionStarters = []string{
	"how do i", "how can i", "how to",
	"what is", "what are", "what does",
	"when does", "when will", "when is",
	"where can i", "where do i",
	"why is", "why does", "why don't",
	"who can", "who should", "who is",
	"can you", "could you", "would you",
}

var ideationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`you should (?:make|do|cover|write|create)`),
	regexp.MustCompile(`(?:it would be|would be) (?:great|cool|nice|awesome) (?:if|to see)`),
	regexp.MustCompile(`(?:please|pls) (?:make|do|cover) (?:a|an|more)`),
	regexp.MustCompile(`i(?:'d| would) (?:love|like) to see`),
}
