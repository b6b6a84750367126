package profanity

// Baseline lexicon. Callers extend it per deployment through
// custom_words; entries here must already be regex-safe.
var defaultLexicon = []string{
	"shit",
	"fuck",
	"fucking",
	"damn",
	"ass",
	"asshole",
	"bitch",
	"crap",
	"bastard",
	"dick",
	"piss",
	"prick",
	"slut",
	"whore",
}
