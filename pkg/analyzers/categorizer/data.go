package categorizer

var topicCategories = map[string][]string{
	"tech": {
		"software", "app", "code", "programming", "developer", "api",
		"technology", "tech", "digital", "hardware", "update",
		"version", "feature", "bug", "fix",
	},
	"entertainment": {
		"movie", "music", "game", "video", "show", "entertainment",
		"fun", "funny",
	},
	"politics": {
		"politics", "government", "policy", "election", "congress",
		"president", "vote", "campaign", "political", "legislation",
	},
	"sports": {
		"sport", "team", "player", "coach", "score", "win",
		"championship", "league",
	},
	"business": {
		"business", "company", "market", "stock", "investment",
		"economy", "finance", "startup", "entrepreneur", "profit",
	},
}
