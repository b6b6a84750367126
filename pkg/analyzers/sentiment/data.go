package sentiment

var positiveWords = toSet([]string{
	"good", "great", "awesome", "excellent", "amazing", "wonderful",
	"fantastic", "love", "like", "enjoy", "happy", "pleased",
	"satisfied", "delighted", "excited", "positive", "helpful",
	"useful", "beneficial", "valuable", "informative", "interesting",
	"engaging", "thanks", "thank", "appreciate", "brilliant",
	"perfect", "outstanding", "superb", "best", "favorite",
	"recommend", "agree", "beautiful", "nice", "cool", "fun",
	"hilarious", "funny", "clarifies",
})

var negativeWords = toSet([]string{
	"bad", "terrible", "awful", "horrible", "worst", "hate",
	"dislike", "disappointed", "frustrated", "annoyed", "angry",
	"upset", "sad", "unhappy", "useless", "worthless", "boring",
	"dull", "stupid", "idiotic", "ridiculous", "pathetic",
	"disappointing", "unhelpful", "waste", "garbage", "trash",
	"sucks", "fail", "failure", "disgusting", "offensive", "rude",
	"mean", "harmful", "dangerous", "scary", "worried", "negative",
	"poor", "weak", "broken", "wrong",
})

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
