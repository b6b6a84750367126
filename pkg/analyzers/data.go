package analyzers

// Finding kinds emitted by the built-in analyzers. Standards consume
// findings by kind, so the set is shared here rather than per package.
const (
	KindHarassmentThreat  = "harassment_threat"
	KindHarassmentAttack  = "harassment_attack"
	KindHarassmentPattern = "harassment_pattern"
	KindHateSlur          = "hate_slur"
	KindInferiorityClaim  = "inferiority_claim"
	KindGroupViolence     = "group_violence"
	KindSelfHarm          = "self_harm"
	KindProfanity         = "profanity"
	KindExplicitContent   = "explicit_content"
	KindMisinformation    = "misinformation"
	KindSpamLink          = "spam_link"
	KindSpamCTA           = "spam_cta"
	KindSpamRecruitment   = "spam_recruitment"
	KindRepetition        = "repetition"
	KindCharRepetition    = "char_repetition"
	KindNegativeTone      = "negative_tone"
	KindHostileTone       = "hostile_tone"
	KindQuestion          = "question"
	KindContentIdea       = "content_idea"
	KindCategory          = "category"
	KindEngagementSignal  = "engagement_signal"
	KindToxicity          = "toxicity" // prefix; remote categories append "_<category>"
)

// standardRelevance orders finding kinds by the standard they most
// directly feed: safety > policy > spam > quality > engagement. The
// runner sorts on this so final ordering is independent of analyzer
// completion order.
var standardRelevance = map[string]int{
	KindHarassmentThreat:  5,
	KindHarassmentAttack:  5,
	KindHarassmentPattern: 5,
	KindHateSlur:          5,
	KindInferiorityClaim:  5,
	KindGroupViolence:     5,
	KindSelfHarm:          5,
	KindProfanity:         4,
	KindExplicitContent:   4,
	KindMisinformation:    4,
	KindSpamLink:          3,
	KindSpamCTA:           3,
	KindSpamRecruitment:   3,
	KindRepetition:        3,
	KindCharRepetition:    3,
	KindNegativeTone:      1,
	KindHostileTone:       1,
	KindQuestion:          1,
	KindContentIdea:       1,
	KindCategory:          1,
	KindEngagementSignal:  1,
}

// KindRelevance returns the standard relevance weight for a finding
// kind. Remote toxicity kinds carry a "toxicity_" prefix and map to
// safety. Unknown kinds sort last.
func KindRelevance(kind string) int {
	if r, ok := standardRelevance[kind]; ok {
		return r
	}
	if len(kind) > len(KindToxicity) && kind[:len(KindToxicity)] == KindToxicity {
		return 5
	}
	return 0
}
