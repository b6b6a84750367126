package spam

import "regexp"

// Call-to-action phrases common in promotional comments.
var ctaKeywords = []string{
	"buy now",
	"check out my",
	"check this out",
	"click here",
	"subscribe",
	"follow me",
	"visit my",
	"limited offer",
	"limited time",
	"free money",
	"discount code",
	"use my code",
	"link in bio",
	"dm me",
}

// Recruitment language used by engagement-farming and MLM spam.
var recruitmentKeywords = []string{
	"join my",
	"work from home",
	"be your own boss",
	"earn from home",
	"make money fast",
	"passive income",
	"sign up today",
	"recruiting now",
}

// Four or more repeats of one character, e.g. "loooool!!!!".
var charRunPattern = regexp.MustCompile(`(.)\1{3,}`)
