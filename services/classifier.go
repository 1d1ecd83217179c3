package services

import (
	"context"
	"strings"
	"unicode"

	"moodbite/models"
)

// MoodClassifier maps free text to a mood label. Implementations never fail:
// anything they cannot handle comes back as neutral.
type MoodClassifier interface {
	Classify(ctx context.Context, text string) models.MoodLabel
}

// keyword phrases per label; multi-word phrases match consecutive tokens
var moodLexicon = map[models.MoodLabel][]string{
	models.MoodHappy: {
		"happy", "glad", "great", "good", "joy", "joyful", "cheerful", "awesome",
		"wonderful", "delighted", "pleased", "content", "fantastic", "amazing", "smiling",
	},
	models.MoodSad: {
		"sad", "down", "depressed", "unhappy", "miserable", "lonely", "cry", "crying",
		"upset", "blue", "heartbroken", "gloomy", "hopeless",
	},
	models.MoodAngry: {
		"angry", "mad", "furious", "annoyed", "irritated", "frustrated", "rage",
		"pissed", "livid", "resentful",
	},
	models.MoodAnxious: {
		"anxious", "worried", "nervous", "stressed", "scared", "afraid", "panic",
		"tense", "uneasy", "overwhelmed", "fear",
	},
	models.MoodExcited: {
		"excited", "thrilled", "pumped", "ecstatic", "eager", "stoked", "can't wait",
		"cannot wait", "hyped",
	},
	models.MoodTired: {
		"tired", "exhausted", "sleepy", "drained", "fatigued", "worn out", "weary",
		"lethargic", "no energy",
	},
	models.MoodCalm: {
		"calm", "relaxed", "peaceful", "serene", "chill", "tranquil", "at ease",
		"mellow", "rested",
	},
	models.MoodConfused: {
		"confused", "unsure", "puzzled", "lost", "uncertain", "don't understand",
		"perplexed", "baffled",
	},
}

// general polarity words used when no mood keyword matches
var (
	positiveWords = []string{"nice", "love", "fine", "well", "better", "best", "enjoy", "enjoyed", "yay", "fun"}
	negativeWords = []string{"bad", "terrible", "awful", "hate", "worst", "sick", "horrible", "ugh", "worse", "pain"}
	negators      = map[string]bool{
		"not": true, "no": true, "never": true, "isn't": true, "don't": true,
		"didn't": true, "wasn't": true, "aren't": true, "can't": true, "hardly": true,
	}
)

// LexiconClassifier is a keyword and polarity heuristic. It is deterministic
// and has no external dependencies, so it doubles as the fallback for remote
// classifiers.
type LexiconClassifier struct {
	metrics *Metrics
}

func NewLexiconClassifier(metrics *Metrics) *LexiconClassifier {
	return &LexiconClassifier{metrics: metrics}
}

func (c *LexiconClassifier) Classify(_ context.Context, text string) models.MoodLabel {
	label := classifyLexicon(text)
	c.metrics.observeClassified(label, "lexicon")
	return label
}

func classifyLexicon(text string) models.MoodLabel {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return models.MoodNeutral
	}

	scores := make(map[models.MoodLabel]int)
	for label, phrases := range moodLexicon {
		for _, phrase := range phrases {
			for _, negated := range matchPhrase(tokens, strings.Fields(phrase)) {
				if !negated {
					scores[label]++
					continue
				}
				// "not happy" reads as sad; a negated negative mood is dropped
				if upliftingMoods[label] {
					scores[models.MoodSad]++
				}
			}
		}
	}

	if label, ok := topScore(scores); ok {
		return label
	}

	polarity := 0
	for _, w := range positiveWords {
		for _, negated := range matchPhrase(tokens, []string{w}) {
			if negated {
				polarity--
			} else {
				polarity++
			}
		}
	}
	for _, w := range negativeWords {
		for _, negated := range matchPhrase(tokens, []string{w}) {
			if negated {
				polarity++
			} else {
				polarity--
			}
		}
	}
	switch {
	case polarity > 0:
		return models.MoodHappy
	case polarity < 0:
		return models.MoodSad
	default:
		return models.MoodNeutral
	}
}

// topScore returns the highest scoring label, lowest label on ties.
func topScore(scores map[models.MoodLabel]int) (models.MoodLabel, bool) {
	var best models.MoodLabel
	bestScore := 0
	for label, n := range scores {
		if n > bestScore || (n == bestScore && n > 0 && label < best) {
			best, bestScore = label, n
		}
	}
	return best, bestScore > 0
}

// matchPhrase reports one entry per occurrence of phrase in tokens, true when
// a negator appears within the two tokens before it.
func matchPhrase(tokens, phrase []string) []bool {
	var hits []bool
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		negated := false
		for k := i - 1; k >= 0 && k >= i-2; k-- {
			if negators[tokens[k]] {
				negated = true
				break
			}
		}
		hits = append(hits, negated)
	}
	return hits
}

func tokenize(text string) []string {
	text = strings.ToLower(strings.ReplaceAll(text, "’", "'"))
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
