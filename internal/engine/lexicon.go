package engine

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Category lexicon for the word game. Small on purpose: the dialogue tree
// accepts any known word, so the lists only need to cover plausible answers.

var lexiconCategories = map[string][]string{
	"moods": {
		"HAPPY", "SAD", "OK", "FINE", "GOOD", "BAD", "TIRED", "ANGRY",
		"CALM", "BORED", "WEIRD", "GREAT", "MEH", "ANXIOUS", "LONELY",
		"CURIOUS", "ALIVE", "NUMB", "WARM", "COLD",
	},
	"colors": {
		"RED", "BLUE", "GREEN", "YELLOW", "ORANGE", "PURPLE", "PINK",
		"BLACK", "WHITE", "GRAY", "GREY", "BROWN", "CYAN", "TEAL",
		"GOLD", "SILVER",
	},
	"seasons": {
		"SPRING", "SUMMER", "FALL", "AUTUMN", "WINTER",
	},
	"cuisines": {
		"ITALIAN", "CHINESE", "MEXICAN", "INDIAN", "THAI", "FRENCH",
		"GREEK", "JAPANESE", "KOREAN", "TURKISH", "PIZZA", "SUSHI",
		"RAMEN", "TACOS", "CURRY", "PASTA", "NONE",
	},
	"common": {
		"YES", "NO", "MAYBE", "SURE", "HELP", "HELLO", "HI", "BYE",
		"CAT", "DOG", "SUN", "MOON", "STAR", "MATH", "SUM", "ONE",
		"TWO", "TEN", "ZERO", "LOVE", "HATE", "FEAR", "HOME", "WORK",
		"SLEEP", "FOOD", "RAIN", "SNOW", "WIND", "FIRE",
	},
}

var lexicon = buildLexicon()

func buildLexicon() map[string]bool {
	all := map[string]bool{}
	for _, words := range lexiconCategories {
		for _, w := range words {
			all[w] = true
		}
	}
	return all
}

// KnownWord reports whether the word appears in any category.
func KnownWord(word string) bool {
	return lexicon[strings.ToUpper(word)]
}

// NearestWord returns the closest known word within a distance of two, for
// near-miss suggestions. ok is false when nothing is close enough.
func NearestWord(word string) (string, bool) {
	word = strings.ToUpper(word)
	best, bestDist := "", 3
	for w := range lexicon {
		d := levenshtein.ComputeDistance(word, w)
		if d < bestDist || (d == bestDist && w < best && best != "") {
			best, bestDist = w, d
		}
	}
	return best, best != "" && bestDist <= 2
}

func rejectWithSuggestion(word string) string {
	if near, ok := NearestWord(word); ok {
		return fmt.Sprintf("\"%s\" isn't a word i know. did you mean %s?", strings.ToLower(word), near)
	}
	return fmt.Sprintf("\"%s\" isn't a word i know. and i know several.", strings.ToLower(word))
}
