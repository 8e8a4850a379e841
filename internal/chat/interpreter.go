package chat

import (
	"regexp"
	"strconv"
	"strings"
)

// Categories the interpreter recognizes; first case-insensitive substring
// match wins.
var categories = []string{
	"Apparel",
	"Footwear",
	"Electronics",
	"Accessories",
	"Home & Living",
	"Sports & Outdoors",
}

// Budget phrasings in priority order. Each captures a decimal amount with
// an optional two-digit fraction.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)under\s*[£$€]?(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)less\s+than\s*[£$€]?(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)below\s*[£$€]?(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)maximum\s*[£$€]?(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)max\s*[£$€]?(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)[£$€](\d+(?:\.\d{2})?)\s*or\s*less`),
}

var wordSplitter = regexp.MustCompile(`\W+`)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "up", "about", "into", "through", "during",
		"show", "me", "find", "get", "need", "want", "looking", "buy", "purchase",
		"i", "you", "he", "she", "it", "we", "they", "my", "your", "his", "her",
		"is", "are", "was", "were", "be", "been", "have", "has", "had", "do", "does",
	} {
		stopWords[w] = struct{}{}
	}
}

// Interpret derives retrieval filters from raw user text. Pure function of
// the input and the static tables above.
func Interpret(message string) Filters {
	return Filters{
		Category: extractCategory(message),
		MaxPrice: extractBudget(message),
		Keywords: extractKeywords(message),
	}
}

func extractCategory(message string) string {
	lower := strings.ToLower(message)
	for _, c := range categories {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}

func extractBudget(message string) *float64 {
	for _, re := range budgetPatterns {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &amount
	}
	return nil
}

func extractKeywords(message string) []string {
	var (
		keywords []string
		seen     = map[string]struct{}{}
	)
	for _, token := range wordSplitter.Split(message, -1) {
		if len(token) <= 2 {
			continue
		}
		lower := strings.ToLower(token)
		if _, stop := stopWords[lower]; stop {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, token)
	}
	return keywords
}
