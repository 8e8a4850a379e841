package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Categories the filter builder recognizes in free-text queries. The
// index stores them capitalized.
var filterCategories = []string{"beauty", "apparel", "footwear", "home", "accessories", "electronics"}

var (
	maxPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`under\s+\$?(\d+)`),
		regexp.MustCompile(`below\s+\$?(\d+)`),
		regexp.MustCompile(`less\s+than\s+\$?(\d+)`),
	}
	minPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`over\s+\$?(\d+)`),
		regexp.MustCompile(`above\s+\$?(\d+)`),
		regexp.MustCompile(`more\s+than\s+\$?(\d+)`),
	}
)

// BuildFilter derives a structured filter expression from a natural
// language query. Grammar: `field eq 'value'`, `field lt N`, `field gt N`,
// conjoined with `and`. Empty string means no filter.
func BuildFilter(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}

	var filters []string
	lower := strings.ToLower(query)

	for _, category := range filterCategories {
		if strings.Contains(lower, category) {
			filters = append(filters, fmt.Sprintf("category eq '%s'", strings.ToUpper(category[:1])+category[1:]))
			break
		}
	}

	if amount, ok := firstAmount(lower, maxPricePatterns); ok {
		filters = append(filters, fmt.Sprintf("price lt %g", amount))
	}
	if amount, ok := firstAmount(lower, minPricePatterns); ok {
		filters = append(filters, fmt.Sprintf("price gt %g", amount))
	}

	return strings.Join(filters, " and ")
}

func firstAmount(query string, patterns []*regexp.Regexp) (float64, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return amount, true
	}
	return 0, false
}
