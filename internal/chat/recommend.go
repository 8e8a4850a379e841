package chat

import (
	"regexp"
	"strings"

	"github.com/oaklee/shopassist/internal/catalog"
)

// Inverse of SKUMarkerFormat.
var skuMarkerPattern = regexp.MustCompile(`\[SKU-([^\]]+)\]`)

const reasonWindow = 100

// ExtractRecommendations scans an assistant reply for SKU markers and
// matches them against the catalog context the prompt was built from.
// found is false when the reply contains no markers at all, which is
// distinct from markers that all failed to match. unmatched counts
// distinct marker values that named no retrieved product.
func ExtractRecommendations(reply string, items []catalog.Item) (recs []Recommendation, unmatched int, found bool) {
	matches := skuMarkerPattern.FindAllStringSubmatchIndex(reply, -1)
	if len(matches) == 0 {
		return nil, 0, false
	}

	seen := map[string]struct{}{}
	for _, m := range matches {
		sku := reply[m[2]:m[3]]
		key := strings.ToLower(sku)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		item, ok := lookupBySKU(items, sku)
		if !ok {
			unmatched++
			continue
		}

		recs = append(recs, Recommendation{
			ProductID: item.ID,
			SKU:       item.SKU,
			Name:      item.Name,
			Price:     item.Price,
			Currency:  item.Currency,
			Category:  item.Category,
			Reason:    reasonAround(reply, m[0]),
			ImageURL:  imageURLForCategory(item.Category),
		})
	}
	return recs, unmatched, true
}

func lookupBySKU(items []catalog.Item, sku string) (catalog.Item, bool) {
	for _, item := range items {
		if strings.EqualFold(item.SKU, sku) {
			return item, true
		}
	}
	return catalog.Item{}, false
}

// reasonAround clips a local context window around the marker occurrence.
// A heuristic, not a semantic summary.
func reasonAround(reply string, markerStart int) string {
	start := markerStart - reasonWindow
	if start < 0 {
		start = 0
	}
	end := start + 2*reasonWindow
	if end > len(reply) {
		end = len(reply)
	}
	return strings.TrimSpace(reply[start:end])
}

func imageURLForCategory(category string) string {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "laptop") || strings.Contains(c, "computer") || strings.Contains(c, "electronic"):
		return "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400"
	case strings.Contains(c, "apparel"):
		return "https://images.unsplash.com/photo-1489987707025-afc232f7ea0f?w=400"
	case strings.Contains(c, "footwear"):
		return "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400"
	case strings.Contains(c, "accessor"):
		return "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400"
	case strings.Contains(c, "home"):
		return "https://images.unsplash.com/photo-1513506003901-1e6a229e2d15?w=400"
	case strings.Contains(c, "sport") || strings.Contains(c, "outdoor"):
		return "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400"
	default:
		return "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400"
	}
}
