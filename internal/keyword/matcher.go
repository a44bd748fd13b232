// Package keyword implements case-normalized substring matching of fixed
// keyword tables. No tokenization, no stemming, no word boundaries; Korean
// keywords match as plain substrings.
package keyword

import "strings"

// Category is one named entry of a Table with its ordered keyword list.
type Category struct {
	Name     string
	Keywords []string
}

// Table is an ordered list of categories. The order is the detection order
// returned by Match, so results are reproducible across calls.
type Table []Category

// Match returns the names of all categories with at least one keyword
// contained in text, in table order, deduplicated. Matching lower-cases the
// input; keywords are assumed to be lower-case already. Scanning a category
// stops at its first hit.
func Match(text string, table Table) []string {
	if text == "" || len(table) == 0 {
		return nil
	}
	lower := strings.ToLower(text)

	var matched []string
	seen := make(map[string]struct{}, len(table))
	for _, cat := range table {
		if _, ok := seen[cat.Name]; ok {
			continue
		}
		for _, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, kw) {
				matched = append(matched, cat.Name)
				seen[cat.Name] = struct{}{}
				break
			}
		}
	}
	return matched
}

// ContainsAny reports whether text (lower-cased) contains any of the given
// keywords.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
