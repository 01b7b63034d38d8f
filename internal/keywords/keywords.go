// Package keywords tags chunk text with a controlled vocabulary of housing
// code terms.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// Vocabulary is the fixed set of domain terms worth tagging. Matching is a
// case-insensitive substring test; multi-word terms match across spaces.
var Vocabulary = []string{
	"dwelling", "owner", "tenant", "occupant", "building", "premises",
	"violation", "inspection", "maintenance", "repair", "habitability",
	"safety", "health", "sanitary", "ventilation", "heat", "hot water",
	"pest", "rodent", "lead", "mold", "fire", "emergency", "access",
	"common area", "apartment", "room", "bathroom", "kitchen",
}

var sectionRef = regexp.MustCompile(`(?i)§?\s*27[-–—](\d{4})\b`)

// Extract returns the sorted, deduplicated keyword set for a title+body
// string: every vocabulary term present plus a normalized tag for every
// section code mentioned. Pure function.
func Extract(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	for _, term := range Vocabulary {
		if strings.Contains(lower, term) {
			seen[term] = true
		}
	}
	for _, m := range sectionRef.FindAllStringSubmatch(text, -1) {
		seen["section-27-"+m[1]] = true
	}

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for kw := range seen {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}
