// Package refs extracts citation-style cross-references between sections.
package refs

import (
	"regexp"
	"sort"

	"github.com/coolbeans/lawchunk/internal/lines"
	"github.com/coolbeans/lawchunk/internal/structure"
)

// citation matches a "27-DDDD" style section code, optionally prefixed with a
// section marker. Exactly four digits: anything else is not a section code.
var citation = regexp.MustCompile(`(?i)§?\s*27[-–—](\d{4})\b`)

// Map is section code → sorted set of referenced section codes. Sections
// with no outbound references have no entry.
type Map map[string][]string

// Extract returns the distinct section codes cited in body, excluding the
// section's own code. Result is sorted for deterministic output.
func Extract(body, ownCode string) []string {
	seen := make(map[string]bool)
	for _, m := range citation.FindAllStringSubmatch(body, -1) {
		code := m[1]
		if code == ownCode {
			continue
		}
		seen[code] = true
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Build scans every recognized section body and assembles the reference map.
// Section bodies are delimited by the index's shared boundary routine, so
// this and the chunk builder always agree on where a section ends.
func Build(seq []lines.Line, idx structure.Index) Map {
	m := make(Map)
	for _, h := range idx.Sections {
		end := idx.SpanEnd(h.StartOrdinal, len(seq))
		body := lines.Text(seq[h.StartOrdinal:end])
		if refs := Extract(body, h.Number); refs != nil {
			m[h.Number] = refs
		}
	}
	return m
}
