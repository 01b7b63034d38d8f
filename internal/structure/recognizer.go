// Package structure recognizes subchapter/article/section headings in the
// flat line sequence of a legal code and produces an ordered structural index.
package structure

import (
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/lawchunk/internal/lines"
)

// Kind is the hierarchy level a heading belongs to.
type Kind string

const (
	KindSubchapter Kind = "subchapter"
	KindArticle    Kind = "article"
	KindSection    Kind = "section"
)

// Heading is a recognized structural marker line.
type Heading struct {
	Kind         Kind   `json:"kind"`
	Number       string `json:"number"` // literal captured token: digits, roman numerals, or letters
	Title        string `json:"title"`  // may be empty
	StartOrdinal int    `json:"start_ordinal"`
	Page         int    `json:"page"`
}

// Rule is one candidate heading pattern. Rules are tried in table order and
// the first match wins, so a line is never classified as two kinds.
type Rule struct {
	Kind    Kind
	Pattern *regexp.Regexp // group 1 = number token, group 2 (optional) = title
}

// Rules is the ordered recognition table. Within each kind the
// number-dash-title form precedes the bare-number form, so an inline title is
// preferred over the next-line fallback. OCR output uses hyphens, en and em
// dashes interchangeably.
var Rules = []Rule{
	{KindSubchapter, regexp.MustCompile(`(?i)^SUBCHAPTER\s+(\d+|[IVXLC]+)\s*[-–—]\s*(.+)$`)},
	{KindSubchapter, regexp.MustCompile(`(?i)^SUBCHAPTER\s+(\d+|[IVXLC]+)\s*$`)},
	{KindArticle, regexp.MustCompile(`(?i)^ARTICLE\s+(\d+|[IVXLC]+|[A-Z]+)\s*[-–—]\s*(.+)$`)},
	{KindArticle, regexp.MustCompile(`(?i)^ARTICLE\s+(\d+|[IVXLC]+|[A-Z]+)\s*$`)},
	{KindSection, regexp.MustCompile(`(?i)^§\s*27\s*[-–—]\s*(\d+)\s*[-–—.:]?\s*(.*)$`)},
	{KindSection, regexp.MustCompile(`(?i)^Section\s+27\s*[-–—]\s*(\d+)\s*[-–—.:]?\s*(.*)$`)},
}

// headingShape matches lines that look like they start a heading, used only
// to count recognition misses for debugging. The § alternative sits outside
// the \b group: § is not a word character, so a boundary after it never
// exists and would make that branch unmatchable.
var headingShape = regexp.MustCompile(`(?i)^(?:(?:SUBCHAPTER|ARTICLE|Section\s+27)\b|§)`)

// sectionCodeLen is the required length of a section's numeric code. Shorter
// or longer runs of digits are stray citation fragments, not headings.
const sectionCodeLen = 4

// Index holds the recognized headings, one ordered sequence per kind.
type Index struct {
	Subchapters []Heading `json:"subchapters"`
	Articles    []Heading `json:"articles"`
	Sections    []Heading `json:"sections"`

	boundaries []int // sorted start ordinals of all headings, any kind
}

// Stats counts recognition anomalies. Misses are heading-shaped lines that
// failed pattern validation and were treated as body text.
type Stats struct {
	Misses int
}

// Scan classifies every line against the rule table and returns the
// structural index. Lines that match nothing are ordinary body text.
func Scan(seq []lines.Line) (Index, Stats) {
	var idx Index
	var stats Stats

	for i, ln := range seq {
		text := strings.TrimSpace(ln.Text)
		if text == "" {
			continue
		}

		h, ok := matchRules(text)
		if !ok {
			if headingShape.MatchString(text) {
				stats.Misses++
			}
			continue
		}

		if h.Title == "" {
			h.Title = nextLineTitle(seq, i+1)
		}
		h.StartOrdinal = ln.Ordinal
		h.Page = ln.Page

		switch h.Kind {
		case KindSubchapter:
			idx.Subchapters = append(idx.Subchapters, h)
		case KindArticle:
			idx.Articles = append(idx.Articles, h)
		case KindSection:
			idx.Sections = append(idx.Sections, h)
		}
		idx.boundaries = append(idx.boundaries, ln.Ordinal)
	}

	sort.Ints(idx.boundaries)
	return idx, stats
}

// matchRules tries the rule table in order and returns the first valid hit.
func matchRules(text string) (Heading, bool) {
	for _, r := range Rules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		number := m[1]
		if r.Kind == KindSection && len(number) != sectionCodeLen {
			// Reject rather than fall through: a wrong-length code means
			// this line is a citation fragment, not a heading.
			return Heading{}, false
		}
		var title string
		if len(m) > 2 {
			title = cleanTitle(m[2])
		}
		return Heading{Kind: r.Kind, Number: number, Title: title}, true
	}
	return Heading{}, false
}

// nextLineTitle implements the heading-then-title-on-following-line layout
// common in OCR'd legal text. It never consumes a line that is itself a
// heading.
func nextLineTitle(seq []lines.Line, from int) string {
	for i := from; i < len(seq); i++ {
		text := strings.TrimSpace(seq[i].Text)
		if text == "" {
			continue
		}
		if _, ok := matchRules(text); ok {
			return ""
		}
		return cleanTitle(text)
	}
	return ""
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".")
	return strings.TrimSpace(s)
}

// SpanEnd returns the ordinal just past the span that starts at the given
// heading ordinal: the next heading of any kind, or total at end of document.
// This is the single boundary routine shared by the cross-reference extractor
// and the chunk builder.
func (idx Index) SpanEnd(start, total int) int {
	i := sort.SearchInts(idx.boundaries, start+1)
	if i < len(idx.boundaries) {
		return idx.boundaries[i]
	}
	return total
}

// Headings returns all headings of one kind in document order.
func (idx Index) Headings(kind Kind) []Heading {
	switch kind {
	case KindSubchapter:
		return idx.Subchapters
	case KindArticle:
		return idx.Articles
	case KindSection:
		return idx.Sections
	}
	return nil
}
