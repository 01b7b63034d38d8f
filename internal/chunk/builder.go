package chunk

import (
	"strings"

	"github.com/coolbeans/lawchunk/internal/keywords"
	"github.com/coolbeans/lawchunk/internal/lines"
	"github.com/coolbeans/lawchunk/internal/refs"
	"github.com/coolbeans/lawchunk/internal/structure"
)

// Config carries the fixed top-level identifiers stamped into every chunk's
// hierarchy metadata.
type Config struct {
	DocTitle   string // administrative code title, e.g. "27"
	DocChapter string // chapter within the title, e.g. "2"
}

// DefaultConfig targets the NYC Housing Maintenance Code.
func DefaultConfig() Config {
	return Config{DocTitle: "27", DocChapter: "2"}
}

// Build slices the line sequence along the structural index and emits one
// chunk per recognized heading: all sections, then all articles, then all
// subchapters. That granularity-first ordering is part of the contract.
func Build(seq []lines.Line, idx structure.Index, xrefs refs.Map, cfg Config) ([]Chunk, error) {
	seen := make(map[string]bool)
	chunks := make([]Chunk, 0, len(idx.Sections)+len(idx.Articles)+len(idx.Subchapters))

	for _, h := range idx.Sections {
		span := seq[h.StartOrdinal:idx.SpanEnd(h.StartOrdinal, len(seq))]
		if !hasBody(span) {
			// EmptyBody: heading with no content before the next heading.
			continue
		}
		body := lines.Text(span)

		c := Chunk{
			ChunkID: ID(h.Kind, h.Number),
			Title:   sectionTitle(h),
			Hierarchy: map[string]string{
				"title":   cfg.DocTitle,
				"chapter": cfg.DocChapter,
				"section": cfg.DocTitle + "-" + h.Number,
			},
			Pages:           lines.Pages(span),
			CrossReferences: orEmpty(xrefs[h.Number]),
			Keywords:        orEmpty(keywords.Extract(h.Title + " " + body)),
			Type:            h.Kind,
			ParentChunks:    sectionParents(idx, h, len(seq)),
			ContentLength:   len(body),
			TokenEstimate:   EstimateTokens(len(body)),
		}
		if seen[c.ChunkID] {
			return nil, &DuplicateIDError{ChunkID: c.ChunkID}
		}
		seen[c.ChunkID] = true
		chunks = append(chunks, c)
	}

	articles, err := buildCoarse(seq, idx, structure.KindArticle, cfg, seen)
	if err != nil {
		return nil, err
	}
	chunks = append(chunks, articles...)

	subchapters, err := buildCoarse(seq, idx, structure.KindSubchapter, cfg, seen)
	if err != nil {
		return nil, err
	}
	chunks = append(chunks, subchapters...)

	return chunks, nil
}

// buildCoarse emits article or subchapter chunks. Their spans run to the next
// heading of the same kind (not the next heading of any kind), so they
// intentionally contain all nested levels.
func buildCoarse(seq []lines.Line, idx structure.Index, kind structure.Kind, cfg Config, seen map[string]bool) ([]Chunk, error) {
	hs := idx.Headings(kind)
	var out []Chunk
	for i, h := range hs {
		end := len(seq)
		if i+1 < len(hs) {
			end = hs[i+1].StartOrdinal
		}
		span := seq[h.StartOrdinal:end]
		body := lines.Text(span)

		c := Chunk{
			ChunkID: ID(kind, h.Number),
			Title:   coarseTitle(h),
			Hierarchy: map[string]string{
				"title":      cfg.DocTitle,
				"chapter":    cfg.DocChapter,
				string(kind): h.Number,
			},
			Pages:           lines.Pages(span),
			CrossReferences: []string{},
			Keywords:        orEmpty(keywords.Extract(h.Title + " " + body)),
			Type:            kind,
			ParentChunks:    coarseParents(idx, kind, h, len(seq)),
			ContentLength:   len(body),
			TokenEstimate:   EstimateTokens(len(body)),
		}
		if seen[c.ChunkID] {
			return nil, &DuplicateIDError{ChunkID: c.ChunkID}
		}
		seen[c.ChunkID] = true
		out = append(out, c)
	}
	return out, nil
}

// hasBody reports whether a section span has any non-blank content after its
// heading line.
func hasBody(span []lines.Line) bool {
	for _, l := range span[1:] {
		if strings.TrimSpace(l.Text) != "" {
			return true
		}
	}
	return false
}

func sectionTitle(h structure.Heading) string {
	if h.Title == "" {
		return "§ 27-" + h.Number
	}
	return "§ 27-" + h.Number + " - " + h.Title
}

func coarseTitle(h structure.Heading) string {
	label := "Article"
	if h.Kind == structure.KindSubchapter {
		label = "Subchapter"
	}
	if h.Title == "" {
		return label + " " + h.Number
	}
	return label + " " + h.Number + " - " + h.Title
}

// Parent linkage is derived by ordinal containment: a heading belongs to the
// coarser heading whose same-kind span encloses its start ordinal. Declared
// hierarchy numbers are free-form tokens and are not used for nesting.

func sectionParents(idx structure.Index, h structure.Heading, total int) []string {
	parents := []string{}
	if a, ok := enclosing(idx.Articles, h.StartOrdinal, total); ok {
		parents = append(parents, ID(structure.KindArticle, a.Number))
	}
	if s, ok := enclosing(idx.Subchapters, h.StartOrdinal, total); ok {
		parents = append(parents, ID(structure.KindSubchapter, s.Number))
	}
	return parents
}

func coarseParents(idx structure.Index, kind structure.Kind, h structure.Heading, total int) []string {
	parents := []string{}
	if kind == structure.KindArticle {
		if s, ok := enclosing(idx.Subchapters, h.StartOrdinal, total); ok {
			parents = append(parents, ID(structure.KindSubchapter, s.Number))
		}
	}
	return parents
}

// enclosing finds the heading in hs (document-ordered) whose same-kind span
// contains the given ordinal.
func enclosing(hs []structure.Heading, ordinal, total int) (structure.Heading, bool) {
	for i := len(hs) - 1; i >= 0; i-- {
		if hs[i].StartOrdinal < ordinal {
			end := total
			if i+1 < len(hs) {
				end = hs[i+1].StartOrdinal
			}
			if ordinal < end {
				return hs[i], true
			}
			return structure.Heading{}, false
		}
	}
	return structure.Heading{}, false
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
