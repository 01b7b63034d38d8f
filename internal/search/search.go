// Package search is the consumer-side demo layer: keyword scoring over the
// persisted chunk records plus related-section lookup via the
// cross-reference side-table. Chunk bodies are opaque here; only metadata is
// read.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/lawchunk/internal/store"
	"github.com/coolbeans/lawchunk/internal/structure"
)

// Result is one scored chunk.
type Result struct {
	ChunkID         string         `json:"chunk_id"`
	Title           string         `json:"title"`
	Score           int            `json:"relevance"`
	Type            structure.Kind `json:"type"`
	CrossReferences []string       `json:"cross_references"`
	Keywords        []string       `json:"keywords"`
}

// Index answers queries against a loaded corpus.
type Index struct {
	corpus *store.Corpus
}

func New(corpus *store.Corpus) *Index {
	return &Index{corpus: corpus}
}

var (
	wordRe        = regexp.MustCompile(`\b\w+\b`)
	sectionCodeRe = regexp.MustCompile(`27-(\d{4})`)
)

// Search scores every chunk against the query and returns the top k results.
// Title word matches weigh 3, keyword matches 2, and a section code in the
// query that names the chunk directly weighs 10.
func (ix *Index) Search(query string, topK int) []Result {
	queryWords := wordSet(strings.ToLower(query))
	queryCodes := sectionCodeRe.FindAllStringSubmatch(query, -1)

	var results []Result
	for _, c := range ix.corpus.Chunks {
		score := 0

		titleWords := wordSet(strings.ToLower(c.Title))
		for w := range queryWords {
			if titleWords[w] {
				score += 3
			}
		}

		for _, kw := range c.Keywords {
			kwLower := strings.ToLower(kw)
			for w := range queryWords {
				if strings.Contains(kwLower, w) {
					score += 2
					break
				}
			}
		}

		if section := c.Hierarchy["section"]; section != "" {
			for _, m := range queryCodes {
				if "27-"+m[1] == section {
					score += 10
				}
			}
		}

		if score > 0 {
			results = append(results, Result{
				ChunkID:         c.ChunkID,
				Title:           c.Title,
				Score:           score,
				Type:            c.Type,
				CrossReferences: c.CrossReferences,
				Keywords:        c.Keywords,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ChunkID < results[j].ChunkID
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// Related returns every section connected to the given code through the
// cross-reference side-table, in either direction.
func (ix *Index) Related(code string) []string {
	seen := make(map[string]bool)
	for _, ref := range ix.corpus.CrossRefs[code] {
		seen[ref] = true
	}
	for source, targets := range ix.corpus.CrossRefs {
		for _, t := range targets {
			if t == code {
				seen[source] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func wordSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range wordRe.FindAllString(s, -1) {
		out[w] = true
	}
	return out
}
