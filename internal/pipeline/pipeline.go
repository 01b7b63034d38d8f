// Package pipeline wires the chunking stages into a single-pass batch run:
// line source → structure recognizer → cross-reference extractor → chunk
// builder. Each stage passes explicit values forward; nothing is shared or
// mutated across stages, so re-running on identical input is byte-identical.
package pipeline

import (
	"errors"
	"log/slog"

	"github.com/coolbeans/lawchunk/internal/chunk"
	"github.com/coolbeans/lawchunk/internal/lines"
	"github.com/coolbeans/lawchunk/internal/refs"
	"github.com/coolbeans/lawchunk/internal/structure"
)

// ErrNoInput is returned when the line source yields no lines. An empty or
// unreadable document fails the whole run rather than emitting an empty
// chunk set silently.
var ErrNoInput = errors.New("line source produced no lines")

// Stats summarizes one run.
type Stats struct {
	TotalChunks       int `json:"total_chunks"`
	Subchapters       int `json:"subchapters"`
	Articles          int `json:"articles"`
	Sections          int `json:"sections"`
	TotalTokens       int `json:"total_tokens"`
	RecognitionMisses int `json:"recognition_misses"`
}

// Result is everything one run produces.
type Result struct {
	Chunks    []chunk.Chunk
	CrossRefs refs.Map
	Index     structure.Index
	Stats     Stats
}

// Run processes one document start to finish. Recognition anomalies are
// absorbed (counted in Stats); identity and input faults surface as errors.
func Run(src lines.Source, cfg chunk.Config, log *slog.Logger) (*Result, error) {
	seq, err := src.Lines()
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, ErrNoInput
	}
	log.Info("extracted lines", "lines", len(seq), "pages", seq[len(seq)-1].Page)

	idx, scanStats := structure.Scan(seq)
	log.Info("recognized structure",
		"subchapters", len(idx.Subchapters),
		"articles", len(idx.Articles),
		"sections", len(idx.Sections),
		"misses", scanStats.Misses,
	)

	xrefs := refs.Build(seq, idx)
	log.Info("extracted cross references", "sections_with_refs", len(xrefs))

	chunks, err := chunk.Build(seq, idx, xrefs, cfg)
	if err != nil {
		return nil, err
	}

	stats := Stats{
		TotalChunks:       len(chunks),
		RecognitionMisses: scanStats.Misses,
	}
	for _, c := range chunks {
		stats.TotalTokens += c.TokenEstimate
		switch c.Type {
		case structure.KindSubchapter:
			stats.Subchapters++
		case structure.KindArticle:
			stats.Articles++
		case structure.KindSection:
			stats.Sections++
		}
	}
	log.Info("built chunks", "chunks", stats.TotalChunks, "tokens", stats.TotalTokens)

	return &Result{
		Chunks:    chunks,
		CrossRefs: xrefs,
		Index:     idx,
		Stats:     stats,
	}, nil
}
