// Package chunk builds the addressable chunk records that make up the
// retrieval corpus.
package chunk

import (
	"fmt"

	"github.com/coolbeans/lawchunk/internal/structure"
)

// Chunk is one bounded, independently addressable unit of the document plus
// its metadata. The JSON field names are the external contract for every
// downstream consumer. Chunks are immutable after creation.
type Chunk struct {
	ChunkID         string            `json:"chunk_id"`
	Title           string            `json:"title"`
	Hierarchy       map[string]string `json:"hierarchy"`
	Pages           []int             `json:"pages"`
	CrossReferences []string          `json:"cross_references"`
	Keywords        []string          `json:"keywords"`
	Type            structure.Kind    `json:"chunk_type"`
	ParentChunks    []string          `json:"parent_chunks"`
	ContentLength   int               `json:"content_length"`
	TokenEstimate   int               `json:"token_estimate"`
}

// DuplicateIDError reports two same-kind headings producing the same chunk
// id. This is a numbering defect in the source document and aborts the run
// rather than silently overwriting a record.
type DuplicateIDError struct {
	ChunkID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate chunk id %q: source document numbering defect", e.ChunkID)
}

// EstimateTokens approximates token count as characters/4. It is a cheap,
// deterministic estimate, not a tokenizer-accurate count.
func EstimateTokens(contentLength int) int {
	return contentLength / 4
}

// ID derives the stable chunk identifier from kind and number.
func ID(kind structure.Kind, number string) string {
	if kind == structure.KindSection {
		return "section_27_" + number
	}
	return string(kind) + "_" + number
}
