// Package store persists the chunk corpus as flat JSON records on disk.
//
// Layout under the root directory:
//
//	sections/<chunk_id>.json
//	articles/<chunk_id>.json
//	subchapters/<chunk_id>.json
//	metadata/cross_references.json
//	metadata/structure_map.json
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coolbeans/lawchunk/internal/chunk"
	"github.com/coolbeans/lawchunk/internal/refs"
	"github.com/coolbeans/lawchunk/internal/structure"
)

// Store reads and writes one corpus directory.
type Store struct {
	Root string
}

func New(root string) *Store {
	return &Store{Root: root}
}

// Save writes every chunk record, the cross-reference side-table, and the
// structural index. Records are grouped by chunk type; output is byte-stable
// across runs on identical input.
func (s *Store) Save(chunks []chunk.Chunk, xrefs refs.Map, idx structure.Index) error {
	for _, dir := range []string{"sections", "articles", "subchapters", "metadata"} {
		if err := os.MkdirAll(filepath.Join(s.Root, dir), 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	for _, c := range chunks {
		path := filepath.Join(s.Root, string(c.Type)+"s", c.ChunkID+".json")
		if err := writeJSON(path, c); err != nil {
			return fmt.Errorf("write chunk %s: %w", c.ChunkID, err)
		}
	}

	if err := writeJSON(filepath.Join(s.Root, "metadata", "cross_references.json"), xrefs); err != nil {
		return fmt.Errorf("write cross references: %w", err)
	}
	if err := writeJSON(filepath.Join(s.Root, "metadata", "structure_map.json"), idx); err != nil {
		return fmt.Errorf("write structure map: %w", err)
	}
	return nil
}

// Corpus is the loaded record set a consumer works against. Chunk bodies are
// not stored; only length and estimate metadata are guaranteed present.
type Corpus struct {
	Chunks    map[string]chunk.Chunk
	CrossRefs refs.Map
}

// Load reads the full chunk record set and the cross-reference side-table.
func (s *Store) Load() (*Corpus, error) {
	corpus := &Corpus{
		Chunks:    make(map[string]chunk.Chunk),
		CrossRefs: make(refs.Map),
	}

	for _, dir := range []string{"sections", "articles", "subchapters"} {
		entries, err := os.ReadDir(filepath.Join(s.Root, dir))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			var c chunk.Chunk
			if err := readJSON(filepath.Join(s.Root, dir, entry.Name()), &c); err != nil {
				return nil, fmt.Errorf("read chunk %s: %w", entry.Name(), err)
			}
			corpus.Chunks[c.ChunkID] = c
		}
	}

	xrefPath := filepath.Join(s.Root, "metadata", "cross_references.json")
	if err := readJSON(xrefPath, &corpus.CrossRefs); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read cross references: %w", err)
	}

	return corpus, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
