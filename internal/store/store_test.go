package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/coolbeans/lawchunk/internal/chunk"
	"github.com/coolbeans/lawchunk/internal/lines"
	"github.com/coolbeans/lawchunk/internal/refs"
	"github.com/coolbeans/lawchunk/internal/structure"
)

func fixtureRun(t *testing.T) ([]chunk.Chunk, refs.Map, structure.Index) {
	t.Helper()
	seq := lines.FromText([]string{
		"SUBCHAPTER 1\n" +
			"GENERAL PROVISIONS\n" +
			"ARTICLE 1\n" +
			"DEFINITIONS\n" +
			"§ 27-2004 Definitions\n" +
			"DWELLING means ...\n" +
			"§ 27-2005 Scope\n" +
			"See section 27-2004.",
	})
	idx, _ := structure.Scan(seq)
	xrefs := refs.Build(seq, idx)
	chunks, err := chunk.Build(seq, idx, xrefs, chunk.DefaultConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return chunks, xrefs, idx
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	chunks, xrefs, idx := fixtureRun(t)

	dir := t.TempDir()
	s := New(dir)
	if err := s.Save(chunks, xrefs, idx); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Records land grouped by type.
	for _, want := range []string{
		"sections/section_27_2004.json",
		"sections/section_27_2005.json",
		"articles/article_1.json",
		"subchapters/subchapter_1.json",
		"metadata/cross_references.json",
		"metadata/structure_map.json",
	} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}

	corpus, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(corpus.Chunks) != len(chunks) {
		t.Fatalf("expected %d chunks, got %d", len(chunks), len(corpus.Chunks))
	}
	got := corpus.Chunks["section_27_2005"]
	if got.Title != "§ 27-2005 - Scope" {
		t.Errorf("title: got %q", got.Title)
	}
	if len(corpus.CrossRefs["2005"]) != 1 || corpus.CrossRefs["2005"][0] != "2004" {
		t.Errorf("cross refs: got %v", corpus.CrossRefs)
	}
}

func TestSave_ByteIdenticalAcrossRuns(t *testing.T) {
	chunks, xrefs, idx := fixtureRun(t)

	dirA := t.TempDir()
	dirB := t.TempDir()
	if err := New(dirA).Save(chunks, xrefs, idx); err != nil {
		t.Fatalf("save A: %v", err)
	}
	if err := New(dirB).Save(chunks, xrefs, idx); err != nil {
		t.Fatalf("save B: %v", err)
	}

	for _, rel := range []string{
		"sections/section_27_2004.json",
		"metadata/cross_references.json",
		"metadata/structure_map.json",
	} {
		a, err := os.ReadFile(filepath.Join(dirA, rel))
		if err != nil {
			t.Fatalf("read A %s: %v", rel, err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, rel))
		if err != nil {
			t.Fatalf("read B %s: %v", rel, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between identical runs", rel)
		}
	}
}

func TestLoad_MissingCorpusIsEmpty(t *testing.T) {
	corpus, err := New(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(corpus.Chunks) != 0 || len(corpus.CrossRefs) != 0 {
		t.Errorf("expected empty corpus, got %d chunks", len(corpus.Chunks))
	}
}
