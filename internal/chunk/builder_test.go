package chunk

import (
	"errors"
	"reflect"
	"testing"

	"github.com/coolbeans/lawchunk/internal/lines"
	"github.com/coolbeans/lawchunk/internal/refs"
	"github.com/coolbeans/lawchunk/internal/structure"
)

var fixturePages = []string{
	"SUBCHAPTER 1\n" +
		"GENERAL PROVISIONS\n" +
		"ARTICLE 1\n" +
		"DEFINITIONS\n" +
		"§ 27-2004 Definitions\n" +
		"DWELLING means ...\n" +
		"§ 27-2005 Scope\n" +
		"See section 27-2004.\n" +
		"ARTICLE 2\n" +
		"ADMINISTRATION",
}

func buildFixture(t *testing.T, pages []string) []Chunk {
	t.Helper()
	seq := lines.FromText(pages)
	idx, _ := structure.Scan(seq)
	xrefs := refs.Build(seq, idx)
	chunks, err := Build(seq, idx, xrefs, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return chunks
}

func TestBuild_EmitOrderIsGranularityFirst(t *testing.T) {
	chunks := buildFixture(t, fixturePages)

	wantIDs := []string{
		"section_27_2004",
		"section_27_2005",
		"article_1",
		"article_2",
		"subchapter_1",
	}
	if len(chunks) != len(wantIDs) {
		t.Fatalf("expected %d chunks, got %d", len(wantIDs), len(chunks))
	}
	for i, want := range wantIDs {
		if chunks[i].ChunkID != want {
			t.Errorf("chunk %d: expected id %q, got %q", i, want, chunks[i].ChunkID)
		}
	}
}

func TestBuild_SectionChunkFields(t *testing.T) {
	chunks := buildFixture(t, fixturePages)
	c := chunks[0]

	if c.Title != "§ 27-2004 - Definitions" {
		t.Errorf("title: got %q", c.Title)
	}
	wantHier := map[string]string{"title": "27", "chapter": "2", "section": "27-2004"}
	if !reflect.DeepEqual(c.Hierarchy, wantHier) {
		t.Errorf("hierarchy: expected %v, got %v", wantHier, c.Hierarchy)
	}
	if c.Type != structure.KindSection {
		t.Errorf("type: got %s", c.Type)
	}
	wantBody := "§ 27-2004 Definitions\nDWELLING means ..."
	if c.ContentLength != len(wantBody) {
		t.Errorf("content_length: expected %d, got %d", len(wantBody), c.ContentLength)
	}
	if c.TokenEstimate != c.ContentLength/4 {
		t.Errorf("token_estimate: expected %d, got %d", c.ContentLength/4, c.TokenEstimate)
	}
	if len(c.CrossReferences) != 0 {
		t.Errorf("2004 has no outbound refs, got %v", c.CrossReferences)
	}
}

func TestBuild_CrossReferencesAttached(t *testing.T) {
	chunks := buildFixture(t, fixturePages)
	c := chunks[1] // section_27_2005
	if !reflect.DeepEqual(c.CrossReferences, []string{"2004"}) {
		t.Errorf("expected [2004], got %v", c.CrossReferences)
	}
}

func TestBuild_CoarseSpansRunToNextSameKind(t *testing.T) {
	chunks := buildFixture(t, fixturePages)

	byID := make(map[string]Chunk)
	for _, c := range chunks {
		byID[c.ChunkID] = c
	}

	// Article 1 spans its heading through the two nested sections, up to
	// ARTICLE 2, not merely to the next heading of any kind.
	article1 := byID["article_1"]
	wantBody := "ARTICLE 1\nDEFINITIONS\n§ 27-2004 Definitions\nDWELLING means ...\n§ 27-2005 Scope\nSee section 27-2004."
	if article1.ContentLength != len(wantBody) {
		t.Errorf("article_1 content_length: expected %d, got %d", len(wantBody), article1.ContentLength)
	}

	// The last subchapter runs to document end.
	sub := byID["subchapter_1"]
	if sub.ContentLength <= article1.ContentLength {
		t.Errorf("subchapter_1 must contain article_1's span: %d <= %d", sub.ContentLength, article1.ContentLength)
	}
}

func TestBuild_ParentLinkageByOrdinalContainment(t *testing.T) {
	chunks := buildFixture(t, fixturePages)

	byID := make(map[string]Chunk)
	for _, c := range chunks {
		byID[c.ChunkID] = c
	}

	if got := byID["section_27_2004"].ParentChunks; !reflect.DeepEqual(got, []string{"article_1", "subchapter_1"}) {
		t.Errorf("section_27_2004 parents: got %v", got)
	}
	if got := byID["article_2"].ParentChunks; !reflect.DeepEqual(got, []string{"subchapter_1"}) {
		t.Errorf("article_2 parents: got %v", got)
	}
	if got := byID["subchapter_1"].ParentChunks; len(got) != 0 {
		t.Errorf("subchapter_1 parents: got %v", got)
	}
}

func TestBuild_EmptySectionBodySkipped(t *testing.T) {
	chunks := buildFixture(t, []string{
		"§ 27-2004 Definitions\n" +
			"ARTICLE 2\n" +
			"ADMINISTRATION",
	})
	for _, c := range chunks {
		if c.Type == structure.KindSection {
			t.Errorf("empty-body section must be skipped, got %q", c.ChunkID)
		}
	}
}

func TestBuild_DuplicateSectionNumberSurfaces(t *testing.T) {
	seq := lines.FromText([]string{
		"§ 27-2004 Definitions\n" +
			"first body\n" +
			"§ 27-2004 Definitions again\n" +
			"second body",
	})
	idx, _ := structure.Scan(seq)
	_, err := Build(seq, idx, refs.Build(seq, idx), DefaultConfig())

	var dup *DuplicateIDError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateIDError, got %v", err)
	}
	if dup.ChunkID != "section_27_2004" {
		t.Errorf("expected duplicate id section_27_2004, got %q", dup.ChunkID)
	}
}

func TestBuild_PagesCoverSpan(t *testing.T) {
	chunks := buildFixture(t, []string{
		"SUBCHAPTER 1\nGENERAL PROVISIONS\n§ 27-2004 Definitions\nbody on page one",
		"body continues on page two",
	})

	byID := make(map[string]Chunk)
	for _, c := range chunks {
		byID[c.ChunkID] = c
	}
	if got := byID["section_27_2004"].Pages; !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("expected pages [1 2], got %v", got)
	}
	if got := byID["subchapter_1"].Pages; !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("expected pages [1 2], got %v", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 0},
		{3, 0},
		{4, 1},
		{1000, 250},
	}
	for _, c := range cases {
		if got := EstimateTokens(c.n); got != c.want {
			t.Errorf("EstimateTokens(%d): expected %d, got %d", c.n, c.want, got)
		}
	}
}
