package search

import (
	"reflect"
	"strings"
	"testing"

	"github.com/coolbeans/lawchunk/internal/chunk"
	"github.com/coolbeans/lawchunk/internal/refs"
	"github.com/coolbeans/lawchunk/internal/store"
	"github.com/coolbeans/lawchunk/internal/structure"
)

func fixtureCorpus() *store.Corpus {
	return &store.Corpus{
		Chunks: map[string]chunk.Chunk{
			"section_27_2004": {
				ChunkID:         "section_27_2004",
				Title:           "§ 27-2004 - Definitions",
				Hierarchy:       map[string]string{"title": "27", "chapter": "2", "section": "27-2004"},
				Keywords:        []string{"dwelling", "owner"},
				Type:            structure.KindSection,
				CrossReferences: []string{},
			},
			"section_27_2005": {
				ChunkID:         "section_27_2005",
				Title:           "§ 27-2005 - Scope and application",
				Hierarchy:       map[string]string{"title": "27", "chapter": "2", "section": "27-2005"},
				Keywords:        []string{"dwelling", "section-27-2004"},
				Type:            structure.KindSection,
				CrossReferences: []string{"2004"},
			},
			"article_1": {
				ChunkID:   "article_1",
				Title:     "Article 1 - Definitions",
				Hierarchy: map[string]string{"title": "27", "chapter": "2", "article": "1"},
				Keywords:  []string{"dwelling", "owner", "tenant"},
				Type:      structure.KindArticle,
			},
		},
		CrossRefs: refs.Map{
			"2005": {"2004"},
			"2115": {"2004", "2005"},
		},
	}
}

func TestSearch_DirectSectionReferenceWins(t *testing.T) {
	ix := New(fixtureCorpus())
	results := ix.Search("What is section 27-2004 about?", 5)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].ChunkID != "section_27_2004" {
		t.Errorf("expected section_27_2004 first, got %s", results[0].ChunkID)
	}
	if results[0].Score < 10 {
		t.Errorf("direct section match should score >= 10, got %d", results[0].Score)
	}
}

func TestSearch_TitleWordsOutweighKeywords(t *testing.T) {
	ix := New(fixtureCorpus())
	results := ix.Search("scope application", 5)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].ChunkID != "section_27_2005" {
		t.Errorf("expected section_27_2005 first, got %s", results[0].ChunkID)
	}
}

func TestSearch_TopKLimit(t *testing.T) {
	ix := New(fixtureCorpus())
	results := ix.Search("dwelling", 1)
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	ix := New(fixtureCorpus())
	if results := ix.Search("zoning variance", 5); len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestSearch_DeterministicTieBreak(t *testing.T) {
	ix := New(fixtureCorpus())
	a := ix.Search("dwelling", 5)
	b := ix.Search("dwelling", 5)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical queries returned different orderings")
	}
}

func TestRelated_ForwardAndReverse(t *testing.T) {
	ix := New(fixtureCorpus())
	// 2005 references 2004; 2115 references 2005.
	got := ix.Related("2005")
	want := []string{"2004", "2115"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRelated_Unknown(t *testing.T) {
	ix := New(fixtureCorpus())
	if got := ix.Related("9999"); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestAsk_AnswersWithSourcesAndRelated(t *testing.T) {
	ix := New(fixtureCorpus())
	answer := ix.Ask("What is section 27-2004 about?")

	if !strings.Contains(answer.Text, "§ 27-2004 - Definitions") {
		t.Errorf("answer should cite the primary source, got %q", answer.Text)
	}
	if len(answer.Sources) == 0 || answer.Sources[0].ChunkID != "section_27_2004" {
		t.Errorf("sources: got %v", answer.Sources)
	}
	// 2004 is referenced by 2005 and 2115.
	want := []string{"2005", "2115"}
	if !reflect.DeepEqual(answer.RelatedSections, want) {
		t.Errorf("related: expected %v, got %v", want, answer.RelatedSections)
	}
}

func TestAsk_TopicTemplates(t *testing.T) {
	ix := New(fixtureCorpus())
	cases := []struct {
		question string
		fragment string
	}{
		{"What are the owner's duties?", "owner responsibilities"},
		{"What rights does a tenant have?", "tenant rights"},
	}
	for _, c := range cases {
		answer := ix.Ask(c.question)
		if !strings.Contains(answer.Text, c.fragment) {
			t.Errorf("%q: expected fragment %q in %q", c.question, c.fragment, answer.Text)
		}
	}
}

func TestAsk_NoMatch(t *testing.T) {
	ix := New(fixtureCorpus())
	answer := ix.Ask("zoning variance")
	if len(answer.Sources) != 0 {
		t.Errorf("expected no sources, got %v", answer.Sources)
	}
	if answer.Text == "" {
		t.Error("no-match answer must still explain itself")
	}
}
