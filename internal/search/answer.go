package search

import (
	"strings"
)

// Answer is a templated response to a housing-code question, assembled from
// search results and the cross-reference side-table. There is no language
// model here; this is a retrieval demo.
type Answer struct {
	Text            string   `json:"answer"`
	Sources         []Result `json:"sources"`
	RelatedSections []string `json:"related_sections"`
	CrossReferences []string `json:"cross_references"`
}

const noMatchAnswer = "No specific information about that was found in the " +
	"Housing Maintenance Code. Try rephrasing, or ask about topics like " +
	"owner responsibilities, tenant rights, or heating requirements."

// Ask runs a search and builds a templated answer from the top results.
func (ix *Index) Ask(question string) Answer {
	results := ix.Search(question, 3)
	if len(results) == 0 {
		return Answer{Text: noMatchAnswer, Sources: []Result{}, RelatedSections: []string{}, CrossReferences: []string{}}
	}

	primary := results[0]

	// Chunk ids use underscores (section_27_2004); normalize to find the code.
	var related []string
	if m := sectionCodeRe.FindStringSubmatch(strings.ReplaceAll(primary.ChunkID, "_", "-")); m != nil {
		related = ix.Related(m[1])
	}
	if related == nil {
		related = []string{}
	}

	return Answer{
		Text:            templateAnswer(question, primary),
		Sources:         results,
		RelatedSections: related,
		CrossReferences: primary.CrossReferences,
	}
}

// templateAnswer picks a canned response shape based on the question topic.
func templateAnswer(question string, primary Result) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "owner"):
		return "According to " + primary.Title + ", the Housing Maintenance Code defines owner responsibilities and requirements for property owners."
	case strings.Contains(q, "tenant"):
		return "Based on " + primary.Title + ", tenant rights and protections are outlined in the Housing Maintenance Code."
	case strings.Contains(q, "heat"):
		return "Heating requirements are covered under " + primary.Title + ". The code establishes minimum heating standards owners must maintain."
	case strings.Contains(q, "violation"):
		return "Housing violations are addressed in " + primary.Title + ", including enforcement procedures and penalties for non-compliance."
	default:
		return "The most relevant provision is " + primary.Title + ". It addresses your query and may reference further sections."
	}
}
