package lines

// Line is a single physical line of document text, tagged with the page it
// came from and its position in the full document sequence.
type Line struct {
	Page    int    // 1-based source page; non-decreasing over Ordinal
	Ordinal int    // 0-based position in the document line sequence
	Text    string
}

// Source produces the full ordered line sequence for one document.
// Implementations exist per input format; the recognizer only sees this.
type Source interface {
	Lines() ([]Line, error)
}

// FromText converts already-extracted page texts into the line sequence.
// Page i of the slice is reported as page i+1.
func FromText(pages []string) []Line {
	var out []Line
	ordinal := 0
	for i, page := range pages {
		for _, text := range splitLines(page) {
			out = append(out, Line{Page: i + 1, Ordinal: ordinal, Text: text})
			ordinal++
		}
	}
	return out
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			line := s[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			out = append(out, line)
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// FixtureSource is a deterministic in-memory Source for tests.
type FixtureSource struct {
	Pages []string
}

func (f *FixtureSource) Lines() ([]Line, error) {
	return FromText(f.Pages), nil
}

// Text reassembles a span of lines into a single string.
func Text(span []Line) string {
	var n int
	for _, l := range span {
		n += len(l.Text) + 1
	}
	if n == 0 {
		return ""
	}
	buf := make([]byte, 0, n-1)
	for i, l := range span {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, l.Text...)
	}
	return string(buf)
}

// Pages returns the sorted distinct page numbers covered by a span.
func Pages(span []Line) []int {
	var out []int
	for _, l := range span {
		if len(out) == 0 || out[len(out)-1] != l.Page {
			out = append(out, l.Page)
		}
	}
	return out
}
