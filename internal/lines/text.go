package lines

import (
	"bufio"
	"io"
)

// TextSource reads plain text. The whole file is treated as one page.
type TextSource struct {
	Reader io.Reader
}

func (s *TextSource) Lines() ([]Line, error) {
	scanner := bufio.NewScanner(s.Reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []Line
	ordinal := 0
	for scanner.Scan() {
		out = append(out, Line{Page: 1, Ordinal: ordinal, Text: scanner.Text()})
		ordinal++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
