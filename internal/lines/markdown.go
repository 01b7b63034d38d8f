package lines

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownSource flattens a Markdown document into lines using goldmark.
// Headings become their own lines so the recognizer sees them in sequence;
// everything renders as one page.
type MarkdownSource struct {
	Reader io.Reader
}

func (s *MarkdownSource) Lines() ([]Line, error) {
	src, err := io.ReadAll(s.Reader)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title != "" {
				blocks = append(blocks, title)
			}
		default:
			if t := blockText(n, src); t != "" {
				blocks = append(blocks, t)
			}
		}
	}

	return FromText([]string{strings.Join(blocks, "\n")}), nil
}

// blockText gets the text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
