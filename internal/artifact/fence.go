package artifact

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fencedBlock is one fenced code block lifted out of the response markdown.
type fencedBlock struct {
	// Info is the raw info string after the opening fence, e.g. "jsx" or
	// "jsx:src/App.jsx".
	Info string
	// Content is the raw text inside the fences.
	Content string
}

// extractFencedBlocks walks the markdown AST and collects every fenced code
// block in document order. Each call parses fresh input; no scan state is
// kept between calls.
func extractFencedBlocks(source string) []fencedBlock {
	var blocks []fencedBlock
	src := []byte(source)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block fencedBlock
		if fenced.Info != nil {
			block.Info = strings.TrimSpace(string(fenced.Info.Text(src)))
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(src))
		}
		block.Content = content.String()

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	// Walk only fails when a walker returns an error; ours never does.
	_ = ast.Walk(root, walker)

	return blocks
}
