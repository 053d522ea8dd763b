package extension

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type frontMatterParser struct {
	delimiter []byte
}

func (b *frontMatterParser) Trigger() []byte {
	return []byte{b.delimiter[0]}
}

func (b *frontMatterParser) isDelimiter(line []byte) bool {
	return bytes.Equal(bytes.TrimRight(line, " \t\r\n"), b.delimiter)
}

// hasClosing reports whether a closing delimiter line follows offset.
func (b *frontMatterParser) hasClosing(source []byte, offset int) bool {
	for offset < len(source) {
		end := bytes.IndexByte(source[offset:], '\n')
		if end < 0 {
			return b.isDelimiter(source[offset:])
		}
		if b.isDelimiter(source[offset : offset+end]) {
			return true
		}
		offset += end + 1
	}
	return false
}

func (b *frontMatterParser) Open(_ gast.Node, reader text.Reader, _ parser.Context) (gast.Node, parser.State) {
	line, segment := reader.PeekLine()
	if segment.Start != 0 || !b.isDelimiter(line) {
		return nil, parser.NoChildren
	}
	if !b.hasClosing(reader.Source(), segment.Stop) {
		return nil, parser.NoChildren
	}
	node := &FrontMatter{}
	node.Lines().Append(segment)
	advanceBeforeNewline(reader)
	return node, parser.NoChildren
}

func (b *frontMatterParser) Continue(node gast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	node.Lines().Append(segment)
	if b.isDelimiter(line) {
		advanceBeforeNewline(reader)
		return parser.Close
	}
	reader.AdvanceToEOL()
	return parser.Continue | parser.NoChildren
}

func (b *frontMatterParser) Close(gast.Node, text.Reader, parser.Context) {}

func (b *frontMatterParser) CanInterruptParagraph() bool { return false }

func (b *frontMatterParser) CanAcceptIndentedLine() bool { return false }

type frontMatter struct {
	delimiter []byte
}

// NewFrontMatter returns an extension for a front matter block fenced by
// delimiter lines at the very start of the document. The block is kept in
// the tree and omitted from HTML output.
func NewFrontMatter(delimiter string) goldmark.Extender {
	return &frontMatter{delimiter: []byte(delimiter)}
}

func (e *frontMatter) Extend(m goldmark.Markdown) {
	if len(e.delimiter) == 0 {
		return
	}
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&frontMatterParser{delimiter: e.delimiter}, 0),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&frontMatterRenderer{}, 500),
	))
}

// frontMatterRenderer keeps front matter out of the HTML output.
type frontMatterRenderer struct{}

func (r *frontMatterRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindFrontMatter, func(util.BufWriter, []byte, gast.Node, bool) (gast.WalkStatus, error) {
		return gast.WalkSkipChildren, nil
	})
}
