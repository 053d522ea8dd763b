package extension

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type escapedParser struct{}

func (s *escapedParser) Trigger() []byte {
	return []byte{'\\'}
}

func (s *escapedParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, segment := block.PeekLine()
	if len(line) < 2 || !util.IsPunct(line[1]) {
		return nil
	}
	node := &Escaped{}
	node.AppendChild(node, gast.NewTextSegment(text.NewSegment(segment.Start+1, segment.Start+2)))
	block.Advance(2)
	return node
}

// EscapedHTMLRenderer renders Escaped nodes.
type EscapedHTMLRenderer struct {
	html.Config
}

// NewEscapedHTMLRenderer returns a new EscapedHTMLRenderer.
func NewEscapedHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &EscapedHTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *EscapedHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindEscaped, spanTag(`<span data-escaped-char>`, "</span>"))
}

type escapedChars struct{}

// EscapedChars is an extension that wraps backslash-escaped punctuation
// in Escaped nodes.
//
//nolint:gochecknoglobals // extension singleton, like goldmark's own
var EscapedChars = &escapedChars{}

func (e *escapedChars) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&escapedParser{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewEscapedHTMLRenderer(), 500),
	))
}
