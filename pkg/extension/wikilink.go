package extension

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type wikiLinkParser struct{}

func (s *wikiLinkParser) Trigger() []byte {
	return []byte{'['}
}

// Parse recognizes [[target]] and [[target|label]] on a single line.
func (s *wikiLinkParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, segment := block.PeekLine()
	if len(line) < 5 || line[1] != '[' {
		return nil
	}
	end := bytes.Index(line[2:], []byte("]]"))
	if end < 0 {
		return nil
	}
	inner := line[2 : 2+end]
	if bytes.ContainsAny(inner, "[\n") {
		return nil
	}

	target, label := inner, inner
	labelStart := 2
	if i := bytes.IndexByte(inner, '|'); i >= 0 {
		target, label = inner[:i], inner[i+1:]
		labelStart = 2 + i + 1
	}
	target = bytes.TrimSpace(target)
	if len(target) == 0 {
		return nil
	}

	node := NewWikiLink(target)
	trimmed := util.TrimLeftSpaceLength(label)
	label = bytes.TrimSpace(label)
	if len(label) == 0 {
		label = target
		labelStart = 2 + bytes.Index(inner, target)
		trimmed = 0
	}
	start := segment.Start + labelStart + trimmed
	node.AppendChild(node, gast.NewTextSegment(text.NewSegment(start, start+len(label))))

	block.Advance(2 + end + 2)
	return node
}

// WikiLinkHTMLRenderer renders WikiLink nodes as anchors.
type WikiLinkHTMLRenderer struct {
	html.Config
}

// NewWikiLinkHTMLRenderer returns a new WikiLinkHTMLRenderer.
func NewWikiLinkHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &WikiLinkHTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *WikiLinkHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindWikiLink, r.renderWikiLink)
}

func (r *WikiLinkHTMLRenderer) renderWikiLink(
	w util.BufWriter, _ []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</a>")
		return gast.WalkContinue, nil
	}
	n := node.(*WikiLink)
	_, _ = w.WriteString(`<a href="`)
	if r.Unsafe || !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" data-wikilink="true">`)
	return gast.WalkContinue, nil
}

type wikiLinks struct{}

// WikiLinks is an extension for [[target|label]] links.
//
//nolint:gochecknoglobals // extension singleton, like goldmark's own
var WikiLinks = &wikiLinks{}

func (e *wikiLinks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&wikiLinkParser{}, 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewWikiLinkHTMLRenderer(), 500),
	))
}
