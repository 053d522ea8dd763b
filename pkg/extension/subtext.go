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

type subtextParser struct{}

func (b *subtextParser) Trigger() []byte {
	return []byte{'-'}
}

func (b *subtextParser) Open(_ gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos+2 >= len(line) || line[pos] != '-' || line[pos+1] != '#' {
		return nil, parser.NoChildren
	}
	if line[pos+2] != ' ' && line[pos+2] != '\t' {
		return nil, parser.NoChildren
	}
	start := pos + 2 + util.TrimLeftSpaceLength(line[pos+2:])
	stop := len(line) - util.TrimRightSpaceLength(line)

	node := &Subtext{}
	if start < stop {
		node.Lines().Append(text.NewSegment(segment.Start+start-segment.Padding, segment.Start+stop-segment.Padding))
	}
	return node, parser.NoChildren
}

func (b *subtextParser) Continue(gast.Node, text.Reader, parser.Context) parser.State {
	return parser.Close
}

func (b *subtextParser) Close(gast.Node, text.Reader, parser.Context) {}

func (b *subtextParser) CanInterruptParagraph() bool { return true }

func (b *subtextParser) CanAcceptIndentedLine() bool { return false }

// SubtextHTMLRenderer renders Subtext nodes.
type SubtextHTMLRenderer struct {
	html.Config
}

// NewSubtextHTMLRenderer returns a new SubtextHTMLRenderer.
func NewSubtextHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &SubtextHTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *SubtextHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSubtext, r.renderSubtext)
}

func (r *SubtextHTMLRenderer) renderSubtext(
	w util.BufWriter, _ []byte, _ gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<p><sub>")
	} else {
		_, _ = w.WriteString("</sub></p>\n")
	}
	return gast.WalkContinue, nil
}

type subtext struct{}

// SubtextExtension is an extension for "-# small print" lines.
//
//nolint:gochecknoglobals // extension singleton, like goldmark's own
var SubtextExtension = &subtext{}

func (e *subtext) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&subtextParser{}, 90),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewSubtextHTMLRenderer(), 500),
	))
}
