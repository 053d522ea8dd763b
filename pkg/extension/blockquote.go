package extension

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// consumeQuoteMarker advances past a "> " block quote marker. With
// greentext set, the marker must be followed by whitespace or the end of
// the line.
func consumeQuoteMarker(reader text.Reader, greentext bool) bool {
	line, _ := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w > 3 || pos >= len(line) || line[pos] != '>' {
		return false
	}
	pos++
	if pos >= len(line) || line[pos] == '\n' || line[pos] == '\r' {
		reader.Advance(pos)
		return true
	}
	if greentext && line[pos] != ' ' && line[pos] != '\t' {
		return false
	}
	reader.Advance(pos)
	if line[pos] == ' ' || line[pos] == '\t' {
		padding := 0
		if line[pos] == '\t' {
			padding = util.TabWidth(reader.LineOffset()) - 1
		}
		reader.AdvanceAndSetPadding(1, padding)
	}
	return true
}

// advanceBeforeNewline moves the reader to the end of the current line,
// leaving the line terminator unread.
func advanceBeforeNewline(reader text.Reader) {
	line, segment := reader.PeekLine()
	newline := 0
	if len(line) > 0 && line[len(line)-1] == '\n' {
		newline = 1
	}
	reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
}

type blockquoteParser struct {
	greentext bool
}

// NewBlockquoteParser returns a BlockParser for block quotes that replaces
// parser.NewBlockquoteParser. With greentext set, ">text" without a space
// after the marker stays a paragraph.
func NewBlockquoteParser(greentext bool) parser.BlockParser {
	return &blockquoteParser{greentext: greentext}
}

func (b *blockquoteParser) Trigger() []byte {
	return []byte{'>'}
}

func (b *blockquoteParser) Open(_ gast.Node, reader text.Reader, _ parser.Context) (gast.Node, parser.State) {
	if consumeQuoteMarker(reader, b.greentext) {
		return gast.NewBlockquote(), parser.HasChildren
	}
	return nil, parser.NoChildren
}

func (b *blockquoteParser) Continue(_ gast.Node, reader text.Reader, _ parser.Context) parser.State {
	if consumeQuoteMarker(reader, b.greentext) {
		return parser.Continue | parser.HasChildren
	}
	return parser.Close
}

func (b *blockquoteParser) Close(gast.Node, text.Reader, parser.Context) {}

func (b *blockquoteParser) CanInterruptParagraph() bool { return true }

func (b *blockquoteParser) CanAcceptIndentedLine() bool { return false }

//nolint:gochecknoglobals // compiled once
var alertRegexp = regexp.MustCompile(`(?i)^\[!(note|tip|important|warning|caution)\](?:[ \t]+(.*?))?[ \t]*\r?\n?$`)

type alertParser struct {
	greentext bool
}

func (b *alertParser) Trigger() []byte {
	return []byte{'>'}
}

func (b *alertParser) Open(_ gast.Node, reader text.Reader, _ parser.Context) (gast.Node, parser.State) {
	line, _ := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w > 3 || pos >= len(line) || line[pos] != '>' {
		return nil, parser.NoChildren
	}
	rest := line[pos+1:]
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	if b.greentext && i == 0 {
		return nil, parser.NoChildren
	}
	m := alertRegexp.FindSubmatch(rest[i:])
	if m == nil {
		return nil, parser.NoChildren
	}
	advanceBeforeNewline(reader)
	return NewAlert(strings.ToLower(string(m[1])), string(m[2])), parser.HasChildren
}

func (b *alertParser) Continue(_ gast.Node, reader text.Reader, _ parser.Context) parser.State {
	if consumeQuoteMarker(reader, b.greentext) {
		return parser.Continue | parser.HasChildren
	}
	return parser.Close
}

func (b *alertParser) Close(gast.Node, text.Reader, parser.Context) {}

func (b *alertParser) CanInterruptParagraph() bool { return true }

func (b *alertParser) CanAcceptIndentedLine() bool { return false }

type multilineQuoteParser struct{}

// quoteFenceLength returns the length of a ">>>" fence line, or 0.
func quoteFenceLength(line []byte, offset int) int {
	w, pos := util.IndentWidth(line, offset)
	if w > 3 {
		return 0
	}
	i := pos
	for i < len(line) && line[i] == '>' {
		i++
	}
	if i-pos < 3 || !util.IsBlank(line[i:]) {
		return 0
	}
	return i - pos
}

func (b *multilineQuoteParser) Trigger() []byte {
	return []byte{'>'}
}

func (b *multilineQuoteParser) Open(_ gast.Node, reader text.Reader, _ parser.Context) (gast.Node, parser.State) {
	line, _ := reader.PeekLine()
	length := quoteFenceLength(line, reader.LineOffset())
	if length == 0 {
		return nil, parser.NoChildren
	}
	advanceBeforeNewline(reader)
	return NewMultilineBlockQuote(length), parser.HasChildren
}

func (b *multilineQuoteParser) Continue(node gast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, _ := reader.PeekLine()
	length := quoteFenceLength(line, reader.LineOffset())
	if length >= node.(*MultilineBlockQuote).FenceLength {
		advanceBeforeNewline(reader)
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (b *multilineQuoteParser) Close(gast.Node, text.Reader, parser.Context) {}

func (b *multilineQuoteParser) CanInterruptParagraph() bool { return true }

func (b *multilineQuoteParser) CanAcceptIndentedLine() bool { return false }

// QuoteHTMLRenderer renders alerts and multiline block quotes.
type QuoteHTMLRenderer struct {
	html.Config
}

// NewQuoteHTMLRenderer returns a new QuoteHTMLRenderer.
func NewQuoteHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &QuoteHTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *QuoteHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAlert, r.renderAlert)
	reg.Register(KindMultilineBlockQuote, r.renderMultilineBlockQuote)
}

func (r *QuoteHTMLRenderer) renderAlert(
	w util.BufWriter, _ []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return gast.WalkContinue, nil
	}
	n := node.(*Alert)
	title := n.Title
	if title == "" {
		title = n.DefaultTitle()
	}
	_, _ = w.WriteString(`<div class="markdown-alert markdown-alert-`)
	_, _ = w.WriteString(n.AlertType)
	_, _ = w.WriteString("\">\n<p class=\"markdown-alert-title\">")
	_, _ = w.Write(util.EscapeHTML([]byte(title)))
	_, _ = w.WriteString("</p>\n")
	return gast.WalkContinue, nil
}

func (r *QuoteHTMLRenderer) renderMultilineBlockQuote(
	w util.BufWriter, _ []byte, _ gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<blockquote>\n")
	} else {
		_, _ = w.WriteString("</blockquote>\n")
	}
	return gast.WalkContinue, nil
}

// QuoteConfig selects the block quote variants registered by NewQuotes.
type QuoteConfig struct {
	Alerts    bool
	Multiline bool

	// Greentext requires a space after '>' in alert continuation lines too.
	Greentext bool
}

type quotes struct {
	config QuoteConfig
}

// NewQuotes returns an extension for GitHub-style alerts and ">>>"
// multiline block quotes. Plain block quotes are handled by the parser
// returned from NewBlockquoteParser.
func NewQuotes(config QuoteConfig) goldmark.Extender {
	return &quotes{config: config}
}

func (e *quotes) Extend(m goldmark.Markdown) {
	var parsers []util.PrioritizedValue
	if e.config.Multiline {
		parsers = append(parsers, util.Prioritized(&multilineQuoteParser{}, 780))
	}
	if e.config.Alerts {
		parsers = append(parsers, util.Prioritized(&alertParser{greentext: e.config.Greentext}, 790))
	}
	m.Parser().AddOptions(parser.WithBlockParsers(parsers...))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewQuoteHTMLRenderer(), 500),
	))
}
