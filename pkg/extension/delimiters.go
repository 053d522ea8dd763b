package extension

import (
	"unicode"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	gext "github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// scanDelimiter scans a run of the processor's delimiter character at the
// start of line. It follows the CommonMark flanking rules; with cjk set, a
// CJK character on the far side of a punctuation boundary does not prevent
// flanking.
func scanDelimiter(line []byte, before rune, minimum int, processor parser.DelimiterProcessor, cjk bool) *parser.Delimiter {
	if len(line) == 0 || !processor.IsDelimiter(line[0]) {
		return nil
	}
	c := line[0]
	j := 0
	for j < len(line) && line[j] == c {
		j++
	}
	if j < minimum {
		return nil
	}

	after := ' '
	if j != len(line) {
		after = util.ToRune(line, j)
	}

	beforePunct := util.IsPunctRune(before)
	beforeSpace := util.IsSpaceRune(before)
	afterPunct := util.IsPunctRune(after)
	afterSpace := util.IsSpaceRune(after)
	beforeCJK := cjk && isCJK(before)
	afterCJK := cjk && isCJK(after)

	isLeft := !afterSpace && (!afterPunct || beforeSpace || beforePunct || beforeCJK)
	isRight := !beforeSpace && (!beforePunct || afterSpace || afterPunct || afterCJK)

	var canOpen, canClose bool
	if c == '_' {
		canOpen = isLeft && (!isRight || beforePunct)
		canClose = isRight && (!isLeft || afterPunct)
	} else {
		canOpen = isLeft
		canClose = isRight
	}
	return parser.NewDelimiter(canOpen, canClose, j, c, processor)
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x3000 && r <= 0x303F: // CJK symbols and punctuation
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // halfwidth and fullwidth forms
		return true
	}
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// spanDelimiterProcessor pairs runs of one character into a span node.
type spanDelimiterProcessor struct {
	char byte

	// onMatch builds the span for the number of consumed characters.
	onMatch func(consumes int) gast.Node
}

func (p *spanDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == p.char
}

func (p *spanDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char && opener.OriginalLength == closer.OriginalLength
}

func (p *spanDelimiterProcessor) OnMatch(consumes int) gast.Node {
	return p.onMatch(consumes)
}

// spanParser recognizes delimiter runs whose length is in allowed.
type spanParser struct {
	processor *spanDelimiterProcessor
	allowed   [3]bool
	cjk       bool
}

func (s *spanParser) Trigger() []byte {
	return []byte{s.processor.char}
}

func (s *spanParser) Parse(_ gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	if before == rune(s.processor.char) {
		return nil
	}
	line, segment := block.PeekLine()
	node := scanDelimiter(line, before, 1, s.processor, s.cjk)
	if node == nil || node.OriginalLength >= len(s.allowed) || !s.allowed[node.OriginalLength] {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

// SpanConfig selects the delimiter spans registered by NewSpans.
type SpanConfig struct {
	// Strikethrough enables ~~text~~, and ~text~ when Subscript is off.
	Strikethrough bool

	// Subscript enables ~text~.
	Subscript bool

	// Superscript enables ^text^.
	Superscript bool

	// Highlight enables ==text==.
	Highlight bool

	// Spoiler enables ||text||.
	Spoiler bool

	// CJKFriendly relaxes flanking next to CJK characters.
	CJKFriendly bool
}

type spans struct {
	config SpanConfig
}

// NewSpans returns an extension for the delimiter spans enabled in config.
// It also registers the HTML renderer for underline spans, which the
// emphasis parser produces.
func NewSpans(config SpanConfig) goldmark.Extender {
	return &spans{config: config}
}

func (e *spans) Extend(m goldmark.Markdown) {
	var parsers []util.PrioritizedValue
	cfg := e.config

	if cfg.Strikethrough || cfg.Subscript {
		tilde := &spanParser{cjk: cfg.CJKFriendly}
		tilde.allowed[1] = true
		tilde.allowed[2] = cfg.Strikethrough
		tilde.processor = &spanDelimiterProcessor{char: '~', onMatch: func(consumes int) gast.Node {
			if consumes == 1 && cfg.Subscript {
				return NewSpan(KindSubscript)
			}
			return east.NewStrikethrough()
		}}
		parsers = append(parsers, util.Prioritized(tilde, 500))
	}
	if cfg.Superscript {
		parsers = append(parsers, util.Prioritized(newFixedSpanParser('^', 1, KindSuperscript, cfg.CJKFriendly), 500))
	}
	if cfg.Highlight {
		parsers = append(parsers, util.Prioritized(newFixedSpanParser('=', 2, KindHighlight, cfg.CJKFriendly), 500))
	}
	if cfg.Spoiler {
		parsers = append(parsers, util.Prioritized(newFixedSpanParser('|', 2, KindSpoiler, cfg.CJKFriendly), 500))
	}

	m.Parser().AddOptions(parser.WithInlineParsers(parsers...))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewSpanHTMLRenderer(), 500),
		util.Prioritized(gext.NewStrikethroughHTMLRenderer(), 500),
	))
}

func newFixedSpanParser(char byte, length int, kind gast.NodeKind, cjk bool) *spanParser {
	p := &spanParser{
		cjk: cjk,
		processor: &spanDelimiterProcessor{char: char, onMatch: func(int) gast.Node {
			return NewSpan(kind)
		}},
	}
	p.allowed[length] = true
	return p
}

// SpanHTMLRenderer renders Span nodes.
type SpanHTMLRenderer struct {
	html.Config
}

// NewSpanHTMLRenderer returns a new SpanHTMLRenderer.
func NewSpanHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &SpanHTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *SpanHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSubscript, spanTag("<sub>", "</sub>"))
	reg.Register(KindSuperscript, spanTag("<sup>", "</sup>"))
	reg.Register(KindUnderline, spanTag("<u>", "</u>"))
	reg.Register(KindHighlight, spanTag("<mark>", "</mark>"))
	reg.Register(KindSpoiler, spanTag(`<span class="spoiler">`, "</span>"))
}

func spanTag(open, closing string) renderer.NodeRendererFunc {
	return func(w util.BufWriter, _ []byte, _ gast.Node, entering bool) (gast.WalkStatus, error) {
		if entering {
			_, _ = w.WriteString(open)
		} else {
			_, _ = w.WriteString(closing)
		}
		return gast.WalkContinue, nil
	}
}
