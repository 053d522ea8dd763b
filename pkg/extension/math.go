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

// closerFunc returns the index of the closing sequence in line and its
// length, or -1.
type closerFunc func(line []byte) (index, length int)

// readSpan collects inline content up to the closing sequence, possibly
// across lines. The reader is restored when no closer is found.
func readSpan(block text.Reader, closer closerFunc) ([]byte, bool) {
	l, pos := block.Position()
	var buf []byte
	for {
		line, _ := block.PeekLine()
		if line == nil {
			block.SetPosition(l, pos)
			return nil, false
		}
		if i, n := closer(line); i >= 0 {
			buf = append(buf, line[:i]...)
			block.Advance(i + n)
			return buf, true
		}
		buf = append(buf, line...)
		block.AdvanceLine()
	}
}

// normalizeMathLiteral turns line endings into spaces.
func normalizeMathLiteral(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte(" "))
	return bytes.ReplaceAll(b, []byte("\n"), []byte(" "))
}

type mathParser struct {
	code    bool
	dollars bool
}

func (s *mathParser) Trigger() []byte {
	return []byte{'$'}
}

func (s *mathParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 {
		return nil
	}
	l, pos := block.Position()
	if s.code && line[1] == '`' {
		if node := s.parseCode(block, line); node != nil {
			return node
		}
		block.SetPosition(l, pos)
	}
	if s.dollars {
		if node := s.parseDollars(block, line); node != nil {
			return node
		}
		block.SetPosition(l, pos)
	}
	return nil
}

// parseCode handles $`...`$ with any backtick run length.
func (s *mathParser) parseCode(block text.Reader, line []byte) gast.Node {
	ticks := 1
	for 1+ticks < len(line) && line[1+ticks] == '`' {
		ticks++
	}
	block.Advance(1 + ticks)
	literal, ok := readSpan(block, func(line []byte) (int, int) {
		for i := 0; i < len(line); {
			if line[i] != '`' {
				i++
				continue
			}
			j := i
			for j < len(line) && line[j] == '`' {
				j++
			}
			if j-i == ticks && j < len(line) && line[j] == '$' {
				return i, ticks + 1
			}
			i = j
		}
		return -1, 0
	})
	if !ok {
		return nil
	}
	literal = normalizeMathLiteral(literal)
	if len(bytes.TrimSpace(literal)) == 0 {
		return nil
	}
	return NewMath(false, false, literal)
}

// parseDollars handles $...$ and $$...$$.
func (s *mathParser) parseDollars(block text.Reader, line []byte) gast.Node {
	display := line[1] == '$'
	open := 1
	if display {
		open = 2
	}
	if open >= len(line) || util.IsSpace(line[open]) || line[open] == '$' {
		return nil
	}
	block.Advance(open)
	literal, ok := readSpan(block, func(line []byte) (int, int) {
		for i := 0; i < len(line); i++ {
			switch {
			case line[i] == '\\':
				i++
			case line[i] != '$':
			case i == 0 || util.IsSpace(line[i-1]):
			case display:
				if i+1 < len(line) && line[i+1] == '$' {
					return i, 2
				}
			case i+1 < len(line) && (line[i+1] == '$' || util.IsNumeric(line[i+1])):
			default:
				return i, 1
			}
		}
		return -1, 0
	})
	if !ok || len(literal) == 0 {
		return nil
	}
	return NewMath(true, display, normalizeMathLiteral(literal))
}

// MathHTMLRenderer renders Math nodes.
type MathHTMLRenderer struct {
	html.Config
}

// NewMathHTMLRenderer returns a new MathHTMLRenderer.
func NewMathHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &MathHTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *MathHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMath, r.renderMath)
}

func (r *MathHTMLRenderer) renderMath(
	w util.BufWriter, _ []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*Math)
	style := "inline"
	if n.Display {
		style = "display"
	}
	tag := "span"
	if !n.Dollar {
		tag = "code"
	}
	_, _ = w.WriteString("<" + tag + ` data-math-style="` + style + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Literal))
	_, _ = w.WriteString("</" + tag + ">")
	return gast.WalkSkipChildren, nil
}

type mathExtension struct {
	code    bool
	dollars bool
}

// NewMathExtension returns an extension for $`code`$ math spans and, with dollars
// set, $inline$ and $$display$$ math.
func NewMathExtension(code, dollars bool) goldmark.Extender {
	return &mathExtension{code: code, dollars: dollars}
}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&mathParser{code: e.code, dollars: e.dollars}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewMathHTMLRenderer(), 500),
	))
}
