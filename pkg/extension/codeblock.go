package extension

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdconv/pkg/langdetect"
)

// InfoResolver computes the effective info string of a code block.
type InfoResolver struct {
	// Default is used for fenced blocks that declare no info string.
	Default string

	// Detect guesses the language of unlabeled fenced blocks from their
	// content, falling back to Default.
	Detect bool
}

// Info returns the info string of a fenced or indented code block.
// Indented blocks have no info string.
func (r InfoResolver) Info(node gast.Node, source []byte) string {
	fenced, ok := node.(*gast.FencedCodeBlock)
	if !ok {
		return ""
	}
	var info []byte
	if fenced.Info != nil {
		info = bytes.TrimSpace(fenced.Info.Segment.Value(source))
	}
	if len(info) > 0 {
		info = util.UnescapePunctuations(info)
		info = util.ResolveNumericReferences(info)
		info = util.ResolveEntityNames(info)
		return string(info)
	}
	if r.Detect {
		return langdetect.Detect(codeLines(fenced, source), r.Default)
	}
	return r.Default
}

// SplitInfo splits an info string into the language and the remaining words.
func SplitInfo(info string) (lang, meta string) {
	info = strings.TrimSpace(info)
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		return info[:i], strings.TrimSpace(info[i+1:])
	}
	return info, ""
}

func codeLines(n gast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.Bytes()
}

// CodeBlockConfig configures code block rendering.
type CodeBlockConfig struct {
	InfoResolver

	// GitHubPreLang puts the language on <pre lang="..."> instead of a
	// language-* class on <code>.
	GitHubPreLang bool

	// FullInfoString emits the words after the language as data-meta.
	FullInfoString bool

	// MathCode renders "math" fenced blocks as display math.
	MathCode bool
}

// CodeBlockHTMLRenderer renders fenced and indented code blocks.
type CodeBlockHTMLRenderer struct {
	html.Config

	config CodeBlockConfig
}

// NewCodeBlockHTMLRenderer returns a new CodeBlockHTMLRenderer.
func NewCodeBlockHTMLRenderer(config CodeBlockConfig, opts ...html.Option) renderer.NodeRenderer {
	r := &CodeBlockHTMLRenderer{Config: html.NewConfig(), config: config}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *CodeBlockHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(gast.KindCodeBlock, r.renderCodeBlock)
}

func (r *CodeBlockHTMLRenderer) renderCodeBlock(
	w util.BufWriter, source []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return gast.WalkContinue, nil
	}

	lang, meta := SplitInfo(r.config.Info(node, source))
	switch {
	case lang == "":
		_, _ = w.WriteString("<pre><code>")
	case r.config.MathCode && lang == "math":
		_, _ = w.WriteString(`<pre><code class="language-math" data-math-style="display">`)
	case r.config.GitHubPreLang:
		_, _ = w.WriteString(`<pre lang="`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_ = w.WriteByte('"')
		r.writeMeta(w, meta)
		_, _ = w.WriteString("><code>")
	default:
		_, _ = w.WriteString(`<pre><code class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_ = w.WriteByte('"')
		r.writeMeta(w, meta)
		_ = w.WriteByte('>')
	}

	lines := node.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		r.Writer.RawWrite(w, line.Value(source))
	}
	return gast.WalkContinue, nil
}

func (r *CodeBlockHTMLRenderer) writeMeta(w util.BufWriter, meta string) {
	if !r.config.FullInfoString || meta == "" {
		return
	}
	_, _ = w.WriteString(` data-meta="`)
	_, _ = w.Write(util.EscapeHTML([]byte(meta)))
	_ = w.WriteByte('"')
}

type codeBlocks struct {
	config CodeBlockConfig
}

// NewCodeBlocks returns an extension that replaces goldmark's code block
// rendering.
func NewCodeBlocks(config CodeBlockConfig) goldmark.Extender {
	return &codeBlocks{config: config}
}

func (e *codeBlocks) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewCodeBlockHTMLRenderer(e.config), 100),
	))
}
