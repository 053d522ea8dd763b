package extension

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

//nolint:gochecknoglobals // read-only lookup table
var filteredTags = [][]byte{
	[]byte("title"), []byte("textarea"), []byte("style"), []byte("xmp"), []byte("iframe"),
	[]byte("noembed"), []byte("noframes"), []byte("script"), []byte("plaintext"),
}

// FilterTags escapes the opening '<' of the tags GFM disallows in raw HTML.
// It returns src unchanged when no such tag is present.
func FilterTags(src []byte) []byte {
	var out []byte
	last := 0
	for i := 0; i < len(src); i++ {
		if src[i] != '<' || !isFilteredTag(src[i+1:]) {
			continue
		}
		out = append(out, src[last:i]...)
		out = append(out, "&lt;"...)
		last = i + 1
	}
	if out == nil {
		return src
	}
	return append(out, src[last:]...)
}

func isFilteredTag(rest []byte) bool {
	if len(rest) > 0 && rest[0] == '/' {
		rest = rest[1:]
	}
	for _, tag := range filteredTags {
		if len(rest) < len(tag) || !bytes.EqualFold(rest[:len(tag)], tag) {
			continue
		}
		if len(rest) == len(tag) {
			return true
		}
		switch rest[len(tag)] {
		case ' ', '\t', '\n', '\r', '\f', '/', '>':
			return true
		}
	}
	return false
}

// RawHTMLRenderer renders inline raw HTML and HTML blocks. Without the
// Unsafe option raw HTML is replaced by a comment; with TagFilter the
// GFM-disallowed tags are neutralized.
type RawHTMLRenderer struct {
	html.Config

	tagFilter bool
}

// NewRawHTMLRenderer returns a new RawHTMLRenderer.
func NewRawHTMLRenderer(tagFilter bool, opts ...html.Option) renderer.NodeRenderer {
	r := &RawHTMLRenderer{Config: html.NewConfig(), tagFilter: tagFilter}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *RawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindRawHTML, r.renderRawHTML)
	reg.Register(gast.KindHTMLBlock, r.renderHTMLBlock)
}

func (r *RawHTMLRenderer) filter(src []byte) []byte {
	if r.tagFilter {
		return FilterTags(src)
	}
	return src
}

func (r *RawHTMLRenderer) renderRawHTML(
	w util.BufWriter, source []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkSkipChildren, nil
	}
	if !r.Unsafe {
		_, _ = w.WriteString("<!-- raw HTML omitted -->")
		return gast.WalkSkipChildren, nil
	}
	n := node.(*gast.RawHTML)
	for i := range n.Segments.Len() {
		segment := n.Segments.At(i)
		_, _ = w.Write(r.filter(segment.Value(source)))
	}
	return gast.WalkSkipChildren, nil
}

func (r *RawHTMLRenderer) renderHTMLBlock(
	w util.BufWriter, source []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	n := node.(*gast.HTMLBlock)
	if entering {
		if !r.Unsafe {
			_, _ = w.WriteString("<!-- raw HTML omitted -->\n")
			return gast.WalkContinue, nil
		}
		lines := n.Lines()
		for i := range lines.Len() {
			line := lines.At(i)
			r.Writer.SecureWrite(w, r.filter(line.Value(source)))
		}
		return gast.WalkContinue, nil
	}
	if n.HasClosure() {
		if r.Unsafe {
			closure := n.ClosureLine
			r.Writer.SecureWrite(w, r.filter(closure.Value(source)))
		} else {
			_, _ = w.WriteString("<!-- raw HTML omitted -->\n")
		}
	}
	return gast.WalkContinue, nil
}

type rawHTML struct {
	tagFilter bool
}

// NewRawHTML returns an extension that replaces goldmark's raw HTML
// rendering, optionally applying the GFM tag filter.
func NewRawHTML(tagFilter bool) goldmark.Extender {
	return &rawHTML{tagFilter: tagFilter}
}

func (e *rawHTML) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRawHTMLRenderer(e.tagFilter), 100),
	))
}
