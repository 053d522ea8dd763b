// Package extension provides goldmark syntax extensions for Markdown
// constructs goldmark does not ship: alerts, multiline block quotes,
// greentext, subtext, math, wikilinks, inline footnotes, front matter,
// relaxed task lists and a family of delimiter spans (subscript,
// superscript, underline, highlight, spoiler).
//
// Every extension is a goldmark.Extender. Parsers that replace goldmark's
// built-in ones (emphasis, block quotes) are exposed as constructors so the
// engine can swap them into its parser list.
package extension

import (
	"fmt"
	"strings"

	gast "github.com/yuin/goldmark/ast"
)

// Node kinds registered by this package.
//
//nolint:gochecknoglobals // goldmark node kinds are package-level by convention
var (
	KindAlert               = gast.NewNodeKind("Alert")
	KindMultilineBlockQuote = gast.NewNodeKind("MultilineBlockQuote")
	KindSubtext             = gast.NewNodeKind("Subtext")
	KindFrontMatter         = gast.NewNodeKind("FrontMatter")
	KindTaskCheckBox        = gast.NewNodeKind("TaskCheckBox")
	KindMath                = gast.NewNodeKind("Math")
	KindWikiLink            = gast.NewNodeKind("WikiLink")
	KindEscaped             = gast.NewNodeKind("Escaped")
	KindSubscript           = gast.NewNodeKind("Subscript")
	KindSuperscript         = gast.NewNodeKind("Superscript")
	KindUnderline           = gast.NewNodeKind("Underline")
	KindHighlight           = gast.NewNodeKind("Highlight")
	KindSpoiler             = gast.NewNodeKind("Spoiler")
	KindInlineFootnote      = gast.NewNodeKind("InlineFootnote")
)

// Alert is a GitHub-style alert block such as "> [!NOTE]".
type Alert struct {
	gast.BaseBlock

	// AlertType is the lowercase alert name: note, tip, important, warning or caution.
	AlertType string

	// Title is the custom title following the marker, empty if none.
	Title string
}

// NewAlert returns a new Alert node.
func NewAlert(alertType, title string) *Alert {
	return &Alert{AlertType: alertType, Title: title}
}

// Kind implements ast.Node.Kind.
func (n *Alert) Kind() gast.NodeKind { return KindAlert }

// Dump implements ast.Node.Dump.
func (n *Alert) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"AlertType": n.AlertType,
		"Title":     n.Title,
	}, nil)
}

// DefaultTitle returns the title rendered when the source gives none.
func (n *Alert) DefaultTitle() string {
	if n.AlertType == "" {
		return ""
	}
	return strings.ToUpper(n.AlertType[:1]) + n.AlertType[1:]
}

// MultilineBlockQuote is a block quote fenced by ">>>" lines.
type MultilineBlockQuote struct {
	gast.BaseBlock

	FenceLength int
}

// NewMultilineBlockQuote returns a new MultilineBlockQuote node.
func NewMultilineBlockQuote(fenceLength int) *MultilineBlockQuote {
	return &MultilineBlockQuote{FenceLength: fenceLength}
}

// Kind implements ast.Node.Kind.
func (n *MultilineBlockQuote) Kind() gast.NodeKind { return KindMultilineBlockQuote }

// Dump implements ast.Node.Dump.
func (n *MultilineBlockQuote) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"FenceLength": fmt.Sprint(n.FenceLength),
	}, nil)
}

// Subtext is a "-# " line rendered in small print.
type Subtext struct {
	gast.BaseBlock
}

// Kind implements ast.Node.Kind.
func (n *Subtext) Kind() gast.NodeKind { return KindSubtext }

// Dump implements ast.Node.Dump.
func (n *Subtext) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// FrontMatter is a delimiter-fenced metadata block at the start of a document.
// Its lines include both delimiter lines.
type FrontMatter struct {
	gast.BaseBlock
}

// Kind implements ast.Node.Kind.
func (n *FrontMatter) Kind() gast.NodeKind { return KindFrontMatter }

// IsRaw implements ast.Node.IsRaw.
func (n *FrontMatter) IsRaw() bool { return true }

// Dump implements ast.Node.Dump.
func (n *FrontMatter) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// Value returns the raw front matter text.
func (n *FrontMatter) Value(source []byte) []byte {
	var out []byte
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		out = append(out, line.Value(source)...)
	}
	return out
}

// TaskCheckBox is the "[x]" marker at the start of a task list item.
type TaskCheckBox struct {
	gast.BaseInline

	// Symbol is the character between the brackets.
	Symbol rune
}

// NewTaskCheckBox returns a new TaskCheckBox node.
func NewTaskCheckBox(symbol rune) *TaskCheckBox {
	return &TaskCheckBox{Symbol: symbol}
}

// IsChecked reports whether the marker holds anything but a space.
func (n *TaskCheckBox) IsChecked() bool {
	return n.Symbol != ' '
}

// Kind implements ast.Node.Kind.
func (n *TaskCheckBox) Kind() gast.NodeKind { return KindTaskCheckBox }

// Dump implements ast.Node.Dump.
func (n *TaskCheckBox) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Symbol": string(n.Symbol),
	}, nil)
}

// Math is an inline math span.
type Math struct {
	gast.BaseInline

	// Dollar is true for $...$ and $$...$$ spans, false for $`...`$.
	Dollar bool

	// Display is true for $$...$$ spans.
	Display bool

	Literal []byte
}

// NewMath returns a new Math node.
func NewMath(dollar, display bool, literal []byte) *Math {
	return &Math{Dollar: dollar, Display: display, Literal: literal}
}

// Kind implements ast.Node.Kind.
func (n *Math) Kind() gast.NodeKind { return KindMath }

// Dump implements ast.Node.Dump.
func (n *Math) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Dollar":  fmt.Sprint(n.Dollar),
		"Display": fmt.Sprint(n.Display),
		"Literal": string(n.Literal),
	}, nil)
}

// WikiLink is a [[target|label]] link. Its children are the label.
type WikiLink struct {
	gast.BaseInline

	Destination []byte
}

// NewWikiLink returns a new WikiLink node.
func NewWikiLink(destination []byte) *WikiLink {
	return &WikiLink{Destination: destination}
}

// Kind implements ast.Node.Kind.
func (n *WikiLink) Kind() gast.NodeKind { return KindWikiLink }

// Dump implements ast.Node.Dump.
func (n *WikiLink) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Destination": string(n.Destination),
	}, nil)
}

// Escaped wraps a backslash-escaped character.
type Escaped struct {
	gast.BaseInline
}

// Kind implements ast.Node.Kind.
func (n *Escaped) Kind() gast.NodeKind { return KindEscaped }

// Dump implements ast.Node.Dump.
func (n *Escaped) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// Span is an inline container produced by a delimiter pair, such as
// ^superscript^ or ==highlight==.
type Span struct {
	gast.BaseInline

	kind gast.NodeKind
}

// NewSpan returns a new Span of the given kind.
func NewSpan(kind gast.NodeKind) *Span {
	return &Span{kind: kind}
}

// Kind implements ast.Node.Kind.
func (n *Span) Kind() gast.NodeKind { return n.kind }

// Dump implements ast.Node.Dump.
func (n *Span) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// InlineFootnote is a ^[note] span. It only exists between inline parsing
// and the footnote transformer, which turns it into a footnote link and
// definition.
type InlineFootnote struct {
	gast.BaseInline
}

// Kind implements ast.Node.Kind.
func (n *InlineFootnote) Kind() gast.NodeKind { return KindInlineFootnote }

// Dump implements ast.Node.Dump.
func (n *InlineFootnote) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}
