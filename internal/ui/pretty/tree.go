package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/yaklabco/mdconv/pkg/astjson"
	"github.com/yaklabco/mdconv/pkg/mdast"
)

// minValueWidth keeps truncated string values readable on narrow terminals.
const minValueWidth = 16

// TreeFormatter renders a document tree as an indented outline, one node
// per line, with the same tags and attributes as the JSON form.
type TreeFormatter struct {
	styles *Styles
	width  int
}

// NewTreeFormatter creates a formatter. String values longer than about
// half of width are shortened.
func NewTreeFormatter(styles *Styles, width int) *TreeFormatter {
	if width <= 0 {
		width = defaultTermWidth
	}
	return &TreeFormatter{styles: styles, width: width}
}

// FormatTree renders root and all of its descendants.
func (f *TreeFormatter) FormatTree(root *mdast.Node) string {
	lines := strings.Split(f.build(root).String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

func (f *TreeFormatter) build(n *mdast.Node) *tree.Tree {
	t := tree.Root(f.label(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(f.styles.Guide)

	for child := n.FirstChild; child != nil; child = child.Next {
		if child.HasChildren() {
			t.Child(f.build(child))
		} else {
			t.Child(f.label(child))
		}
	}
	return t
}

// label renders "tag key=value ..." with keys sorted.
func (f *TreeFormatter) label(n *mdast.Node) string {
	tag, attrs := astjson.Encode(n.Value)

	var b strings.Builder
	if n.IsBlock() {
		b.WriteString(f.styles.BlockTag.Render(tag))
	} else {
		b.WriteString(f.styles.InlineTag.Render(tag))
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(f.styles.AttrKey.Render(k + "="))
		b.WriteString(f.value(attrs[k]))
	}
	return b.String()
}

func (f *TreeFormatter) value(v any) string {
	switch v := v.(type) {
	case nil:
		return f.styles.Dim.Render("null")
	case string:
		return f.styles.Literal.Render(strconv.Quote(f.truncate(v)))
	case []string:
		return f.styles.AttrValue.Render("[" + strings.Join(v, " ") + "]")
	default:
		return f.styles.AttrValue.Render(fmt.Sprint(v))
	}
}

func (f *TreeFormatter) truncate(s string) string {
	limit := max(f.width/2, minValueWidth)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
