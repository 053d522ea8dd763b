package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	emojiast "github.com/yuin/goldmark-emoji/ast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdconv/pkg/extension"
	"github.com/yaklabco/mdconv/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	content   []byte
	info      extension.InfoResolver
	footnotes map[int]string
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte, info extension.InfoResolver) *mapper {
	return &mapper{
		content:   content,
		info:      info,
		footnotes: make(map[int]string),
	}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	_ = ast.Walk(gmDoc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering {
			m.footnotes[fn.Index] = string(fn.Ref)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren maps all children of a goldmark node onto parent.
// Adjacent text is merged into a single node.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			m.appendText(parent, m.textValue(c))
			switch {
			case c.HardLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.LineBreak{}))
			case c.SoftLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.SoftBreak{}))
			}
			continue

		case *east.FootnoteList:
			// Definitions are flattened into the document.
			m.mapChildren(c, parent)
			continue
		}

		mdNode := m.mapNode(child)
		if mdNode == nil {
			continue
		}
		if t, ok := mdNode.Value.(mdast.Text); ok {
			m.appendText(parent, t.Value)
			continue
		}
		mdast.AppendChild(parent, mdNode)
	}
}

// appendText adds value to parent, extending a trailing text node.
func (m *mapper) appendText(parent *mdast.Node, value string) {
	if value == "" {
		return
	}
	if last := parent.LastChild; last != nil {
		if t, ok := last.Value.(mdast.Text); ok {
			last.Value = mdast.Text{Value: t.Value + value}
			return
		}
	}
	mdast.AppendChild(parent, mdast.NewNode(mdast.Text{Value: value}))
}

// textValue returns the literal text of a goldmark Text node with escapes
// and entity references resolved.
func (m *mapper) textValue(t *ast.Text) string {
	value := t.Segment.Value(m.content)
	if t.IsRaw() {
		return string(value)
	}
	return string(resolveReferences(util.UnescapePunctuations(value)))
}

func resolveReferences(b []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(b))
}

// mapNode converts a single goldmark node to an mdast.Node.
// It returns nil for nodes that have no counterpart in the tree.
//
//nolint:cyclop,funlen,gocyclo // one case per node kind
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewNode(mdast.Heading{Level: gmn.Level, Setext: m.isSetext(gmn)})
		m.mapChildren(gmn, node)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.Paragraph{})
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = mdast.NewNode(mdast.List{ListAttrs: listAttrs(gmn)})
		m.mapListItems(gmn, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.BlockQuote{})
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		node = mdast.NewNode(mdast.CodeBlock{
			Fenced:  gmNode.Kind() == ast.KindFencedCodeBlock,
			Info:    m.info.Info(gmNode, m.content),
			Literal: string(m.lines(gmNode)),
		})

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.ThematicBreak{})

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	case *extension.FrontMatter:
		node = mdast.NewNode(mdast.FrontMatter{Value: string(gmn.Value(m.content))})

	case *extension.Alert:
		node = mdast.NewNode(mdast.Alert{AlertType: alertType(gmn.AlertType), Title: gmn.Title})
		m.mapChildren(gmn, node)

	case *extension.MultilineBlockQuote:
		node = mdast.NewNode(mdast.MultilineBlockQuote{})
		m.mapChildren(gmn, node)

	case *extension.Subtext:
		node = mdast.NewNode(mdast.Subtext{})
		m.mapChildren(gmn, node)

	case *east.Table:
		node = m.mapTable(gmn)

	case *east.TableHeader:
		node = mdast.NewNode(mdast.TableRow{Header: true})
		m.mapChildren(gmn, node)

	case *east.TableRow:
		node = mdast.NewNode(mdast.TableRow{})
		m.mapChildren(gmn, node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.TableCell{})
		m.mapChildren(gmn, node)

	case *east.Footnote:
		node = mdast.NewNode(mdast.FootnoteDefinition{Name: string(gmn.Ref)})
		m.mapChildren(gmn, node)

	case *east.DefinitionList:
		node = m.mapDefinitionList(gmn)

	// Inline-level nodes.
	case *ast.String:
		node = m.mapString(gmn)

	case *ast.Emphasis:
		if gmn.Level == 2 {
			node = mdast.NewNode(mdast.Strong{})
		} else {
			node = mdast.NewNode(mdast.Emph{})
		}
		m.mapChildren(gmn, node)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = mdast.NewNode(mdast.Link{URL: string(gmn.Destination), Title: string(gmn.Title)})
		m.mapChildren(gmn, node)

	case *ast.Image:
		node = mdast.NewNode(mdast.Image{URL: string(gmn.Destination), Title: string(gmn.Title)})
		m.mapChildren(gmn, node)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.HTMLInline{Value: string(m.segments(gmn.Segments))})

	case *east.Strikethrough:
		node = mdast.NewNode(mdast.Strikethrough{})
		m.mapChildren(gmn, node)

	case *extension.Span:
		node = mapSpan(gmn)
		m.mapChildren(gmn, node)

	case *east.FootnoteLink:
		node = mdast.NewNode(mdast.FootnoteReference{
			Name:   m.footnotes[gmn.Index],
			RefNum: gmn.RefIndex + 1,
			Index:  gmn.Index,
		})

	case *east.FootnoteBacklink, *extension.TaskCheckBox:
		// Backlinks are rendering artifacts; checkboxes are folded into
		// their list item.
		return nil

	case *emojiast.Emoji:
		node = mdast.NewNode(mdast.ShortCode{Code: string(gmn.ShortName), Emoji: emojiValue(gmn)})

	case *extension.Math:
		node = mdast.NewNode(mdast.Math{
			DollarMath:  gmn.Dollar,
			DisplayMath: gmn.Display,
			Literal:     string(gmn.Literal),
		})

	case *extension.WikiLink:
		node = mdast.NewNode(mdast.WikiLink{URL: string(gmn.Destination)})
		m.mapChildren(gmn, node)

	case *extension.Escaped:
		node = mdast.NewNode(mdast.Escaped{})
		m.mapChildren(gmn, node)

	default:
		// Fallback for unknown node types.
		node = mdast.NewNode(mdast.Raw{Value: string(m.rawText(gmNode))})
	}

	return node
}

// isSetext reports whether a heading was written with an underline. The
// content of an ATX heading is preceded on its line by the '#' run.
func (m *mapper) isSetext(h *ast.Heading) bool {
	lines := h.Lines()
	if lines.Len() == 0 {
		return false
	}
	start := lines.At(0).Start
	lineStart := start
	for lineStart > 0 && m.content[lineStart-1] != '\n' {
		lineStart--
	}
	prefix := bytes.TrimRight(m.content[lineStart:start], " \t")
	return !bytes.HasSuffix(prefix, []byte{'#'})
}

func listAttrs(list *ast.List) mdast.ListAttrs {
	attrs := mdast.ListAttrs{
		ListType: mdast.ListBullet,
		Start:    1,
		Tight:    list.IsTight,
	}
	if list.IsOrdered() {
		attrs.ListType = mdast.ListOrdered
		attrs.Start = list.Start
		if list.Marker == ')' {
			attrs.Delimiter = mdast.DelimParen
		}
	}
	return attrs
}

// mapListItems maps the items of list, turning items that open with a task
// marker into task items.
func (m *mapper) mapListItems(list *ast.List, parent *mdast.Node) {
	attrs := listAttrs(list)
	ordinal := attrs.Start
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}

		var node *mdast.Node
		if box := taskCheckBox(item); box != nil {
			symbol := box.Symbol
			if !box.IsChecked() {
				symbol = 0
			}
			node = mdast.NewNode(mdast.TaskItem{Symbol: symbol})
		} else {
			itemAttrs := attrs
			if attrs.ListType == mdast.ListOrdered {
				if n, ok := m.itemNumber(item); ok {
					ordinal = n
				}
				itemAttrs.Start = ordinal
			}
			node = mdast.NewNode(mdast.Item{ListAttrs: itemAttrs})
		}
		ordinal++

		m.mapChildren(item, node)
		mdast.AppendChild(parent, node)
	}
}

// taskCheckBox returns the checkbox that opens item, if any.
func taskCheckBox(item *ast.ListItem) *extension.TaskCheckBox {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	box, _ := first.FirstChild().(*extension.TaskCheckBox)
	return box
}

// itemNumber reads the number of an ordered list item from the source by
// scanning back from the start of its content.
func (m *mapper) itemNumber(item *ast.ListItem) (int, bool) {
	first := item.FirstChild()
	if first == nil || first.Type() != ast.TypeBlock || first.Lines().Len() == 0 {
		return 0, false
	}
	pos := first.Lines().At(0).Start
	for pos > 0 && (m.content[pos-1] == ' ' || m.content[pos-1] == '\t') {
		pos--
	}
	if pos == 0 || (m.content[pos-1] != '.' && m.content[pos-1] != ')') {
		return 0, false
	}
	end := pos - 1
	start := end
	for start > 0 && util.IsNumeric(m.content[start-1]) {
		start--
	}
	if start == end || end-start > 9 {
		return 0, false
	}
	n, err := strconv.Atoi(string(m.content[start:end]))
	return n, err == nil
}

// mapHTMLBlock converts an HTML block, including its closing line. The
// literal always ends in a newline, as it does for code blocks.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	literal := m.lines(block)
	if block.HasClosure() {
		literal = append(literal, block.ClosureLine.Value(m.content)...)
	}
	if len(literal) > 0 && literal[len(literal)-1] != '\n' {
		literal = append(literal, '\n')
	}
	return mdast.NewNode(mdast.HTMLBlock{
		BlockType: int(block.HTMLBlockType),
		Literal:   string(literal),
	})
}

func (m *mapper) mapTable(table *east.Table) *mdast.Node {
	alignments := make([]mdast.Alignment, len(table.Alignments))
	for i, a := range table.Alignments {
		switch a {
		case east.AlignLeft:
			alignments[i] = mdast.AlignLeft
		case east.AlignCenter:
			alignments[i] = mdast.AlignCenter
		case east.AlignRight:
			alignments[i] = mdast.AlignRight
		case east.AlignNone:
			alignments[i] = mdast.AlignNone
		}
	}

	node := mdast.NewNode(mdast.Table{
		Alignments: alignments,
		NumColumns: len(alignments),
		NumRows:    table.ChildCount(),
	})
	m.mapChildren(table, node)
	return node
}

// mapDefinitionList groups each term with the descriptions that follow it.
func (m *mapper) mapDefinitionList(list *east.DefinitionList) *mdast.Node {
	node := mdast.NewNode(mdast.DescriptionList{})

	var item *mdast.Node
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *east.DefinitionTerm:
			item = mdast.NewNode(mdast.DescriptionItem{})
			mdast.AppendChild(node, item)

			term := mdast.NewNode(mdast.DescriptionTerm{})
			para := mdast.NewNode(mdast.Paragraph{})
			m.mapChildren(child, para)
			mdast.AppendChild(term, para)
			mdast.AppendChild(item, term)

		case *east.DefinitionDescription:
			if item == nil {
				item = mdast.NewNode(mdast.DescriptionItem{})
				mdast.AppendChild(node, item)
			}
			details := mdast.NewNode(mdast.DescriptionDetails{})
			m.mapChildren(child, details)
			mdast.AppendChild(item, details)
		}
	}
	return node
}

// mapString converts typographer output and other generated strings.
func (m *mapper) mapString(s *ast.String) *mdast.Node {
	value := s.Value
	if s.IsCode() {
		value = resolveReferences(value)
	}
	return mdast.NewNode(mdast.Text{Value: string(value)})
}

// mapCodeSpan joins the content of a code span; line endings become spaces.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	var buf bytes.Buffer
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(m.content))
		case *ast.String:
			buf.Write(c.Value)
		}
	}
	literal := strings.ReplaceAll(buf.String(), "\r\n", " ")
	literal = strings.ReplaceAll(literal, "\n", " ")
	return mdast.NewNode(mdast.Code{Literal: literal})
}

// mapAutoLink converts an autolink to a link with a text child.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	url := al.URL(m.content)
	if al.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
		url = append([]byte("mailto:"), url...)
	}

	node := mdast.NewNode(mdast.Link{URL: string(url)})
	mdast.AppendChild(node, mdast.NewNode(mdast.Text{Value: string(al.Label(m.content))}))
	return node
}

func mapSpan(span *extension.Span) *mdast.Node {
	switch span.Kind() {
	case extension.KindSubscript:
		return mdast.NewNode(mdast.Subscript{})
	case extension.KindSuperscript:
		return mdast.NewNode(mdast.Superscript{})
	case extension.KindUnderline:
		return mdast.NewNode(mdast.Underline{})
	case extension.KindHighlight:
		return mdast.NewNode(mdast.Highlight{})
	default:
		return mdast.NewNode(mdast.SpoileredText{})
	}
}

func alertType(name string) mdast.AlertType {
	switch name {
	case "tip":
		return mdast.AlertTip
	case "important":
		return mdast.AlertImportant
	case "warning":
		return mdast.AlertWarning
	case "caution":
		return mdast.AlertCaution
	default:
		return mdast.AlertNote
	}
}

func emojiValue(e *emojiast.Emoji) string {
	if e.Value == nil {
		return ""
	}
	return string(e.Value.Unicode)
}

// lines concatenates the line segments of a block node.
func (m *mapper) lines(n ast.Node) []byte {
	return m.segments(n.Lines())
}

func (m *mapper) segments(segs *text.Segments) []byte {
	var buf bytes.Buffer
	for i := range segs.Len() {
		seg := segs.At(i)
		buf.Write(seg.Value(m.content))
	}
	return buf.Bytes()
}

// rawText returns the source text of a node the mapper has no kind for.
func (m *mapper) rawText(n ast.Node) []byte {
	if n.Type() == ast.TypeBlock {
		return m.lines(n)
	}
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(m.content))
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}
