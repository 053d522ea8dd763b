package extension

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// InlineFootnotePrefix prefixes the generated names of inline footnotes.
const InlineFootnotePrefix = "__inline_"

//nolint:gochecknoglobals // parser context keys are package-level by convention
var inlineFootnoteOpenersKey = parser.NewContextKey()

// inlineFootnoteOpener marks "^[" in the delimiter list. It never pairs with
// another delimiter; it only bounds delimiter processing inside the note.
type inlineFootnoteOpener struct{}

func (p *inlineFootnoteOpener) IsDelimiter(b byte) bool { return b == '^' }

func (p *inlineFootnoteOpener) CanOpenCloser(*parser.Delimiter, *parser.Delimiter) bool { return false }

func (p *inlineFootnoteOpener) OnMatch(int) gast.Node { return nil }

//nolint:gochecknoglobals // stateless
var defaultInlineFootnoteOpener = &inlineFootnoteOpener{}

type inlineFootnoteOpenParser struct{}

func (s *inlineFootnoteOpenParser) Trigger() []byte {
	return []byte{'^'}
}

func (s *inlineFootnoteOpenParser) Parse(_ gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, segment := block.PeekLine()
	if len(line) < 2 || line[1] != '[' {
		return nil
	}
	opener := parser.NewDelimiter(false, false, 2, '^', defaultInlineFootnoteOpener)
	opener.Segment = segment.WithStop(segment.Start + 2)
	block.Advance(2)
	pc.PushDelimiter(opener)

	openers, _ := pc.Get(inlineFootnoteOpenersKey).([]*parser.Delimiter)
	pc.Set(inlineFootnoteOpenersKey, append(openers, opener))
	return opener
}

type inlineFootnoteCloseParser struct{}

func (s *inlineFootnoteCloseParser) Trigger() []byte {
	return []byte{']'}
}

func (s *inlineFootnoteCloseParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	openers, _ := pc.Get(inlineFootnoteOpenersKey).([]*parser.Delimiter)
	// Openers swallowed by an enclosing link were turned into text.
	for len(openers) > 0 && openers[len(openers)-1].Parent() != parent {
		openers = openers[:len(openers)-1]
	}
	pc.Set(inlineFootnoteOpenersKey, openers)
	if len(openers) == 0 {
		return nil
	}
	opener := openers[len(openers)-1]
	if opener.NextSibling() == nil {
		return nil
	}
	// A link label opened inside the note owns this bracket.
	for c := opener.NextSibling(); c != nil; c = c.NextSibling() {
		if c.Kind().String() == "LinkLabelState" {
			return nil
		}
	}

	block.Advance(1)
	pc.Set(inlineFootnoteOpenersKey, openers[:len(openers)-1])
	parser.ProcessDelimiters(opener, pc)

	note := &InlineFootnote{}
	for c := opener.NextSibling(); c != nil; {
		next := c.NextSibling()
		parent.RemoveChild(parent, c)
		note.AppendChild(note, c)
		c = next
	}
	opener.ConsumeCharacters(opener.Length)
	pc.RemoveDelimiter(opener)
	return note
}

func (s *inlineFootnoteCloseParser) CloseBlock(_ gast.Node, _ text.Reader, pc parser.Context) {
	pc.Set(inlineFootnoteOpenersKey, nil)
}

// footnoteNumberer turns inline footnotes into footnote definitions and
// renumbers every footnote by the order of its first reference. It runs
// after goldmark's footnote transformer.
type footnoteNumberer struct{}

func (t *footnoteNumberer) Transform(doc *gast.Document, _ text.Reader, _ parser.Context) {
	var refs []gast.Node
	var list *east.FootnoteList
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *east.FootnoteLink, *InlineFootnote:
			refs = append(refs, n)
		case *east.FootnoteList:
			list = v
		}
		return gast.WalkContinue, nil
	})
	if len(refs) == 0 {
		return
	}
	if list == nil {
		list = east.NewFootnoteList()
		doc.AppendChild(doc, list)
	}

	renumber := make(map[int]int)
	next := 1
	inline := 0
	for _, ref := range refs {
		switch v := ref.(type) {
		case *east.FootnoteLink:
			if v.Index < 0 {
				continue
			}
			if _, ok := renumber[v.Index]; !ok {
				renumber[v.Index] = next
				next++
			}
		case *InlineFootnote:
			inline++
			index := next
			next++
			list.AppendChild(list, newInlineFootnote(v, index, inline))

			link := east.NewFootnoteLink(index)
			link.RefCount = 1
			v.Parent().ReplaceChild(v.Parent(), v, link)
		}
	}

	for _, ref := range refs {
		if link, ok := ref.(*east.FootnoteLink); ok {
			if index, ok := renumber[link.Index]; ok {
				link.Index = index
			}
		}
	}
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		fn, ok := c.(*east.Footnote)
		if !ok || isInlineFootnoteName(fn.Ref) {
			continue
		}
		index, ok := renumber[fn.Index]
		if !ok {
			continue
		}
		fn.Index = index
		_ = gast.Walk(fn, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
			if back, ok := n.(*east.FootnoteBacklink); ok && entering {
				back.Index = index
			}
			return gast.WalkContinue, nil
		})
	}

	list.SortChildren(func(n1, n2 gast.Node) int {
		if n1.(*east.Footnote).Index < n2.(*east.Footnote).Index {
			return -1
		}
		return 1
	})
	list.Count = next - 1
}

func isInlineFootnoteName(ref []byte) bool {
	return bytes.HasPrefix(ref, []byte(InlineFootnotePrefix))
}

// newInlineFootnote moves the note's content into a footnote definition.
func newInlineFootnote(note *InlineFootnote, index, ordinal int) *east.Footnote {
	fn := east.NewFootnote([]byte(InlineFootnotePrefix + strconv.Itoa(ordinal)))
	fn.Index = index

	para := gast.NewParagraph()
	for c := note.FirstChild(); c != nil; {
		next := c.NextSibling()
		note.RemoveChild(note, c)
		para.AppendChild(para, c)
		c = next
	}
	back := east.NewFootnoteBacklink(index)
	back.RefCount = 1
	para.AppendChild(para, back)
	fn.AppendChild(fn, para)
	return fn
}

type inlineFootnotes struct{}

// InlineFootnotes is an extension for ^[inline note] footnotes. It needs
// goldmark's footnote extension for rendering.
//
//nolint:gochecknoglobals // extension singleton, like goldmark's own
var InlineFootnotes = &inlineFootnotes{}

func (e *inlineFootnotes) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&inlineFootnoteOpenParser{}, 100),
			util.Prioritized(&inlineFootnoteCloseParser{}, 150),
		),
		parser.WithASTTransformers(
			util.Prioritized(&footnoteNumberer{}, 1000),
		),
	)
}
