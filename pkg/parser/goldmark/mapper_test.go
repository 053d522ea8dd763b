package goldmark

import (
	"context"
	"reflect"
	"testing"

	"github.com/yaklabco/mdconv/pkg/mdast"
	"github.com/yaklabco/mdconv/pkg/options"
)

func parseWith(t *testing.T, opts options.Options, content string) *mdast.Node {
	t.Helper()
	doc, err := New(opts).Parse(context.Background(), []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func parseDefault(t *testing.T, content string) *mdast.Node {
	t.Helper()
	return parseWith(t, options.Default(), content)
}

func firstOfKind(t *testing.T, root *mdast.Node, kind mdast.NodeKind) *mdast.Node {
	t.Helper()
	nodes := mdast.FindByKind(root, kind)
	if len(nodes) == 0 {
		t.Fatalf("no %s node found", kind)
	}
	return nodes[0]
}

func childValues(n *mdast.Node) []mdast.Value {
	var values []mdast.Value
	for c := n.FirstChild; c != nil; c = c.Next {
		values = append(values, c.Value)
	}
	return values
}

func TestMapper_Heading(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    mdast.Heading
	}{
		{"atx h1", "# Heading 1", mdast.Heading{Level: 1}},
		{"atx h6", "###### Heading 6", mdast.Heading{Level: 6}},
		{"atx with closing run", "## Title ##", mdast.Heading{Level: 2}},
		{"setext h1", "Title\n=====", mdast.Heading{Level: 1, Setext: true}},
		{"setext h2", "Title\n-----", mdast.Heading{Level: 2, Setext: true}},
		{"setext starting with hash", "#Title\n===", mdast.Heading{Level: 1, Setext: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			heading := firstOfKind(t, parseDefault(t, tt.content), mdast.NodeHeading)
			if heading.Value != tt.want {
				t.Errorf("heading = %+v, want %+v", heading.Value, tt.want)
			}
		})
	}
}

func TestMapper_TextAndBreaks(t *testing.T) {
	para := firstOfKind(t, parseDefault(t, "a *b*\nc  \nd\n"), mdast.NodeParagraph)

	want := []mdast.Value{
		mdast.Text{Value: "a "},
		mdast.Emph{},
		mdast.SoftBreak{},
		mdast.Text{Value: "c"},
		mdast.LineBreak{},
		mdast.Text{Value: "d"},
	}
	if got := childValues(para); !reflect.DeepEqual(got, want) {
		t.Errorf("children = %#v, want %#v", got, want)
	}
}

func TestMapper_TextResolvesEscapesAndEntities(t *testing.T) {
	para := firstOfKind(t, parseDefault(t, "a \\* &amp; &#65; &copy;"), mdast.NodeParagraph)

	want := []mdast.Value{mdast.Text{Value: "a * & A ©"}}
	if got := childValues(para); !reflect.DeepEqual(got, want) {
		t.Errorf("children = %#v, want %#v", got, want)
	}
}

func TestMapper_CodeSpan(t *testing.T) {
	code := firstOfKind(t, parseDefault(t, "`a\nb` and `` c ``"), mdast.NodeCode)
	if code.Value != (mdast.Code{Literal: "a b"}) {
		t.Errorf("code = %+v", code.Value)
	}
}

func TestMapper_CodeBlocks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    mdast.CodeBlock
	}{
		{"fenced with info", "```go title\nx\n```", mdast.CodeBlock{Fenced: true, Info: "go title", Literal: "x\n"}},
		{"fenced default info", "```\nx\n```", mdast.CodeBlock{Fenced: true, Info: "text", Literal: "x\n"}},
		{"indented", "    x\n    y\n", mdast.CodeBlock{Literal: "x\ny\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := firstOfKind(t, parseDefault(t, tt.content), mdast.NodeCodeBlock)
			if block.Value != tt.want {
				t.Errorf("code block = %+v, want %+v", block.Value, tt.want)
			}
		})
	}
}

func TestMapper_List(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantList  mdast.ListAttrs
		wantItems []int
	}{
		{
			"bullet",
			"- a\n- b\n",
			mdast.ListAttrs{ListType: mdast.ListBullet, Start: 1, Tight: true},
			[]int{1, 1},
		},
		{
			"ordered period",
			"1. a\n2. b\n",
			mdast.ListAttrs{ListType: mdast.ListOrdered, Start: 1, Tight: true},
			[]int{1, 2},
		},
		{
			"ordered paren with start",
			"3) a\n7) b\n",
			mdast.ListAttrs{ListType: mdast.ListOrdered, Start: 3, Tight: true, Delimiter: mdast.DelimParen},
			[]int{3, 7},
		},
		{
			"loose",
			"- a\n\n- b\n",
			mdast.ListAttrs{ListType: mdast.ListBullet, Start: 1},
			[]int{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := firstOfKind(t, parseDefault(t, tt.content), mdast.NodeList)
			if got := list.Value.(mdast.List).ListAttrs; got != tt.wantList {
				t.Errorf("list = %+v, want %+v", got, tt.wantList)
			}

			items := list.Children()
			if len(items) != len(tt.wantItems) {
				t.Fatalf("expected %d items, got %d", len(tt.wantItems), len(items))
			}
			for i, item := range items {
				attrs := item.Value.(mdast.Item).ListAttrs
				if attrs.Start != tt.wantItems[i] {
					t.Errorf("item %d start = %d, want %d", i, attrs.Start, tt.wantItems[i])
				}
				if attrs.Tight != tt.wantList.Tight {
					t.Errorf("item %d tight = %v, want %v", i, attrs.Tight, tt.wantList.Tight)
				}
			}
		})
	}
}

func TestMapper_TaskItems(t *testing.T) {
	list := firstOfKind(t, parseDefault(t, "- [x] a\n- [ ] b\n- [~] c\n- d\n"), mdast.NodeList)

	items := list.Children()
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	want := []mdast.Value{
		mdast.TaskItem{Symbol: 'x'},
		mdast.TaskItem{},
		mdast.TaskItem{Symbol: '~'},
	}
	for i, w := range want {
		if items[i].Value != w {
			t.Errorf("item %d = %+v, want %+v", i, items[i].Value, w)
		}
	}
	if items[3].Kind() != mdast.NodeItem {
		t.Errorf("item 3 kind = %s, want item", items[3].Kind())
	}

	text := firstOfKind(t, items[0], mdast.NodeText)
	if text.Value != (mdast.Text{Value: "a"}) {
		t.Errorf("task text = %+v", text.Value)
	}
}

func TestMapper_StrictTaskItems(t *testing.T) {
	opts := options.Default()
	opts.Parse.RelaxedTasklistMatching = false

	list := firstOfKind(t, parseWith(t, opts, "- [~] c\n"), mdast.NodeList)
	if k := list.FirstChild.Kind(); k != mdast.NodeItem {
		t.Errorf("item kind = %s, want item", k)
	}
}

func TestMapper_Table(t *testing.T) {
	doc := parseDefault(t, "| a | b | c |\n|:--|--:|:-:|\n| 1 | 2 | 3 |\n| 4 | 5 | 6 |\n")
	table := firstOfKind(t, doc, mdast.NodeTable)

	want := mdast.Table{
		Alignments: []mdast.Alignment{mdast.AlignLeft, mdast.AlignRight, mdast.AlignCenter},
		NumColumns: 3,
		NumRows:    3,
	}
	if !reflect.DeepEqual(table.Value, want) {
		t.Errorf("table = %+v, want %+v", table.Value, want)
	}

	rows := table.Children()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Value != (mdast.TableRow{Header: true}) {
		t.Errorf("first row = %+v, want header", rows[0].Value)
	}
	if rows[1].Value != (mdast.TableRow{}) {
		t.Errorf("second row = %+v, want body row", rows[1].Value)
	}
	if n := rows[1].ChildCount(); n != 3 {
		t.Errorf("expected 3 cells, got %d", n)
	}
}

func TestMapper_Footnotes(t *testing.T) {
	doc := parseDefault(t, "Text[^a] and ^[inline] and [^a].\n\n[^a]: Note.\n")

	refs := mdast.FindByKind(doc, mdast.NodeFootnoteReference)
	want := []mdast.Value{
		mdast.FootnoteReference{Name: "a", RefNum: 1, Index: 1},
		mdast.FootnoteReference{Name: "__inline_1", RefNum: 1, Index: 2},
		mdast.FootnoteReference{Name: "a", RefNum: 2, Index: 1},
	}
	if len(refs) != len(want) {
		t.Fatalf("expected %d references, got %d", len(want), len(refs))
	}
	for i, w := range want {
		if refs[i].Value != w {
			t.Errorf("reference %d = %+v, want %+v", i, refs[i].Value, w)
		}
	}

	children := doc.Children()
	if len(children) != 3 {
		t.Fatalf("expected paragraph and 2 definitions, got %d children", len(children))
	}
	if children[1].Value != (mdast.FootnoteDefinition{Name: "a"}) {
		t.Errorf("first definition = %+v", children[1].Value)
	}
	if children[2].Value != (mdast.FootnoteDefinition{Name: "__inline_1"}) {
		t.Errorf("second definition = %+v", children[2].Value)
	}

	inline := firstOfKind(t, children[2], mdast.NodeText)
	if inline.Value != (mdast.Text{Value: "inline"}) {
		t.Errorf("inline footnote text = %+v", inline.Value)
	}
}

func TestMapper_Links(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    mdast.Value
		label   string
	}{
		{"inline link", "[text](https://example.com \"T\")", mdast.Link{URL: "https://example.com", Title: "T"}, "text"},
		{"autolink", "<https://example.com>", mdast.Link{URL: "https://example.com"}, "https://example.com"},
		{"email autolink", "<me@example.com>", mdast.Link{URL: "mailto:me@example.com"}, "me@example.com"},
		{"linkify", "see https://example.com/a", mdast.Link{URL: "https://example.com/a"}, "https://example.com/a"},
		{"image", "![alt](/img.png)", mdast.Image{URL: "/img.png"}, "alt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDefault(t, tt.content)
			node := mdast.FindFirst(doc, func(n *mdast.Node) bool {
				k := n.Kind()
				return k == mdast.NodeLink || k == mdast.NodeImage
			})
			if node == nil {
				t.Fatal("no link found")
			}
			if node.Value != tt.want {
				t.Errorf("link = %+v, want %+v", node.Value, tt.want)
			}
			if label := firstOfKind(t, node, mdast.NodeText); label.Value != (mdast.Text{Value: tt.label}) {
				t.Errorf("label = %+v, want %q", label.Value, tt.label)
			}
		})
	}
}

func TestMapper_HTML(t *testing.T) {
	doc := parseDefault(t, "<div>\nhi\n</div>\n\na <b>c</b>\n")

	block := firstOfKind(t, doc, mdast.NodeHTMLBlock)
	if block.Value != (mdast.HTMLBlock{BlockType: 6, Literal: "<div>\nhi\n</div>\n"}) {
		t.Errorf("html block = %+v", block.Value)
	}

	inlines := mdast.FindByKind(doc, mdast.NodeHTMLInline)
	if len(inlines) != 2 {
		t.Fatalf("expected 2 inline html nodes, got %d", len(inlines))
	}
	if inlines[0].Value != (mdast.HTMLInline{Value: "<b>"}) {
		t.Errorf("inline html = %+v", inlines[0].Value)
	}
}

func TestMapper_HTMLBlockFinalNewline(t *testing.T) {
	for _, src := range []string{
		"<div>\nraw\n</div>",
		"<div>\nraw\n</div>\n",
	} {
		block := firstOfKind(t, parseDefault(t, src), mdast.NodeHTMLBlock)
		if block.Value != (mdast.HTMLBlock{BlockType: 6, Literal: "<div>\nraw\n</div>\n"}) {
			t.Errorf("html block for %q = %+v", src, block.Value)
		}
	}

	block := firstOfKind(t, parseDefault(t, "<!-- note -->"), mdast.NodeHTMLBlock)
	if block.Value != (mdast.HTMLBlock{BlockType: 2, Literal: "<!-- note -->\n"}) {
		t.Errorf("comment block = %+v", block.Value)
	}
}

func TestMapper_Spans(t *testing.T) {
	doc := parseDefault(t, "~a~ ~~b~~ ^c^ ==d== ||e|| __f__ **g** *h*\n")

	for _, kind := range []mdast.NodeKind{
		mdast.NodeSubscript,
		mdast.NodeStrikethrough,
		mdast.NodeSuperscript,
		mdast.NodeHighlight,
		mdast.NodeSpoileredText,
		mdast.NodeUnderline,
		mdast.NodeStrong,
		mdast.NodeEmph,
	} {
		if n := len(mdast.FindByKind(doc, kind)); n != 1 {
			t.Errorf("expected 1 %s node, got %d", kind, n)
		}
	}
}

func TestMapper_BlockExtensions(t *testing.T) {
	doc := parseDefault(t, "> [!TIP]\n> x\n\n> [!caution] Stop\n> y\n\n>>>\nquoted\n>>>\n\n-# fine print\n")

	alerts := mdast.FindByKind(doc, mdast.NodeAlert)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].Value != (mdast.Alert{AlertType: mdast.AlertTip}) {
		t.Errorf("alert = %+v", alerts[0].Value)
	}
	if alerts[1].Value != (mdast.Alert{AlertType: mdast.AlertCaution, Title: "Stop"}) {
		t.Errorf("alert = %+v", alerts[1].Value)
	}

	quote := firstOfKind(t, doc, mdast.NodeMultilineBlockQuote)
	if quote.ChildCount() != 1 {
		t.Errorf("multiline quote children = %d, want 1", quote.ChildCount())
	}

	subtext := firstOfKind(t, doc, mdast.NodeSubtext)
	if text := firstOfKind(t, subtext, mdast.NodeText); text.Value != (mdast.Text{Value: "fine print"}) {
		t.Errorf("subtext = %+v", text.Value)
	}
}

func TestMapper_ShortCode(t *testing.T) {
	code := firstOfKind(t, parseDefault(t, "hi :smile:"), mdast.NodeShortCode)

	sc := code.Value.(mdast.ShortCode)
	if sc.Code != "smile" {
		t.Errorf("code = %q, want smile", sc.Code)
	}
	if sc.Emoji == "" {
		t.Error("expected emoji to be resolved")
	}
}

func TestMapper_OptionalExtensions(t *testing.T) {
	opts := options.Default()
	opts.Extension.MathDollars = true
	opts.Extension.WikiLinks = true
	opts.Extension.DescriptionLists = true
	opts.Extension.FrontMatterDelimiter = "---"
	opts.Parse.EscapedCharSpans = true
	opts.Parse.Smart = true

	doc := parseWith(t, opts, "---\ntitle: x\n---\n\n$x$ $$y$$ $`z`$ [[Page|label]] \\* \"q\" -- e...\n\nTerm\n: Details\n")

	fm := firstOfKind(t, doc, mdast.NodeFrontMatter)
	if fm.Value != (mdast.FrontMatter{Value: "---\ntitle: x\n---\n"}) {
		t.Errorf("front matter = %+v", fm.Value)
	}
	if doc.FirstChild != fm {
		t.Error("front matter should be the first child")
	}

	maths := mdast.FindByKind(doc, mdast.NodeMath)
	wantMath := []mdast.Value{
		mdast.Math{DollarMath: true, Literal: "x"},
		mdast.Math{DollarMath: true, DisplayMath: true, Literal: "y"},
		mdast.Math{Literal: "z"},
	}
	if len(maths) != len(wantMath) {
		t.Fatalf("expected %d math nodes, got %d", len(wantMath), len(maths))
	}
	for i, w := range wantMath {
		if maths[i].Value != w {
			t.Errorf("math %d = %+v, want %+v", i, maths[i].Value, w)
		}
	}

	wiki := firstOfKind(t, doc, mdast.NodeWikiLink)
	if wiki.Value != (mdast.WikiLink{URL: "Page"}) {
		t.Errorf("wikilink = %+v", wiki.Value)
	}

	escaped := firstOfKind(t, doc, mdast.NodeEscaped)
	if text := firstOfKind(t, escaped, mdast.NodeText); text.Value != (mdast.Text{Value: "*"}) {
		t.Errorf("escaped = %+v", text.Value)
	}

	texts := mdast.FindAll(doc, func(n *mdast.Node) bool {
		txt, ok := n.Value.(mdast.Text)
		return ok && txt.Value == " “q” – e…"
	})
	if len(texts) != 1 {
		t.Error("expected typographic quotes, dash and ellipsis")
	}

	list := firstOfKind(t, doc, mdast.NodeDescriptionList)
	item := list.FirstChild
	if item == nil || item.Kind() != mdast.NodeDescriptionItem {
		t.Fatal("expected a description item")
	}
	kinds := []mdast.NodeKind{}
	for c := item.FirstChild; c != nil; c = c.Next {
		kinds = append(kinds, c.Kind())
	}
	wantKinds := []mdast.NodeKind{mdast.NodeDescriptionTerm, mdast.NodeDescriptionDetails}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Errorf("description item children = %v, want %v", kinds, wantKinds)
	}
}

func TestMapper_ParentChildRelationships(t *testing.T) {
	doc := parseDefault(t, "# Title\n\n- a **b**\n- c\n\n> quote\n")

	_ = mdast.Walk(doc, func(n *mdast.Node) error {
		for c := n.FirstChild; c != nil; c = c.Next {
			if c.Parent != n {
				t.Errorf("%s child %s has wrong parent", n.Kind(), c.Kind())
			}
			if c.Next != nil && c.Next.Prev != c {
				t.Errorf("%s sibling links are inconsistent", c.Kind())
			}
		}
		if n.LastChild != nil && n.LastChild.Next != nil {
			t.Errorf("%s last child has a next sibling", n.Kind())
		}
		return nil
	})
}
