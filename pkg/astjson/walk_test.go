package astjson_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdconv/pkg/astjson"
	"github.com/yaklabco/mdconv/pkg/mdast"
)

func node(v mdast.Value, children ...*mdast.Node) *mdast.Node {
	n := mdast.NewNode(v)
	for _, c := range children {
		mdast.AppendChild(n, c)
	}
	return n
}

func TestWalk_LeafOmitsChildren(t *testing.T) {
	t.Parallel()

	obj := astjson.Walk(node(mdast.ThematicBreak{}))

	assert.Equal(t, astjson.Object{"type": "thematic_break"}, obj)
	assert.NotContains(t, obj, astjson.KeyChildren)
}

func TestWalk_NestedInDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := node(mdast.Document{},
		node(mdast.Heading{Level: 1}, node(mdast.Text{Value: "Title"})),
		node(mdast.Paragraph{},
			node(mdast.Text{Value: "a"}),
			node(mdast.SoftBreak{}),
			node(mdast.Emph{}, node(mdast.Text{Value: "b"})),
		),
	)

	want := astjson.Object{
		"type": "document",
		"children": []astjson.Object{
			{
				"type":     "heading",
				"level":    1,
				"setext":   false,
				"children": []astjson.Object{{"type": "text", "value": "Title"}},
			},
			{
				"type": "paragraph",
				"children": []astjson.Object{
					{"type": "text", "value": "a"},
					{"type": "softbreak"},
					{
						"type":     "emph",
						"children": []astjson.Object{{"type": "text", "value": "b"}},
					},
				},
			},
		},
	}

	assert.Equal(t, want, astjson.Walk(doc))
}

func TestWalk_EveryKindAsLeaf(t *testing.T) {
	t.Parallel()

	for _, v := range sampleValues() {
		obj := astjson.Walk(node(v))
		tag, attrs := astjson.Encode(v)

		assert.Equal(t, tag, obj[astjson.KeyType])
		assert.Len(t, obj, len(attrs)+1, "kind %s", v.Kind())
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	doc := node(mdast.Document{},
		node(mdast.Paragraph{}, node(mdast.Text{Value: "a<b & c"})),
	)

	got := string(astjson.Marshal(doc))
	want := `{"children":[{"children":[{"type":"text","value":"a<b & c"}],"type":"paragraph"}],"type":"document"}`

	assert.Equal(t, want, got)
}

func TestMarshal_Deterministic(t *testing.T) {
	t.Parallel()

	build := func() *mdast.Node {
		return node(mdast.Document{},
			node(mdast.Table{Alignments: []mdast.Alignment{mdast.AlignRight}, NumColumns: 1, NumRows: 1},
				node(mdast.TableRow{Header: true}, node(mdast.TableCell{}, node(mdast.Text{Value: "x"})))),
			node(mdast.CodeBlock{Fenced: true, Info: "text", Literal: "y\n"}),
		)
	}

	assert.Equal(t, astjson.Marshal(build()), astjson.Marshal(build()))
}

func TestMarshalIndent(t *testing.T) {
	t.Parallel()

	out := astjson.MarshalIndent(node(mdast.Document{}, node(mdast.ThematicBreak{})), "  ")

	want := "{\n  \"children\": [\n    {\n      \"type\": \"thematic_break\"\n    }\n  ],\n  \"type\": \"document\"\n}"
	assert.Equal(t, want, string(out))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "document", decoded["type"])
}
