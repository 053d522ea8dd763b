package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdconv/internal/ui/pretty"
	"github.com/yaklabco/mdconv/pkg/mdast"
)

func sampleTree() *mdast.Node {
	doc := mdast.NewDocument()

	heading := mdast.NewNode(mdast.Heading{Level: 1})
	mdast.AppendChild(heading, mdast.NewNode(mdast.Text{Value: "Title"}))
	mdast.AppendChild(doc, heading)

	task := mdast.NewNode(mdast.TaskItem{})
	list := mdast.NewNode(mdast.List{ListAttrs: mdast.ListAttrs{Start: 1, Tight: true}})
	mdast.AppendChild(list, task)
	mdast.AppendChild(doc, list)

	mdast.AppendChild(doc, mdast.NewNode(mdast.Table{
		Alignments: []mdast.Alignment{mdast.AlignLeft, mdast.AlignRight},
		NumColumns: 2,
	}))
	return doc
}

func TestTreeFormatter_FormatTree(t *testing.T) {
	t.Parallel()

	out := pretty.NewTreeFormatter(pretty.NewStyles(false), 80).FormatTree(sampleTree())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.NotEmpty(t, lines)
	assert.Equal(t, "document", lines[0])
	assert.Contains(t, out, "heading level=1 setext=false")
	assert.Contains(t, out, `text value="Title"`)
	assert.Contains(t, out, "list delimiter=period list_type=bullet start=1 tight=true")
	assert.Contains(t, out, "task_item symbol=null")
	assert.Contains(t, out, "table alignments=[left right] num_columns=2 num_rows=0")

	// Heading comes before its text, which comes before the list.
	assert.Less(t, strings.Index(out, "heading"), strings.Index(out, "Title"))
	assert.Less(t, strings.Index(out, "Title"), strings.Index(out, "list "))
}

func TestTreeFormatter_TruncatesLongValues(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument()
	mdast.AppendChild(doc, mdast.NewNode(mdast.CodeBlock{Literal: strings.Repeat("x", 200)}))

	out := pretty.NewTreeFormatter(pretty.NewStyles(false), 40).FormatTree(doc)

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("x", 40))
}

func TestCollectStats(t *testing.T) {
	t.Parallel()

	stats := pretty.CollectStats(sampleTree())

	assert.Equal(t, 5, stats.Blocks)
	assert.Equal(t, 1, stats.Inlines)
	assert.Equal(t, 6, stats.Total())
	assert.Equal(t, 1, stats.ByKind[mdast.NodeTaskItem])
}

func TestStyles_FormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	stats := pretty.CollectStats(sampleTree())

	assert.Equal(t, "6 nodes (5 block, 1 inline)\n", styles.FormatSummaryOneLine(stats))

	out := styles.FormatSummary(stats)
	assert.Contains(t, out, "Summary\n")
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "TaskItem")
	assert.NotContains(t, out, "Paragraph")

	single := pretty.CollectStats(mdast.NewDocument())
	assert.Equal(t, "1 node (1 block, 0 inline)\n", styles.FormatSummaryOneLine(single))
}
