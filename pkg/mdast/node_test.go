package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdconv/pkg/mdast"
)

func TestNewNode(t *testing.T) {
	t.Parallel()

	node := mdast.NewNode(mdast.Heading{Level: 2, Setext: true})

	assert.Equal(t, mdast.NodeHeading, node.Kind())
	assert.Nil(t, node.Parent)
	assert.Nil(t, node.FirstChild)
	assert.False(t, node.HasChildren())

	heading, ok := node.Value.(mdast.Heading)
	require.True(t, ok)
	assert.Equal(t, 2, heading.Level)
	assert.True(t, heading.Setext)
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewDocument()
	child1 := mdast.NewNode(mdast.Paragraph{})
	child2 := mdast.NewNode(mdast.ThematicBreak{})

	mdast.AppendChild(parent, child1)
	mdast.AppendChild(parent, child2)

	assert.Same(t, child1, parent.FirstChild)
	assert.Same(t, child2, parent.LastChild)
	assert.Same(t, child2, child1.Next)
	assert.Same(t, child1, child2.Prev)
	assert.Same(t, parent, child2.Parent)
	assert.Equal(t, 2, parent.ChildCount())
	assert.Equal(t, []*mdast.Node{child1, child2}, parent.Children())
}

func TestAppendChildReparents(t *testing.T) {
	t.Parallel()

	first := mdast.NewNode(mdast.Paragraph{})
	second := mdast.NewNode(mdast.Paragraph{})
	text := mdast.NewNode(mdast.Text{Value: "moved"})

	mdast.AppendChild(first, text)
	mdast.AppendChild(second, text)

	assert.False(t, first.HasChildren())
	assert.Same(t, second, text.Parent)
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewDocument()
	a := mdast.NewNode(mdast.Paragraph{})
	b := mdast.NewNode(mdast.Paragraph{})
	c := mdast.NewNode(mdast.Paragraph{})
	mdast.AppendChild(parent, a)
	mdast.AppendChild(parent, b)
	mdast.AppendChild(parent, c)

	mdast.RemoveChild(parent, b)

	assert.Equal(t, []*mdast.Node{a, c}, parent.Children())
	assert.Same(t, c, a.Next)
	assert.Same(t, a, c.Prev)
	assert.Nil(t, b.Parent)

	// Removing a node from a parent it does not belong to is a no-op.
	mdast.RemoveChild(parent, b)
	assert.Equal(t, 2, parent.ChildCount())
}

func TestNodeKindString(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, kind := range mdast.Kinds() {
		name := kind.String()
		assert.NotEmpty(t, name, "kind %d has no name", kind)
		assert.False(t, seen[name], "duplicate kind name %q", name)
		seen[name] = true
	}

	assert.Equal(t, "CodeBlock", mdast.NodeCodeBlock.String())
	assert.Equal(t, "NodeKind(invalid)", mdast.NodeKind(9999).String())
}

func TestKindClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind   mdast.NodeKind
		block  bool
		inline bool
	}{
		{mdast.NodeDocument, true, false},
		{mdast.NodeTaskItem, true, false},
		{mdast.NodeAlert, true, false},
		{mdast.NodeText, false, true},
		{mdast.NodeSpoileredText, false, true},
		{mdast.NodeFootnoteReference, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.block, tt.kind.IsBlock())
			assert.Equal(t, tt.inline, tt.kind.IsInline())
		})
	}
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bullet", mdast.ListBullet.String())
	assert.Equal(t, "ordered", mdast.ListOrdered.String())
	assert.Equal(t, "period", mdast.DelimPeriod.String())
	assert.Equal(t, "paren", mdast.DelimParen.String())

	assert.Equal(t, []string{"none", "left", "center", "right"}, []string{
		mdast.AlignNone.String(), mdast.AlignLeft.String(),
		mdast.AlignCenter.String(), mdast.AlignRight.String(),
	})

	assert.Equal(t, []string{"note", "tip", "important", "warning", "caution"}, []string{
		mdast.AlertNote.String(), mdast.AlertTip.String(), mdast.AlertImportant.String(),
		mdast.AlertWarning.String(), mdast.AlertCaution.String(),
	})
}
