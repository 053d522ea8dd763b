package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdconv/pkg/mdast"
)

// sample returns the tree for
//
//	# Intro
//
//	plain *emph* **bold**
func sample() *mdast.Node {
	doc := mdast.NewDocument()

	h := mdast.NewNode(mdast.Heading{Level: 1})
	mdast.AppendChild(h, mdast.NewNode(mdast.Text{Value: "Intro"}))
	mdast.AppendChild(doc, h)

	p := mdast.NewNode(mdast.Paragraph{})
	mdast.AppendChild(p, mdast.NewNode(mdast.Text{Value: "plain "}))
	em := mdast.NewNode(mdast.Emph{})
	mdast.AppendChild(em, mdast.NewNode(mdast.Text{Value: "emph"}))
	mdast.AppendChild(p, em)
	mdast.AppendChild(p, mdast.NewNode(mdast.Text{Value: " "}))
	strong := mdast.NewNode(mdast.Strong{})
	mdast.AppendChild(strong, mdast.NewNode(mdast.Text{Value: "bold"}))
	mdast.AppendChild(p, strong)
	mdast.AppendChild(doc, p)

	return doc
}

func kindsOf(nodes []*mdast.Node) []mdast.NodeKind {
	out := make([]mdast.NodeKind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind()
	}
	return out
}

func TestWalk_Order(t *testing.T) {
	t.Parallel()

	var seen []*mdast.Node
	err := mdast.Walk(sample(), func(n *mdast.Node) error {
		seen = append(seen, n)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading, mdast.NodeText,
		mdast.NodeParagraph, mdast.NodeText,
		mdast.NodeEmph, mdast.NodeText,
		mdast.NodeText,
		mdast.NodeStrong, mdast.NodeText,
	}, kindsOf(seen))
}

func TestWalk_Nil(t *testing.T) {
	t.Parallel()

	called := false
	err := mdast.Walk(nil, func(*mdast.Node) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	var texts []string
	err := mdast.Walk(sample(), func(n *mdast.Node) error {
		switch v := n.Value.(type) {
		case mdast.Emph, mdast.Strong:
			return mdast.SkipChildren
		case mdast.Text:
			texts = append(texts, v.Value)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Intro", "plain ", " "}, texts)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	visited := 0
	err := mdast.Walk(sample(), func(n *mdast.Node) error {
		visited++
		if n.Kind() == mdast.NodeParagraph {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 4, visited)
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	inlines := mdast.FindAll(sample(), (*mdast.Node).IsInline)
	assert.Len(t, inlines, 7)

	none := mdast.FindAll(sample(), func(*mdast.Node) bool { return false })
	assert.Empty(t, none)
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	doc := sample()

	text := mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind() == mdast.NodeText })
	require.NotNil(t, text)
	assert.Equal(t, mdast.Text{Value: "Intro"}, text.Value)

	bold := mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind() == mdast.NodeStrong })
	require.NotNil(t, bold)
	assert.Same(t, doc.LastChild.LastChild, bold)

	assert.Nil(t, mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind() == mdast.NodeTable }))
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	doc := sample()

	assert.Len(t, mdast.FindByKind(doc, mdast.NodeText), 5)
	assert.Len(t, mdast.FindByKind(doc, mdast.NodeHeading), 1)
	assert.Equal(t, []*mdast.Node{doc}, mdast.FindByKind(doc, mdast.NodeDocument))
	assert.Empty(t, mdast.FindByKind(doc, mdast.NodeCodeBlock))
}
