package astjson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdconv/pkg/mdast"
)

// Walk converts the tree rooted at node into its JSON object form.
// Children are visited in document order.
func Walk(node *mdast.Node) Object {
	tag, attrs := Encode(node.Value)

	obj := make(Object, len(attrs)+2)
	obj[KeyType] = tag
	for k, v := range attrs {
		if k == KeyType || k == KeyChildren {
			panic(fmt.Sprintf("astjson: %s attribute %q collides with a reserved key", tag, k))
		}
		obj[k] = v
	}

	if node.HasChildren() {
		children := make([]Object, 0, node.ChildCount())
		for child := node.FirstChild; child != nil; child = child.Next {
			children = append(children, Walk(child))
		}
		obj[KeyChildren] = children
	}

	return obj
}

// Marshal returns the compact JSON text of the tree rooted at node.
// Object keys are sorted, so equal trees give identical bytes. HTML
// characters in strings are not escaped.
func Marshal(node *mdast.Node) []byte {
	return marshal(node, "")
}

// MarshalIndent is Marshal with each level indented by indent.
func MarshalIndent(node *mdast.Node, indent string) []byte {
	return marshal(node, indent)
}

func marshal(node *mdast.Node, indent string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(Walk(node)); err != nil {
		panic(fmt.Sprintf("astjson: marshal tree: %v", err))
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
