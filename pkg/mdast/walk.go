package mdast

import "errors"

// SkipChildren may be returned by a Walk callback to leave the current
// node's descendants unvisited. Walk itself never returns it.
var SkipChildren = errors.New("skip children")

var errFound = errors.New("found")

// Walk visits root and its descendants in document order, parents before
// children. It stops at the first error returned by fn other than
// SkipChildren and returns that error.
func Walk(root *Node, fn func(n *Node) error) error {
	if root == nil {
		return nil
	}
	switch err := fn(root); {
	case errors.Is(err, SkipChildren):
		return nil
	case err != nil:
		return err
	}
	for c := root.FirstChild; c != nil; c = c.Next {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// FindAll collects every node under root, root included, for which match
// reports true, in document order.
func FindAll(root *Node, match func(n *Node) bool) []*Node {
	var nodes []*Node
	_ = Walk(root, func(n *Node) error {
		if match(n) {
			nodes = append(nodes, n)
		}
		return nil
	})
	return nodes
}

// FindFirst returns the first node in document order for which match
// reports true, or nil.
func FindFirst(root *Node, match func(n *Node) bool) *Node {
	var hit *Node
	_ = Walk(root, func(n *Node) error {
		if !match(n) {
			return nil
		}
		hit = n
		return errFound
	})
	return hit
}

// FindByKind returns every node of kind k under root.
func FindByKind(root *Node, k NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind() == k })
}
