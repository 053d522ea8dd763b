package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdconv/pkg/mdast"
)

// TreeStats counts the nodes of a document tree.
type TreeStats struct {
	Blocks  int
	Inlines int
	ByKind  map[mdast.NodeKind]int
}

// Total returns the number of nodes counted.
func (s TreeStats) Total() int {
	return s.Blocks + s.Inlines
}

// CollectStats walks root and counts its nodes, root included.
func CollectStats(root *mdast.Node) TreeStats {
	stats := TreeStats{ByKind: make(map[mdast.NodeKind]int)}
	_ = mdast.Walk(root, func(n *mdast.Node) error {
		if n.IsBlock() {
			stats.Blocks++
		} else {
			stats.Inlines++
		}
		stats.ByKind[n.Kind()]++
		return nil
	})
	return stats
}

// FormatSummaryOneLine formats tree statistics as a single line.
// Example: "14 nodes (5 block, 9 inline)".
func (s *Styles) FormatSummaryOneLine(stats TreeStats) string {
	nodeWord := "nodes"
	if stats.Total() == 1 {
		nodeWord = "node"
	}
	return s.Success.Render(fmt.Sprintf("%d %s", stats.Total(), nodeWord)) +
		s.Dim.Render(fmt.Sprintf(" (%d block, %d inline)", stats.Blocks, stats.Inlines)) + "\n"
}

// FormatSummary formats per-kind counts in kind order.
func (s *Styles) FormatSummary(stats TreeStats) string {
	var b strings.Builder
	b.WriteString(s.SummaryTitle.Render("Summary") + "\n")

	for _, k := range mdast.Kinds() {
		if stats.ByKind[k] == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-22s %s\n", k.String(), s.Bold.Render(fmt.Sprint(stats.ByKind[k])))
	}

	b.WriteString(s.FormatSummaryOneLine(stats))
	return b.String()
}
