package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
// The set is closed: every kind has exactly one Value type in this package.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeFrontMatter
	NodeBlockQuote
	NodeList
	NodeItem
	NodeDescriptionList
	NodeDescriptionItem
	NodeDescriptionTerm
	NodeDescriptionDetails
	NodeCodeBlock
	NodeHTMLBlock
	NodeParagraph
	NodeHeading
	NodeThematicBreak
	NodeFootnoteDefinition
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeTaskItem
	NodeMultilineBlockQuote
	NodeAlert
	NodeSubtext

	// Inline-level nodes.
	NodeText
	NodeSoftBreak
	NodeLineBreak
	NodeCode
	NodeHTMLInline
	NodeRaw
	NodeEmph
	NodeStrong
	NodeStrikethrough
	NodeHighlight
	NodeSuperscript
	NodeLink
	NodeImage
	NodeFootnoteReference
	NodeShortCode
	NodeMath
	NodeEscaped
	NodeWikiLink
	NodeUnderline
	NodeSubscript
	NodeSpoileredText

	nodeKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [nodeKindCount]string{
	NodeDocument:            "Document",
	NodeFrontMatter:         "FrontMatter",
	NodeBlockQuote:          "BlockQuote",
	NodeList:                "List",
	NodeItem:                "Item",
	NodeDescriptionList:     "DescriptionList",
	NodeDescriptionItem:     "DescriptionItem",
	NodeDescriptionTerm:     "DescriptionTerm",
	NodeDescriptionDetails:  "DescriptionDetails",
	NodeCodeBlock:           "CodeBlock",
	NodeHTMLBlock:           "HTMLBlock",
	NodeParagraph:           "Paragraph",
	NodeHeading:             "Heading",
	NodeThematicBreak:       "ThematicBreak",
	NodeFootnoteDefinition:  "FootnoteDefinition",
	NodeTable:               "Table",
	NodeTableRow:            "TableRow",
	NodeTableCell:           "TableCell",
	NodeTaskItem:            "TaskItem",
	NodeMultilineBlockQuote: "MultilineBlockQuote",
	NodeAlert:               "Alert",
	NodeSubtext:             "Subtext",
	NodeText:                "Text",
	NodeSoftBreak:           "SoftBreak",
	NodeLineBreak:           "LineBreak",
	NodeCode:                "Code",
	NodeHTMLInline:          "HTMLInline",
	NodeRaw:                 "Raw",
	NodeEmph:                "Emph",
	NodeStrong:              "Strong",
	NodeStrikethrough:       "Strikethrough",
	NodeHighlight:           "Highlight",
	NodeSuperscript:         "Superscript",
	NodeLink:                "Link",
	NodeImage:               "Image",
	NodeFootnoteReference:   "FootnoteReference",
	NodeShortCode:           "ShortCode",
	NodeMath:                "Math",
	NodeEscaped:             "Escaped",
	NodeWikiLink:            "WikiLink",
	NodeUnderline:           "Underline",
	NodeSubscript:           "Subscript",
	NodeSpoileredText:       "SpoileredText",
}

// String returns the kind name, e.g. "CodeBlock".
func (k NodeKind) String() string {
	if k < nodeKindCount {
		return kindNames[k]
	}
	return "NodeKind(invalid)"
}

// Kinds returns every node kind in declaration order.
func Kinds() []NodeKind {
	kinds := make([]NodeKind, 0, nodeKindCount)
	for k := range nodeKindCount {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsBlock reports whether nodes of this kind are block-level.
func (k NodeKind) IsBlock() bool {
	return k < NodeText
}

// IsInline reports whether nodes of this kind are inline-level.
func (k NodeKind) IsInline() bool {
	return k >= NodeText && k < nodeKindCount
}
