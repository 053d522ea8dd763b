package mdast

// Value is the kind-specific payload of a Node.
// The interface is sealed; the concrete types below are the only variants.
//
//sumtype:decl
type Value interface {
	Kind() NodeKind
	sealed()
}

// ListType distinguishes bullet lists from ordered lists.
type ListType uint8

const (
	ListBullet ListType = iota
	ListOrdered
)

func (t ListType) String() string {
	if t == ListOrdered {
		return "ordered"
	}
	return "bullet"
}

// ListDelimType is the character following an ordered list number.
type ListDelimType uint8

const (
	DelimPeriod ListDelimType = iota
	DelimParen
)

func (d ListDelimType) String() string {
	if d == DelimParen {
		return "paren"
	}
	return "period"
}

// Alignment is the alignment of a table column.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignNone:
		return "none"
	default:
		return "none"
	}
}

// AlertType is the variant of a GitHub-style alert.
type AlertType uint8

const (
	AlertNote AlertType = iota
	AlertTip
	AlertImportant
	AlertWarning
	AlertCaution
)

func (a AlertType) String() string {
	switch a {
	case AlertTip:
		return "tip"
	case AlertImportant:
		return "important"
	case AlertWarning:
		return "warning"
	case AlertCaution:
		return "caution"
	case AlertNote:
		return "note"
	default:
		return "note"
	}
}

// ListAttrs holds the attributes shared by lists and their items.
type ListAttrs struct {
	ListType  ListType
	Start     int
	Tight     bool
	Delimiter ListDelimType
}

type (
	Document    struct{}
	FrontMatter struct{ Value string }
	BlockQuote  struct{}
	List        struct{ ListAttrs }
	Item        struct{ ListAttrs }

	DescriptionList    struct{}
	DescriptionItem    struct{}
	DescriptionTerm    struct{}
	DescriptionDetails struct{}

	CodeBlock struct {
		Fenced  bool
		Info    string
		Literal string
	}

	HTMLBlock struct {
		BlockType int
		Literal   string
	}

	Paragraph struct{}

	Heading struct {
		Level  int
		Setext bool
	}

	ThematicBreak      struct{}
	FootnoteDefinition struct{ Name string }

	Table struct {
		Alignments []Alignment
		NumColumns int
		NumRows    int
	}

	TableRow  struct{ Header bool }
	TableCell struct{}

	// TaskItem is a list item that starts with a task marker.
	// Symbol is the character between the brackets, or 0 when unchecked.
	TaskItem struct{ Symbol rune }

	MultilineBlockQuote struct{}

	// Alert is a GitHub-style alert block. Title is empty unless the
	// source gives a custom title.
	Alert struct {
		AlertType AlertType
		Title     string
	}

	Subtext struct{}
)

type (
	Text       struct{ Value string }
	SoftBreak  struct{}
	LineBreak  struct{}
	Code       struct{ Literal string }
	HTMLInline struct{ Value string }

	// Raw carries content the engine produced but the model has no kind for.
	Raw struct{ Value string }

	Emph          struct{}
	Strong        struct{}
	Strikethrough struct{}
	Highlight     struct{}
	Superscript   struct{}

	Link struct {
		URL   string
		Title string
	}

	Image struct {
		URL   string
		Title string
	}

	// FootnoteReference points at a footnote definition. RefNum counts the
	// references to the same footnote, starting at 1; Index is the
	// footnote's number in the rendered list.
	FootnoteReference struct {
		Name   string
		RefNum int
		Index  int
	}

	ShortCode struct {
		Code  string
		Emoji string
	}

	Math struct {
		DollarMath  bool
		DisplayMath bool
		Literal     string
	}

	Escaped       struct{}
	WikiLink      struct{ URL string }
	Underline     struct{}
	Subscript     struct{}
	SpoileredText struct{}
)

func (Document) Kind() NodeKind            { return NodeDocument }
func (FrontMatter) Kind() NodeKind         { return NodeFrontMatter }
func (BlockQuote) Kind() NodeKind          { return NodeBlockQuote }
func (List) Kind() NodeKind                { return NodeList }
func (Item) Kind() NodeKind                { return NodeItem }
func (DescriptionList) Kind() NodeKind     { return NodeDescriptionList }
func (DescriptionItem) Kind() NodeKind     { return NodeDescriptionItem }
func (DescriptionTerm) Kind() NodeKind     { return NodeDescriptionTerm }
func (DescriptionDetails) Kind() NodeKind  { return NodeDescriptionDetails }
func (CodeBlock) Kind() NodeKind           { return NodeCodeBlock }
func (HTMLBlock) Kind() NodeKind           { return NodeHTMLBlock }
func (Paragraph) Kind() NodeKind           { return NodeParagraph }
func (Heading) Kind() NodeKind             { return NodeHeading }
func (ThematicBreak) Kind() NodeKind       { return NodeThematicBreak }
func (FootnoteDefinition) Kind() NodeKind  { return NodeFootnoteDefinition }
func (Table) Kind() NodeKind               { return NodeTable }
func (TableRow) Kind() NodeKind            { return NodeTableRow }
func (TableCell) Kind() NodeKind           { return NodeTableCell }
func (TaskItem) Kind() NodeKind            { return NodeTaskItem }
func (MultilineBlockQuote) Kind() NodeKind { return NodeMultilineBlockQuote }
func (Alert) Kind() NodeKind               { return NodeAlert }
func (Subtext) Kind() NodeKind             { return NodeSubtext }
func (Text) Kind() NodeKind                { return NodeText }
func (SoftBreak) Kind() NodeKind           { return NodeSoftBreak }
func (LineBreak) Kind() NodeKind           { return NodeLineBreak }
func (Code) Kind() NodeKind                { return NodeCode }
func (HTMLInline) Kind() NodeKind          { return NodeHTMLInline }
func (Raw) Kind() NodeKind                 { return NodeRaw }
func (Emph) Kind() NodeKind                { return NodeEmph }
func (Strong) Kind() NodeKind              { return NodeStrong }
func (Strikethrough) Kind() NodeKind       { return NodeStrikethrough }
func (Highlight) Kind() NodeKind           { return NodeHighlight }
func (Superscript) Kind() NodeKind         { return NodeSuperscript }
func (Link) Kind() NodeKind                { return NodeLink }
func (Image) Kind() NodeKind               { return NodeImage }
func (FootnoteReference) Kind() NodeKind   { return NodeFootnoteReference }
func (ShortCode) Kind() NodeKind           { return NodeShortCode }
func (Math) Kind() NodeKind                { return NodeMath }
func (Escaped) Kind() NodeKind             { return NodeEscaped }
func (WikiLink) Kind() NodeKind            { return NodeWikiLink }
func (Underline) Kind() NodeKind           { return NodeUnderline }
func (Subscript) Kind() NodeKind           { return NodeSubscript }
func (SpoileredText) Kind() NodeKind       { return NodeSpoileredText }

func (Document) sealed()            {}
func (FrontMatter) sealed()         {}
func (BlockQuote) sealed()          {}
func (List) sealed()                {}
func (Item) sealed()                {}
func (DescriptionList) sealed()     {}
func (DescriptionItem) sealed()     {}
func (DescriptionTerm) sealed()     {}
func (DescriptionDetails) sealed()  {}
func (CodeBlock) sealed()           {}
func (HTMLBlock) sealed()           {}
func (Paragraph) sealed()           {}
func (Heading) sealed()             {}
func (ThematicBreak) sealed()       {}
func (FootnoteDefinition) sealed()  {}
func (Table) sealed()               {}
func (TableRow) sealed()            {}
func (TableCell) sealed()           {}
func (TaskItem) sealed()            {}
func (MultilineBlockQuote) sealed() {}
func (Alert) sealed()               {}
func (Subtext) sealed()             {}
func (Text) sealed()                {}
func (SoftBreak) sealed()           {}
func (LineBreak) sealed()           {}
func (Code) sealed()                {}
func (HTMLInline) sealed()          {}
func (Raw) sealed()                 {}
func (Emph) sealed()                {}
func (Strong) sealed()              {}
func (Strikethrough) sealed()       {}
func (Highlight) sealed()           {}
func (Superscript) sealed()         {}
func (Link) sealed()                {}
func (Image) sealed()               {}
func (FootnoteReference) sealed()   {}
func (ShortCode) sealed()           {}
func (Math) sealed()                {}
func (Escaped) sealed()             {}
func (WikiLink) sealed()            {}
func (Underline) sealed()           {}
func (Subscript) sealed()           {}
func (SpoileredText) sealed()       {}
