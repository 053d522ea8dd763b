// Package options defines the parser and renderer toggles shared by the HTML
// and AST conversion paths.
// Options is a plain value type: copy it, change it, hand it to a converter.
package options

// DefaultInfoString is the info string given to fenced code blocks that declare none.
const DefaultInfoString = "text"

// Extension toggles syntax extensions beyond CommonMark.
type Extension struct {
	Strikethrough        bool `yaml:"strikethrough"`
	TagFilter            bool `yaml:"tagfilter"`
	Table                bool `yaml:"table"`
	Autolink             bool `yaml:"autolink"`
	Tasklist             bool `yaml:"tasklist"`
	Superscript          bool `yaml:"superscript"`
	Footnotes            bool `yaml:"footnotes"`
	InlineFootnotes      bool `yaml:"inline_footnotes"`
	MultilineBlockQuotes bool `yaml:"multiline_block_quotes"`
	MathCode             bool `yaml:"math_code"`
	MathDollars          bool `yaml:"math_dollars"`
	Underline            bool `yaml:"underline"`
	Subscript            bool `yaml:"subscript"`
	Spoiler              bool `yaml:"spoiler"`
	Greentext            bool `yaml:"greentext"`
	Alerts               bool `yaml:"alerts"`
	CJKFriendlyEmphasis  bool `yaml:"cjk_friendly_emphasis"`
	Subtext              bool `yaml:"subtext"`
	Highlight            bool `yaml:"highlight"`
	Shortcodes           bool `yaml:"shortcodes"`
	DescriptionLists     bool `yaml:"description_lists"`
	WikiLinks            bool `yaml:"wikilinks"`

	// FrontMatterDelimiter enables a front matter block fenced by this
	// delimiter at the very start of the document. Empty disables it.
	FrontMatterDelimiter string `yaml:"front_matter_delimiter"`
}

// Parse holds parser behavior toggles.
type Parse struct {
	// RelaxedTasklistMatching accepts any single character between the
	// brackets of a task list marker, not only ' ', 'x' and 'X'.
	RelaxedTasklistMatching bool `yaml:"relaxed_tasklist_matching"`

	// RelaxedAutolinks linkifies URLs with any scheme and hosts without a TLD.
	RelaxedAutolinks bool `yaml:"relaxed_autolinks"`

	// DefaultInfoString is used for fenced code blocks without an info string.
	DefaultInfoString string `yaml:"default_info_string"`

	Smart bool `yaml:"smart"`

	// DetectLanguage guesses the info string of unlabeled fenced code blocks
	// from their content. It takes precedence over DefaultInfoString.
	DetectLanguage bool `yaml:"detect_language"`

	EscapedCharSpans bool `yaml:"escaped_char_spans"`
}

// Render holds HTML renderer toggles.
type Render struct {
	// HardBreaks renders soft line breaks as <br>.
	HardBreaks bool `yaml:"hardbreaks"`

	// FullInfoString keeps the info string words after the language as data-meta.
	FullInfoString bool `yaml:"full_info_string"`

	// GitHubPreLang emits <pre lang="x"> instead of a language-x class on <code>.
	GitHubPreLang bool `yaml:"github_pre_lang"`

	GFMQuirks bool `yaml:"gfm_quirks"`

	// Unsafe passes raw HTML through instead of replacing it with a comment.
	Unsafe bool `yaml:"unsafe"`

	TasklistClasses bool `yaml:"tasklist_classes"`

	// XHTML closes void elements with " />".
	XHTML bool `yaml:"xhtml"`
}

// Options is the complete parser and renderer configuration.
type Options struct {
	Extension Extension `yaml:"extension"`
	Parse     Parse     `yaml:"parse"`
	Render    Render    `yaml:"render"`
}

// Default returns the fixed configuration used by both conversion paths.
func Default() Options {
	return Options{
		Extension: Extension{
			Strikethrough:        true,
			TagFilter:            true,
			Table:                true,
			Autolink:             true,
			Tasklist:             true,
			Superscript:          true,
			Footnotes:            true,
			InlineFootnotes:      true,
			MultilineBlockQuotes: true,
			MathCode:             true,
			Underline:            true,
			Subscript:            true,
			Spoiler:              true,
			Greentext:            true,
			Alerts:               true,
			CJKFriendlyEmphasis:  true,
			Subtext:              true,
			Highlight:            true,
			Shortcodes:           true,
		},
		Parse: Parse{
			RelaxedTasklistMatching: true,
			RelaxedAutolinks:        true,
			DefaultInfoString:       DefaultInfoString,
		},
		Render: Render{
			HardBreaks:      true,
			FullInfoString:  true,
			GitHubPreLang:   true,
			GFMQuirks:       true,
			Unsafe:          true,
			TasklistClasses: true,
			XHTML:           true,
		},
	}
}
