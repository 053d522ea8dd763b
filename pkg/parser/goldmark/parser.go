// Package goldmark is the conversion engine. It configures a goldmark
// instance from options.Options, renders HTML with it, and maps its syntax
// tree into an mdast tree.
package goldmark

import (
	"context"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	meta "github.com/yuin/goldmark-meta"
	gext "github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdconv/pkg/extension"
	"github.com/yaklabco/mdconv/pkg/mdast"
	"github.com/yaklabco/mdconv/pkg/options"
)

// Parser converts Markdown with a fixed set of options.
// A Parser is safe for concurrent use.
type Parser struct {
	opts options.Options
	md   goldmark.Markdown
	meta goldmark.Markdown
	info extension.InfoResolver
}

// New creates a Parser configured by opts.
func New(opts options.Options) *Parser {
	return &Parser{
		opts: opts,
		md:   newGoldmarkInstance(opts),
		meta: goldmark.New(goldmark.WithExtensions(meta.Meta)),
		info: infoResolver(opts),
	}
}

// Options returns the options the Parser was created with.
func (p *Parser) Options() options.Options {
	return p.opts
}

// Parse converts Markdown source into a document tree.
//
// Returns nil and an error if the context is cancelled.
func (p *Parser) Parse(ctx context.Context, src []byte) (*mdast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	gmDoc := p.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return newMapper(src, p.info).mapDocument(gmDoc), nil
}

// Render writes the HTML rendering of src to w.
func (p *Parser) Render(ctx context.Context, w io.Writer, src []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render cancelled: %w", err)
	}
	if err := p.md.Convert(src, w); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

// Metadata decodes the YAML front matter of src. It returns an empty map
// when src has none.
func (p *Parser) Metadata(ctx context.Context, src []byte) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	pc := parser.NewContext()
	p.meta.Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	data, err := meta.TryGet(pc)
	if err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func infoResolver(opts options.Options) extension.InfoResolver {
	return extension.InfoResolver{
		Default: opts.Parse.DefaultInfoString,
		Detect:  opts.Parse.DetectLanguage,
	}
}

// newGoldmarkInstance creates a goldmark.Markdown configured by opts.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(opts options.Options) goldmark.Markdown {
	ext := opts.Extension

	p := parser.NewParser(
		parser.WithBlockParsers(blockParsers(opts)...),
		parser.WithInlineParsers(inlineParsers(opts)...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)

	extenders := []goldmark.Extender{
		extension.NewSpans(extension.SpanConfig{
			Strikethrough: ext.Strikethrough,
			Subscript:     ext.Subscript,
			Superscript:   ext.Superscript,
			Highlight:     ext.Highlight,
			Spoiler:       ext.Spoiler,
			CJKFriendly:   ext.CJKFriendlyEmphasis,
		}),
		extension.NewCodeBlocks(extension.CodeBlockConfig{
			InfoResolver:   infoResolver(opts),
			GitHubPreLang:  opts.Render.GitHubPreLang,
			FullInfoString: opts.Render.FullInfoString,
			MathCode:       ext.MathCode,
		}),
		extension.NewRawHTML(ext.TagFilter),
		extension.NewQuotes(extension.QuoteConfig{
			Alerts:    ext.Alerts,
			Multiline: ext.MultilineBlockQuotes,
			Greentext: ext.Greentext,
		}),
		extension.NewFrontMatter(ext.FrontMatterDelimiter),
	}

	if ext.Table {
		extenders = append(extenders, gext.Table)
	}
	if ext.Autolink {
		extenders = append(extenders, extension.NewAutolink(opts.Parse.RelaxedAutolinks))
	}
	if ext.Tasklist {
		extenders = append(extenders, extension.NewTasklist(extension.TasklistConfig{
			Relaxed: opts.Parse.RelaxedTasklistMatching,
			Classes: opts.Render.TasklistClasses,
		}))
	}
	if ext.Footnotes || ext.InlineFootnotes {
		extenders = append(extenders, gext.Footnote)
	}
	if ext.InlineFootnotes {
		extenders = append(extenders, extension.InlineFootnotes)
	}
	if ext.MathCode || ext.MathDollars {
		extenders = append(extenders, extension.NewMathExtension(ext.MathCode, ext.MathDollars))
	}
	if ext.Subtext {
		extenders = append(extenders, extension.SubtextExtension)
	}
	if ext.Shortcodes {
		extenders = append(extenders, emoji.New(emoji.WithRenderingMethod(emoji.Unicode)))
	}
	if ext.DescriptionLists {
		extenders = append(extenders, gext.DefinitionList)
	}
	if ext.WikiLinks {
		extenders = append(extenders, extension.WikiLinks)
	}
	if opts.Parse.Smart {
		extenders = append(extenders, gext.Typographer)
	}
	if opts.Parse.EscapedCharSpans {
		extenders = append(extenders, extension.EscapedChars)
	}

	var rendererOpts []renderer.Option
	if opts.Render.HardBreaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.Render.XHTML {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}
	if opts.Render.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithExtensions(extenders...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

// blockParsers returns goldmark's default block parsers with the block
// quote parser swapped for one that understands greentext.
func blockParsers(opts options.Options) []util.PrioritizedValue {
	parsers := parser.DefaultBlockParsers()
	defaultQuote := parser.NewBlockquoteParser()
	for i, v := range parsers {
		if v.Value == defaultQuote {
			parsers[i].Value = extension.NewBlockquoteParser(opts.Extension.Greentext)
		}
	}
	return parsers
}

// inlineParsers returns goldmark's default inline parsers with emphasis
// swapped for the underline and CJK aware parser.
func inlineParsers(opts options.Options) []util.PrioritizedValue {
	parsers := parser.DefaultInlineParsers()
	defaultEmphasis := parser.NewEmphasisParser()
	for i, v := range parsers {
		if v.Value == defaultEmphasis {
			parsers[i].Value = extension.NewEmphasisParser(
				opts.Extension.Underline,
				opts.Extension.CJKFriendlyEmphasis,
			)
		}
	}
	return parsers
}
