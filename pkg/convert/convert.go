// Package convert is the public entry point for turning Markdown into HTML
// or into a JSON syntax tree.
//
// A Converter holds one options.Options value and uses it for every output,
// so the HTML and the tree produced for the same text always agree.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/mdconv/pkg/astjson"
	"github.com/yaklabco/mdconv/pkg/mdast"
	"github.com/yaklabco/mdconv/pkg/options"
	"github.com/yaklabco/mdconv/pkg/parser/goldmark"
)

// ErrInvalidUTF8 is returned when the input text is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Converter converts Markdown with a fixed configuration.
// It is immutable and safe for concurrent use.
type Converter struct {
	opts   options.Options
	parser *goldmark.Parser
}

// New returns a Converter for opts. It fails if opts does not validate.
func New(opts options.Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		opts:   opts,
		parser: goldmark.New(opts),
	}, nil
}

// Options returns the configuration the Converter was created with.
func (c *Converter) Options() options.Options {
	return c.opts
}

// HTML renders text to HTML. The engine output is returned unmodified.
func (c *Converter) HTML(ctx context.Context, text string) (string, error) {
	if err := checkUTF8(text); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.parser.Render(ctx, &buf, []byte(text)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// AST parses text into a document tree.
func (c *Converter) AST(ctx context.Context, text string) (*mdast.Node, error) {
	if err := checkUTF8(text); err != nil {
		return nil, err
	}
	return c.parser.Parse(ctx, []byte(text))
}

// ASTJSON parses text and returns the tree as compact JSON.
func (c *Converter) ASTJSON(ctx context.Context, text string) (string, error) {
	doc, err := c.AST(ctx, text)
	if err != nil {
		return "", err
	}
	return string(astjson.Marshal(doc)), nil
}

// Metadata returns the YAML front matter of text as a map. Text without
// front matter yields an empty map.
func (c *Converter) Metadata(ctx context.Context, text string) (map[string]any, error) {
	if err := checkUTF8(text); err != nil {
		return nil, err
	}
	return c.parser.Metadata(ctx, []byte(text))
}

// MarkdownToHTML renders text with options.Default.
func MarkdownToHTML(text string) (string, error) {
	c, err := New(options.Default())
	if err != nil {
		return "", err
	}
	return c.HTML(context.Background(), text)
}

// MarkdownToAST returns the JSON tree of text parsed with options.Default.
// The top-level object is always of type "document".
func MarkdownToAST(text string) (string, error) {
	c, err := New(options.Default())
	if err != nil {
		return "", err
	}
	return c.ASTJSON(context.Background(), text)
}

func checkUTF8(text string) error {
	if utf8.ValidString(text) {
		return nil
	}
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				return fmt.Errorf("byte offset %d: %w", i, ErrInvalidUTF8)
			}
		}
	}
	return ErrInvalidUTF8
}
