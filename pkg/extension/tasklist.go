package extension

import (
	"regexp"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

//nolint:gochecknoglobals // compiled once
var (
	strictTaskRegexp  = regexp.MustCompile(`^\[([ xX])\](?:\s+|$)`)
	relaxedTaskRegexp = regexp.MustCompile(`^\[([^\]\r\n])\](?:\s+|$)`)
)

// TasklistConfig configures the task list extension.
type TasklistConfig struct {
	// Relaxed accepts any single character between the brackets.
	Relaxed bool

	// Classes adds task-list CSS classes to items, lists and checkboxes.
	Classes bool
}

type taskCheckBoxParser struct {
	pattern *regexp.Regexp
}

func (s *taskCheckBoxParser) Trigger() []byte {
	return []byte{'['}
}

func (s *taskCheckBoxParser) Parse(parent gast.Node, block text.Reader, _ parser.Context) gast.Node {
	// Only the first thing in the first block of a list item is a marker.
	item := parent.Parent()
	if item == nil || item.FirstChild() != parent || parent.HasChildren() {
		return nil
	}
	if _, ok := item.(*gast.ListItem); !ok {
		return nil
	}
	line, _ := block.PeekLine()
	m := s.pattern.FindSubmatchIndex(line)
	if m == nil {
		return nil
	}
	symbol, _ := utf8.DecodeRune(line[m[2]:m[3]])
	block.Advance(m[1])
	return NewTaskCheckBox(symbol)
}

// taskListClassTransformer marks task list items and their lists with classes.
type taskListClassTransformer struct{}

func (t *taskListClassTransformer) Transform(doc *gast.Document, _ text.Reader, _ parser.Context) {
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if _, ok := n.(*TaskCheckBox); !ok {
			return gast.WalkContinue, nil
		}
		item := n.Parent().Parent()
		item.SetAttributeString("class", []byte("task-list-item"))
		if list := item.Parent(); list != nil {
			list.SetAttributeString("class", []byte("contains-task-list"))
		}
		return gast.WalkSkipChildren, nil
	})
}

// TaskCheckBoxHTMLRenderer renders TaskCheckBox nodes as disabled checkboxes.
type TaskCheckBoxHTMLRenderer struct {
	html.Config

	classes bool
}

// NewTaskCheckBoxHTMLRenderer returns a new TaskCheckBoxHTMLRenderer.
func NewTaskCheckBoxHTMLRenderer(classes bool, opts ...html.Option) renderer.NodeRenderer {
	r := &TaskCheckBoxHTMLRenderer{Config: html.NewConfig(), classes: classes}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *TaskCheckBoxHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTaskCheckBox, r.renderTaskCheckBox)
}

func (r *TaskCheckBoxHTMLRenderer) renderTaskCheckBox(
	w util.BufWriter, _ []byte, node gast.Node, entering bool,
) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*TaskCheckBox)

	_, _ = w.WriteString(`<input type="checkbox"`)
	if r.classes {
		_, _ = w.WriteString(` class="task-list-item-checkbox"`)
	}
	if n.IsChecked() {
		_, _ = w.WriteString(` checked=""`)
	}
	_, _ = w.WriteString(` disabled=""`)
	if r.XHTML {
		_, _ = w.WriteString(" /> ")
	} else {
		_, _ = w.WriteString("> ")
	}
	return gast.WalkContinue, nil
}

type tasklist struct {
	config TasklistConfig
}

// NewTasklist returns an extension for GFM task list items.
func NewTasklist(config TasklistConfig) goldmark.Extender {
	return &tasklist{config: config}
}

func (e *tasklist) Extend(m goldmark.Markdown) {
	pattern := strictTaskRegexp
	if e.config.Relaxed {
		pattern = relaxedTaskRegexp
	}
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&taskCheckBoxParser{pattern: pattern}, 0),
	))
	if e.config.Classes {
		m.Parser().AddOptions(parser.WithASTTransformers(
			util.Prioritized(&taskListClassTransformer{}, 500),
		))
	}
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewTaskCheckBoxHTMLRenderer(e.config.Classes), 500),
	))
}
