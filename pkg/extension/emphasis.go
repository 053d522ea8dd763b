package extension

import (
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type emphasisDelimiterProcessor struct {
	char      byte
	underline bool
}

func (p *emphasisDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == p.char
}

func (p *emphasisDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *emphasisDelimiterProcessor) OnMatch(consumes int) gast.Node {
	if p.underline && consumes == 2 {
		return NewSpan(KindUnderline)
	}
	return gast.NewEmphasis(consumes)
}

type emphasisParser struct {
	star       *emphasisDelimiterProcessor
	underscore *emphasisDelimiterProcessor
	cjk        bool
}

// NewEmphasisParser returns an InlineParser for '*' and '_' emphasis that
// replaces parser.NewEmphasisParser. With underline set, "__text__" becomes
// an underline span instead of strong emphasis. With cjk set, flanking
// accepts CJK characters next to punctuation.
func NewEmphasisParser(underline, cjk bool) parser.InlineParser {
	return &emphasisParser{
		star:       &emphasisDelimiterProcessor{char: '*'},
		underscore: &emphasisDelimiterProcessor{char: '_', underline: underline},
		cjk:        cjk,
	}
}

func (s *emphasisParser) Trigger() []byte {
	return []byte{'*', '_'}
}

func (s *emphasisParser) Parse(_ gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	if len(line) == 0 {
		return nil
	}
	processor := s.star
	if line[0] == '_' {
		processor = s.underscore
	}
	node := scanDelimiter(line, before, 1, processor, s.cjk)
	if node == nil {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}
