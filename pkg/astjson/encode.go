// Package astjson converts an mdast tree into its canonical JSON form.
//
// Every node becomes an object holding a "type" tag, the attributes of its
// kind merged at the top level, and a "children" array when the node has
// children. The tag and attribute names are part of the external contract.
package astjson

import (
	"fmt"

	"github.com/yaklabco/mdconv/pkg/mdast"
)

// Object is one JSON object of the encoded tree.
type Object = map[string]any

// Reserved keys written by Walk. No attribute may use them.
const (
	KeyType     = "type"
	KeyChildren = "children"
)

// Encode returns the tag and attributes for a node value. Kinds without
// attributes return a nil Object.
//
// Encode panics on a value it does not know; the mdast value set is closed,
// so that only happens when a kind is added without an encoding.
func Encode(v mdast.Value) (string, Object) {
	switch v := v.(type) {
	case mdast.Document:
		return "document", nil
	case mdast.FrontMatter:
		return "front_matter", Object{"value": v.Value}
	case mdast.BlockQuote:
		return "block_quote", nil
	case mdast.List:
		return "list", Object{
			"list_type": v.ListType.String(),
			"start":     v.Start,
			"tight":     v.Tight,
			"delimiter": v.Delimiter.String(),
		}
	case mdast.Item:
		return "item", Object{
			"list_type": v.ListType.String(),
			"start":     v.Start,
			"tight":     v.Tight,
		}
	case mdast.DescriptionList:
		return "description_list", nil
	case mdast.DescriptionItem:
		return "description_item", nil
	case mdast.DescriptionTerm:
		return "description_term", nil
	case mdast.DescriptionDetails:
		return "description_details", nil
	case mdast.CodeBlock:
		return "code_block", Object{
			"fenced":  v.Fenced,
			"info":    v.Info,
			"literal": v.Literal,
		}
	case mdast.HTMLBlock:
		return "html_block", Object{
			"block_type": v.BlockType,
			"literal":    v.Literal,
		}
	case mdast.Paragraph:
		return "paragraph", nil
	case mdast.Heading:
		return "heading", Object{"level": v.Level, "setext": v.Setext}
	case mdast.ThematicBreak:
		return "thematic_break", nil
	case mdast.FootnoteDefinition:
		return "footnote_definition", Object{"name": v.Name}
	case mdast.Table:
		alignments := make([]string, len(v.Alignments))
		for i, a := range v.Alignments {
			alignments[i] = a.String()
		}
		return "table", Object{
			"alignments":  alignments,
			"num_columns": v.NumColumns,
			"num_rows":    v.NumRows,
		}
	case mdast.TableRow:
		return "table_row", Object{"header": v.Header}
	case mdast.TableCell:
		return "table_cell", nil
	case mdast.TaskItem:
		return "task_item", Object{"symbol": taskSymbol(v.Symbol)}
	case mdast.MultilineBlockQuote:
		return "multiline_block_quote", nil
	case mdast.Alert:
		return "alert", Object{
			"alert_type": v.AlertType.String(),
			"title":      optionalString(v.Title),
		}
	case mdast.Subtext:
		return "subtext", nil

	case mdast.Text:
		return "text", Object{"value": v.Value}
	case mdast.SoftBreak:
		return "softbreak", nil
	case mdast.LineBreak:
		return "linebreak", nil
	case mdast.Code:
		return "code", Object{"literal": v.Literal}
	case mdast.HTMLInline:
		return "html_inline", Object{"value": v.Value}
	case mdast.Raw:
		return "raw", Object{"value": v.Value}
	case mdast.Emph:
		return "emph", nil
	case mdast.Strong:
		return "strong", nil
	case mdast.Strikethrough:
		return "strikethrough", nil
	case mdast.Highlight:
		return "highlight", nil
	case mdast.Superscript:
		return "superscript", nil
	case mdast.Link:
		return "link", Object{"url": v.URL, "title": v.Title}
	case mdast.Image:
		return "image", Object{"url": v.URL, "title": v.Title}
	case mdast.FootnoteReference:
		return "footnote_reference", Object{
			"name":    v.Name,
			"ref_num": v.RefNum,
			"ix":      v.Index,
		}
	case mdast.ShortCode:
		return "shortcode", Object{"code": v.Code, "emoji": v.Emoji}
	case mdast.Math:
		return "math", Object{
			"dollar_math":  v.DollarMath,
			"display_math": v.DisplayMath,
			"literal":      v.Literal,
		}
	case mdast.Escaped:
		return "escaped", nil
	case mdast.WikiLink:
		return "wikilink", Object{"url": v.URL}
	case mdast.Underline:
		return "underline", nil
	case mdast.Subscript:
		return "subscript", nil
	case mdast.SpoileredText:
		return "spoilered_text", nil
	default:
		panic(fmt.Sprintf("astjson: no encoding for node value %T", v))
	}
}

// taskSymbol returns nil for an unchecked task and the marker otherwise.
func taskSymbol(r rune) any {
	if r == 0 {
		return nil
	}
	return string(r)
}

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
