package blocks

import (
	"strings"

	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// Image resolves its source through the host's image-link callback at
// render time; parsing only records the raw source, link, and alignment
// (spec.md §4.7, scenario 5 — resolution itself is a renderer concern).
var Image = &parsing.BlockRule{
	Name:           "image",
	AcceptsPartial: parsing.PartialHead,
	ParseFn: func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		source := strings.TrimSpace(block.HeadText)
		rest := ""
		if eq := strings.IndexByte(source, ' '); eq >= 0 {
			source, rest = source[:eq], source[eq+1:]
		}
		if source == "" {
			w := p.MakeWarn(parsing.WarnBlockMissingArguments)
			return parsing.Err[tree.Elements](w)
		}
		argBlock := block
		argBlock.HeadText = rest
		attrs, warn := parsing.GetHeadMap(p, argBlock, []string{"align", "link", "alt", "source"})
		if warn != nil {
			// Key=value parsing failed; still allow a bare source.
			attrs = tree.NewAttributeMap()
		}

		img := &tree.Image{Source: source, Attrs: attrs}
		if align, ok := attrs.Get("align"); ok {
			img.Alignment = alignmentFromString(align)
		}
		if link, ok := attrs.Get("link"); ok {
			img.Link = &tree.Link{Type: tree.LinkTypeURL, Target: link}
		}
		return parsing.Ok(tree.OneElement(img), nil, false)
	},
}

// alignmentFromString maps the image block's `align=` value to the
// Alignment/Float pair the HTML renderer's class table consumes (spec.md
// §4.7).
func alignmentFromString(align string) *tree.ImageAlignment {
	switch align {
	case "left":
		return &tree.ImageAlignment{Align: tree.AlignLeft, Float: true}
	case "right":
		return &tree.ImageAlignment{Align: tree.AlignRight, Float: true}
	case "lalign":
		return &tree.ImageAlignment{Align: tree.AlignLeft, Float: false}
	case "ralign":
		return &tree.ImageAlignment{Align: tree.AlignRight, Float: false}
	case "center":
		return &tree.ImageAlignment{Align: tree.AlignCenter, Float: false}
	default:
		return &tree.ImageAlignment{Align: tree.AlignNone, Float: false}
	}
}

// closesBlock reports whether cur is the `[[/name]]` end tag for name.
func closesBlock(cur *token.Item, name string) bool {
	return cur != nil && cur.Kind == token.BlockEnd && cur.Slice == name
}

// pageRefFromTarget splits an include/link target of the form
// "site:page" into a data.PageRef; a target with no colon is a same-site
// page reference.
func pageRefFromTarget(target string) data.PageRef {
	if i := strings.IndexByte(target, ':'); i >= 0 {
		site := target[:i]
		return data.PageRef{Site: &site, Page: target[i+1:]}
	}
	return data.PageRef{Page: target}
}
