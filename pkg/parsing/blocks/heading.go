package blocks

import (
	"strings"

	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// headingRule recognizes a line-leading run of "+" characters as a
// heading (spec.md §8 scenario 2: "+ Top" / "++ Sub" / "+ Top2"), builds
// a Heading container at that run's length, and records it on the TOC
// accumulator at depth level-1 so BuildDepthList/BuildTOCElements
// (pkg/parsing/depth.go) have entries to promote (spec.md §4.5).
//
// Grounded on the teacher's SectionNode/Level handling in
// pkg/parser/parse.go, generalized from RST's underline-based heading
// detection to wikitext's leading-marker form.
func headingRule(table *parsing.RuleTable) *parsing.Rule {
	return &parsing.Rule{
		Name: "block:heading",
		Parse: func(p *parsing.Parser) parsing.ParseResult[tree.Elements] {
			marker, warn := p.Expect(token.HeadingMarker)
			if warn != nil {
				return parsing.Err[tree.Elements](*warn)
			}
			level := len(marker.Slice)
			if level > 6 {
				level = 6
			}

			var children []tree.Element
			var exceptions []parsing.ParseException
			var title strings.Builder
			for {
				cur := p.Peek()
				if cur == nil || cur.Kind == token.BlankLine {
					break
				}
				if cur.Kind == token.Newline {
					p.Step()
					break
				}
				result := parsing.Dispatch(p, table, parsing.DefaultTextRule)
				succ, ok := result.Unwrap()
				if !ok {
					w, _ := result.UnwrapErr()
					return parsing.Err[tree.Elements](w)
				}
				elems := succ.Item.Slice()
				children = append(children, elems...)
				exceptions = append(exceptions, succ.Exceptions...)
				for _, el := range elems {
					if t, ok := el.(*tree.Text); ok {
						title.WriteString(t.Slice)
					}
				}
			}

			children = trimLeadingWhitespaceText(children)
			p.PushTOC(level-1, strings.TrimSpace(title.String()))

			container := &tree.Container{
				Kind:     tree.ContainerHeading,
				Level:    level,
				Children: children,
				Attrs:    tree.NewAttributeMap(),
			}
			return parsing.Ok(tree.OneElement(container), exceptions, false)
		},
	}
}

// trimLeadingWhitespaceText drops a single leading Text element that is
// pure whitespace, the way a heading's "+ Title" separates its marker
// from its title with a plain Whitespace token that DefaultTextRule
// turns into a literal Text element.
func trimLeadingWhitespaceText(children []tree.Element) []tree.Element {
	if len(children) == 0 {
		return children
	}
	if t, ok := children[0].(*tree.Text); ok && strings.TrimSpace(t.Slice) == "" {
		return children[1:]
	}
	return children
}
