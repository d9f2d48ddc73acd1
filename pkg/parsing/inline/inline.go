// Package inline holds the concrete inline-rule implementations: bold,
// italic, underline, strikethrough, monospace, bracketed links, and
// horizontal rules. Each delimited run pairs an open-delimiter token kind
// with a matching close-delimiter kind, dispatching the tokens between
// them one at a time until the close delimiter. Manual line breaks are
// not a rule here; GatherParagraphs handles them.
//
// Grounded on the teacher's inlineEmphasis/inlineStrong/inlineLiteral
// family (pkg/parser/parse.go): symmetric open/close token kinds handled
// by near-identical parse methods differing only in which NodeType/
// ContainerKind they build.
package inline

import (
	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

type delimitedRule struct {
	openKind  token.Kind
	closeKind token.Kind
	kind      tree.ContainerKind
	name      string
}

func (d delimitedRule) rule(table *parsing.RuleTable) *parsing.Rule {
	return &parsing.Rule{
		Name: d.name,
		Parse: func(p *parsing.Parser) parsing.ParseResult[tree.Elements] {
			if _, warn := p.Expect(d.openKind); warn != nil {
				return parsing.Err[tree.Elements](*warn)
			}
			var children []tree.Element
			var exceptions []parsing.ParseException
			for {
				if p.AtEnd() {
					w := p.MakeWarn(parsing.WarnBlockExpectedEnd)
					return parsing.Err[tree.Elements](w)
				}
				cur := p.Peek()
				if cur.Kind == d.closeKind {
					p.Step()
					break
				}
				result := parsing.Dispatch(p, table, parsing.DefaultTextRule)
				succ, ok := result.Unwrap()
				if !ok {
					w, _ := result.UnwrapErr()
					return parsing.Err[tree.Elements](w)
				}
				children = append(children, succ.Item.Slice()...)
				exceptions = append(exceptions, succ.Exceptions...)
			}
			container := &tree.Container{Kind: d.kind, Children: children, Attrs: tree.NewAttributeMap()}
			return parsing.Ok(tree.OneElement(container), exceptions, true)
		},
	}
}

// RegisterAll wires the inline rules into table. Delimited runs are
// registered before the HorizontalRule and Link rules so priority order
// matches the teacher's declaration-order convention.
func RegisterAll(table *parsing.RuleTable) {
	delimited := []delimitedRule{
		{token.InlineBoldOpen, token.InlineBoldClose, tree.ContainerBold, "inline:bold"},
		{token.InlineItalicOpen, token.InlineItalicClose, tree.ContainerItalic, "inline:italic"},
		{token.InlineUnderlineOpen, token.InlineUnderlineClose, tree.ContainerUnderline, "inline:underline"},
		{token.InlineStrikethroughOpen, token.InlineStrikethroughClose, tree.ContainerStrikethrough, "inline:strikethrough"},
		{token.InlineMonospaceOpen, token.InlineMonospaceClose, tree.ContainerMonospace, "inline:monospace"},
	}
	for _, d := range delimited {
		table.Register(d.rule(table), d.openKind)
	}

	table.Register(&parsing.Rule{
		Name: "inline:horizontal-rule",
		Parse: func(p *parsing.Parser) parsing.ParseResult[tree.Elements] {
			if _, warn := p.Expect(token.HorizontalRule); warn != nil {
				return parsing.Err[tree.Elements](*warn)
			}
			return parsing.Ok(tree.OneElement(&tree.HorizontalRule{}), nil, false)
		},
	}, token.HorizontalRule)

	table.Register(Link, token.OpenBracket)
}
