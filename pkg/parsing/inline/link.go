package inline

import (
	"strings"

	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// linkURLSchemes are the prefixes that mark a link target as an external
// URL rather than a page or interwiki name (spec.md's `Link{type, target,
// label, anchor_target}`).
var linkURLSchemes = []string{"http://", "https://", "ftp://", "mailto:"}

// Link recognizes `[target]` and `[target|label]`, the bracket-delimited
// form that token.OpenBracket/CloseBracket/Pipe exist for — none of
// which any other registered rule consumes. Built the same way
// block.go's EntryRule accumulates a raw head string token-by-token
// between delimiters, generalized to a second, optional segment split on
// the first Pipe.
var Link = &parsing.Rule{
	Name: "inline:link",
	Parse: func(p *parsing.Parser) parsing.ParseResult[tree.Elements] {
		if _, warn := p.Expect(token.OpenBracket); warn != nil {
			return parsing.Err[tree.Elements](*warn)
		}

		var target, label strings.Builder
		cur := &target
		sawPipe := false
		for {
			item := p.Peek()
			if item == nil {
				w := p.MakeWarn(parsing.WarnBlockExpectedEnd)
				return parsing.Err[tree.Elements](w)
			}
			if item.Kind == token.CloseBracket {
				p.Step()
				break
			}
			if item.Kind == token.Pipe && !sawPipe {
				sawPipe = true
				cur = &label
				p.Step()
				continue
			}
			cur.WriteString(item.Slice)
			p.Step()
		}

		targetText := strings.TrimSpace(target.String())
		if targetText == "" {
			w := p.MakeWarn(parsing.WarnBlockMissingArguments)
			return parsing.Err[tree.Elements](w)
		}

		link := &tree.Link{Target: targetText, Label: strings.TrimSpace(label.String())}
		switch {
		case hasURLScheme(targetText):
			link.Type = tree.LinkTypeURL
		case strings.IndexByte(targetText, ':') >= 0:
			link.Type = tree.LinkTypeInterwiki
		default:
			link.Type = tree.LinkTypePage
			p.PushInternalLink(pageRefFromTarget(targetText))
		}

		return parsing.Ok(tree.OneElement(link), nil, true)
	},
}

func hasURLScheme(target string) bool {
	for _, scheme := range linkURLSchemes {
		if strings.HasPrefix(target, scheme) {
			return true
		}
	}
	return false
}

// pageRefFromTarget splits a "site:page" target into a data.PageRef; a
// target with no colon is a same-site reference. Mirrors
// blocks.pageRefFromTarget (pkg/parsing/blocks/image.go) — duplicated
// here since block rules and inline rules live in separate packages and
// this is the only thing either side needs from the other.
func pageRefFromTarget(target string) data.PageRef {
	if i := strings.IndexByte(target, ':'); i >= 0 {
		site := target[:i]
		return data.PageRef{Site: &site, Page: target[i+1:]}
	}
	return data.PageRef{Page: target}
}
