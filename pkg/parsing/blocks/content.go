package blocks

import (
	"strings"

	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/tree"
)

// Footnote gathers its body into the footnotes accumulator and leaves a
// FootnoteRef in its place (spec.md §4, scenario 4).
var Footnote = &parsing.BlockRule{
	Name:           "footnote",
	AcceptsPartial: parsing.PartialNone,
	ParseFn: func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		body, exceptions, _, warn := parsing.GetBodyElements(p, block.Name, false, table)
		if warn != nil {
			return parsing.Err[tree.Elements](*warn)
		}
		id := p.PushFootnote(body)
		return parsing.Ok(tree.OneElement(&tree.FootnoteRef{ID: id}), exceptions, true)
	},
}

// FootnoteBlockRule marks an explicit footnote-list placement, with an
// optional title and hide flag (spec.md §3's FootnoteBlock element).
var FootnoteBlockRule = &parsing.BlockRule{
	Name:           "footnoteblock",
	AcceptsPartial: parsing.PartialHead,
	ParseFn: func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		p.MarkHasFootnoteBlock()
		var title *string
		if t := strings.TrimSpace(block.HeadText); t != "" {
			title = &t
		}
		hide := strings.Contains(block.HeadText, "hide")
		return parsing.Ok(tree.OneElement(&tree.FootnoteBlock{Title: title, Hide: hide}), nil, false)
	},
}

// Code stores its body verbatim in the code accumulator, keyed by the
// head's language tag, and leaves a CodeBlock reference in its place.
var Code = &parsing.BlockRule{
	Name:           "code",
	AcceptsPartial: parsing.PartialNone,
	ParseFn: func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		body, warn := gatherRawBody(p, block.Name)
		if warn != nil {
			return parsing.Err[tree.Elements](*warn)
		}
		language := strings.TrimSpace(block.HeadText)
		id := p.PushCode(language, body)
		return parsing.Ok(tree.OneElement(&tree.CodeBlock{ID: id}), nil, false)
	},
}

// HTML stores its body verbatim in the html accumulator and leaves an
// HtmlBlock reference in its place.
var HTML = &parsing.BlockRule{
	Name:           "html",
	AcceptsPartial: parsing.PartialNone,
	ParseFn: func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		body, warn := gatherRawBody(p, block.Name)
		if warn != nil {
			return parsing.Err[tree.Elements](*warn)
		}
		id := p.PushHTML(body)
		return parsing.Ok(tree.OneElement(&tree.HtmlBlock{ID: id}), nil, false)
	},
}

// gatherRawBody concatenates raw token slices up to the matching close
// tag without running them through the element dispatcher — code and
// html bodies are opaque text, not wikitext (spec.md §3, CodeBlock/
// HtmlBlock are referenced by id into a side-channel list of raw text).
func gatherRawBody(p *parsing.Parser, name string) (body string, warn *parsing.ParseWarning) {
	var sb strings.Builder
	for {
		if p.AtEnd() {
			w := p.MakeWarn(parsing.WarnBlockExpectedEnd)
			return "", &w
		}
		cur := p.Peek()
		if closesBlock(cur, name) {
			p.Step()
			break
		}
		sb.WriteString(cur.Slice)
		p.Step()
	}
	return sb.String(), nil
}

// ModuleRule delegates entirely to the host callback; the early
// no_modules return happens before the callback is ever invoked, per
// SPEC_FULL.md §3's module-rendering contract.
var ModuleRule = &parsing.BlockRule{
	Name:           "module",
	AcceptsPartial: parsing.PartialNone,
	ParseFn: func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		body, warn := gatherRawBody(p, block.Name)
		if warn != nil {
			return parsing.Err[tree.Elements](*warn)
		}
		params, perr := parsing.GetHeadMap(p, block, nil)
		if perr != nil {
			return parsing.Err[tree.Elements](*perr)
		}
		name := strings.TrimSpace(block.HeadText)
		if v, ok := params.Get("name"); ok {
			name = v
		}
		if p.Settings().NoModules {
			return parsing.Ok(tree.NoElements(), nil, false)
		}
		return parsing.Ok(tree.OneElement(&tree.Module{Name: name, Params: params, Body: body}), nil, false)
	},
}

// TOC marks an explicit table-of-contents placement.
var TOC = &parsing.BlockRule{
	Name:           "toc",
	AcceptsPartial: parsing.PartialHead,
	ParseFn: func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		p.MarkHasTOCBlock()
		return parsing.Ok(tree.OneElement(&tree.TableOfContents{}), nil, false)
	},
}

// Include fetches and inlines another page's wikitext via callbacks.
// Because the fetched text is already-tokenized wikitext in the real
// engine and this module never tokenizes, the supplemented behavior here
// records the dependency as an internal link and emits a placeholder
// Text node carrying the raw fetched body — a host that wants real
// recursive inclusion re-tokenizes and re-parses the fetched text itself
// before handing it back through fetch_included_wikitext.
var Include = &parsing.BlockRule{
	Name:           "include",
	AcceptsPartial: parsing.PartialHead,
	ParseFn: func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		target := strings.TrimSpace(block.HeadText)
		if target == "" {
			w := p.MakeWarn(parsing.WarnInvalidInclude)
			return parsing.Err[tree.Elements](w)
		}
		ref := pageRefFromTarget(target)
		p.PushInternalLink(ref)
		text, ok := p.Callbacks().FetchIncludedWikitext(ref)
		if !ok {
			w := p.MakeWarn(parsing.WarnInvalidInclude)
			return parsing.Err[tree.Elements](w)
		}
		return parsing.Ok(tree.OneElement(&tree.Text{Slice: text}), nil, true)
	},
}

// Div is a generic block-level container with arbitrary attributes.
var Div = &parsing.BlockRule{
	Name:           "div",
	AcceptsPartial: parsing.PartialNone,
	ParseFn:        containerParseFn(tree.ContainerDiv, false),
}

// Span is a generic inline container with arbitrary attributes.
var Span = &parsing.BlockRule{
	Name:           "span",
	AcceptsPartial: parsing.PartialNone,
	ParseFn:        containerParseFn(tree.ContainerSpan, true),
}

func containerParseFn(kind tree.ContainerKind, paragraphSafe bool) func(*parsing.Parser, parsing.Block, *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
	return func(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
		attrs, warn := parsing.GetHeadMap(p, block, nil)
		if warn != nil {
			return parsing.Err[tree.Elements](*warn)
		}
		children, exceptions, _, berr := parsing.GetBodyElements(p, block.Name, true, table)
		if berr != nil {
			return parsing.Err[tree.Elements](*berr)
		}
		container := &tree.Container{Kind: kind, Children: children, Attrs: attrs}
		return parsing.Ok(tree.OneElement(container), exceptions, paragraphSafe)
	}
}
