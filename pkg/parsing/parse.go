package parsing

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	klog "github.com/go-kit/kit/log"

	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/log"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// ParseOutcome wraps the final tree together with the warnings extracted
// from it, mirroring spec.md §6's top-level entry-point shape.
type ParseOutcome struct {
	Tree     tree.SyntaxTree
	Warnings []ParseWarning
}

// Parse is the top-level entry point (spec.md §6): given a token view,
// page metadata, host callbacks, and settings, produce a SyntaxTree. A
// nil logr falls back to a no-op sink, the way the teacher's top-level
// Parse function accepts an optional go-kit logger.
//
// Grounded on the teacher's package-level `Parse(name, text string, logr
// klog.Logger) (*Parser, doc.NodeList)` (pkg/parser/parse.go): construct
// a Parser, normalize input, run it, and hand back structured results
// rather than panicking on malformed input.
func Parse(
	tokens token.Tokens,
	pageInfo *data.PageInfo,
	callbacks data.PageCallbacks,
	wikiSettings *settings.WikitextSettings,
	table *RuleTable,
	logr klog.Logger,
) ParseOutcome {
	if wikiSettings == nil {
		wikiSettings = settings.NewWikitextSettings(settings.ModePage)
	}
	var logger log.Logger
	if logr == nil {
		logger = log.Nop()
	} else {
		logger = log.NewLogger(log.Config{Name: "ftml", Logger: logr})
	}

	// Normalize a private copy: the caller's token view is left untouched.
	tokens = append(token.Tokens(nil), tokens...)
	normalizeTokenText(tokens)

	p := NewParser(tokens, pageInfo, callbacks, wikiSettings, logger)
	result := GatherParagraphs(p, table, CloseCondition{}, true)
	if p.txDepth != 0 {
		panic("parsing: Transaction dropped without Commit/Rollback")
	}

	if result.Fatal != nil {
		text, span := fullSource(tokens)
		return ParseOutcome{
			Tree:     DegenerateTree(text, span, *result.Fatal),
			Warnings: []ParseWarning{*result.Fatal},
		}
	}

	return postProcess(p, result)
}

// fullSource reconstructs the entire source text and its span by
// concatenating every token's slice in order, for DegenerateTree's "the
// full input as one Text element" fallback (spec.md §4.6).
func fullSource(tokens token.Tokens) (string, token.Span) {
	var sb strings.Builder
	span := token.Span{}
	if len(tokens) > 0 {
		span.Start = tokens[0].Span.Start
		span.End = tokens[len(tokens)-1].Span.End
	}
	for _, tok := range tokens {
		sb.WriteString(tok.Slice)
	}
	return sb.String(), span
}

// normalizeTokenText applies Unicode NFC normalization to each token's
// slice in place, matching the teacher's `norm.NFC.String(text)` pass
// over the whole input before lexing (pkg/parser/parse.go) — applied
// per-token here since this module receives an already-tokenized view
// rather than raw source text.
func normalizeTokenText(tokens token.Tokens) {
	for i, item := range tokens {
		if !norm.NFC.IsNormalString(item.Slice) {
			tokens[i].Slice = norm.NFC.String(item.Slice)
		}
	}
}

// postProcess implements spec.md §4.6: extract warnings (dropping
// ManualBreak, which is informational), run the depth builder over the
// TOC accumulator, append an implicit FootnoteBlock if none was marked
// explicit, and drain the remaining accumulators into the final tree.
func postProcess(p *Parser, result GatherResult) ParseOutcome {
	var warnings []ParseWarning
	for _, exc := range result.Exceptions {
		if !exc.IsWarning() {
			continue
		}
		if exc.Warning.Kind == WarnManualBreak {
			continue
		}
		warnings = append(warnings, exc.Warning)
	}

	tocEntries := p.RemoveTOC()
	tocTree := BuildDepthList(tocEntries)
	var tocElements []tree.Element
	if len(tocEntries) > 0 {
		tocElements = []tree.Element{BuildTOCElements(tocTree)}
	}

	elements := result.Elements
	if !p.HasFootnoteBlock() {
		elements = append(elements, &tree.FootnoteBlock{Title: nil, Hide: false})
	}

	footnoteChildren := p.RemoveFootnotes()
	footnotes := make([]tree.Footnote, 0, len(footnoteChildren))
	for _, children := range footnoteChildren {
		footnotes = append(footnotes, tree.Footnote{Elements: children})
	}

	st := tree.SyntaxTree{
		Elements:        elements,
		Warnings:        toTreeWarnings(warnings),
		TableOfContents: tocElements,
		HasTOCBlock:     p.HasTOCBlock(),
		Footnotes:       footnotes,
		Code:            p.RemoveCode(),
		HTML:            p.RemoveHTML(),
		InternalLinks:   toTreePageRefs(p.RemoveInternalLinks()),
	}

	return ParseOutcome{Tree: st, Warnings: warnings}
}

// toTreeWarnings converts the parsing package's ParseWarning (which
// carries the unexported reasoning behind message()) into the tree
// package's externally-serializable Warning shape (spec.md §6).
func toTreeWarnings(warnings []ParseWarning) []tree.Warning {
	out := make([]tree.Warning, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, tree.Warning{
			Kind:  w.Kind.String(),
			Rule:  w.Rule,
			Span:  tree.Span{Start: w.Span.Start, End: w.Span.End},
			Token: w.Token.String(),
		})
	}
	return out
}

// toTreePageRefs converts the data package's PageRef (used by callbacks
// and the accumulators) into the tree package's minimal external shape,
// avoiding a tree -> data import cycle (see tree.PageRef's doc comment).
func toTreePageRefs(refs []data.PageRef) []tree.PageRef {
	out := make([]tree.PageRef, 0, len(refs))
	for _, r := range refs {
		out = append(out, tree.PageRef{Site: r.Site, Page: r.Page})
	}
	return out
}

// DegenerateTree builds the fallback tree spec.md §4.6 describes for a
// fatal top-level Err: the entire input as one Text element plus the
// single fatal warning, and nothing else.
func DegenerateTree(fullText string, span token.Span, fatal ParseWarning) tree.SyntaxTree {
	return tree.SyntaxTree{
		Elements: []tree.Element{&tree.Text{Slice: fullText, Span: span}},
		Warnings: toTreeWarnings([]ParseWarning{fatal}),
	}
}
