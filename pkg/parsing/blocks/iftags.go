// Package blocks holds the concrete block-rule implementations:
// conditional blocks (iftags, ifexpr), footnote/footnoteblock, code,
// html, image, module, toc, include, and the generic container blocks
// div/span. Each is registered against a parsing.RuleTable by RegisterAll.
package blocks

import (
	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/tree"
)

// Iftags is the archetype conditional block (spec.md §4.3): its body is
// included iff the page's tags satisfy the head's condition list, or the
// settings disable conditionals entirely.
//
// Grounded directly on spec.md §4.3's iftags walkthrough; there is no
// single teacher file for this (go-rst has no block-rule concept), so
// the transaction discipline here is built from parsing.Transaction
// (itself grounded on the teacher's commit-on-success parse() loop)
// rather than any one copied function.
var Iftags = &parsing.BlockRule{
	Name:           "iftags",
	AcceptsStar:    false,
	AcceptsScore:   false,
	AcceptsPartial: parsing.PartialNone,
	ParseFn:        parseIftags,
}

func parseIftags(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
	// The cursor is not guarded: a discarded branch stays consumed, and
	// only the accumulators the body wrote are rolled back.
	tx := p.Transaction(parsing.AllTransactionFlags() &^ parsing.FlagCursor)

	conditions := parsing.ParseConditions(block.HeadText)
	// Get body content, never with paragraphs: the body's own paragraph
	// safety is propagated to our caller below instead of being decided
	// twice.
	body, exceptions, paragraphSafe, warn := parsing.GetBodyElements(p, block.Name, false, table)
	if warn != nil {
		tx.Rollback()
		return parsing.Err[tree.Elements](*warn)
	}

	tags := []string{}
	if info := p.PageInfo(); info != nil {
		tags = info.Tags
	}

	if p.Settings().NoConditionals || parsing.ConditionsMatch(conditions, tags) {
		tx.Commit()
		return parsing.Ok(tree.ManyElements(body), exceptions, paragraphSafe)
	}

	// The branch is discarded: keep only genuine warnings (drop anything
	// that isn't an actual ParseException::Warning — today that is a
	// no-op since Warning is the only variant, but the filter is
	// intentional and forward-compatible per spec.md §9's open question)
	// and roll back every accumulator the body wrote, notably its
	// footnotes and TOC entries.
	var kept []parsing.ParseException
	for _, exc := range exceptions {
		if exc.IsWarning() {
			kept = append(kept, exc)
		}
	}
	tx.Rollback()
	return parsing.Ok(tree.NoElements(), kept, paragraphSafe)
}
