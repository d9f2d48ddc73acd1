package blocks

import (
	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/token"
)

// RegisterAll wires every block rule this package implements into table,
// in the declaration order below — which also fixes their dispatch
// priority for same-name collisions (spec.md §9, "dispatch table").
// Settings-based filtering (enable/disable_block_names) is applied here
// rather than inside each rule, so a disabled block simply never enters
// the table (spec.md §6).
func RegisterAll(table *parsing.RuleTable, wikiSettings interface {
	BlockNameAllowed(name string) bool
}) {
	all := []*parsing.BlockRule{
		Iftags,
		Ifexpr,
		Footnote,
		FootnoteBlockRule,
		Code,
		HTML,
		Image,
		ModuleRule,
		TOC,
		Include,
		Div,
		Span,
	}
	for _, rule := range all {
		if wikiSettings != nil && !wikiSettings.BlockNameAllowed(rule.Name) {
			continue
		}
		table.Register(EntryRule(rule, table), token.BlockOpen)
	}

	// Headings aren't a `[[name]]` block and so bypass EntryRule/
	// BlockNameAllowed filtering entirely; they're a fixed part of the
	// line grammar, the same way inline.RegisterAll always wires
	// HorizontalRule.
	table.Register(headingRule(table), token.HeadingMarker)
}
