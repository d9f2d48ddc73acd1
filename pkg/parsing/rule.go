package parsing

import (
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// Rule is one entry in the static dispatch table: a name (for warning
// attribution) and a parse function. A Rule may consume zero or more
// tokens; on Err the dispatcher is responsible for rolling back the
// attempted transaction. Grounded on the teacher's per-token-kind parse
// methods in pkg/parser/parse.go, generalized from a hardcoded switch
// into a registered table per spec.md §4.2.
type Rule struct {
	Name  string
	Match func(p *Parser) bool
	Parse func(p *Parser) ParseResult[tree.Elements]
}

// RuleTable is the static registry, keyed by the token kind a rule's
// first token may be. Rules within a bucket run in declaration order;
// ties are broken the same way (spec.md §9, "dispatch table").
type RuleTable struct {
	byKind map[token.Kind][]*Rule
	all    []*Rule
}

// NewRuleTable builds an empty table. Use Register to populate it; block
// packages call this once at init time and hand the result to Parse.
func NewRuleTable() *RuleTable {
	return &RuleTable{byKind: make(map[token.Kind][]*Rule)}
}

// Register adds rule to the bucket for each of kinds, preserving
// declaration order within and across calls.
func (t *RuleTable) Register(rule *Rule, kinds ...token.Kind) {
	t.all = append(t.all, rule)
	for _, k := range kinds {
		t.byKind[k] = append(t.byKind[k], rule)
	}
}

// candidates returns the rules eligible to attempt the current token,
// preserving declaration order.
func (t *RuleTable) candidates(kind token.Kind) []*Rule {
	return t.byKind[kind]
}

// Dispatch runs the rule table against the parser's current token: each
// eligible rule is attempted inside its own transaction; the first Ok is
// committed and returned. On exhaustion, fallback produces a single Text
// element for the current token and steps over it (spec.md §4.2).
func Dispatch(p *Parser, table *RuleTable, fallback func(p *Parser) ParseResult[tree.Elements]) ParseResult[tree.Elements] {
	cur := p.Peek()
	if cur == nil {
		return Ok(tree.NoElements(), nil, true)
	}

	for _, rule := range table.candidates(cur.Kind) {
		if rule.Match != nil && !rule.Match(p) {
			continue
		}
		startIndex := p.index
		prevRule := p.SetCurrentRule(rule.Name)
		tx := p.Transaction(AllTransactionFlags())
		result := rule.Parse(p)
		p.SetCurrentRule(prevRule)

		if result.IsOk() && (p.index != startIndex || advancedByElements(result)) {
			tx.Commit()
			return result
		}
		tx.Rollback()

		// A fatal warning (the recursion guard, the step watchdog) means
		// the whole document has no recovery, not just this one rule;
		// bubble it immediately instead of trying the next candidate or
		// falling back to literal text, which would just mask it.
		if w, ok := result.UnwrapErr(); ok && isFatalWarning(w.Kind) {
			return result
		}
	}

	if fallback != nil {
		return fallback(p)
	}
	return Err[tree.Elements](p.MakeWarn(WarnNoRulesMatch))
}

// isFatalWarning reports whether kind means the whole document cannot
// continue (spec.md §4.6, §7 "a fatal Err yields the degenerate tree"),
// as opposed to an ordinary per-rule failure that the dispatcher recovers
// from by trying the next candidate or falling back to literal text.
func isFatalWarning(kind WarningKind) bool {
	return kind == WarnMaxDepthExceeded || kind == WarnNoRulesMatch
}

// advancedByElements reports whether a no-cursor-movement Ok result still
// produced elements; a rule that neither advances nor yields elements is
// treated as a non-match so the watchdog in the paragraph gatherer can
// make progress (spec.md §4.2).
func advancedByElements(r ParseResult[tree.Elements]) bool {
	succ, ok := r.Unwrap()
	if !ok {
		return false
	}
	return !succ.Item.IsNone()
}

// DefaultTextRule emits the current token verbatim as a Text element and
// steps past it; used as the dispatcher's fallback (spec.md §4.2).
func DefaultTextRule(p *Parser) ParseResult[tree.Elements] {
	item, warn := p.Step()
	if warn != nil {
		return Err[tree.Elements](*warn)
	}
	el := &tree.Text{Slice: item.Slice, Span: item.Span}
	return Ok(tree.OneElement(el), nil, true)
}
