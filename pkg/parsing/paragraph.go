package parsing

import (
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// CloseCondition tells the paragraph gatherer when to stop (spec.md
// §4.4). A zero-value CloseCondition means "no explicit close": the
// gatherer runs until end of input, which is the top-level document
// case.
type CloseCondition struct {
	BlockName string // non-empty: stop at `[[/BlockName]]`
}

func (c CloseCondition) none() bool { return c.BlockName == "" }

// matches reports whether the parser's cursor is sitting at this
// condition's close tag, WITHOUT consuming it — the caller steps past it
// once matched.
func (c CloseCondition) matches(p *Parser) bool {
	if c.none() {
		return false
	}
	cur := p.Peek()
	if cur == nil || cur.Kind != token.BlockEnd {
		return false
	}
	// The tokenizer is responsible for producing BlockEnd items whose
	// Slice is already the bare block name (e.g. "iftags" for the token
	// spanning "[[/iftags]]"); compare case-sensitively as wikitext
	// block names are.
	return cur.Slice == c.BlockName
}

// GatherResult is the paragraph gatherer's output: the flushed element
// list, the exceptions accumulated along the way, and whether the whole
// run may still be nested inside an outer paragraph (spec.md §4.4).
type GatherResult struct {
	Elements      []tree.Element
	Exceptions    []ParseException
	ParagraphSafe bool

	// Fatal is set when a rule bubbled an unrecoverable warning (spec.md
	// §4.6, §7): the run stopped immediately instead of flushing
	// normally, and the caller must propagate this rather than treat
	// Elements/Exceptions as a usable partial result.
	Fatal *ParseWarning
}

// GatherParagraphs is the top-level consumer (spec.md §4.4): it
// repeatedly dispatches rules, buffers paragraph-safe output, flushes on
// paragraph breaks or non-safe elements, and stops at close or end of
// input.
//
// Grounded on the teacher's top-level parse() loop (pkg/parser/parse.go)
// — a `for { token := p.next(); switch token.Type { ... } }` dispatch —
// generalized from a hardcoded switch into repeated calls through the
// registered RuleTable, with an explicit paragraph buffer the teacher's
// loop does not need (RST's paragraphs are whitespace-delimited at the
// lexer level; wikitext's are not).
func GatherParagraphs(p *Parser, table *RuleTable, close CloseCondition, allowParagraphs bool) GatherResult {
	var out []tree.Element
	var exceptions []ParseException
	var buffer []tree.Element
	nonAdvancing := 0

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		if allowParagraphs {
			out = append(out, &tree.Container{Kind: tree.ContainerParagraph, Children: buffer, Attrs: tree.NewAttributeMap()})
		} else {
			out = append(out, buffer...)
		}
		buffer = nil
	}

	for {
		if p.AtEnd() {
			flush()
			if !close.none() {
				exceptions = append(exceptions, WarningException(p.MakeWarn(WarnBlockExpectedEnd)))
			}
			break
		}
		if close.matches(p) {
			p.Step() // consume the close tag
			flush()
			break
		}
		if isBlankLine(p) {
			p.Step()
			flush()
			continue
		}
		if isManualBreak(p) {
			p.Step()
			buffer = append(buffer, &tree.LineBreak{})
			exceptions = append(exceptions, WarningException(p.MakeWarn(WarnManualBreak)))
			continue
		}

		startIndex := indexOf(p)
		result := Dispatch(p, table, DefaultTextRule)
		advanced := indexOf(p) != startIndex

		switch {
		case result.IsOk():
			succ, _ := result.Unwrap()
			exceptions = append(exceptions, succ.Exceptions...)
			elems := succ.Item.Slice()
			if succ.ParagraphSafe {
				buffer = append(buffer, elems...)
			} else {
				flush()
				out = append(out, elems...)
			}
			if !advanced && len(elems) == 0 {
				nonAdvancing++
			} else {
				nonAdvancing = 0
			}
		default:
			// Dispatch is always given a non-nil fallback here, so the
			// only Err it can ever return is a bubbled fatal warning
			// (see isFatalWarning) — an ordinary failed rule is rolled
			// back and retried internally, never surfaced as Err.
			// Unrecoverable: stop immediately rather than flushing a
			// partial buffer or recording this as an ordinary exception.
			// The caller propagates Fatal instead of Elements/Exceptions.
			w, _ := result.UnwrapErr()
			return GatherResult{Fatal: &w}
		}

		if nonAdvancing >= p.settings.StepWatchdog() {
			w := p.MakeWarn(WarnNoRulesMatch)
			return GatherResult{Fatal: &w}
		}
	}

	// A run gathered with allowParagraphs=true has already wrapped its own
	// content into Paragraph containers at blank-line boundaries, so
	// handing it to an enclosing paragraph buffer would wrap it a second
	// time. A run gathered with allowParagraphs=false never wraps
	// anything itself, so its flat element list is exactly what an
	// enclosing gatherer would have produced dispatching at this span
	// directly, and is safe to merge upward.
	return GatherResult{Elements: out, Exceptions: exceptions, ParagraphSafe: !allowParagraphs}
}

func indexOf(p *Parser) int { return p.index }

func isBlankLine(p *Parser) bool {
	cur := p.Peek()
	return cur != nil && cur.Kind == token.BlankLine
}

func isManualBreak(p *Parser) bool {
	cur := p.Peek()
	return cur != nil && cur.Kind == token.LineBreakEscape
}
