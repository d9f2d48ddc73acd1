// Package parsing implements the ftml parsing engine: the Parser and its
// transaction discipline, the rule table and dispatcher, the block-rule
// protocol, the paragraph gatherer, and the depth builder used for TOC
// and nested lists (spec.md §4).
package parsing

import (
	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/log"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// WikiScriptScope is the parser's script-variable scope: a mapping from
// variable name to (value, generation), the generation letting scopes
// shadow and later restore outer bindings. Grounded on the Rust
// original's `pub type WikiScriptScope<'t> = HashMap<Cow<'t, str>,
// (Cow<'t, str>, u32)>` (parsing/mod.rs).
type WikiScriptScope map[string]ScopeValue

type ScopeValue struct {
	Value      string
	Generation uint32
}

// ambientState is the Parser's "ambient" substate (spec.md §4.1): the
// in-head flag, the current rule name (for warning attribution), and the
// script scope. Unlike the accumulators, this is never transaction-masked
// — it is always shared top-to-bottom, matching spec.md's description of
// ambient as separate from the guarded substate.
type ambientState struct {
	inHead     bool
	ruleName   string
	scope      WikiScriptScope
}

// Parser holds the mutable parse state described in spec.md §4.1: the
// cursor, depth counter, step watchdog, scope map, ambient flags, and the
// transaction stack over the accumulators and cursor.
//
// Grounded on the teacher's Parser struct (pkg/parser/parse.go): a
// read-only token view, an integer cursor, and an embedded Logger.
type Parser struct {
	log.Logger

	tokens token.Tokens
	index  int

	depth       int // current recursion depth
	stepCount   int // reset by Step; not incremented or read (GatherParagraphs keeps its own non-advancing counter)
	txDepth     int // number of open (unfinished) transactions, for invariants only

	ambient ambientState
	acc     accumulators

	pageInfo  *data.PageInfo
	callbacks data.PageCallbacks
	settings  *settings.WikitextSettings
}

// NewParser constructs a Parser over tokens. callbacks may be nil, in
// which case data.NullCallbacks{} is used.
func NewParser(
	tokens token.Tokens,
	pageInfo *data.PageInfo,
	callbacks data.PageCallbacks,
	wikiSettings *settings.WikitextSettings,
	logger log.Logger,
) *Parser {
	if callbacks == nil {
		callbacks = data.NullCallbacks{}
	}
	return &Parser{
		Logger:    logger.Named("parser"),
		tokens:    tokens,
		pageInfo:  pageInfo,
		callbacks: callbacks,
		settings:  wikiSettings,
		ambient:   ambientState{scope: make(WikiScriptScope)},
	}
}

// Settings returns the settings record rules consult.
func (p *Parser) Settings() *settings.WikitextSettings { return p.settings }

// PageInfo returns the current page's metadata.
func (p *Parser) PageInfo() *data.PageInfo { return p.pageInfo }

// Callbacks returns the host capability interface.
func (p *Parser) Callbacks() data.PageCallbacks { return p.callbacks }

// Scope returns the script-variable scope map.
func (p *Parser) Scope() WikiScriptScope { return p.ambient.scope }

// InHead reports whether the cursor is currently inside a block head.
func (p *Parser) InHead() bool { return p.ambient.inHead }

// SetInHead toggles the in-head ambient flag, returning the previous
// value so callers can restore it.
func (p *Parser) SetInHead(v bool) (previous bool) {
	previous = p.ambient.inHead
	p.ambient.inHead = v
	return previous
}

// CurrentRule returns the name of the rule currently executing, for
// warning attribution.
func (p *Parser) CurrentRule() string { return p.ambient.ruleName }

// SetCurrentRule sets the rule name, returning the previous value.
func (p *Parser) SetCurrentRule(name string) (previous string) {
	previous = p.ambient.ruleName
	p.ambient.ruleName = name
	return previous
}

// Depth returns the current recursion depth.
func (p *Parser) Depth() int { return p.depth }

// EnterRecursion increments the depth counter, returning a MaxDepthExceeded
// warning if the configured maximum would be exceeded (spec.md §5).
func (p *Parser) EnterRecursion() (*ParseWarning, func()) {
	if p.depth+1 > p.settings.MaxDepth() {
		w := p.MakeWarn(WarnMaxDepthExceeded)
		return &w, func() {}
	}
	p.depth++
	return nil, func() { p.depth-- }
}

// --- cursor primitives (spec.md §4.1) ---

// Peek looks at the current token without advancing.
func (p *Parser) Peek() *token.Item { return p.PeekAt(0) }

// PeekAt looks ahead k tokens without advancing; k == 0 is the current
// token. Returns nil past the end of input.
func (p *Parser) PeekAt(k int) *token.Item {
	i := p.index + k
	if i < 0 || i >= len(p.tokens) {
		return nil
	}
	return &p.tokens[i]
}

// AtEnd reports whether the cursor has consumed all tokens.
func (p *Parser) AtEnd() bool { return p.index >= len(p.tokens) }

// Step advances the cursor by one token, returning EndOfInput past the
// end.
func (p *Parser) Step() (*token.Item, *ParseWarning) {
	if p.AtEnd() {
		w := p.MakeWarn(WarnEndOfInput)
		return nil, &w
	}
	item := &p.tokens[p.index]
	p.index++
	p.stepCount = 0
	return item, nil
}

// Expect steps the cursor if the current token's kind matches; otherwise
// it produces a warning without advancing.
func (p *Parser) Expect(kind token.Kind) (*token.Item, *ParseWarning) {
	cur := p.Peek()
	if cur == nil || cur.Kind != kind {
		w := p.MakeWarn(WarnBlockMalformedArguments)
		return nil, &w
	}
	return p.Step()
}

// MakeWarn constructs a warning anchored at the current token and rule.
func (p *Parser) MakeWarn(kind WarningKind) ParseWarning {
	cur := p.Peek()
	var tk token.Kind
	var span token.Span
	if cur != nil {
		tk = cur.Kind
		span = cur.Span
	} else if len(p.tokens) > 0 {
		span = p.tokens[len(p.tokens)-1].Span
	}
	return ParseWarning{
		Kind:  kind,
		Token: tk,
		Rule:  p.ambient.ruleName,
		Span:  span,
	}
}

// Transaction pushes a new transaction frame masked by flags and returns
// a handle that must be terminated with Commit or Rollback.
func (p *Parser) Transaction(flags TransactionFlags) *Transaction {
	return p.beginTransaction(flags)
}

// --- accumulator appenders (spec.md §4.1) ---
//
// Each appender returns the index the entry was stored at, which rules
// use to build the matching reference Element (FootnoteRef{ID}/
// CodeBlock{ID}/HtmlBlock{ID}) at the call site.

func (p *Parser) PushTOC(depthLevel int, title string) {
	p.acc.toc = append(p.acc.toc, TOCEntry{Depth: depthLevel, Title: title})
}

// PushFootnote appends a footnote's rendered children and returns its
// 1-based ID, matching FootnoteRef.ID (spec.md §3).
func (p *Parser) PushFootnote(children []tree.Element) int {
	p.acc.footnotes = append(p.acc.footnotes, children)
	return len(p.acc.footnotes)
}

func (p *Parser) MarkHasFootnoteBlock() { p.acc.hasFootnoteBlock = true }
func (p *Parser) MarkHasTOCBlock()      { p.acc.hasTOCBlock = true }

func (p *Parser) HasFootnoteBlock() bool { return p.acc.hasFootnoteBlock }
func (p *Parser) HasTOCBlock() bool      { return p.acc.hasTOCBlock }

// PushCode appends a code block and returns its 0-based ID.
func (p *Parser) PushCode(language, body string) int {
	p.acc.code = append(p.acc.code, tree.CodeBlockEntry{Language: language, Body: body})
	return len(p.acc.code) - 1
}

// PushHTML appends an inlined raw-HTML block and returns its 0-based ID.
func (p *Parser) PushHTML(body string) int {
	p.acc.html = append(p.acc.html, body)
	return len(p.acc.html) - 1
}

func (p *Parser) PushInternalLink(ref data.PageRef) {
	p.acc.internalLinks = append(p.acc.internalLinks, ref)
}

// --- accumulator drains, used once by the top-level post-processor to
// move ownership of the finished buffers into the SyntaxTree (spec.md
// §3, §4.6). Draining rather than copying avoids doubling memory for
// large pages.

func (p *Parser) RemoveTOC() []TOCEntry {
	v := p.acc.toc
	p.acc.toc = nil
	return v
}

func (p *Parser) RemoveFootnotes() [][]tree.Element {
	v := p.acc.footnotes
	p.acc.footnotes = nil
	return v
}

func (p *Parser) RemoveCode() []tree.CodeBlockEntry {
	v := p.acc.code
	p.acc.code = nil
	return v
}

func (p *Parser) RemoveHTML() []string {
	v := p.acc.html
	p.acc.html = nil
	return v
}

func (p *Parser) RemoveInternalLinks() []data.PageRef {
	v := p.acc.internalLinks
	p.acc.internalLinks = nil
	return v
}
