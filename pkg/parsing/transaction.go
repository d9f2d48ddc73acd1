package parsing

// TransactionFlags enumerates which substate a transaction frame guards;
// unmasked substate is shared with the parent and never rolled back
// (spec.md §4.1). Grounded on the Rust original's
// "parser.transaction(ParserTransactionFlags::all())" call sites in
// iftags.rs — Go has no bitflag-macro equivalent in the corpus, so this
// is a plain uint8 bitmask with named bit constants, the idiomatic
// stdlib-only way to do this in Go.
type TransactionFlags uint8

const (
	FlagCursor TransactionFlags = 1 << iota
	FlagTOC
	FlagFootnotes
	FlagCode
	FlagHTML
	FlagInternalLinks
)

// AllTransactionFlags guards every piece of substate a frame knows about.
func AllTransactionFlags() TransactionFlags {
	return FlagCursor | FlagTOC | FlagFootnotes | FlagCode | FlagHTML | FlagInternalLinks
}

// Has reports whether flags includes bit.
func (flags TransactionFlags) Has(bit TransactionFlags) bool { return flags&bit != 0 }

// Transaction is a stacked, revertable snapshot of parser substate. It
// must be terminated with exactly one of Commit or Rollback; dropping it
// without doing so is a programmer error: Parse panics if any transaction
// is still open when the top-level gather returns, and terminating a
// handle a second time panics immediately (spec.md §4.1).
type Transaction struct {
	parser   *Parser
	flags    TransactionFlags
	index    int
	accSnap  accumulatorsSnapshot
	finished bool
}

// beginTransaction pushes a new frame and returns its handle. The handle
// has no cursor API of its own (see the note at the end of this file);
// Commit folds the frame into the parent (a no-op here, since mutations already happened
// in place), Rollback restores the parent's masked substate verbatim.
func (p *Parser) beginTransaction(flags TransactionFlags) *Transaction {
	tx := &Transaction{
		parser:  p,
		flags:   flags,
		index:   p.index,
		accSnap: p.acc.snapshot(),
	}
	p.txDepth++
	return tx
}

// Commit folds the frame into its parent. Because this implementation
// mutates the shared accumulators in place (copy-on-begin, not an
// undo-log), committing is simply "stop guarding": accumulator entries
// appended during the transaction are already live and in document order.
func (t *Transaction) Commit() {
	t.checkNotFinished()
	t.finished = true
	t.parser.txDepth--
}

// Rollback restores the parent state verbatim: cursor position (if
// FlagCursor is set) and every masked accumulator are reset to their
// pre-transaction values. Unmasked accumulators are left untouched, since
// they were never this frame's to guard.
func (t *Transaction) Rollback() {
	t.checkNotFinished()
	if t.flags.Has(FlagCursor) {
		t.parser.index = t.index
	}
	t.parser.acc.restore(t.accSnap, t.flags)
	t.finished = true
	t.parser.txDepth--
}

func (t *Transaction) checkNotFinished() {
	if t.finished {
		panic("parsing: Transaction used after Commit/Rollback")
	}
}

// Peek, PeekAt, Step, Expect, and the accumulator appenders are Parser
// methods only: because this implementation
// shares the live accumulators/cursor rather than giving each Transaction
// its own copy, there is no separate "transaction cursor" type. Callers
// use the Parser methods for everything except Commit/Rollback, which
// only the Transaction handle can perform — this mirrors the contract
// (you cannot forget to close a transaction, since you hold the only
// handle that can end it) without a parallel API surface.
