package parsing

import (
	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/tree"
)

// TOCEntry is one (depth, title) pair gathered for the table of contents
// depth list (spec.md §3, §4.5).
type TOCEntry struct {
	Depth int
	Title string
}

// accumulators holds the per-parse side-effect buffers (spec.md §2.4):
// TOC depths, footnotes, code blocks, inlined HTML, internal links, and
// the two has-block flags. It is the substate transactions snapshot and
// restore.
type accumulators struct {
	toc              []TOCEntry
	footnotes        [][]tree.Element
	code             []tree.CodeBlockEntry
	html             []string
	internalLinks    []data.PageRef
	hasFootnoteBlock bool
	hasTOCBlock      bool
}

// snapshot captures the lengths/flags needed to roll an accumulators
// value back to this point. Truncating slices back to a saved length is
// sufficient (and far cheaper than deep copies) because transaction
// frames only ever append to the tail; nothing before a frame's start is
// ever mutated in place.
type accumulatorsSnapshot struct {
	tocLen              int
	footnotesLen        int
	codeLen             int
	htmlLen             int
	internalLinksLen    int
	hasFootnoteBlock    bool
	hasTOCBlock         bool
}

func (a *accumulators) snapshot() accumulatorsSnapshot {
	return accumulatorsSnapshot{
		tocLen:           len(a.toc),
		footnotesLen:     len(a.footnotes),
		codeLen:          len(a.code),
		htmlLen:          len(a.html),
		internalLinksLen: len(a.internalLinks),
		hasFootnoteBlock: a.hasFootnoteBlock,
		hasTOCBlock:      a.hasTOCBlock,
	}
}

// restore rolls a back to a prior snapshot, respecting flags: only the
// masked substate is truncated/reset, the rest is left as-is (it belongs
// to the parent and was never guarded by this frame).
func (a *accumulators) restore(snap accumulatorsSnapshot, flags TransactionFlags) {
	if flags.Has(FlagTOC) {
		a.toc = a.toc[:snap.tocLen]
		a.hasTOCBlock = snap.hasTOCBlock
	}
	if flags.Has(FlagFootnotes) {
		a.footnotes = a.footnotes[:snap.footnotesLen]
		a.hasFootnoteBlock = snap.hasFootnoteBlock
	}
	if flags.Has(FlagCode) {
		a.code = a.code[:snap.codeLen]
	}
	if flags.Has(FlagHTML) {
		a.html = a.html[:snap.htmlLen]
	}
	if flags.Has(FlagInternalLinks) {
		a.internalLinks = a.internalLinks[:snap.internalLinksLen]
	}
}
