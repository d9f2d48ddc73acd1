package parsing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demizer/ftml-go/pkg/log"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/token"
)

func newTestParser(tokens token.Tokens) *Parser {
	return NewParser(tokens, nil, nil, settings.NewWikitextSettings(settings.ModePage), log.Nop())
}

func TestTransactionRollbackRestoresCursorAndAccumulators(t *testing.T) {
	p := newTestParser(token.Tokens{
		{Kind: token.Word, Slice: "a"},
		{Kind: token.Word, Slice: "b"},
	})

	tx := p.Transaction(AllTransactionFlags())
	p.Step()
	p.PushTOC(0, "ghost")
	p.PushCode("go", "package main")
	require.Equal(t, 1, p.index)
	require.Len(t, p.acc.toc, 1)
	require.Len(t, p.acc.code, 1)

	tx.Rollback()

	require.Equal(t, 0, p.index)
	require.Len(t, p.acc.toc, 0)
	require.Len(t, p.acc.code, 0)
}

func TestTransactionCommitKeepsMutations(t *testing.T) {
	p := newTestParser(token.Tokens{{Kind: token.Word, Slice: "a"}})

	tx := p.Transaction(AllTransactionFlags())
	p.Step()
	p.PushTOC(0, "kept")
	tx.Commit()

	require.Equal(t, 1, p.index)
	require.Len(t, p.acc.toc, 1)
	require.Equal(t, "kept", p.acc.toc[0].Title)
}

func TestTransactionDoubleTerminatePanics(t *testing.T) {
	p := newTestParser(token.Tokens{{Kind: token.Word, Slice: "a"}})
	tx := p.Transaction(AllTransactionFlags())
	tx.Commit()
	require.Panics(t, func() { tx.Commit() })
}

func TestNestedTransactionsIsolateRollback(t *testing.T) {
	p := newTestParser(token.Tokens{
		{Kind: token.Word, Slice: "a"},
		{Kind: token.Word, Slice: "b"},
	})

	outer := p.Transaction(AllTransactionFlags())
	p.PushTOC(0, "outer-entry")

	inner := p.Transaction(AllTransactionFlags())
	p.PushTOC(1, "inner-entry")
	inner.Rollback()

	require.Len(t, p.acc.toc, 1)
	require.Equal(t, "outer-entry", p.acc.toc[0].Title)

	outer.Commit()
	require.Len(t, p.acc.toc, 1)
}
