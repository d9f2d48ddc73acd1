package parsing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

func TestGatherParagraphsFlushesOnBlankLine(t *testing.T) {
	p := newTestParser(token.Tokens{
		{Kind: token.Word, Slice: "Hello"},
		{Kind: token.BlankLine, Slice: "\n\n"},
		{Kind: token.Word, Slice: "World"},
	})
	table := NewRuleTable()
	result := GatherParagraphs(p, table, CloseCondition{}, true)

	require.Len(t, result.Elements, 2)
	first, ok := result.Elements[0].(*tree.Container)
	require.True(t, ok)
	require.Equal(t, tree.ContainerParagraph, first.Kind)
	require.Len(t, first.Children, 1)

	second, ok := result.Elements[1].(*tree.Container)
	require.True(t, ok)
	require.Len(t, second.Children, 1)
}

func TestGatherParagraphsStopsAtCloseCondition(t *testing.T) {
	p := newTestParser(token.Tokens{
		{Kind: token.Word, Slice: "woof"},
		{Kind: token.BlockEnd, Slice: "iftags"},
		{Kind: token.Word, Slice: "unreachable"},
	})
	table := NewRuleTable()
	result := GatherParagraphs(p, table, CloseCondition{BlockName: "iftags"}, true)

	require.Len(t, result.Elements, 1)
	require.Equal(t, 2, p.index) // stopped right after consuming the close tag
}

func TestGatherParagraphsManualBreakDoesNotFlush(t *testing.T) {
	p := newTestParser(token.Tokens{
		{Kind: token.Word, Slice: "line one"},
		{Kind: token.LineBreakEscape, Slice: " \\\n"},
		{Kind: token.Word, Slice: "line two"},
	})
	table := NewRuleTable()
	result := GatherParagraphs(p, table, CloseCondition{}, true)

	require.Len(t, result.Elements, 1)
	para, ok := result.Elements[0].(*tree.Container)
	require.True(t, ok)
	require.Len(t, para.Children, 3) // text, linebreak, text
	require.NotEmpty(t, result.Exceptions)
	require.Equal(t, WarnManualBreak, result.Exceptions[0].Warning.Kind)
}
