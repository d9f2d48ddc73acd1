package inline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demizer/ftml-go/pkg/log"
	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

func newTestParser(tokens token.Tokens) *parsing.Parser {
	return parsing.NewParser(tokens, nil, nil, settings.NewWikitextSettings(settings.ModePage), log.Nop())
}

func TestBoldDelimitedRunProducesBoldContainer(t *testing.T) {
	table := parsing.NewRuleTable()
	RegisterAll(table)

	p := newTestParser(token.Tokens{
		{Kind: token.InlineBoldOpen, Slice: "**"},
		{Kind: token.Word, Slice: "shout"},
		{Kind: token.InlineBoldClose, Slice: "**"},
	})

	result := parsing.Dispatch(p, table, parsing.DefaultTextRule)
	succ, ok := result.Unwrap()
	require.True(t, ok)

	elems := succ.Item.Slice()
	require.Len(t, elems, 1)
	container, ok := elems[0].(*tree.Container)
	require.True(t, ok)
	require.Equal(t, tree.ContainerBold, container.Kind)
	require.Len(t, container.Children, 1)

	text, ok := container.Children[0].(*tree.Text)
	require.True(t, ok)
	require.Equal(t, "shout", text.Slice)
}

func TestHorizontalRuleIsNotParagraphSafe(t *testing.T) {
	table := parsing.NewRuleTable()
	RegisterAll(table)

	p := newTestParser(token.Tokens{{Kind: token.HorizontalRule, Slice: "----"}})

	result := parsing.Dispatch(p, table, parsing.DefaultTextRule)
	succ, ok := result.Unwrap()
	require.True(t, ok)
	require.False(t, succ.ParagraphSafe)

	_, ok = succ.Item.Slice()[0].(*tree.HorizontalRule)
	require.True(t, ok)
}

func TestLinkWithLabelProducesPageLink(t *testing.T) {
	table := parsing.NewRuleTable()
	RegisterAll(table)

	p := newTestParser(token.Tokens{
		{Kind: token.OpenBracket, Slice: "["},
		{Kind: token.Word, Slice: "some-page"},
		{Kind: token.Pipe, Slice: "|"},
		{Kind: token.Whitespace, Slice: " "},
		{Kind: token.Word, Slice: "Some"},
		{Kind: token.Whitespace, Slice: " "},
		{Kind: token.Word, Slice: "Page"},
		{Kind: token.CloseBracket, Slice: "]"},
	})

	result := parsing.Dispatch(p, table, parsing.DefaultTextRule)
	succ, ok := result.Unwrap()
	require.True(t, ok)
	require.True(t, succ.ParagraphSafe)

	elems := succ.Item.Slice()
	require.Len(t, elems, 1)
	link, ok := elems[0].(*tree.Link)
	require.True(t, ok)
	require.Equal(t, tree.LinkTypePage, link.Type)
	require.Equal(t, "some-page", link.Target)
	require.Equal(t, "Some Page", link.Label)
}

func TestLinkWithURLTargetHasNoLabel(t *testing.T) {
	table := parsing.NewRuleTable()
	RegisterAll(table)

	p := newTestParser(token.Tokens{
		{Kind: token.OpenBracket, Slice: "["},
		{Kind: token.Word, Slice: "https://example.com"},
		{Kind: token.CloseBracket, Slice: "]"},
	})

	result := parsing.Dispatch(p, table, parsing.DefaultTextRule)
	succ, ok := result.Unwrap()
	require.True(t, ok)

	link, ok := succ.Item.Slice()[0].(*tree.Link)
	require.True(t, ok)
	require.Equal(t, tree.LinkTypeURL, link.Type)
	require.Equal(t, "https://example.com", link.Target)
	require.Empty(t, link.Label)
}
