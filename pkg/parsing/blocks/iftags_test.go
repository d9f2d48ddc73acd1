package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/log"
	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// iftagsTokens builds `[[iftags <head>]]hidden[[/iftags]]`.
func iftagsTokens(head string) token.Tokens {
	return token.Tokens{
		{Kind: token.BlockOpen, Slice: "[["},
		{Kind: token.Word, Slice: "iftags"},
		{Kind: token.Word, Slice: head},
		{Kind: token.BlockClose, Slice: "]]"},
		{Kind: token.Word, Slice: "hidden"},
		{Kind: token.BlockEnd, Slice: "iftags"},
	}
}

func newRuleTable() *parsing.RuleTable {
	table := parsing.NewRuleTable()
	table.Register(parsing.EntryRule(Iftags, table), token.BlockOpen)
	return table
}

// runEntryRule drives the generic block-entry rule directly, the way
// Dispatch would call it, without an outer GatherParagraphs wrapping the
// result a second time.
func runEntryRule(tokens token.Tokens, info *data.PageInfo, wikiSettings *settings.WikitextSettings, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
	if wikiSettings == nil {
		wikiSettings = settings.NewWikitextSettings(settings.ModePage)
	}
	p := parsing.NewParser(tokens, info, nil, wikiSettings, log.Nop())
	rule := parsing.EntryRule(Iftags, table)
	return rule.Parse(p)
}

func TestIftagsIncludesBodyWhenConditionMatches(t *testing.T) {
	table := newRuleTable()
	info := &data.PageInfo{Tags: []string{"scary"}}

	result := runEntryRule(iftagsTokens("+scary"), info, nil, table)
	succ, ok := result.Unwrap()
	require.True(t, ok)

	// The body is gathered with allowParagraphs=false (never wrap the
	// conditional's own body in a paragraph); an outer GatherParagraphs,
	// absent here since the entry rule is driven directly, is what would
	// wrap this into a paragraph in a real parse.
	elems := succ.Item.Slice()
	require.Len(t, elems, 1)
	text, ok := elems[0].(*tree.Text)
	require.True(t, ok)
	require.Equal(t, "hidden", text.Slice)
}

func TestIftagsDropsBodyWhenConditionFails(t *testing.T) {
	table := newRuleTable()
	info := &data.PageInfo{Tags: []string{}}

	result := runEntryRule(iftagsTokens("+scary"), info, nil, table)
	succ, ok := result.Unwrap()
	require.True(t, ok)
	require.True(t, succ.Item.IsNone())
}

func TestIftagsBypassedByNoConditionalsSetting(t *testing.T) {
	table := newRuleTable()
	info := &data.PageInfo{Tags: []string{}}
	wikiSettings := settings.NewWikitextSettings(settings.ModeForumPost) // NoConditionals = true

	result := runEntryRule(iftagsTokens("+scary"), info, wikiSettings, table)
	succ, ok := result.Unwrap()
	require.True(t, ok)
	require.Len(t, succ.Item.Slice(), 1)
}

// TestParseIftagsDoesNotDoubleWrapParagraph drives the whole pipeline
// (the way parsing.Parse is actually invoked) rather than the entry rule
// in isolation, so it catches double-paragraph-wrapping that only shows
// up once an outer GatherParagraphs is in play.
func TestParseIftagsDoesNotDoubleWrapParagraph(t *testing.T) {
	table := parsing.NewRuleTable()
	RegisterAll(table, nil)

	outcome := parsing.Parse(iftagsTokens("+dog"), &data.PageInfo{Tags: []string{"dog"}}, nil, nil, table, nil)

	require.Len(t, outcome.Tree.Elements, 2) // the paragraph, plus the implicit footnote block
	para, ok := outcome.Tree.Elements[0].(*tree.Container)
	require.True(t, ok)
	require.Equal(t, tree.ContainerParagraph, para.Kind)
	require.Len(t, para.Children, 1)
	text, ok := para.Children[0].(*tree.Text)
	require.True(t, ok)
	require.Equal(t, "hidden", text.Slice)
}
