package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// nestedDivTokens builds depth levels of nested `[[div]]...[[/div]]`
// wrapping a single word.
func nestedDivTokens(depth int) token.Tokens {
	var tokens token.Tokens
	for i := 0; i < depth; i++ {
		tokens = append(tokens,
			token.Item{Kind: token.BlockOpen, Slice: "[["},
			token.Item{Kind: token.Word, Slice: "div"},
			token.Item{Kind: token.BlockClose, Slice: "]]"},
		)
	}
	tokens = append(tokens, token.Item{Kind: token.Word, Slice: "deep"})
	for i := 0; i < depth; i++ {
		tokens = append(tokens, token.Item{Kind: token.BlockEnd, Slice: "div"})
	}
	return tokens
}

// TestParseDegeneratesOnRecursionDepthExceeded exercises the top-level
// fatal path (spec.md §4.6, §7): nesting one level past the configured
// maximum bubbles MaxDepthExceeded all the way up through Dispatch and
// GatherParagraphs instead of being swallowed as an ordinary per-rule
// failure, and Parse falls back to the degenerate tree.
func TestParseDegeneratesOnRecursionDepthExceeded(t *testing.T) {
	table := parsing.NewRuleTable()
	RegisterAll(table, nil)

	wikiSettings := settings.NewWikitextSettings(settings.ModePage)
	wikiSettings.MaxRecursionDepth = 3

	outcome := parsing.Parse(nestedDivTokens(4), nil, nil, wikiSettings, table, nil)

	require.Len(t, outcome.Warnings, 1)
	require.Equal(t, parsing.WarnMaxDepthExceeded, outcome.Warnings[0].Kind)

	require.Len(t, outcome.Tree.Elements, 1)
	text, ok := outcome.Tree.Elements[0].(*tree.Text)
	require.True(t, ok)
	require.Contains(t, text.Slice, "div")
	require.Empty(t, outcome.Tree.Footnotes)
	require.Empty(t, outcome.Tree.TableOfContents)
}
