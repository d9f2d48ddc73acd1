package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// headingLineTokens builds the tokens for one "+...+ Title\n" line.
func headingLineTokens(plusses int, title string) token.Tokens {
	tokens := token.Tokens{
		{Kind: token.HeadingMarker, Slice: repeatPlus(plusses)},
		{Kind: token.Whitespace, Slice: " "},
		{Kind: token.Word, Slice: title},
		{Kind: token.Newline, Slice: "\n"},
	}
	return tokens
}

func repeatPlus(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = '+'
	}
	return string(out)
}

// TestParseHeadingsBuildNestedTOC exercises spec.md §8 scenario 2: "+
// Top" / "++ Sub" / "+ Top2" produces three Heading containers and one
// TOC Fragment holding a Div entry per heading.
func TestParseHeadingsBuildNestedTOC(t *testing.T) {
	table := parsing.NewRuleTable()
	RegisterAll(table, nil)

	var tokens token.Tokens
	tokens = append(tokens, headingLineTokens(1, "Top")...)
	tokens = append(tokens, headingLineTokens(2, "Sub")...)
	tokens = append(tokens, headingLineTokens(1, "Top2")...)

	outcome := parsing.Parse(tokens, nil, nil, nil, table, nil)

	require.Empty(t, outcome.Warnings)

	var headings []*tree.Container
	for _, el := range outcome.Tree.Elements {
		if c, ok := el.(*tree.Container); ok && c.Kind == tree.ContainerHeading {
			headings = append(headings, c)
		}
	}
	require.Len(t, headings, 3)
	require.Equal(t, 1, headings[0].Level)
	require.Equal(t, 2, headings[1].Level)
	require.Equal(t, 1, headings[2].Level)

	require.Len(t, outcome.Tree.TableOfContents, 1)
	fragment, ok := outcome.Tree.TableOfContents[0].(*tree.Fragment)
	require.True(t, ok)
	require.Len(t, fragment.Children, 3)

	_, topIsDiv := fragment.Children[0].(*tree.Container)
	require.True(t, topIsDiv)
	_, subListIsDiv := fragment.Children[1].(*tree.Container)
	require.True(t, subListIsDiv)
}
