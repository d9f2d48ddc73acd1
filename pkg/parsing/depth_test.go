package parsing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demizer/ftml-go/pkg/tree"
)

func TestBuildDepthListFlatSameDepth(t *testing.T) {
	entries := []TOCEntry{{Depth: 0, Title: "A"}, {Depth: 0, Title: "B"}}
	got := BuildDepthList(entries)
	require.Len(t, got, 2)
	require.False(t, got[0].IsList)
	require.Equal(t, "A", got[0].Payload)
	require.Equal(t, "B", got[1].Payload)
}

func TestBuildDepthListNesting(t *testing.T) {
	// "+ Top\n++ Sub\n+ Top2" from spec.md §8 scenario 2.
	entries := []TOCEntry{{Depth: 0, Title: "Top"}, {Depth: 1, Title: "Sub"}, {Depth: 0, Title: "Top2"}}
	got := BuildDepthList(entries)
	require.Len(t, got, 3)
	require.Equal(t, "Top", got[0].Payload)
	require.True(t, got[1].IsList)
	require.Len(t, got[1].Children, 1)
	require.Equal(t, "Sub", got[1].Children[0].Payload)
	require.Equal(t, "Top2", got[2].Payload)
}

func TestBuildDepthListSkippedLevels(t *testing.T) {
	entries := []TOCEntry{{Depth: 0, Title: "Root"}, {Depth: 2, Title: "Grandchild"}}
	got := BuildDepthList(entries)
	require.Len(t, got, 2)
	require.True(t, got[1].IsList)
	require.Len(t, got[1].Children, 1)
	require.True(t, got[1].Children[0].IsList)
	require.Len(t, got[1].Children[0].Children, 1)
	require.Equal(t, "Grandchild", got[1].Children[0].Children[0].Payload)
}

func TestBuildTOCElementsAnchorNumbering(t *testing.T) {
	entries := []TOCEntry{{Depth: 0, Title: "Top"}, {Depth: 1, Title: "Sub"}, {Depth: 0, Title: "Top2"}}
	frag := BuildTOCElements(BuildDepthList(entries))
	require.NotNil(t, frag)

	fragment, ok := frag.(*tree.Fragment)
	require.True(t, ok)
	require.Len(t, fragment.Children, 3)
	for i, want := range []string{"#toc0", "#toc1", "#toc2"} {
		div, ok := fragment.Children[i].(*tree.Container)
		require.True(t, ok)
		link, ok := div.Children[0].(*tree.Link)
		require.True(t, ok)
		require.Equal(t, want, link.Target)
	}
}
