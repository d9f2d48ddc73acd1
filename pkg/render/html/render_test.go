package html

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/tree"
)

func TestRenderParagraphAndLink(t *testing.T) {
	linkAttrs := tree.NewAttributeMap()
	st := &tree.SyntaxTree{
		Elements: []tree.Element{
			&tree.Container{
				Kind: tree.ContainerParagraph,
				Children: []tree.Element{
					&tree.Text{Slice: "see "},
					&tree.Link{Type: tree.LinkTypeURL, Target: "https://example.com", Label: "here"},
				},
				Attrs: linkAttrs,
			},
		},
	}

	got, err := Renderer{}.Render(st, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, `<p>see <a href="https://example.com">here</a></p>`, got)
}

func TestRenderImageFallsBackWhenCallbackRejects(t *testing.T) {
	st := &tree.SyntaxTree{
		Elements: []tree.Element{
			&tree.Image{Source: "missing.png"},
		},
	}

	got, err := Renderer{}.Render(st, nil, rejectingCallbacks{}, nil)
	require.NoError(t, err)
	require.Contains(t, got, `class="error-block"`)
}

func TestRenderImageAlignmentClass(t *testing.T) {
	st := &tree.SyntaxTree{
		Elements: []tree.Element{
			&tree.Image{
				Source:    "cat.png",
				Alignment: &tree.ImageAlignment{Align: tree.AlignRight, Float: true},
			},
		},
	}

	got, err := Renderer{}.Render(st, nil, acceptingCallbacks{}, nil)
	require.NoError(t, err)
	require.Contains(t, got, `class="image-container floatright"`)
	require.Contains(t, got, `src="https://cdn.example/cat.png"`)
}

func TestRenderFootnotesAndImplicitBlockTitle(t *testing.T) {
	st := &tree.SyntaxTree{
		Elements: []tree.Element{
			&tree.Text{Slice: "body"},
			&tree.FootnoteRef{ID: 1},
			&tree.FootnoteBlock{},
		},
		Footnotes: []tree.Footnote{
			{Elements: []tree.Element{&tree.Text{Slice: "note one"}}},
		},
	}

	got, err := Renderer{}.Render(st, nil, nil, nil)
	require.NoError(t, err)
	require.Contains(t, got, `<sup><a href="#footnote-1">1</a></sup>`)
	require.Contains(t, got, `class="title"`)
	require.Contains(t, got, `id="footnote-1"`)
	require.Contains(t, got, "note one")
}

func TestRenderCodeBlockByID(t *testing.T) {
	st := &tree.SyntaxTree{
		Elements: []tree.Element{&tree.CodeBlock{ID: 0}},
		Code:     []tree.CodeBlockEntry{{Language: "go", Body: "package main"}},
	}

	got, err := Renderer{}.Render(st, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, `<pre data-language="go"><code>package main</code></pre>`, got)
}

func TestRenderModuleSkippedWhenNoModulesSetting(t *testing.T) {
	st := &tree.SyntaxTree{
		Elements: []tree.Element{&tree.Module{Name: "ListPages"}},
	}

	noModules := settings.NewWikitextSettings(settings.ModePage)
	noModules.NoModules = true

	got, err := Renderer{}.Render(st, nil, nil, noModules)
	require.NoError(t, err)
	require.Empty(t, got)
}

type rejectingCallbacks struct{ data.NullCallbacks }

func (rejectingCallbacks) GetImageLink(source string, info *data.PageInfo) (string, bool) {
	return "", false
}

func (rejectingCallbacks) GetMessage(key string) string { return "" }

type acceptingCallbacks struct{ data.NullCallbacks }

func (acceptingCallbacks) GetImageLink(source string, info *data.PageInfo) (string, bool) {
	return "https://cdn.example/" + source, true
}
