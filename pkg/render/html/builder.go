package html

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/demizer/ftml-go/pkg/tree"
)

// tagBuilder is a small fluent wrapper over beevik/etree's Element,
// giving the renderer the `tag().attr(...).contents(...)` shape spec.md
// §4.7's sketch describes without hand-rolling an HTML string builder.
// etree is an XML library; HTML's tag/attribute grammar is a subset of
// XML's for every element this renderer emits (no raw "<" in attribute
// values, self-closing void elements aside), so it serializes cleanly.
type tagBuilder struct {
	elem *etree.Element
}

func tag(name string) *tagBuilder {
	return &tagBuilder{elem: etree.NewElement(name)}
}

func (b *tagBuilder) attr(key, value string) *tagBuilder {
	b.elem.CreateAttr(key, value)
	return b
}

func (b *tagBuilder) class(names ...string) *tagBuilder {
	filtered := names[:0]
	for _, n := range names {
		if n != "" {
			filtered = append(filtered, n)
		}
	}
	if len(filtered) > 0 {
		b.attr("class", strings.Join(filtered, " "))
	}
	return b
}

func (b *tagBuilder) inner(text string) *tagBuilder {
	b.elem.SetText(text)
	return b
}

func (b *tagBuilder) child(c *tagBuilder) *tagBuilder {
	b.elem.AddChild(c.elem)
	return b
}

func (b *tagBuilder) children(cs ...*tagBuilder) *tagBuilder {
	for _, c := range cs {
		b.child(c)
	}
	return b
}

// contents runs f against this builder, for call sites that want to
// attach children conditionally without breaking the fluent chain.
func (b *tagBuilder) contents(f func(*tagBuilder)) *tagBuilder {
	f(b)
	return b
}

func (b *tagBuilder) String() string {
	doc := etree.NewDocument()
	doc.SetRoot(b.elem.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

// rawHTML wraps a pre-formed HTML/text fragment (e.g. a module's
// rendered output, or inlined raw HTML) so it can sit alongside
// tagBuilder output in a join without re-escaping.
type rawHTML string

// buildTag builds a tagBuilder for a content-free, attribute-only tag
// (img, and similar void elements) by copying attrs across. Reserved for
// tags with no rendered text/child content: tagBuilder.inner's
// SetText-based escaping doesn't promise the same entity set as
// html.EscapeString, so any tag carrying rendered text or pre-rendered
// child HTML is built by wrap/wrapSelfClosing in render.go instead, to
// keep escaping consistent with the rest of the renderer.
func buildTag(name string, attrs tree.AttributeMap) *tagBuilder {
	b := tag(name)
	attrs.Each(func(k, v string) { b.attr(k, v) })
	return b
}
