// Package html implements the sample HTML backend named in spec.md
// §4.7: a depth-first walk over the SyntaxTree, emitting tags through a
// small etree-backed builder, resolving images/modules through
// PageCallbacks, and escaping text content.
package html

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/tree"
)

// ErrNilTree is returned when Render is asked to render a nil
// SyntaxTree: a malformed-input condition on the caller's part, not a
// wikitext-content problem, so it surfaces through the error return
// rather than an omission (spec.md §7).
var ErrNilTree = errors.New("html: cannot render a nil syntax tree")

// Renderer implements render.Renderer[string] for the HTML backend.
type Renderer struct{}

// containerTags maps each ContainerKind to its emitted tag name; Heading
// is special-cased on Level since it isn't a fixed tag.
var containerTags = map[tree.ContainerKind]string{
	tree.ContainerParagraph:     "p",
	tree.ContainerDiv:           "div",
	tree.ContainerSpan:          "span",
	tree.ContainerBold:          "strong",
	tree.ContainerItalic:        "em",
	tree.ContainerUnderline:     "u",
	tree.ContainerStrikethrough: "s",
	tree.ContainerMonospace:     "tt",
	tree.ContainerBlockQuote:    "blockquote",
	tree.ContainerUnorderedList: "ul",
	tree.ContainerOrderedList:   "ol",
	tree.ContainerListItem:      "li",
}

// Render walks t.Elements and produces a single HTML string. Deterministic
// in tree content and settings; callbacks are the only side channel
// (spec.md §4.7).
func (Renderer) Render(t *tree.SyntaxTree, info *data.PageInfo, callbacks data.PageCallbacks, wikiSettings *settings.WikitextSettings) (string, error) {
	if t == nil {
		return "", ErrNilTree
	}
	if callbacks == nil {
		callbacks = data.NullCallbacks{}
	}
	if wikiSettings == nil {
		wikiSettings = settings.NewWikitextSettings(settings.ModePage)
	}
	ctx := &renderContext{tree: t, info: info, callbacks: callbacks, settings: wikiSettings}

	var sb strings.Builder
	for _, el := range t.Elements {
		sb.WriteString(ctx.renderElement(el))
	}
	return sb.String(), nil
}

type renderContext struct {
	tree      *tree.SyntaxTree
	info      *data.PageInfo
	callbacks data.PageCallbacks
	settings  *settings.WikitextSettings
}

func (ctx *renderContext) renderElement(el tree.Element) string {
	switch e := el.(type) {
	case *tree.Text:
		return html.EscapeString(e.Slice)
	case *tree.Container:
		return ctx.renderContainer(e)
	case *tree.Link:
		return ctx.renderLink(e)
	case *tree.Image:
		return ctx.renderImage(e)
	case *tree.Module:
		return ctx.renderModule(e)
	case *tree.FootnoteRef:
		return ctx.renderFootnoteRef(e)
	case *tree.FootnoteBlock:
		return ctx.renderFootnoteBlock(e)
	case *tree.TableOfContents:
		return ctx.renderTOC()
	case *tree.CodeBlock:
		return ctx.renderCode(e)
	case *tree.HtmlBlock:
		return ctx.renderRawHTML(e)
	case *tree.Fragment:
		var sb strings.Builder
		for _, c := range e.Children {
			sb.WriteString(ctx.renderElement(c))
		}
		return sb.String()
	case *tree.Anchor:
		return tag("a").attr("name", e.ID).String()
	case *tree.LineBreak:
		return tag("br").String()
	case *tree.HorizontalRule:
		return tag("hr").String()
	default:
		return ""
	}
}

func (ctx *renderContext) renderChildren(children []tree.Element) string {
	var sb strings.Builder
	for _, c := range children {
		sb.WriteString(ctx.renderElement(c))
	}
	return sb.String()
}

func (ctx *renderContext) renderContainer(c *tree.Container) string {
	name := "div"
	if c.Kind == tree.ContainerHeading {
		level := c.Level
		if level < 1 || level > 6 {
			level = 1
		}
		name = "h" + strconv.Itoa(level)
	} else if t, ok := containerTags[c.Kind]; ok {
		name = t
	}

	return wrap(name, c.Attrs, ctx.renderChildren(c.Children))
}

// wrap renders a tag by hand rather than through tagBuilder.String(): its
// inner argument is either pre-rendered child HTML (tagBuilder.inner's
// SetText would double-escape it) or text that must match
// html.EscapeString's entity set exactly, which etree's XML-text escaping
// doesn't guarantee. Content-free tags (img, br, hr, the name-only
// Anchor) have neither problem and go through tagBuilder: img via
// buildTag, the others via tag directly.
func wrap(name string, attrs tree.AttributeMap, inner string) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	attrs.Each(func(k, v string) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(v))
		sb.WriteByte('"')
	})
	sb.WriteByte('>')
	sb.WriteString(inner)
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteByte('>')
	return sb.String()
}

func (ctx *renderContext) renderLink(l *tree.Link) string {
	attrs := tree.NewAttributeMap()
	attrs.Insert("href", l.Target)
	if l.AnchorTarget != nil {
		attrs.Insert("target", l.AnchorTarget.HTMLAttr())
	}
	label := l.Label
	if label == "" {
		label = l.Target
	}
	return wrap("a", attrs, html.EscapeString(label))
}

// imageAlignmentClass maps alignment/float to the container class per
// spec.md §4.7's table.
func imageAlignmentClass(a *tree.ImageAlignment) string {
	if a == nil {
		return ""
	}
	switch {
	case a.Align == tree.AlignLeft && a.Float:
		return "floatleft"
	case a.Align == tree.AlignRight && a.Float:
		return "floatright"
	case a.Align == tree.AlignLeft && !a.Float:
		return "alignleft"
	case a.Align == tree.AlignRight && !a.Float:
		return "alignright"
	case a.Align == tree.AlignCenter && !a.Float:
		return "aligncenter"
	default:
		return ""
	}
}

func (ctx *renderContext) renderImage(img *tree.Image) string {
	url, ok := ctx.callbacks.GetImageLink(img.Source, ctx.info)
	var body string
	if !ok {
		msg := ctx.callbacks.GetMessage("image-context-bad")
		if msg == "" {
			msg = "image-context-bad"
		}
		body = wrap("div", classAttrs("error-block"), html.EscapeString(msg))
	} else {
		attrs := tree.NewAttributeMap()
		attrs.Insert("src", url)
		attrs.Insert("alt", altFromSource(img.Source))
		img.Attrs.Each(func(k, v string) {
			if k != "align" && k != "link" {
				attrs.Insert(k, v)
			}
		})
		body = buildTag("img", attrs).String()
		if img.Link != nil {
			la := tree.NewAttributeMap()
			la.Insert("href", img.Link.Target)
			body = wrap("a", la, body)
		}
	}

	class := imageAlignmentClass(img.Alignment)
	if class == "" {
		return body
	}
	return wrap("div", classAttrs("image-container", class), body)
}

func classAttrs(names ...string) tree.AttributeMap {
	a := tree.NewAttributeMap()
	a.Insert("class", strings.Join(names, " "))
	return a
}

func altFromSource(source string) string {
	if i := strings.LastIndexByte(source, '/'); i >= 0 {
		return source[i+1:]
	}
	return source
}

func (ctx *renderContext) renderModule(m *tree.Module) string {
	if ctx.settings.NoModules {
		return ""
	}
	params := make(map[string]string)
	m.Params.Each(func(k, v string) { params[k] = v })
	return ctx.callbacks.RenderModule(m.Name, params, m.Body)
}

func (ctx *renderContext) renderFootnoteRef(ref *tree.FootnoteRef) string {
	href := fmt.Sprintf("#footnote-%d", ref.ID)
	return wrap("sup", tree.NewAttributeMap(), wrap("a", singleAttr("href", href), strconv.Itoa(ref.ID)))
}

func singleAttr(k, v string) tree.AttributeMap {
	a := tree.NewAttributeMap()
	a.Insert(k, v)
	return a
}

func (ctx *renderContext) renderFootnoteBlock(fb *tree.FootnoteBlock) string {
	if fb.Hide || len(ctx.tree.Footnotes) == 0 {
		return ""
	}
	title := "Footnotes"
	if fb.Title != nil {
		title = *fb.Title
	}
	var items strings.Builder
	for i, fn := range ctx.tree.Footnotes {
		items.WriteString(wrap("li", singleAttr("id", fmt.Sprintf("footnote-%d", i+1)), ctx.renderChildren(fn.Elements)))
	}
	body := wrap("div", classAttrs("title"), html.EscapeString(title)) + wrap("ol", tree.NewAttributeMap(), items.String())
	return wrap("div", classAttrs("footnotes-footer"), body)
}

func (ctx *renderContext) renderTOC() string {
	var sb strings.Builder
	for _, el := range ctx.tree.TableOfContents {
		sb.WriteString(ctx.renderElement(el))
	}
	return wrap("div", classAttrs("toc"), sb.String())
}

func (ctx *renderContext) renderCode(cb *tree.CodeBlock) string {
	if cb.ID < 0 || cb.ID >= len(ctx.tree.Code) {
		return ""
	}
	entry := ctx.tree.Code[cb.ID]
	attrs := tree.NewAttributeMap()
	if entry.Language != "" {
		attrs.Insert("data-language", entry.Language)
	}
	return wrap("pre", attrs, wrap("code", tree.NewAttributeMap(), html.EscapeString(entry.Body)))
}

func (ctx *renderContext) renderRawHTML(hb *tree.HtmlBlock) string {
	if hb.ID < 0 || hb.ID >= len(ctx.tree.HTML) {
		return ""
	}
	return ctx.tree.HTML[hb.ID]
}
