// Package tree defines the abstract syntax tree produced by the parser:
// the closed Element union, the Elements wrapper a rule returns, and the
// final owned SyntaxTree (spec.md §3 "Data Model").
package tree

import (
	"fmt"

	"github.com/demizer/ftml-go/pkg/token"
)

// Kind discriminates the Element union. Grounded on the teacher's
// NodeType: an int enum with a String() lookup table, used as the
// discriminator of a struct-per-variant sum type (spec.md §9 "Sum types").
type Kind int

const (
	KindText Kind = iota
	KindContainer
	KindLink
	KindImage
	KindModule
	KindFootnoteRef
	KindFootnoteBlock
	KindTableOfContents
	KindCodeBlock
	KindHtmlBlock
	KindFragment
	KindAnchor
	KindLineBreak
	KindHorizontalRule
)

var kindNames = [...]string{
	"Text",
	"Container",
	"Link",
	"Image",
	"Module",
	"FootnoteRef",
	"FootnoteBlock",
	"TableOfContents",
	"CodeBlock",
	"HtmlBlock",
	"Fragment",
	"Anchor",
	"LineBreak",
	"HorizontalRule",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Element is the interface satisfied by every concrete AST node. Each
// concrete type below is a variant of the tagged union; ElementKind
// identifies which one, the way NodeType() does on the teacher's Node
// types.
type Element interface {
	ElementKind() Kind
}

// ContainerKind enumerates the block/inline container flavors. Heading
// carries its level (1..6) separately rather than as six distinct Kind
// values, following the teacher's single SectionNode.Level field rather
// than one NodeType per heading level.
type ContainerKind int

const (
	ContainerParagraph ContainerKind = iota
	ContainerDiv
	ContainerSpan
	ContainerBold
	ContainerItalic
	ContainerUnderline
	ContainerStrikethrough
	ContainerMonospace
	ContainerHeading
	ContainerBlockQuote
	ContainerUnorderedList
	ContainerOrderedList
	ContainerListItem
)

var containerKindNames = [...]string{
	"Paragraph",
	"Div",
	"Span",
	"Bold",
	"Italic",
	"Underline",
	"Strikethrough",
	"Monospace",
	"Heading",
	"BlockQuote",
	"UnorderedList",
	"OrderedList",
	"ListItem",
}

func (c ContainerKind) String() string {
	if int(c) < 0 || int(c) >= len(containerKindNames) {
		return fmt.Sprintf("ContainerKind(%d)", int(c))
	}
	return containerKindNames[c]
}

// Text is ordinary text, referencing a span of the original input.
type Text struct {
	Slice string
	Span  token.Span
}

func NewText(slice string, span token.Span) *Text { return &Text{Slice: slice, Span: span} }

func (*Text) ElementKind() Kind { return KindText }

// Container is a generic block or inline wrapper: headings, paragraphs,
// divs, spans, bold/italic/etc runs, list structure.
type Container struct {
	Kind     ContainerKind
	Level    int // heading level 1..6; zero for non-heading containers
	Children []Element
	Attrs    AttributeMap
}

func NewContainer(kind ContainerKind, children []Element, attrs AttributeMap) *Container {
	return &Container{Kind: kind, Children: children, Attrs: attrs}
}

func (*Container) ElementKind() Kind { return KindContainer }

// LinkType identifies what a Link points at.
type LinkType int

const (
	LinkTypePage LinkType = iota
	LinkTypeURL
	LinkTypeInterwiki
	LinkTypeTableOfContents
	LinkTypeAnchor
)

var linkTypeNames = [...]string{"Page", "Url", "Interwiki", "TableOfContents", "Anchor"}

func (l LinkType) String() string {
	if int(l) < 0 || int(l) >= len(linkTypeNames) {
		return fmt.Sprintf("LinkType(%d)", int(l))
	}
	return linkTypeNames[l]
}

// AnchorTarget is the HTML anchor target attribute, e.g. "_blank".
type AnchorTarget int

const (
	AnchorTargetSame AnchorTarget = iota
	AnchorTargetNewTab
)

func (a AnchorTarget) HTMLAttr() string {
	if a == AnchorTargetNewTab {
		return "_blank"
	}
	return "_self"
}

// Link is an internal or external hyperlink.
type Link struct {
	Type         LinkType
	Target       string
	Label        string // empty means "use the target as the label"
	AnchorTarget *AnchorTarget
}

func (*Link) ElementKind() Kind { return KindLink }

// Alignment is the float/alignment pair used by Image, matching the
// render table in spec.md §4.7.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// ImageAlignment pairs an Alignment with whether the image floats.
type ImageAlignment struct {
	Align Alignment
	Float bool
}

// Image is an embedded image, optionally wrapped in a link.
type Image struct {
	Source    string
	Link      *Link
	Alignment *ImageAlignment
	Attrs     AttributeMap
}

func (*Image) ElementKind() Kind { return KindImage }

// Module is a delegated, host-rendered component.
type Module struct {
	Name   string
	Params AttributeMap
	Body   string
}

func (*Module) ElementKind() Kind { return KindModule }

// FootnoteRef is an inline reference to a footnote by index into the
// accumulated footnotes list.
type FootnoteRef struct {
	ID int
}

func (*FootnoteRef) ElementKind() Kind { return KindFootnoteRef }

// FootnoteBlock marks where the rendered footnote list appears.
type FootnoteBlock struct {
	Title *string
	Hide  bool
}

func (*FootnoteBlock) ElementKind() Kind { return KindFootnoteBlock }

// TableOfContents marks where the rendered TOC appears.
type TableOfContents struct{}

func (*TableOfContents) ElementKind() Kind { return KindTableOfContents }

// CodeBlock references an accumulated (language, body) pair by index.
type CodeBlock struct {
	ID int
}

func (*CodeBlock) ElementKind() Kind { return KindCodeBlock }

// HtmlBlock references an accumulated raw HTML body by index.
type HtmlBlock struct {
	ID int
}

func (*HtmlBlock) ElementKind() Kind { return KindHtmlBlock }

// Fragment is a transparent grouping of elements with no container of its
// own. By construction Fragment children are never themselves Fragment
// (spec.md §3 invariant); renderers still tolerate it if it occurs.
type Fragment struct {
	Children []Element
}

func NewFragment(children []Element) *Fragment { return &Fragment{Children: flattenFragments(children)} }

func flattenFragments(children []Element) []Element {
	out := make([]Element, 0, len(children))
	for _, c := range children {
		if f, ok := c.(*Fragment); ok {
			out = append(out, f.Children...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (*Fragment) ElementKind() Kind { return KindFragment }

// Anchor is a named jump target, e.g. for headings with use_true_ids.
type Anchor struct {
	ID string
}

func (*Anchor) ElementKind() Kind { return KindAnchor }

// LineBreak is a manual line break (" \\\n" in source).
type LineBreak struct{}

func (*LineBreak) ElementKind() Kind { return KindLineBreak }

// HorizontalRule is a "----" transition rule.
type HorizontalRule struct{}

func (*HorizontalRule) ElementKind() Kind { return KindHorizontalRule }
