package parsing

import (
	"fmt"

	"github.com/demizer/ftml-go/pkg/tree"
)

// DepthItem is one node of a DepthList: either a leaf Item or a nested
// List (spec.md §4.5).
type DepthItem struct {
	IsList   bool
	Payload  string // valid when !IsList
	Children []DepthItem
}

// BuildDepthList turns a flat sequence of (depth, payload) pairs into a
// nested list by monotonic promotion/demotion (spec.md §4.5). Depth gaps
// (e.g. jumping from depth 0 straight to depth 2) synthesize empty
// intermediate List nodes so every item still has a well-formed parent
// chain; no input item is ever dropped.
func BuildDepthList(entries []TOCEntry) []DepthItem {
	type frame struct {
		depth    int
		children *[]DepthItem
	}
	root := make([]DepthItem, 0)
	// The sentinel frame's depth must equal the shallowest real depth
	// (0, never negative): entries arrive depth-first as they come, and
	// the first entry is almost always depth 0, which needs to land
	// directly in root rather than under a synthesized wrapper List.
	stack := []frame{{depth: 0, children: &root}}

	for _, e := range entries {
		for len(stack) > 1 && stack[len(stack)-1].depth > e.Depth {
			stack = stack[:len(stack)-1]
		}
		for stack[len(stack)-1].depth < e.Depth {
			parent := stack[len(stack)-1]
			newList := DepthItem{IsList: true}
			*parent.children = append(*parent.children, newList)
			last := &(*parent.children)[len(*parent.children)-1]
			stack = append(stack, frame{depth: stack[len(stack)-1].depth + 1, children: &last.Children})
			if stack[len(stack)-1].depth == e.Depth {
				break
			}
		}
		top := stack[len(stack)-1]
		*top.children = append(*top.children, DepthItem{Payload: e.Title})
	}
	return root
}

// Incrementer is a monotonic counter used to assign TOC anchor indices
// in depth-first order (spec.md §4.5).
type Incrementer struct{ n int }

// Next returns the next value, starting at 0.
func (inc *Incrementer) Next() int {
	v := inc.n
	inc.n++
	return v
}

// BuildTOCElements walks a DepthList and produces the anchor-linked
// Fragment spec.md §4.5 describes: each leaf becomes a Div containing a
// link to "#toc<N>" with an inline left-margin indent, and each nested
// list recurses at depth+1.
func BuildTOCElements(items []DepthItem) tree.Element {
	inc := &Incrementer{}
	children := buildTOCLevel(items, 0, inc)
	return tree.NewFragment(children)
}

func buildTOCLevel(items []DepthItem, depth int, inc *Incrementer) []tree.Element {
	var out []tree.Element
	for _, item := range items {
		if item.IsList {
			out = append(out, buildTOCLevel(item.Children, depth+1, inc)...)
			continue
		}
		anchor := fmt.Sprintf("toc%d", inc.Next())
		attrs := tree.NewAttributeMap()
		attrs.Insert("style", fmt.Sprintf("margin-left: %dem", 2*depth))
		link := &tree.Link{
			Type:   tree.LinkTypeAnchor,
			Target: "#" + anchor,
			Label:  item.Payload,
		}
		div := &tree.Container{
			Kind:     tree.ContainerDiv,
			Children: []tree.Element{link},
			Attrs:    attrs,
		}
		out = append(out, div)
	}
	return out
}
