// Package render defines the generic renderer entry point (spec.md
// §4.7): a single operation from a SyntaxTree to backend-defined Output.
package render

import (
	"github.com/demizer/ftml-go/pkg/data"
	"github.com/demizer/ftml-go/pkg/settings"
	"github.com/demizer/ftml-go/pkg/tree"
)

// Renderer is any backend's render operation. O is the backend's Output
// type: string for HTML/text/JSON, a structural value for debug
// renderers. The teacher predates generics (see pkg/parsing/result.go's
// ParseResult[T] for the same justification); this is the idiomatic
// rendition of the Rust `Render` trait's associated-type output given
// this module's 1.22 floor.
//
// The trailing error is reserved for caller bugs (a malformed tree that
// violates an AST invariant), never for wikitext-content problems: a
// backend facing unexpected input omits or substitutes, it doesn't fail
// (spec.md §7, "rendering may omit or replace sub-trees but never
// fails" — that guarantee is about content, not about programmer error).
type Renderer[O any] interface {
	Render(t *tree.SyntaxTree, info *data.PageInfo, callbacks data.PageCallbacks, wikiSettings *settings.WikitextSettings) (O, error)
}
