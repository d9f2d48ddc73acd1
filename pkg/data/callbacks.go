package data

// PageCallbacks is the capability interface the host supplies so the
// parser/renderer can resolve page metadata and resources without
// performing any I/O of its own (spec.md §6, §9 "Callbacks as a
// capability interface"). There is no inheritance hierarchy here, just a
// flat set of methods a host implements; a "null" implementation (see
// NullCallbacks) is the test default, grounded on the Rust original's
// "process-wide null implementation is the test default" note.
type PageCallbacks interface {
	// GetImageLink resolves an image source to a URL. ok is false if the
	// source could not be resolved (missing file, disallowed scheme, …).
	GetImageLink(source string, info *PageInfo) (url string, ok bool)

	// RenderModule renders a [[module name]] invocation to a string that
	// is inlined verbatim by the caller.
	RenderModule(name string, params map[string]string, text string) string

	// GetMessage looks up a localized UI message by key.
	GetMessage(key string) string

	// GetPageInfo fetches metadata for another page, if it exists.
	GetPageInfo(ref PageRef) (*PageInfo, bool)

	// FetchIncludedWikitext resolves an [[include]] target to raw
	// wikitext, if the page exists.
	FetchIncludedWikitext(ref PageRef) (string, bool)
}

// NullCallbacks is a PageCallbacks implementation that resolves nothing
// and renders nothing; it is the default used by tests and by callers
// that have no host-side resources to offer.
type NullCallbacks struct{}

func (NullCallbacks) GetImageLink(string, *PageInfo) (string, bool) { return "", false }

func (NullCallbacks) RenderModule(name string, _ map[string]string, _ string) string { return "" }

func (NullCallbacks) GetMessage(key string) string { return key }

func (NullCallbacks) GetPageInfo(PageRef) (*PageInfo, bool) { return nil, false }

func (NullCallbacks) FetchIncludedWikitext(PageRef) (string, bool) { return "", false }

var _ PageCallbacks = NullCallbacks{}
