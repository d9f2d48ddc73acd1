// Package data holds the value records and capability interface the host
// application supplies to the parser and renderers: PageInfo, PageRef,
// and PageCallbacks (spec.md §6 "External Interfaces").
package data

// PageInfo describes the page currently being parsed/rendered. All
// fields are read-only during parsing (spec.md §6).
type PageInfo struct {
	Page     string
	Category string
	Site     string
	Title    string
	AltTitle string
	Score    float64
	Tags     []string
	Language string
}

// HasTag reports whether tag is present in PageInfo.Tags.
func (p *PageInfo) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PageRef identifies another page, as produced by internal link
// accumulation or by PageCallbacks.GetPageInfo / FetchIncludedWikitext.
type PageRef struct {
	Site *string
	Page string
}
