package tree

// AttributeMap is an ordered mapping from attribute name to attribute
// value. Insertion order is preserved so renderers produce stable,
// reproducible output (spec.md §3, "Attributes").
//
// Grounded on the teacher's NodeList ([]Node) pattern of keeping a plain
// slice as the backing store rather than reaching for an ordered-map
// library; the corpus has no dependency that does this better than a
// small slice type would.
type AttributeMap struct {
	keys   []string
	values map[string]string
}

// NewAttributeMap returns an empty, ready-to-use AttributeMap.
func NewAttributeMap() AttributeMap {
	return AttributeMap{values: make(map[string]string)}
}

// Insert adds or overwrites an attribute. The first insertion of a given
// key fixes its position in iteration order; re-inserting the same key
// updates the value in place without moving it.
func (a *AttributeMap) Insert(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value for key and whether it was present.
func (a AttributeMap) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Len returns the number of attributes.
func (a AttributeMap) Len() int { return len(a.keys) }

// Each calls fn for every attribute in insertion order.
func (a AttributeMap) Each(fn func(key, value string)) {
	for _, k := range a.keys {
		fn(k, a.values[k])
	}
}

// Equal reports whether a and b hold the same key/value pairs in the
// same order. Having this method lets go-cmp compare AttributeMap by
// value instead of panicking on its unexported fields.
func (a AttributeMap) Equal(b AttributeMap) bool {
	if len(a.keys) != len(b.keys) {
		return false
	}
	for i, k := range a.keys {
		if b.keys[i] != k || a.values[k] != b.values[k] {
			return false
		}
	}
	return true
}
