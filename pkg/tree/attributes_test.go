package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributeMapPreservesInsertionOrder(t *testing.T) {
	a := NewAttributeMap()
	a.Insert("class", "foo")
	a.Insert("id", "bar")
	a.Insert("class", "foo baz") // re-insert updates in place, doesn't move

	var gotKeys []string
	var gotVals []string
	a.Each(func(k, v string) {
		gotKeys = append(gotKeys, k)
		gotVals = append(gotVals, v)
	})

	assert.Equal(t, []string{"class", "id"}, gotKeys)
	assert.Equal(t, []string{"foo baz", "bar"}, gotVals)
	assert.Equal(t, 2, a.Len())
}

func TestAttributeMapGetMissing(t *testing.T) {
	a := NewAttributeMap()
	_, ok := a.Get("missing")
	assert.False(t, ok)
}
