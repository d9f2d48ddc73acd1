package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementsVariants(t *testing.T) {
	assert.True(t, NoElements().IsNone())
	assert.Empty(t, NoElements().Slice())

	one := OneElement(&Text{Slice: "hi"})
	assert.False(t, one.IsNone())
	assert.Len(t, one.Slice(), 1)

	many := ManyElements([]Element{&Text{Slice: "a"}, &Text{Slice: "b"}})
	assert.False(t, many.IsNone())
	assert.Len(t, many.Slice(), 2)
}

func TestFragmentFlattensNestedFragments(t *testing.T) {
	inner := NewFragment([]Element{&Text{Slice: "a"}, &Text{Slice: "b"}})
	outer := NewFragment([]Element{inner, &Text{Slice: "c"}})
	assert.Len(t, outer.Children, 3)
}
