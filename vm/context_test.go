package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternStringDedupes(t *testing.T) {
	ctx := NewContext()
	a := ctx.InternString("hello")
	b := ctx.InternString("hello")
	require.Same(t, a, b)

	c := ctx.InternString("world")
	require.NotSame(t, a, c)
}

func TestInternStringDistinctContentNotEqual(t *testing.T) {
	ctx := NewContext()
	require.NotSame(t, ctx.InternString("a"), ctx.InternString("b"))
}

func TestConcatInternsResult(t *testing.T) {
	ctx := NewContext()
	a := ctx.InternString("foo")
	b := ctx.InternString("bar")
	got := ctx.Concat(a, b)
	require.Equal(t, "foobar", got.Chars)
	require.Same(t, got, ctx.InternString("foobar"))
}

func TestFreeObjectsClearsList(t *testing.T) {
	ctx := NewContext()
	ctx.InternString("hi")
	require.NotNil(t, ctx.Objects)
	ctx.FreeObjects()
	require.Nil(t, ctx.Objects)
}
