package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"loxvm/value"
)

func key(chars string) *value.ObjString {
	return &value.ObjString{Chars: chars, Hash: value.HashFNV1a(chars)}
}

func TestSetGetDelete(t *testing.T) {
	tbl := New()
	k := key("x")

	isNew := tbl.Set(k, value.NumberVal(1))
	require.True(t, isNew)

	v, ok := tbl.Get(k)
	require.True(t, ok)
	require.Equal(t, value.NumberVal(1), v)

	isNew = tbl.Set(k, value.NumberVal(2))
	require.False(t, isNew, "overwriting an existing key is not a new key")
	v, _ = tbl.Get(k)
	require.Equal(t, value.NumberVal(2), v)

	require.True(t, tbl.Delete(k))
	_, ok = tbl.Get(k)
	require.False(t, ok)
	require.False(t, tbl.Delete(k), "deleting twice reports not-found")
}

func TestGetMissing(t *testing.T) {
	tbl := New()
	_, ok := tbl.Get(key("missing"))
	require.False(t, ok)
}

func TestGrowthAndProbing(t *testing.T) {
	tbl := New()
	keys := make([]*value.ObjString, 100)
	for i := range keys {
		keys[i] = key(fmt.Sprintf("key%d", i))
		tbl.Set(keys[i], value.NumberVal(float64(i)))
	}
	require.Equal(t, 100, tbl.Count())
	for i, k := range keys {
		v, ok := tbl.Get(k)
		require.True(t, ok)
		require.Equal(t, value.NumberVal(float64(i)), v)
	}
}

func TestTombstoneKeepsProbeChainAlive(t *testing.T) {
	tbl := New()
	a, b := key("a"), key("b")
	tbl.Set(a, value.NumberVal(1))
	tbl.Set(b, value.NumberVal(2))

	require.True(t, tbl.Delete(a))
	// b must still be reachable even if a's deletion left a tombstone
	// on the probe path to b.
	v, ok := tbl.Get(b)
	require.True(t, ok)
	require.Equal(t, value.NumberVal(2), v)
}

func TestAddAll(t *testing.T) {
	src := New()
	dst := New()
	src.Set(key("a"), value.NumberVal(1))
	src.Set(key("b"), value.NumberVal(2))

	src.AddAll(dst)
	require.Equal(t, 2, dst.Count())
}

func TestFindString(t *testing.T) {
	tbl := New()
	s := key("hello")
	tbl.Set(s, value.None)

	found := tbl.FindString("hello", value.HashFNV1a("hello"))
	require.Same(t, s, found)

	require.Nil(t, tbl.FindString("missing", value.HashFNV1a("missing")))
}

func TestFindStringEmptyTable(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.FindString("x", value.HashFNV1a("x")))
}
