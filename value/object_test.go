package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashFNV1aStable(t *testing.T) {
	require.Equal(t, HashFNV1a("hello"), HashFNV1a("hello"))
	require.NotEqual(t, HashFNV1a("hello"), HashFNV1a("world"))
}

func TestPushObjectAndWalk(t *testing.T) {
	var head Object
	a := NewObjString("a")
	b := NewObjString("b")
	c := NewObjString("c")

	head = PushObject(head, a)
	head = PushObject(head, b)
	head = PushObject(head, c)

	var seen []string
	Walk(head, func(o Object) { seen = append(seen, o.String()) })
	require.Equal(t, []string{"c", "b", "a"}, seen)
}

func TestObjStringKind(t *testing.T) {
	s := NewObjString("x")
	require.Equal(t, StringObj, s.Kind())
	require.Equal(t, "x", s.String())
	require.Equal(t, HashFNV1a("x"), s.Hash)
}
