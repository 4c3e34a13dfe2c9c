package value

import "testing"

import "github.com/stretchr/testify/require"

func TestEqual(t *testing.T) {
	s1 := NewObjString("hi")
	s2 := NewObjString("hi")

	for _, tc := range []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil == nil", None, None, true},
		{"true == true", True, True, true},
		{"true == false", True, False, false},
		{"number == same number", NumberVal(3), NumberVal(3), true},
		{"number == different number", NumberVal(3), NumberVal(4), false},
		{"nil != false", None, False, false},
		{"nil != number zero", None, NumberVal(0), false},
		{"same obj pointer", ObjVal(s1), ObjVal(s1), true},
		{"distinct obj pointers, equal content", ObjVal(s1), ObjVal(s2), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Equal(tc.a, tc.b))
			require.Equal(t, tc.want, Equal(tc.b, tc.a), "Equal must be symmetric")
		})
	}
}

func TestFalsey(t *testing.T) {
	require.True(t, None.Falsey())
	require.True(t, False.Falsey())
	require.False(t, True.Falsey())
	require.False(t, NumberVal(0).Falsey())
	require.False(t, ObjVal(NewObjString("")).Falsey())
}

func TestString(t *testing.T) {
	require.Equal(t, "nil", None.String())
	require.Equal(t, "true", True.String())
	require.Equal(t, "false", False.String())
	require.Equal(t, "3", NumberVal(3).String())
	require.Equal(t, "3.5", NumberVal(3.5).String())
	require.Equal(t, "hi", ObjVal(NewObjString("hi")).String())
}

func TestIsStringAsString(t *testing.T) {
	s := ObjVal(NewObjString("hi"))
	require.True(t, s.IsString())
	require.Equal(t, "hi", s.AsString().Chars)

	require.False(t, NumberVal(1).IsString())
	require.False(t, None.IsString())
}
