package compiler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"loxvm/chunk"
	"loxvm/vm"
)

func TestCompileEmitsReturn(t *testing.T) {
	var errOut bytes.Buffer
	c, ok := Compile(`print 1;`, vm.NewContext(), &errOut)
	require.True(t, ok)
	require.Empty(t, errOut.String())
	require.Equal(t, chunk.OpReturn, chunk.OpCode(c.Code[len(c.Code)-1]))
}

func TestCompileArithmeticPrecedence(t *testing.T) {
	var errOut bytes.Buffer
	c, ok := Compile(`print 1 + 2 * 3;`, vm.NewContext(), &errOut)
	require.True(t, ok)

	var ops []chunk.OpCode
	for i := 0; i < c.Len(); {
		op := chunk.OpCode(c.Code[i])
		ops = append(ops, op)
		switch op {
		case chunk.OpConstant:
			i += 2
		default:
			i++
		}
	}
	require.Equal(t, []chunk.OpCode{
		chunk.OpConstant, chunk.OpConstant, chunk.OpConstant,
		chunk.OpMultiply, chunk.OpAdd, chunk.OpPrint, chunk.OpReturn,
	}, ops)
}

func TestCompileNotEqualEmitsEqualThenNot(t *testing.T) {
	var errOut bytes.Buffer
	c, ok := Compile(`print 1 != 2;`, vm.NewContext(), &errOut)
	require.True(t, ok)

	var ops []chunk.OpCode
	for i := 0; i < c.Len(); {
		op := chunk.OpCode(c.Code[i])
		ops = append(ops, op)
		if op == chunk.OpConstant {
			i += 2
		} else {
			i++
		}
	}
	require.Contains(t, ops, chunk.OpEqual)
	require.Contains(t, ops, chunk.OpNot)
}

func TestCompileErrorReportsExpectedExpression(t *testing.T) {
	var errOut bytes.Buffer
	_, ok := Compile(`print 1 + ;`, vm.NewContext(), &errOut)
	require.False(t, ok)
	require.Contains(t, errOut.String(), "Expected expression.")
}

func TestCompileErrorMissingSemicolon(t *testing.T) {
	var errOut bytes.Buffer
	_, ok := Compile(`print 1`, vm.NewContext(), &errOut)
	require.False(t, ok)
	require.Contains(t, errOut.String(), "Expect ';' after value.")
}

func TestCompileSynchronizesAfterError(t *testing.T) {
	var errOut bytes.Buffer
	_, ok := Compile(`print ; print 1;`, vm.NewContext(), &errOut)
	require.False(t, ok)
	// one bad statement shouldn't cascade into unrelated diagnostics
	// about the second, well-formed statement.
	require.NotContains(t, errOut.String(), "Expect ';' after value.")
}

func TestCompileInvalidAssignmentTarget(t *testing.T) {
	var errOut bytes.Buffer
	_, ok := Compile(`1 = 2;`, vm.NewContext(), &errOut)
	require.False(t, ok)
	require.Contains(t, errOut.String(), "Invalid assignment target.")
}

func TestCompileTooManyConstants(t *testing.T) {
	// 256 constants (indices 0-255) fit the one-byte operand; the 257th
	// is what overflows it, per spec.md §4.2.
	var src bytes.Buffer
	src.WriteString("print ")
	for i := 0; i < 257; i++ {
		if i > 0 {
			src.WriteString("+")
		}
		src.WriteString("1")
	}
	src.WriteString(";")

	var errOut bytes.Buffer
	_, ok := Compile(src.String(), vm.NewContext(), &errOut)
	require.False(t, ok)
	require.Contains(t, errOut.String(), "Too many constants in one chunk.")
}

func TestCompileVarDeclarationDefaultsToNil(t *testing.T) {
	var errOut bytes.Buffer
	c, ok := Compile(`var a; print a;`, vm.NewContext(), &errOut)
	require.True(t, ok)
	require.Contains(t, c.Code, byte(chunk.OpNil))
	require.Contains(t, c.Code, byte(chunk.OpDefineGlobal))
}
