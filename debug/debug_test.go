package debug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"loxvm/chunk"
	"loxvm/value"
)

func TestDisassembleChunk(t *testing.T) {
	c := chunk.New()
	idx := c.AddConstant(value.NumberVal(1))
	c.Write(byte(chunk.OpConstant), 1)
	c.Write(byte(idx), 1)
	c.Write(byte(chunk.OpReturn), 2)

	out := DisassembleChunk(c, "test")
	require.True(t, strings.HasPrefix(out, "== test ==\n"))
	require.Contains(t, out, "OP_CONSTANT")
	require.Contains(t, out, "'1'")
	require.Contains(t, out, "OP_RETURN")
}

func TestDisassembleInstructionLineColumnCollapsing(t *testing.T) {
	c := chunk.New()
	c.Write(byte(chunk.OpNil), 1)
	c.Write(byte(chunk.OpPop), 1)

	first, next := DisassembleInstruction(c, 0)
	require.Contains(t, first, "   1 ")
	second, _ := DisassembleInstruction(c, next)
	require.Contains(t, second, "   | ")
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	c := chunk.New()
	c.Write(255, 1)
	out, _ := DisassembleInstruction(c, 0)
	require.Contains(t, out, "Unknown opcode")
}
