// Package chunk implements the bytecode container: a growable byte
// array of opcodes and operands, a constant pool, and a compact
// run-length-encoded map from code offset to source line.
package chunk

import "loxvm/value"

// OpCode is a single bytecode instruction tag. Each opcode is one byte
// in Chunk.Code, optionally followed by operand bytes.
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpReturn
)

var opNames = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpReturn:       "OP_RETURN",
}

// String renders the mnemonic used by the disassembler.
func (op OpCode) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "OP_UNKNOWN"
}

// MaxConstants is the ceiling imposed by a one-byte constant operand.
const MaxConstants = 256

// lineRun is one run of the RLE line map: Line repeated Count times.
type lineRun struct {
	Line  int
	Count int
}

// Chunk holds bytecode, its constant pool, and the line map needed to
// turn a byte offset back into a source line for diagnostics.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	lines     []lineRun
}

// New returns an empty chunk.
func New() *Chunk {
	return &Chunk{
		Code:      make([]byte, 0, 256),
		Constants: make([]value.Value, 0, 16),
	}
}

// Write appends one byte of code, recording the line it came from.
// Consecutive writes on the same line extend the last run.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	if n := len(c.lines); n > 0 && c.lines[n-1].Line == line {
		c.lines[n-1].Count++
		return
	}
	c.lines = append(c.lines, lineRun{Line: line, Count: 1})
}

// AddConstant appends a value to the constant pool and returns its
// index. Constants are never deduplicated — the caller (compiler) is
// responsible for enforcing the MaxConstants ceiling, since only it
// can turn an overflow into a compile diagnostic.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Len returns the number of bytes written so far.
func (c *Chunk) Len() int { return len(c.Code) }

// GetLine returns the source line that produced the byte at offset.
// Implemented as a scan over the RLE runs from the first run on every
// call, so each lookup costs O(runs) up to the run holding offset; no
// position is cached between calls.
func (c *Chunk) GetLine(offset int) int {
	remaining := offset
	for _, run := range c.lines {
		if remaining < run.Count {
			return run.Line
		}
		remaining -= run.Count
	}
	if len(c.lines) > 0 {
		return c.lines[len(c.lines)-1].Line
	}
	return 0
}
