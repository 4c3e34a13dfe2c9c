package vm

import (
	"fmt"
	"io"

	"loxvm/chunk"
	"loxvm/debug"
	"loxvm/value"
)

// stackMax is a generous fixed capacity for the core language (no
// frames, no calls — one expression's worth of operands at a time).
const stackMax = 256

// VM is a stack machine: a value stack, a stack-top cursor, a pointer
// to the chunk under execution, and an instruction pointer into it.
// Globals, string interning and the object list live on the shared
// *Context so the compiler and the VM agree on string identity.
type VM struct {
	ctx      *Context
	stack    [stackMax]value.Value
	sp       int
	chunk    *chunk.Chunk
	ip       int
	stdout   io.Writer
	traceOut io.Writer
}

// New constructs a VM bound to ctx, writing PRINT output to stdout.
func New(ctx *Context, stdout io.Writer) *VM {
	return &VM{ctx: ctx, stdout: stdout}
}

// SetTrace makes Run print each instruction to w immediately before
// dispatching it, in the disassembler's own format. A nil w (the
// default) disables tracing.
func (vm *VM) SetTrace(w io.Writer) { vm.traceOut = w }

func (vm *VM) resetStack() { vm.sp = 0 }

func (vm *VM) push(v value.Value) {
	vm.stack[vm.sp] = v
	vm.sp++
}

func (vm *VM) pop() value.Value {
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.sp-1-distance]
}

// Run executes c to completion, returning a RuntimeError on failure.
// A nil error means the chunk ran to its RETURN successfully.
func (vm *VM) Run(c *chunk.Chunk) error {
	vm.chunk = c
	vm.ip = 0
	vm.resetStack()

	for {
		if vm.traceOut != nil {
			line, _ := debug.DisassembleInstruction(vm.chunk, vm.ip)
			fmt.Fprintln(vm.traceOut, line)
		}

		op := chunk.OpCode(vm.readByte())
		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant())

		case chunk.OpNil:
			vm.push(value.None)
		case chunk.OpTrue:
			vm.push(value.True)
		case chunk.OpFalse:
			vm.push(value.False)

		case chunk.OpPop:
			vm.pop()

		case chunk.OpDefineGlobal:
			name := vm.readConstant().AsString()
			vm.ctx.Globals.Set(name, vm.pop())

		case chunk.OpGetGlobal:
			name := vm.readConstant().AsString()
			v, ok := vm.ctx.Globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)

		case chunk.OpSetGlobal:
			name := vm.readConstant().AsString()
			if vm.ctx.Globals.Set(name, vm.peek(0)) {
				// Set reports a brand new key; a real assignment must
				// target an existing binding, so undo the insert.
				vm.ctx.Globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}

		case chunk.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.BoolVal(value.Equal(a, b)))

		case chunk.OpGreater:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.BoolVal(a > b) }); err != nil {
				return err
			}
		case chunk.OpLess:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.BoolVal(a < b) }); err != nil {
				return err
			}

		case chunk.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case chunk.OpSubtract:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberVal(a - b) }); err != nil {
				return err
			}
		case chunk.OpMultiply:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberVal(a * b) }); err != nil {
				return err
			}
		case chunk.OpDivide:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberVal(a / b) }); err != nil {
				return err
			}

		case chunk.OpNot:
			vm.push(value.BoolVal(vm.pop().Falsey()))

		case chunk.OpNegate:
			if vm.peek(0).Type != value.Number {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(value.NumberVal(-vm.pop().AsNumber()))

		case chunk.OpPrint:
			fmt.Fprintln(vm.stdout, vm.pop().String())

		case chunk.OpReturn:
			return nil

		default:
			return vm.runtimeError("Unknown opcode %d.", op)
		}
	}
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	idx := vm.readByte()
	return vm.chunk.Constants[idx]
}

func (vm *VM) add() error {
	b := vm.peek(0)
	a := vm.peek(1)
	switch {
	case a.Type == value.Number && b.Type == value.Number:
		vm.pop()
		vm.pop()
		vm.push(value.NumberVal(a.AsNumber() + b.AsNumber()))
		return nil
	case a.IsString() && b.IsString():
		vm.pop()
		vm.pop()
		vm.push(value.ObjVal(vm.ctx.Concat(a.AsString(), b.AsString())))
		return nil
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}

func (vm *VM) binaryNumberOp(op func(a, b float64) value.Value) error {
	b := vm.peek(0)
	a := vm.peek(1)
	if a.Type != value.Number || b.Type != value.Number {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	vm.push(op(a.AsNumber(), b.AsNumber()))
	return nil
}

// runtimeError builds the error for the byte just dispatched (ip has
// already advanced past the opcode and any operands read so far, so
// ip-1 is only exact for zero-operand opcodes; callers that need the
// opcode's own line use the chunk's line for the last byte consumed,
// matching spec.md's "get_line(ip - 1)").
func (vm *VM) runtimeError(format string, args ...interface{}) *RuntimeError {
	line := vm.chunk.GetLine(vm.ip - 1)
	vm.resetStack()
	return newRuntimeError(line, format, args...)
}
