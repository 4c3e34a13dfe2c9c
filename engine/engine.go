// Package engine wires the compiler and VM together into the
// top-level driver contract from spec.md §4.6: compile source into a
// fresh chunk, discard it on failure, otherwise run it.
package engine

import (
	"io"

	"loxvm/compiler"
	"loxvm/vm"
)

// Result is the outcome of Interpret.
type Result int

const (
	OK Result = iota
	CompileError
	RuntimeError
)

func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case CompileError:
		return "COMPILE_ERROR"
	case RuntimeError:
		return "RUNTIME_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Options controls optional tracing behavior; the zero value runs
// normally.
type Options struct {
	Trace bool
}

// Interpret compiles and runs source against ctx. Compile diagnostics
// and runtime error messages are written to stderr as they occur;
// PRINT output goes to stdout. With opts.Trace set, each instruction is
// printed to stderr immediately before the VM dispatches it. The
// returned error is the underlying *vm.RuntimeError on a RuntimeError
// result, nil otherwise.
func Interpret(ctx *vm.Context, source string, stdout, stderr io.Writer, opts Options) (Result, error) {
	c, ok := compiler.Compile(source, ctx, stderr)
	if !ok {
		return CompileError, nil
	}

	machine := vm.New(ctx, stdout)
	if opts.Trace {
		machine.SetTrace(stderr)
	}
	if err := machine.Run(c); err != nil {
		io.WriteString(stderr, err.Error())
		io.WriteString(stderr, "\n")
		return RuntimeError, err
	}
	return OK, nil
}
