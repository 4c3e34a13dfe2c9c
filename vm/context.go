// Package vm implements the stack-based virtual machine: a value
// stack, an instruction pointer into the chunk under execution, a
// globals table, a string-intern table, and the object list that owns
// every heap allocation.
package vm

import (
	"loxvm/table"
	"loxvm/value"
)

// Context is the VM's process-wide state made explicit (see
// SPEC_FULL.md §9 / Design Notes "Process-wide VM state"): the
// compiler and the VM both take a *Context instead of reaching into
// module-level globals, which is what the source this spec distills
// does and what its Design Notes call out as a wart worth fixing in a
// rewrite. One Context is constructed per process by the driver and
// threaded through Compile and Run.
type Context struct {
	Globals *table.Table
	Strings *table.Table
	Objects value.Object // head of the intrusive object list
}

// NewContext constructs a fresh, empty Context.
func NewContext() *Context {
	return &Context{
		Globals: table.New(),
		Strings: table.New(),
	}
}

// InternString returns the canonical ObjString for chars, allocating
// and registering a new one only if this exact content hasn't been
// seen before. Because every ObjString in the program flows through
// here, reference equality and content equality coincide for strings
// (spec.md §4.3).
func (ctx *Context) InternString(chars string) *value.ObjString {
	hash := value.HashFNV1a(chars)
	if interned := ctx.Strings.FindString(chars, hash); interned != nil {
		return interned
	}
	s := value.NewObjString(chars)
	ctx.Objects = value.PushObject(ctx.Objects, s)
	ctx.Strings.Set(s, value.None)
	return s
}

// Concat interns the concatenation of two strings, reusing InternString
// so OP_ADD's string path gets the same dedup guarantee as literals.
func (ctx *Context) Concat(a, b *value.ObjString) *value.ObjString {
	return ctx.InternString(a.Chars + b.Chars)
}

// FreeObjects drops the Context's reference to the head of the object
// list, the bulk free-on-shutdown used in place of a real collector.
// It does not walk the list: Go's GC reclaims the objects once nothing
// points at them any more.
func (ctx *Context) FreeObjects() {
	ctx.Objects = nil
}
