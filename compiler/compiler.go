// Package compiler implements the single-pass Pratt-parser compiler:
// it scans tokens on demand from lexer.Scanner and emits bytecode
// directly into a chunk.Chunk, with no intermediate AST. Every
// semantic decision — constant emission, line recording, assignment
// validity — happens at the point the token is consumed.
package compiler

import (
	"fmt"
	"io"
	"strconv"

	"loxvm/chunk"
	"loxvm/lexer"
	"loxvm/vm"
)

// parseFn parses one prefix or infix production. canAssign is true
// only when we're at a precedence low enough, and in a position, where
// a trailing '=' could legally start an assignment.
type parseFn func(c *compiler, canAssign bool)

// rule is one row of the Pratt table: how to parse a token kind as a
// prefix expression, as an infix operator, and at what precedence.
type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// compiler holds all one-pass parsing state: the token stream, the
// chunk being built, the shared VM context (for string interning), and
// the two error-recovery flags from spec.md §4.4.
type compiler struct {
	scanner *lexer.Scanner
	ctx     *vm.Context
	chunk   *chunk.Chunk
	errOut  io.Writer

	current  lexer.Token
	previous lexer.Token

	hadError  bool
	panicMode bool
}

// Compile compiles source into a fresh chunk against ctx. It returns
// (chunk, true) on success — with a trailing RETURN already emitted —
// or (nil, false) if any diagnostic was reported; diagnostics are
// written to errOut as they're found; the chunk is discarded on
// failure per spec.md §1/§4.6.
func Compile(source string, ctx *vm.Context, errOut io.Writer) (*chunk.Chunk, bool) {
	c := &compiler{
		scanner: lexer.New(source),
		ctx:     ctx,
		chunk:   chunk.New(),
		errOut:  errOut,
	}
	c.advance()
	for !c.match(lexer.EOF) {
		c.declaration()
	}
	c.endCompiler()
	if c.hadError {
		return nil, false
	}
	return c.chunk, true
}

func (c *compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.ScanToken()
		if c.current.Type != lexer.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *compiler) check(t lexer.TokenType) bool { return c.current.Type == t }

func (c *compiler) match(t lexer.TokenType) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *compiler) consume(t lexer.TokenType, message string) {
	if c.current.Type == t {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- bytecode emission -----------------------------------------------

func (c *compiler) emitByte(b byte) {
	c.chunk.Write(b, c.previous.Line)
}

func (c *compiler) emitOp(op chunk.OpCode) { c.emitByte(byte(op)) }

func (c *compiler) emitBytes(op chunk.OpCode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *compiler) emitReturn() { c.emitOp(chunk.OpReturn) }

func (c *compiler) endCompiler() { c.emitReturn() }

// --- error reporting ---------------------------------------------------

func (c *compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *compiler) error_(message string)         { c.errorAt(c.previous, message) }

func (c *compiler) errorAt(tok lexer.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	if tok.Type == lexer.EOF {
		fmt.Fprintf(c.errOut, "[Line %d] Error at end: %s\n", tok.Line, message)
	} else if tok.Type == lexer.Error {
		fmt.Fprintf(c.errOut, "[Line %d] Error: %s\n", tok.Line, message)
	} else {
		fmt.Fprintf(c.errOut, "[Line %d] Error at '%s': %s\n", tok.Line, tok.Lexeme, message)
	}
}

// synchronize skips tokens until a statement boundary: a consumed
// semicolon, or a statement-starting keyword about to be parsed.
func (c *compiler) synchronize() {
	c.panicMode = false
	for c.current.Type != lexer.EOF {
		if c.previous.Type == lexer.Semicolon {
			return
		}
		switch c.current.Type {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For,
			lexer.If, lexer.While, lexer.Print, lexer.Return:
			return
		}
		c.advance()
	}
}

// parseNumber converts a NUMBER token's lexeme via strconv, the Go
// idiom for the source's strtod.
func parseNumber(lexeme string) float64 {
	n, _ := strconv.ParseFloat(lexeme, 64)
	return n
}
