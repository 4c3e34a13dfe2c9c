package compiler

import (
	"loxvm/chunk"
	"loxvm/lexer"
)

// declaration parses one top-level declaration (currently just `var`,
// falling through to statement) and resynchronizes on error so a
// single bad statement doesn't cascade into a wall of diagnostics.
func (c *compiler) declaration() {
	if c.match(lexer.Var) {
		c.varDeclaration()
	} else {
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

// varDeclaration: `var name (= expr)? ;` — compiles the initializer
// (or NIL if absent) and defines the global.
func (c *compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(lexer.Equal) {
		c.expression()
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.consume(lexer.Semicolon, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

// parseVariable consumes an identifier and interns it as a constant,
// returning its constant-pool index.
func (c *compiler) parseVariable(errMsg string) byte {
	c.consume(lexer.Identifier, errMsg)
	return c.identifierConstant(c.previous)
}

func (c *compiler) identifierConstant(tok lexer.Token) byte {
	name := c.ctx.InternString(tok.Lexeme)
	return c.addConstant(nameValue(name))
}

func (c *compiler) defineVariable(global byte) {
	c.emitBytes(chunk.OpDefineGlobal, global)
}

// statement dispatches the core's two statement forms: print, and the
// default expression-statement fallthrough.
func (c *compiler) statement() {
	switch {
	case c.match(lexer.Print):
		c.printStatement()
	default:
		c.expressionStatement()
	}
}

func (c *compiler) printStatement() {
	c.expression()
	c.consume(lexer.Semicolon, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *compiler) expressionStatement() {
	c.expression()
	c.consume(lexer.Semicolon, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}
