package compiler

import (
	"loxvm/chunk"
	"loxvm/lexer"
	"loxvm/value"
)

func nameValue(s *value.ObjString) value.Value { return value.ObjVal(s) }

// addConstant adds v to the chunk's constant pool, reporting a
// diagnostic instead of overflowing the one-byte CONSTANT operand.
func (c *compiler) addConstant(v value.Value) byte {
	if len(c.chunk.Constants) >= chunk.MaxConstants {
		c.error_("Too many constants in one chunk.")
		return 0
	}
	return byte(c.chunk.AddConstant(v))
}

func (c *compiler) emitConstant(v value.Value) {
	c.emitBytes(chunk.OpConstant, c.addConstant(v))
}

// expression parses at the lowest real precedence, ASSIGNMENT, so a
// bare `=` is only ever legal as the outermost operator.
func (c *compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

// parsePrecedence is the core Pratt loop from spec.md §4.4:
// advance, run the previous token's prefix rule, then keep running
// infix rules while the current token binds at least as tightly as p.
func (c *compiler) parsePrecedence(p Precedence) {
	c.advance()
	prefixRule := rules[c.previous.Type].prefix
	if prefixRule == nil {
		c.error_("Expected expression.")
		return
	}
	canAssign := p <= PrecAssignment
	prefixRule(c, canAssign)

	for p <= rules[c.current.Type].precedence {
		c.advance()
		infixRule := rules[c.previous.Type].infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(lexer.Equal) {
		c.error_("Invalid assignment target.")
	}
}

// --- prefix rules ------------------------------------------------------

func grouping(c *compiler, _ bool) {
	c.expression()
	c.consume(lexer.RightParen, "Expect ')' after expression.")
}

func number(c *compiler, _ bool) {
	c.emitConstant(value.NumberVal(parseNumber(c.previous.Lexeme)))
}

func stringLiteral(c *compiler, _ bool) {
	// Lexeme includes the surrounding quotes; the source has no escapes.
	lex := c.previous.Lexeme
	inner := lex[1 : len(lex)-1]
	c.emitConstant(value.ObjVal(c.ctx.InternString(inner)))
}

func literal(c *compiler, _ bool) {
	switch c.previous.Type {
	case lexer.False:
		c.emitOp(chunk.OpFalse)
	case lexer.True:
		c.emitOp(chunk.OpTrue)
	case lexer.Nil:
		c.emitOp(chunk.OpNil)
	}
}

func unary(c *compiler, _ bool) {
	opType := c.previous.Type
	c.parsePrecedence(PrecUnary)
	switch opType {
	case lexer.Minus:
		c.emitOp(chunk.OpNegate)
	case lexer.Bang:
		c.emitOp(chunk.OpNot)
	}
}

func variable(c *compiler, canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *compiler) namedVariable(tok lexer.Token, canAssign bool) {
	arg := c.identifierConstant(tok)
	if canAssign && c.match(lexer.Equal) {
		c.expression()
		c.emitBytes(chunk.OpSetGlobal, arg)
	} else {
		c.emitBytes(chunk.OpGetGlobal, arg)
	}
}

// --- infix rules ---------------------------------------------------------

func binary(c *compiler, _ bool) {
	opType := c.previous.Type
	r := rules[opType]
	c.parsePrecedence(r.precedence.next())

	switch opType {
	case lexer.Plus:
		c.emitOp(chunk.OpAdd)
	case lexer.Minus:
		c.emitOp(chunk.OpSubtract)
	case lexer.Star:
		c.emitOp(chunk.OpMultiply)
	case lexer.Slash:
		c.emitOp(chunk.OpDivide)
	case lexer.EqualEqual:
		c.emitOp(chunk.OpEqual)
	case lexer.BangEqual:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case lexer.Less:
		c.emitOp(chunk.OpLess)
	case lexer.LessEqual:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	case lexer.Greater:
		c.emitOp(chunk.OpGreater)
	case lexer.GreaterEqual:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	}
}

// rules is the fixed Pratt table indexed by token kind, per spec.md
// §4.4/§9 ("Encode as a fixed lookup from token kind to
// {prefix-rule, infix-rule, precedence}"). Token kinds with no entry
// keep the zero rule{nil, nil, PrecNone}, which is exactly "not usable
// as a prefix or infix expression" — they never satisfy the
// `p <= rules[current].precedence` test in parsePrecedence.
var rules = buildRules()

func buildRules() [lexer.EOF + 1]rule {
	var r [lexer.EOF + 1]rule
	set := func(t lexer.TokenType, prefix, infix parseFn, prec Precedence) {
		r[t] = rule{prefix: prefix, infix: infix, precedence: prec}
	}

	set(lexer.LeftParen, grouping, nil, PrecNone)
	set(lexer.Minus, unary, binary, PrecTerm)
	set(lexer.Plus, nil, binary, PrecTerm)
	set(lexer.Slash, nil, binary, PrecFactor)
	set(lexer.Star, nil, binary, PrecFactor)
	set(lexer.Bang, unary, nil, PrecNone)
	set(lexer.BangEqual, nil, binary, PrecEquality)
	set(lexer.EqualEqual, nil, binary, PrecEquality)
	set(lexer.Greater, nil, binary, PrecComparison)
	set(lexer.GreaterEqual, nil, binary, PrecComparison)
	set(lexer.Less, nil, binary, PrecComparison)
	set(lexer.LessEqual, nil, binary, PrecComparison)
	set(lexer.Identifier, variable, nil, PrecNone)
	set(lexer.String, stringLiteral, nil, PrecNone)
	set(lexer.Number, number, nil, PrecNone)
	set(lexer.False, literal, nil, PrecNone)
	set(lexer.True, literal, nil, PrecNone)
	set(lexer.Nil, literal, nil, PrecNone)

	return r
}
