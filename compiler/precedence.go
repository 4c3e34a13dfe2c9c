package compiler

// Precedence orders how tightly an infix operator binds, from loosest
// to tightest. parsePrecedence(p) keeps consuming infix operators
// whose precedence is at least p.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

// next returns the next tighter precedence level, used when parsing
// the right operand of a left-associative binary operator.
func (p Precedence) next() Precedence { return p + 1 }
