package lexer

// TokenType is the lexeme tag drawn from the fixed token set.
type TokenType int

const (
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual
	Identifier
	String
	Number
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While
	Error
	EOF
)

var tokenNames = [...]string{
	LeftParen: "LEFT_PAREN", RightParen: "RIGHT_PAREN",
	LeftBrace: "LEFT_BRACE", RightBrace: "RIGHT_BRACE",
	Comma: "COMMA", Dot: "DOT", Minus: "MINUS", Plus: "PLUS",
	Semicolon: "SEMICOLON", Slash: "SLASH", Star: "STAR",
	Bang: "BANG", BangEqual: "BANG_EQUAL",
	Equal: "EQUAL", EqualEqual: "EQUAL_EQUAL",
	Greater: "GREATER", GreaterEqual: "GREATER_EQUAL",
	Less: "LESS", LessEqual: "LESS_EQUAL",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "AND", Class: "CLASS", Else: "ELSE", False: "FALSE",
	For: "FOR", Fun: "FUN", If: "IF", Nil: "NIL", Or: "OR",
	Print: "PRINT", Return: "RETURN", Super: "SUPER", This: "THIS",
	True: "TRUE", Var: "VAR", While: "WHILE",
	Error: "ERROR", EOF: "EOF",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return "UNKNOWN"
}

// Token is a lexeme tag plus a reference into the source buffer (a Go
// string slice shares the backing array, so this borrows rather than
// copies) and a 1-based line/column.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

// keywords is the fixed keyword set the identifier scanner matches
// against after consuming a maximal run of alphanumeric characters.
var keywords = map[string]TokenType{
	"and": And, "class": Class, "else": Else, "false": False,
	"for": For, "fun": Fun, "if": If, "nil": Nil, "or": Or,
	"print": Print, "return": Return, "super": Super, "this": This,
	"true": True, "var": Var, "while": While,
}
