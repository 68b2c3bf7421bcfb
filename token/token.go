// Package token defines the vocabulary shared by the tokenizer, the parser
// and the math context: the token kinds an input line can produce and the
// Token structure carrying their source position for diagnostics.
package token

type Type uint8

const (
	ILLEGAL Type = iota
	EOF

	// Numeric literals. An IMAG literal had a trailing `i` in the source;
	// the stored text is the numeric part only.
	REAL
	IMAG

	// Identifiers resolved against the registry.
	CONSTANT
	USERCONSTANT
	FUNCTION
	USERFUNCTION

	// `+ - * / % ^ =` and `( ) ,`.
	OPERATION
	PUNCTUATION

	// Transitional kinds for identifiers the registry doesn't know (yet).
	// They are only legal while a definition is being parsed, before the
	// defined name is registered.
	UNKNOWNCONSTANT
	UNKNOWNFUNCTION

	LAST
)

//go:generate stringer -type=Type
var _ = LAST.String() // force compile error if go generate is missing.

// Token is one lexical unit of an input line. End is the index of the
// token's last character in the line, kept so errors can point a caret at
// the exact column. The Type is decided by the registry at tokenization
// time and never changes afterwards.
type Token struct {
	Type    Type
	Literal string
	End     int
}

// Number reports whether the token is a numeric literal of either domain.
func (t Token) Number() bool {
	return t.Type == REAL || t.Type == IMAG
}

// Constant reports whether the token names a constant, resolved or not.
func (t Token) Constant() bool {
	return t.Type == CONSTANT || t.Type == USERCONSTANT || t.Type == UNKNOWNCONSTANT
}

// Symbolic reports whether the token is one of the transitional unresolved
// kinds.
func (t Token) Symbolic() bool {
	return t.Type == UNKNOWNCONSTANT || t.Type == UNKNOWNFUNCTION
}

func (t Token) String() string {
	return t.Literal
}
