// Package lexer turns one input line into tokens, classifying identifiers
// against the math context registry as it reads them. It keeps a single
// token of lookahead so the parser can Peek without consuming.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"termcalc.io/termcalc/mathctx"
	"termcalc.io/termcalc/token"
)

// Error is a tokenization failure: a character no token can start with.
type Error struct {
	Input string
	Token string
	Pos   int
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error: Unknown token found: %q.\n%s", e.Token, Location(e.Input, e.Pos))
}

// Location renders the input line with a caret marker under the character
// at byte offset pos. The caret column is the display width of the prefix,
// not its byte length, so the marker lines up under wide runes too.
func Location(input string, pos int) string {
	if pos > len(input) {
		pos = len(input)
	}
	buf := strings.Builder{}
	buf.WriteString(input)
	buf.WriteByte('\n')
	for range uniseg.StringWidth(input[:pos]) {
		buf.WriteByte(' ')
	}
	buf.WriteString("^~~~")
	return buf.String()
}

type Lexer struct {
	ctx   *mathctx.Context
	input string
	pos   int // next unread byte
	cur   token.Token
	err   error
	done  bool
}

// New creates a Lexer over input and reads the first token.
func New(ctx *mathctx.Context, input string) *Lexer {
	l := &Lexer{ctx: ctx, input: input}
	l.read()
	return l
}

func (l *Lexer) Input() string {
	return l.input
}

// Pos returns the byte index of the last character consumed so far, the
// position parse errors at end of input anchor to.
func (l *Lexer) Pos() int {
	return l.pos - 1
}

// EOF reports whether the whole line was consumed without error.
func (l *Lexer) EOF() bool {
	return l.done && l.err == nil
}

// Peek returns the lookahead token without consuming it.
func (l *Lexer) Peek() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	return l.cur, nil
}

// Next returns the lookahead token and reads the one after it.
func (l *Lexer) Next() (token.Token, error) {
	tok, err := l.Peek()
	if err != nil || tok.Type == token.EOF {
		return tok, err
	}
	l.read()
	return tok, nil
}

func (l *Lexer) read() {
	for l.pos < len(l.input) && isWhitespace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		l.done = true
		l.cur = token.Token{Type: token.EOF, End: l.pos - 1}
		return
	}
	ch := l.input[l.pos]
	switch {
	case l.ctx.IsLiteralSymbol(ch):
		l.cur = l.readName()
	case l.ctx.IsNumberSymbol(ch) || ch == '.':
		l.cur = l.readNumber()
	case l.ctx.IsOperation(string(ch)):
		l.cur = l.readSingle(token.OPERATION)
	case l.ctx.IsPunctuationSymbol(ch):
		l.cur = l.readSingle(token.PUNCTUATION)
	default:
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		l.done = true
		l.err = &Error{Input: l.input, Token: string(r), Pos: l.pos}
	}
}

func (l *Lexer) readSingle(t token.Type) token.Token {
	ch := l.input[l.pos]
	l.pos++
	return token.Token{Type: t, Literal: string(ch), End: l.pos - 1}
}

// readName reads an identifier and classifies it with one character of
// lookahead: a name directly followed by "(" is a function of some kind,
// anything else is a constant of some kind. Names the registry doesn't
// know stay in the token stream as unknown constants/functions so that
// definitions can bind them later.
func (l *Lexer) readName() token.Token {
	start := l.pos
	for l.pos < len(l.input) && (l.ctx.IsLiteralSymbol(l.input[l.pos]) || l.ctx.IsNumberSymbol(l.input[l.pos])) {
		l.pos++
	}
	name := l.input[start:l.pos]
	end := l.pos - 1
	paren := l.pos < len(l.input) && l.input[l.pos] == '('
	t := token.UNKNOWNCONSTANT
	switch {
	case !paren && l.ctx.IsBuiltinConstant(name):
		t = token.CONSTANT
	case !paren && l.ctx.IsUserConstant(name):
		t = token.USERCONSTANT
	case paren && l.ctx.IsBuiltinFunction(name):
		t = token.FUNCTION
	case paren && l.ctx.IsUserFunction(name):
		t = token.USERFUNCTION
	case paren:
		t = token.UNKNOWNFUNCTION
	}
	return token.Token{Type: t, Literal: name, End: end}
}

// readNumber reads a numeric literal: digits with an optional fraction and
// an optional uppercase-E exponent (lowercase e is the Euler constant). A
// trailing i makes the literal imaginary; the i is consumed but not stored.
// Identifier characters directly after the digits are folded into the
// literal text so the evaluator can name them instead of reporting a bare
// truncated number.
func (l *Lexer) readNumber() token.Token {
	buf := strings.Builder{}
	t := token.REAL
	first := true
	lastWasE := false
	if l.input[l.pos] == '.' {
		buf.WriteByte('0')
	}
loop:
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case l.ctx.IsNumberSymbol(ch) || ch == '.':
			lastWasE = false
		case ch == 'i' && !first:
			t = token.IMAG
			l.pos++
			break loop
		case ch == 'E':
			lastWasE = true
		case (ch == '+' || ch == '-') && lastWasE:
			lastWasE = false
		case l.ctx.IsLiteralSymbol(ch):
			lastWasE = false
		default:
			break loop
		}
		buf.WriteByte(ch)
		l.pos++
		first = false
	}
	return token.Token{Type: t, Literal: buf.String(), End: l.pos - 1}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
