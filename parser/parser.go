// Package parser builds an expression tree from one tokenized input line.
// It is a precedence climbing parser with one extra wrinkle: wherever an
// operand may appear, a chain of unary +/- signs may appear instead, so the
// element step can hand back a bare operation token that the caller then
// completes into a unary chain before resuming binary parsing.
package parser

import (
	"fmt"

	"fortio.org/log"
	"termcalc.io/termcalc/lexer"
	"termcalc.io/termcalc/mathctx"
	"termcalc.io/termcalc/token"
	"termcalc.io/termcalc/tree"
)

// ExpectedError is a syntax error with a caret marker. Found is what was
// actually read; it stays empty when the input simply ended.
type ExpectedError struct {
	Input    string
	Expected string
	Found    string
	Pos      int
}

func (e *ExpectedError) Error() string {
	found := ""
	if e.Found != "" {
		found = " Found: " + e.Found
	}
	return fmt.Sprintf("Error: Expected %s.\n%s%s", e.Expected, lexer.Location(e.Input, e.Pos), found)
}

type Parser struct {
	ctx *mathctx.Context
	lex *lexer.Lexer
}

func New(ctx *mathctx.Context, input string) *Parser {
	return &Parser{ctx: ctx, lex: lexer.New(ctx, input)}
}

// Parse parses one whole input line.
func Parse(ctx *mathctx.Context, input string) (*tree.Node, error) {
	return New(ctx, input).Parse()
}

func (p *Parser) Parse() (*tree.Node, error) {
	res, err := p.parseOperation()
	if err != nil {
		return nil, err
	}
	if !p.lex.EOF() {
		return nil, p.expected("end of input", "", p.lex.Pos()+1)
	}
	log.Debugf("parsed %q into %s", p.lex.Input(), res)
	return res, nil
}

func (p *Parser) expected(what, found string, pos int) error {
	return &ExpectedError{Input: p.lex.Input(), Expected: what, Found: found, Pos: pos}
}

func (p *Parser) isPunc(s string) bool {
	t, err := p.lex.Peek()
	return err == nil && t.Type == token.PUNCTUATION && t.Literal == s
}

func (p *Parser) skipPunc(s string) error {
	if p.isPunc(s) {
		_, err := p.lex.Next()
		return err
	}
	t, err := p.lex.Peek()
	if err != nil {
		return err
	}
	if t.Type == token.EOF {
		return p.expected(fmt.Sprintf("symbol %q", s), "", p.lex.Pos()+1)
	}
	return p.expected(fmt.Sprintf("symbol %q", s), fmt.Sprintf("%q", t.Literal), t.End)
}

// parseElement parses one element: a parenthesized expression, an operand
// (number, constant or function call), or a bare unary operation token that
// the caller completes.
func (p *Parser) parseElement() (*tree.Node, error) {
	if p.isPunc("(") {
		if _, err := p.lex.Next(); err != nil {
			return nil, err
		}
		exp, err := p.parseOperation()
		if err != nil {
			return nil, err
		}
		if err = p.skipPunc(")"); err != nil {
			return nil, err
		}
		return exp, nil
	}
	t, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	switch {
	case t.Type == token.EOF:
		return nil, p.expected("operand (number, constant, function call) or an unary operation",
			"", p.lex.Pos()+1)
	case t.Number() || t.Constant():
		return tree.New(t), nil
	case t.Type == token.FUNCTION || t.Type == token.USERFUNCTION || t.Type == token.UNKNOWNFUNCTION:
		return p.parseFunction(t)
	case t.Type == token.OPERATION:
		if p.ctx.IsUnaryOperation(t.Literal) {
			return tree.New(t), nil
		}
		return nil, p.expected("unary operation",
			fmt.Sprintf("non-unary operation %q", t.Literal), t.End)
	default:
		return nil, p.expected("operand (number, constant, function call) or an unary operation",
			fmt.Sprintf("unexpected symbol %q", t.Literal), t.End)
	}
}

// parseFunction parses the call following a function name token. Built-in
// arity is checked right here; user function arity is only known at
// evaluation time (the name may be redefined between parse and call).
func (p *Parser) parseFunction(t token.Token) (*tree.Node, error) {
	if err := p.skipPunc("("); err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if err = p.skipPunc(")"); err != nil {
		return nil, err
	}
	if t.Type == token.FUNCTION {
		arity, _ := p.ctx.FunctionArity(t.Literal)
		if len(args) != arity {
			return nil, p.expected(fmt.Sprintf("%d argument(s)", arity),
				fmt.Sprintf("%d argument(s)", len(args)), t.End)
		}
	}
	n := tree.New(t)
	for _, a := range args {
		n.Add(a)
	}
	return n, nil
}

func (p *Parser) parseArgs() ([]*tree.Node, error) {
	var args []*tree.Node
	if p.lex.EOF() || p.isPunc(")") {
		return args, nil
	}
	for !p.lex.EOF() {
		arg, err := p.parseOperation()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.lex.EOF() {
			break
		}
		switch {
		case p.isPunc(","):
			if err = p.skipPunc(","); err != nil {
				return nil, err
			}
			if p.isPunc(")") {
				return nil, p.expected("an argument", `symbol ")"`, p.lex.Pos())
			}
		case p.isPunc(")"):
			return args, nil
		default:
			t, err := p.lex.Peek()
			if err != nil {
				return nil, err
			}
			return nil, p.expected(`"," or ")"`, fmt.Sprintf("%q", t.Literal), t.End)
		}
	}
	return args, nil
}

func (p *Parser) parseOperation() (*tree.Node, error) {
	elem, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	if p.lex.EOF() {
		return elem, nil
	}
	if elem.Tok.Type == token.OPERATION && len(elem.Children) == 0 {
		// A bare operation from parseElement is always unary, complete it
		// into a unary chain, then the input may continue with a binary
		// expression whose left side is that chain.
		unary, err := p.parseUnary(elem)
		if err != nil {
			return nil, err
		}
		if p.lex.EOF() {
			return unary, nil
		}
		return p.parseBinary(unary, 0)
	}
	return p.parseBinary(elem, 0)
}

// parseUnary completes the unary chain hanging off left: the next element
// is either the modified operand or another sign extending the chain.
func (p *Parser) parseUnary(left *tree.Node) (*tree.Node, error) {
	t, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	if t.Tok.Type == token.OPERATION && len(t.Children) == 0 {
		unary, err := p.parseUnary(t)
		if err != nil {
			return nil, err
		}
		left.Add(unary)
		return left, nil
	}
	left.Add(t)
	return left, nil
}

// parseBinary folds binary operations onto left while their precedence is
// strictly higher than myPrec. A unary chain counts as a modified operand,
// so the climb under it restarts at precedence 0.
func (p *Parser) parseBinary(left *tree.Node, myPrec int) (*tree.Node, error) {
	t, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}
	if t.Type != token.OPERATION {
		return left, nil
	}
	hisPrec, _ := p.ctx.OperationPrecedence(t.Literal)
	if hisPrec <= myPrec {
		return left, nil
	}
	if t, err = p.lex.Next(); err != nil {
		return nil, err
	}
	wrap := tree.New(t)
	wrap.Add(left)
	elem, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	if elem.Tok.Type == token.OPERATION && len(elem.Children) == 0 {
		if elem, err = p.parseUnary(elem); err != nil {
			return nil, err
		}
	}
	right := elem
	if !p.lex.EOF() {
		if right, err = p.parseBinary(elem, hisPrec); err != nil {
			return nil, err
		}
	}
	wrap.Add(right)
	if p.lex.EOF() {
		return wrap, nil
	}
	return p.parseBinary(wrap, myPrec)
}
