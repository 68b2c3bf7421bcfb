// Package eval computes the value of a parsed expression tree against a
// session state. Arithmetic itself never fails: domain violations and
// unresolved symbols produce NaN. Errors are reserved for input that cannot
// mean anything, i.e. lex/parse failures and ill-formed definitions.
package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/log"
	"termcalc.io/termcalc/mathctx"
	"termcalc.io/termcalc/object"
	"termcalc.io/termcalc/parser"
	"termcalc.io/termcalc/token"
	"termcalc.io/termcalc/tree"
)

// EvalString parses and evaluates one input line. A definition returns
// object.NULL; anything else returns a Number and updates the ans constant.
func EvalString(s *State, input string) (object.Object, error) {
	root, err := parser.Parse(s.Context, input)
	if err != nil {
		return nil, err
	}
	return s.evalRoot(root, input)
}

// EvalTree evaluates an already parsed line, for callers that needed the
// tree for something else first.
func EvalTree(s *State, root *tree.Node, input string) (object.Object, error) {
	return s.evalRoot(root, input)
}

func (s *State) evalRoot(root *tree.Node, input string) (object.Object, error) {
	if k, ok := s.Context.OperationKind(root.Tok.Literal); ok &&
		root.Tok.Type == token.OPERATION && k == mathctx.Assign && len(root.Children) == 2 {
		return s.define(root, input)
	}
	if err := s.checkResolved(root, input); err != nil {
		return nil, err
	}
	s.depth = 0
	res := s.eval(root)
	s.Context.SetConstant("ans", res)
	log.LogVf("evaluated %q to %s", input, res.Inspect())
	return res, nil
}

// checkResolved rejects trees that still carry unresolved names, and user
// calls whose argument count no longer matches the current definition.
// Anything passing this walk evaluates to a Number, NaN included.
func (s *State) checkResolved(root *tree.Node, input string) error {
	var res error
	root.Visit(func(n *tree.Node) bool {
		switch n.Tok.Type {
		case token.UNKNOWNCONSTANT:
			res = &parser.ExpectedError{Input: input, Expected: "built-in or user defined constant",
				Found: fmt.Sprintf("unknown constant %q", n.Tok.Literal), Pos: n.Tok.End}
		case token.UNKNOWNFUNCTION:
			res = &parser.ExpectedError{Input: input, Expected: "built-in or user defined function",
				Found: fmt.Sprintf("unknown function %q", n.Tok.Literal+"(...)"), Pos: n.Tok.End}
		case token.USERFUNCTION:
			arity, ok := s.Context.FunctionArity(n.Tok.Literal)
			if !ok {
				res = &parser.ExpectedError{Input: input, Expected: "built-in or user defined function",
					Found: fmt.Sprintf("unknown function %q", n.Tok.Literal+"(...)"), Pos: n.Tok.End}
			} else if len(n.Children) != arity {
				res = &parser.ExpectedError{Input: input, Expected: fmt.Sprintf("%d argument(s)", arity),
					Found: fmt.Sprintf("%d argument(s)", len(n.Children)), Pos: n.Tok.End}
			}
		}
		return res == nil
	})
	return res
}

func (s *State) eval(n *tree.Node) object.Number {
	if s.depth >= s.MaxDepth {
		log.Warnf("evaluation depth cap %d reached", s.MaxDepth)
		return object.NaN
	}
	s.depth++
	defer func() { s.depth-- }()
	t := n.Tok
	switch t.Type {
	case token.REAL:
		v, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return object.NaN
		}
		return object.Real(v)
	case token.IMAG:
		v, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return object.NaN
		}
		return object.Imaginary(v)
	case token.CONSTANT, token.USERCONSTANT:
		v, ok := s.Context.ConstantValue(t.Literal)
		if !ok {
			return object.NaN
		}
		return v
	case token.OPERATION:
		return s.evalOperation(n)
	case token.FUNCTION:
		k, ok := s.Context.FunctionKind(t.Literal)
		if !ok {
			return object.NaN
		}
		args := make([]object.Number, len(n.Children))
		for i, c := range n.Children {
			args[i] = s.eval(c)
		}
		return mathctx.ApplyFunction(k, args)
	case token.USERFUNCTION:
		body, err := s.Context.SubstituteFunction(t.Literal, n.Children)
		if err != nil {
			log.Debugf("call of %s: %v", t.Literal, err)
			return object.NaN
		}
		return s.eval(body)
	default:
		return object.NaN
	}
}

func (s *State) evalOperation(n *tree.Node) object.Number {
	k, ok := s.Context.OperationKind(n.Tok.Literal)
	// an assignment below the root has no value
	if !ok || k == mathctx.Assign {
		return object.NaN
	}
	switch len(n.Children) {
	case 1:
		if k != mathctx.Add && k != mathctx.Sub {
			return object.NaN
		}
		return mathctx.ApplyOperation(k, object.Real(0), s.eval(n.Children[0]))
	case 2:
		return mathctx.ApplyOperation(k, s.eval(n.Children[0]), s.eval(n.Children[1]))
	default:
		return object.NaN
	}
}

// define handles a top level assignment: constant on the left stores a
// value, call shape on the left stores a function definition.
func (s *State) define(root *tree.Node, input string) (object.Object, error) {
	lhs, rhs := root.Children[0], root.Children[1]
	switch lhs.Tok.Type {
	case token.UNKNOWNCONSTANT, token.USERCONSTANT:
		if !lhs.Leaf() {
			break
		}
		if err := s.checkResolved(rhs, input); err != nil {
			return nil, err
		}
		s.depth = 0
		s.Context.SetConstant(lhs.Tok.Literal, s.eval(rhs))
		return object.NULL, nil
	case token.UNKNOWNFUNCTION, token.USERFUNCTION:
		return s.defineFunction(lhs, rhs, input)
	case token.CONSTANT, token.FUNCTION:
		return nil, &parser.ExpectedError{Input: input, Expected: "new constant name or function name",
			Found: fmt.Sprintf("built-in expression %q", lhs.Tok.Literal), Pos: lhs.Tok.End}
	}
	return nil, &parser.ExpectedError{Input: input, Expected: "new constant name or function name",
		Found: fmt.Sprintf("%q", lhs.Tok.Literal), Pos: lhs.Tok.End}
}

func (s *State) defineFunction(lhs, rhs *tree.Node, input string) (object.Object, error) {
	name := lhs.Tok.Literal
	params := make([]string, len(lhs.Children))
	seen := make(map[string]bool, len(lhs.Children))
	for i, p := range lhs.Children {
		switch {
		case p.Tok.Type == token.CONSTANT || p.Tok.Type == token.FUNCTION:
			return nil, &parser.ExpectedError{Input: input, Expected: "new constant name or function name",
				Found: fmt.Sprintf("built-in expression %q", p.Tok.Literal), Pos: p.Tok.End}
		case !p.Leaf() || !p.Tok.Constant():
			return nil, &parser.ExpectedError{Input: input, Expected: "constant name",
				Found: fmt.Sprintf("expression %q", p), Pos: p.Tok.End}
		}
		if seen[p.Tok.Literal] {
			return nil, &parser.ExpectedError{Input: input, Expected: "distinct arguments",
				Found: "function definition with partly equal arguments", Pos: 0}
		}
		seen[p.Tok.Literal] = true
		params[i] = p.Tok.Literal
	}
	// The body may reference only the parameters and names the registry
	// already resolves. A still-undefined name in the body, the function's
	// own name included, is rejected rather than left to fail at call time.
	var symErr error
	rhs.Visit(func(n *tree.Node) bool {
		switch n.Tok.Type {
		case token.UNKNOWNCONSTANT:
			if !seen[n.Tok.Literal] {
				symErr = &parser.ExpectedError{Input: input, Expected: "non-symbolic expression",
					Found: fmt.Sprintf("symbolic expression %q", n.Tok.Literal), Pos: n.Tok.End}
			}
		case token.UNKNOWNFUNCTION:
			symErr = &parser.ExpectedError{Input: input, Expected: "non-symbolic expression",
				Found: fmt.Sprintf("symbolic expression %q", n.Tok.Literal), Pos: n.Tok.End}
		}
		return symErr == nil
	})
	if symErr != nil {
		return nil, symErr
	}
	s.Context.DefineFunction(name, rhs, params, strings.TrimSpace(input))
	return object.NULL, nil
}

// LoadContext restores a saved session into s. Constants load directly;
// functions are rebuilt by re-evaluating their definition text, retried
// until a full pass makes no progress so that definitions may depend on
// each other regardless of name order.
func LoadContext(s *State, r io.Reader) error {
	var saved mathctx.Saved
	if err := json.NewDecoder(r).Decode(&saved); err != nil {
		return err
	}
	for name, c := range saved.Constants {
		s.Context.SetConstant(name, c.Number())
	}
	pending := mathctx.SortedNames(saved.Functions)
	for len(pending) > 0 {
		var next []string
		for _, name := range pending {
			if _, err := EvalString(s, saved.Functions[name].Text); err != nil {
				next = append(next, name)
			}
		}
		if len(next) == len(pending) {
			for _, name := range next {
				log.Warnf("skipping stored definition %q", saved.Functions[name].Text)
			}
			break
		}
		pending = next
	}
	return nil
}
