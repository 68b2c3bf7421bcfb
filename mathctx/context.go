// Package mathctx holds the mathematical environment every pipeline stage
// consults: the fixed operator, function and constant tables, the character
// classification driving the tokenizer, and the mutable user constant and
// user function tables that persist for a session. The fixed tables are
// re-derived by New and are never serialized.
package mathctx

import (
	"fmt"

	"fortio.org/log"
	"fortio.org/sets"
	"termcalc.io/termcalc/object"
	"termcalc.io/termcalc/tree"
)

type OpKind uint8

const (
	Add OpKind = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Assign
)

type FnKind uint8

const (
	Sin FnKind = iota
	Cos
	Tan
	Cot
	Sinh
	Cosh
	Tanh
	Coth
	ArcSin
	ArcCos
	ArcTan
	ArcCot
	ArcSinh
	ArcCosh
	ArcTanh
	ArcCoth
	Exp
	Ln
	Sqrt
	RealPart
	ImagPart
	PowFn
	Root
)

type opEntry struct {
	kind OpKind
	prec int
}

type fnEntry struct {
	kind  FnKind
	arity int
}

// UserFunction is a stored definition: the body tree kept in the registry,
// the ordered parameter names and the original definition line (persisted
// and shown by the info command).
type UserFunction struct {
	Body   *tree.Node
	Params []string
	Text   string
}

// Context is one session's mathematical environment. It is not safe for
// concurrent use; a multi-session deployment needs one Context per session.
type Context struct {
	ops        map[string]opEntry
	funcs      map[string]fnEntry
	consts     map[string]object.Number
	userConsts map[string]object.Number
	userFuncs  map[string]UserFunction
}

func New() *Context {
	c := &Context{
		ops:        make(map[string]opEntry, 7),
		funcs:      make(map[string]fnEntry, 32),
		consts:     make(map[string]object.Number, 3),
		userConsts: make(map[string]object.Number),
		userFuncs:  make(map[string]UserFunction),
	}
	c.ops["="] = opEntry{Assign, 1}
	c.ops["+"] = opEntry{Add, 2}
	c.ops["-"] = opEntry{Sub, 2}
	c.ops["*"] = opEntry{Mul, 3}
	c.ops["/"] = opEntry{Div, 3}
	c.ops["%"] = opEntry{Mod, 3}
	c.ops["^"] = opEntry{Pow, 4}

	one := func(k FnKind, names ...string) {
		for _, n := range names {
			c.funcs[n] = fnEntry{k, 1}
		}
	}
	one(Sin, "sin")
	one(Cos, "cos")
	one(Tan, "tan")
	one(Cot, "cot")
	one(Sinh, "sinh")
	one(Cosh, "cosh")
	one(Tanh, "tanh")
	one(Coth, "coth")
	one(ArcSin, "arcsin", "asin")
	one(ArcCos, "arccos", "acos")
	one(ArcTan, "arctan", "atan")
	one(ArcCot, "arccot", "acot")
	one(ArcSinh, "arcsinh", "asinh")
	one(ArcCosh, "arccosh", "acosh")
	one(ArcTanh, "arctanh", "atanh")
	one(ArcCoth, "arccoth", "acoth")
	one(Exp, "exp")
	one(Ln, "ln")
	one(Sqrt, "sqrt")
	one(RealPart, "re")
	one(ImagPart, "im")
	c.funcs["pow"] = fnEntry{PowFn, 2}
	c.funcs["root"] = fnEntry{Root, 2}

	c.consts["pi"] = object.Real(pi)
	c.consts["e"] = object.Real(e)
	c.consts["i"] = object.Imaginary(1)
	return c
}

// Character classification, driving the tokenizer.

func (c *Context) IsNumberSymbol(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// IsLiteralSymbol reports whether ch can start or continue an identifier.
// Identifiers may contain digits but not start with one; the tokenizer
// dispatches on the first character.
func (c *Context) IsLiteralSymbol(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func (c *Context) IsPunctuationSymbol(ch byte) bool {
	return ch == '(' || ch == ')' || ch == ','
}

// Membership queries.

func (c *Context) IsOperation(s string) bool {
	_, ok := c.ops[s]
	return ok
}

// IsUnaryOperation reports whether s may appear as a prefix modifier of an
// operand. Only Add and Sub qualify.
func (c *Context) IsUnaryOperation(s string) bool {
	op, ok := c.ops[s]
	return ok && (op.kind == Add || op.kind == Sub)
}

func (c *Context) IsBuiltinFunction(s string) bool {
	_, ok := c.funcs[s]
	return ok
}

func (c *Context) IsUserFunction(s string) bool {
	_, ok := c.userFuncs[s]
	return ok
}

func (c *Context) IsFunction(s string) bool {
	return c.IsBuiltinFunction(s) || c.IsUserFunction(s)
}

func (c *Context) IsBuiltinConstant(s string) bool {
	_, ok := c.consts[s]
	return ok
}

func (c *Context) IsUserConstant(s string) bool {
	_, ok := c.userConsts[s]
	return ok
}

func (c *Context) IsConstant(s string) bool {
	return c.IsBuiltinConstant(s) || c.IsUserConstant(s)
}

// Accessors.

func (c *Context) OperationKind(s string) (OpKind, bool) {
	op, ok := c.ops[s]
	return op.kind, ok
}

func (c *Context) OperationPrecedence(s string) (int, bool) {
	op, ok := c.ops[s]
	return op.prec, ok
}

func (c *Context) FunctionKind(s string) (FnKind, bool) {
	f, ok := c.funcs[s]
	return f.kind, ok
}

// FunctionArity returns the number of arguments s takes, for built-in and
// user functions alike.
func (c *Context) FunctionArity(s string) (int, bool) {
	if f, ok := c.funcs[s]; ok {
		return f.arity, true
	}
	if f, ok := c.userFuncs[s]; ok {
		return len(f.Params), true
	}
	return 0, false
}

// ConstantValue resolves a constant name, built-ins first.
func (c *Context) ConstantValue(s string) (object.Number, bool) {
	if v, ok := c.consts[s]; ok {
		return v, true
	}
	v, ok := c.userConsts[s]
	return v, ok
}

// Mutators for the session-scoped tables.

func (c *Context) SetConstant(name string, v object.Number) {
	log.Debugf("set constant %s = %s", name, v.Inspect())
	c.userConsts[name] = v
}

func (c *Context) RemoveConstant(name string) bool {
	_, ok := c.userConsts[name]
	delete(c.userConsts, name)
	return ok
}

// DefineFunction stores or replaces a user function. The registry takes
// ownership of body.
func (c *Context) DefineFunction(name string, body *tree.Node, params []string, text string) {
	log.Debugf("define function %s(%v) = %s", name, params, body)
	c.userFuncs[name] = UserFunction{Body: body, Params: params, Text: text}
}

func (c *Context) RemoveFunction(name string) bool {
	_, ok := c.userFuncs[name]
	delete(c.userFuncs, name)
	return ok
}

func (c *Context) UserConstants() map[string]object.Number {
	return c.userConsts
}

func (c *Context) UserFunctions() map[string]UserFunction {
	return c.userFuncs
}

// SubstituteFunction returns an independent copy of name's stored body with
// every constant-typed leaf whose text matches a parameter replaced by a
// clone of the corresponding argument subtree. The stored definition is
// never mutated.
func (c *Context) SubstituteFunction(name string, args []*tree.Node) (*tree.Node, error) {
	f, ok := c.userFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown user function %q", name)
	}
	if len(args) != len(f.Params) {
		return nil, fmt.Errorf("%s takes %d argument(s), got %d", name, len(f.Params), len(args))
	}
	byName := make(map[string]*tree.Node, len(args))
	for i, p := range f.Params {
		byName[p] = args[i]
	}
	return substitute(f.Body.Clone(), byName), nil
}

func substitute(n *tree.Node, args map[string]*tree.Node) *tree.Node {
	if n.Leaf() && n.Tok.Constant() {
		if arg, ok := args[n.Tok.Literal]; ok {
			return arg.Clone()
		}
		return n
	}
	for i, c := range n.Children {
		n.Children[i] = substitute(c, args)
	}
	return n
}

// Info lists the names the registry currently knows, user definitions
// included. It feeds tab completion and the info command and must be
// re-derived after any structural change.
type Info struct {
	Operations sets.Set[string]
	Functions  sets.Set[string]
	Constants  sets.Set[string]
}

func (c *Context) Info() Info {
	info := Info{
		Operations: sets.New[string](),
		Functions:  sets.New[string](),
		Constants:  sets.New[string](),
	}
	for name := range c.ops {
		info.Operations.Add(name)
	}
	for name := range c.funcs {
		info.Functions.Add(name)
	}
	for name := range c.userFuncs {
		info.Functions.Add(name)
	}
	for name := range c.consts {
		info.Constants.Add(name)
	}
	for name := range c.userConsts {
		info.Constants.Add(name)
	}
	return info
}
