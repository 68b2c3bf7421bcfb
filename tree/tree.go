// Package tree provides the expression tree built by the parser and stored
// in the registry for user function bodies. Every node exclusively owns its
// children: no sharing, no cycles. Stored definitions are deep cloned before
// any call site rewrites them.
package tree

import (
	"strings"

	"termcalc.io/termcalc/token"
)

type Node struct {
	Tok      token.Token
	Children []*Node
}

func New(t token.Token) *Node {
	return &Node{Tok: t}
}

func (n *Node) Add(c *Node) {
	n.Children = append(n.Children, c)
}

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// Clone returns a deep copy of the subtree. The copy owns all of its nodes,
// so rewriting it never touches the original.
func (n *Node) Clone() *Node {
	c := &Node{Tok: n.Tok}
	if len(n.Children) == 0 {
		return c
	}
	c.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = child.Clone()
	}
	return c
}

// Visit calls f on every node of the subtree, parents before children.
// Traversal stops early when f returns false.
func (n *Node) Visit(f func(*Node) bool) bool {
	if !f(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Visit(f) {
			return false
		}
	}
	return true
}

// String returns a normalized representation of the expression: operations
// fully parenthesized, calls in name(args) form.
func (n *Node) String() string {
	out := strings.Builder{}
	n.print(&out)
	return out.String()
}

func (n *Node) print(out *strings.Builder) {
	switch {
	case n.Leaf():
		if n.Tok.Type == token.IMAG {
			out.WriteString(n.Tok.Literal)
			out.WriteString("i")
			return
		}
		out.WriteString(n.Tok.Literal)
	case n.Tok.Type == token.OPERATION && len(n.Children) == 1:
		out.WriteString("(")
		out.WriteString(n.Tok.Literal)
		n.Children[0].print(out)
		out.WriteString(")")
	case n.Tok.Type == token.OPERATION:
		out.WriteString("(")
		n.Children[0].print(out)
		out.WriteString(" ")
		out.WriteString(n.Tok.Literal)
		out.WriteString(" ")
		n.Children[1].print(out)
		out.WriteString(")")
	default:
		// function call, any arity
		out.WriteString(n.Tok.Literal)
		out.WriteString("(")
		for i, c := range n.Children {
			if i > 0 {
				out.WriteString(", ")
			}
			c.print(out)
		}
		out.WriteString(")")
	}
}
