package eval

import (
	"termcalc.io/termcalc/mathctx"
)

// DefaultMaxDepth bounds tree evaluation. User functions substitute their
// arguments before evaluating, so a definition rebound to itself would
// otherwise recurse forever; past the cap the result degrades to NaN.
const DefaultMaxDepth = 250

// State is one evaluation session: the registry plus the recursion bound.
type State struct {
	Context  *mathctx.Context
	MaxDepth int
	depth    int
}

func NewState() *State {
	return &State{Context: mathctx.New(), MaxDepth: DefaultMaxDepth}
}
