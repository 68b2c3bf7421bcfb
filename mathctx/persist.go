package mathctx

import (
	"encoding/json"
	"io"
	"sort"

	"termcalc.io/termcalc/object"
)

// Saved is the persisted shape of a context: only the mutable tables.
// Function bodies are not serialized, the original definition text is,
// and bodies are rebuilt by re-evaluating that text after load. The fixed
// tables are re-derived by New and never written out.
type Saved struct {
	Constants map[string]SavedConstant `json:"constants"`
	Functions map[string]SavedFunction `json:"functions"`
}

type SavedConstant struct {
	Kind string  `json:"kind"` // "real" or "complex"
	Re   float64 `json:"re"`
	Im   float64 `json:"im"`
}

type SavedFunction struct {
	Text   string   `json:"text"`
	Params []string `json:"params"`
}

// Number converts the persisted form back to a tagged value.
func (s SavedConstant) Number() object.Number {
	if s.Kind == "complex" {
		return object.Complex(s.Re, s.Im)
	}
	return object.Real(s.Re)
}

// Snapshot captures the mutable tables for persistence.
func (c *Context) Snapshot() Saved {
	s := Saved{
		Constants: make(map[string]SavedConstant, len(c.userConsts)),
		Functions: make(map[string]SavedFunction, len(c.userFuncs)),
	}
	for name, v := range c.userConsts {
		kind := "real"
		if v.Kind == object.COMPLEX {
			kind = "complex"
		}
		s.Constants[name] = SavedConstant{Kind: kind, Re: v.Real(), Im: v.Imag()}
	}
	for name, f := range c.userFuncs {
		s.Functions[name] = SavedFunction{Text: f.Text, Params: f.Params}
	}
	return s
}

// Save writes the snapshot as indented JSON.
func (c *Context) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c.Snapshot())
}

// SortedNames returns the keys of a saved or live table in stable order,
// for reproducible listings.
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
