// Package object holds the values evaluation can produce: a tagged Number
// (real or complex over one complex128 pair) and Null, the outcome of a
// definition, which prints nothing.
package object

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

type Type uint8

type Object interface {
	Type() Type
	Inspect() string
}

const (
	UNKNOWN Type = iota
	REAL
	COMPLEX
	NIL
)

// Number is the tagged numeric result. The tag tracks which domain the value
// was computed in: a REAL number conceptually carries a zero imaginary part.
// Arithmetic re-tags to COMPLEX whenever an operand is complex or a function
// result leaves the real domain.
type Number struct {
	Kind Type
	Val  complex128
}

// NaN is the undefined outcome: domain violations and unresolved symbols
// bottom out here instead of aborting evaluation.
var NaN = Number{Kind: REAL, Val: complex(math.NaN(), 0)}

func Real(v float64) Number {
	return Number{Kind: REAL, Val: complex(v, 0)}
}

func Imaginary(v float64) Number {
	return Number{Kind: COMPLEX, Val: complex(0, v)}
}

func Complex(re, im float64) Number {
	return Number{Kind: COMPLEX, Val: complex(re, im)}
}

// Num tags an already computed value.
func Num(kind Type, v complex128) Number {
	return Number{Kind: kind, Val: v}
}

func (n Number) Type() Type {
	return n.Kind
}

func (n Number) Real() float64 {
	return real(n.Val)
}

func (n Number) Imag() float64 {
	return imag(n.Val)
}

func (n Number) IsNaN() bool {
	return cmplx.IsNaN(n.Val)
}

func (n Number) Inspect() string {
	if n.Kind == REAL {
		return formatFloat(real(n.Val))
	}
	out := strings.Builder{}
	out.WriteString(formatFloat(real(n.Val)))
	im := imag(n.Val)
	if im >= 0 || math.IsNaN(im) {
		out.WriteString("+")
	}
	out.WriteString(formatFloat(im))
	out.WriteString("i")
	return out.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// PromoteKind returns COMPLEX if any of the operands is complex, REAL
// otherwise.
func PromoteKind(args ...Number) Type {
	for _, a := range args {
		if a.Kind == COMPLEX {
			return COMPLEX
		}
	}
	return REAL
}

// Null is the result of a definition: the session loop prints nothing for it.
type Null struct{}

var NULL = Null{}

func (Null) Type() Type {
	return NIL
}

func (Null) Inspect() string {
	return ""
}
