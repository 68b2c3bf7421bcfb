package mathctx

import (
	"math"
	"math/cmplx"

	"fortio.org/safecast"
	"termcalc.io/termcalc/object"
)

const (
	pi = math.Pi
	e  = math.E
)

// ApplyOperation computes a binary operation. The result is tagged complex
// whenever either operand is; Mod and Pow have their own domain rules.
// Assign has no numeric semantics, it is handled structurally by the
// evaluator and yields NaN here.
func ApplyOperation(k OpKind, l, r object.Number) object.Number {
	t := object.PromoteKind(l, r)
	switch k {
	case Add:
		return object.Num(t, l.Val+r.Val)
	case Sub:
		return object.Num(t, l.Val-r.Val)
	case Mul:
		return object.Num(t, l.Val*r.Val)
	case Div:
		return object.Num(t, l.Val/r.Val)
	case Mod:
		return modulo(l, r)
	case Pow:
		return power(l, r)
	case Assign:
		return object.NaN
	}
	return object.NaN
}

// modulo truncates both operands to integers and is undefined for complex
// operands or operands with a fractional part.
func modulo(l, r object.Number) object.Number {
	if l.Kind != object.REAL || r.Kind != object.REAL {
		return object.NaN
	}
	// safecast errors when the float does not convert exactly, which is
	// precisely the fractional-part rule.
	li, err := safecast.Convert[int64](l.Real())
	if err != nil {
		return object.NaN
	}
	ri, err := safecast.Convert[int64](r.Real())
	if err != nil || ri == 0 {
		return object.NaN
	}
	return object.Real(float64(li % ri))
}

// power is real math.Pow for two real operands and exp(ln(base)*exponent)
// as soon as either side is complex.
func power(l, r object.Number) object.Number {
	t := object.PromoteKind(l, r)
	if t == object.REAL {
		return object.Real(math.Pow(l.Real(), r.Real()))
	}
	if l.Kind == object.REAL {
		// real base, complex exponent: a^(b+ci) = exp(ln(a)*(b+ci))
		return object.Num(t, cmplx.Exp(r.Val*complex(math.Log(l.Real()), 0)))
	}
	return object.Num(t, cmplx.Exp(cmplx.Log(l.Val)*r.Val))
}

// ApplyFunction computes a built-in function over already evaluated
// arguments. Each function carries its own real-to-complex promotion rule:
// the result is tagged complex when the argument is, or when a real
// argument falls outside the function's real domain.
func ApplyFunction(k FnKind, args []object.Number) object.Number {
	if len(args) == 0 {
		return object.NaN
	}
	a := args[0]
	t := a.Kind
	switch k {
	case Sin:
		return object.Num(t, cmplx.Sin(a.Val))
	case Cos:
		return object.Num(t, cmplx.Cos(a.Val))
	case Tan:
		return object.Num(t, cmplx.Tan(a.Val))
	case Cot:
		return object.Num(t, cmplx.Cos(a.Val)/cmplx.Sin(a.Val))
	case Sinh:
		return object.Num(t, cmplx.Sinh(a.Val))
	case Cosh:
		return object.Num(t, cmplx.Cosh(a.Val))
	case Tanh:
		return object.Num(t, cmplx.Tanh(a.Val))
	case Coth:
		return object.Num(t, cmplx.Cosh(a.Val)/cmplx.Sinh(a.Val))
	case ArcSin:
		return object.Num(promoteOutside(a, -1, 1), cmplx.Asin(a.Val))
	case ArcCos:
		return object.Num(promoteOutside(a, -1, 1), cmplx.Acos(a.Val))
	case ArcTan:
		return object.Num(t, cmplx.Atan(a.Val))
	case ArcCot:
		return object.Num(t, complex(pi/2, 0)-cmplx.Atan(a.Val))
	case ArcSinh:
		return object.Num(t, cmplx.Asinh(a.Val))
	case ArcCosh:
		if t == object.REAL && a.Real() < 1 {
			t = object.COMPLEX
		}
		return object.Num(t, cmplx.Acosh(a.Val))
	case ArcTanh:
		if t == object.REAL && (a.Real() <= -1 || a.Real() >= 1) {
			t = object.COMPLEX
		}
		return object.Num(t, cmplx.Atanh(a.Val))
	case ArcCoth:
		if t == object.REAL && a.Real() >= -1 && a.Real() <= 1 {
			t = object.COMPLEX
		}
		return object.Num(t, cmplx.Atanh(1/a.Val))
	case Exp:
		return object.Num(t, cmplx.Exp(a.Val))
	case Ln:
		if t == object.REAL && a.Real() < 0 {
			t = object.COMPLEX
		}
		return object.Num(t, cmplx.Log(a.Val))
	case Sqrt:
		if t == object.REAL && a.Real() < 0 {
			t = object.COMPLEX
		}
		return object.Num(t, cmplx.Sqrt(a.Val))
	case RealPart:
		return object.Real(a.Real())
	case ImagPart:
		return object.Real(a.Imag())
	case PowFn:
		if len(args) != 2 {
			return object.NaN
		}
		return power(args[0], args[1])
	case Root:
		if len(args) != 2 {
			return object.NaN
		}
		n := args[1]
		return power(args[0], object.Num(n.Kind, 1/n.Val))
	}
	return object.NaN
}

// promoteOutside tags complex when a real argument leaves [lo, hi].
func promoteOutside(a object.Number, lo, hi float64) object.Type {
	if a.Kind == object.REAL && (a.Real() < lo || a.Real() > hi) {
		return object.COMPLEX
	}
	return a.Kind
}
