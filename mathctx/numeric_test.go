package mathctx_test

import (
	"math"
	"testing"

	"termcalc.io/termcalc/mathctx"
	"termcalc.io/termcalc/object"
)

const eps = 1e-9

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestApplyOperationReal(t *testing.T) {
	tests := []struct {
		kind     mathctx.OpKind
		l, r     float64
		expected float64
	}{
		{mathctx.Add, 5, 4, 9},
		{mathctx.Sub, 5, 4, 1},
		{mathctx.Mul, 5, 4, 20},
		{mathctx.Div, 5, 4, 1.25},
		{mathctx.Pow, 5, 4, 625},
		{mathctx.Pow, 5, -2, 0.04},
		{mathctx.Mod, 17, 5, 2},
		{mathctx.Mod, -21, 5, -1},
	}
	for _, tt := range tests {
		got := mathctx.ApplyOperation(tt.kind, object.Real(tt.l), object.Real(tt.r))
		if got.Kind != object.REAL || !closeTo(got.Real(), tt.expected) {
			t.Errorf("op %d (%g, %g) = %s, want %g", tt.kind, tt.l, tt.r, got.Inspect(), tt.expected)
		}
	}
}

func TestApplyOperationComplexPromotion(t *testing.T) {
	got := mathctx.ApplyOperation(mathctx.Add, object.Real(1), object.Complex(2, 3))
	if got.Kind != object.COMPLEX || got.Real() != 3 || got.Imag() != 3 {
		t.Errorf("1 + (2+3i) = %s", got.Inspect())
	}
	// complex exponent: 2^(i) = exp(ln(2)*i)
	got = mathctx.ApplyOperation(mathctx.Pow, object.Real(2), object.Imaginary(1))
	want := math.Log(2)
	if got.Kind != object.COMPLEX || !closeTo(got.Real(), math.Cos(want)) || !closeTo(got.Imag(), math.Sin(want)) {
		t.Errorf("2^i = %s", got.Inspect())
	}
	// complex base
	got = mathctx.ApplyOperation(mathctx.Pow, object.Imaginary(1), object.Real(2))
	if got.Kind != object.COMPLEX || !closeTo(got.Real(), -1) || !closeTo(got.Imag(), 0) {
		t.Errorf("i^2 = %s", got.Inspect())
	}
}

func TestModDomain(t *testing.T) {
	tests := []struct {
		l, r object.Number
	}{
		{object.Real(1.5), object.Real(2)}, // fractional lhs
		{object.Real(5), object.Real(2.5)}, // fractional rhs
		{object.Complex(1, 1), object.Real(2)},
		{object.Real(5), object.Real(0)}, // division by zero
	}
	for _, tt := range tests {
		if got := mathctx.ApplyOperation(mathctx.Mod, tt.l, tt.r); !got.IsNaN() {
			t.Errorf("%s %% %s = %s, want NaN", tt.l.Inspect(), tt.r.Inspect(), got.Inspect())
		}
	}
}

func TestApplyFunctionReal(t *testing.T) {
	one := func(name mathctx.FnKind, arg, expected float64) {
		t.Helper()
		got := mathctx.ApplyFunction(name, []object.Number{object.Real(arg)})
		if got.Kind != object.REAL || !closeTo(got.Real(), expected) {
			t.Errorf("fn %d (%g) = %s, want %g", name, arg, got.Inspect(), expected)
		}
	}
	one(mathctx.Cos, 0.4, 0.921060994002885)
	one(mathctx.Sin, math.Pi/2, 1)
	one(mathctx.Tan, math.Pi/3, 1.7320508075688767)
	one(mathctx.Cot, 7, math.Cos(7)/math.Sin(7))
	one(mathctx.Cosh, 0.7897, math.Cosh(0.7897))
	one(mathctx.Tanh, 0.2, math.Tanh(0.2))
	one(mathctx.Coth, 0.887, math.Cosh(0.887)/math.Sinh(0.887))
	one(mathctx.ArcCosh, 1.7897, math.Acosh(1.7897))
	one(mathctx.ArcSinh, 0.5, math.Asinh(0.5))
	one(mathctx.ArcTanh, -0.233, math.Atanh(-0.233))
	one(mathctx.ArcCoth, -1.7, math.Atanh(1/-1.7))
	one(mathctx.Exp, 1, math.E)
	one(mathctx.Ln, math.E, 1)
	one(mathctx.Sqrt, 4, 2)
}

func TestDomainPromotion(t *testing.T) {
	tests := []struct {
		kind    mathctx.FnKind
		arg     float64
		complex bool
	}{
		{mathctx.Sqrt, 4, false},
		{mathctx.Sqrt, -1, true},
		{mathctx.Ln, 3, false},
		{mathctx.Ln, -1, true},
		{mathctx.ArcCos, 0.7, false},
		{mathctx.ArcCos, 45, true},
		{mathctx.ArcSin, -1, false},
		{mathctx.ArcSin, 45, true},
		{mathctx.ArcCosh, 1.5, false},
		{mathctx.ArcCosh, 0.5, true},
		{mathctx.ArcTanh, 0.5, false},
		{mathctx.ArcTanh, 2, true},
		{mathctx.ArcCoth, 1.7, false},
		{mathctx.ArcCoth, 0.5, true},
	}
	for _, tt := range tests {
		got := mathctx.ApplyFunction(tt.kind, []object.Number{object.Real(tt.arg)})
		isComplex := got.Kind == object.COMPLEX
		if isComplex != tt.complex {
			t.Errorf("fn %d (%g): complex = %v, want %v (%s)", tt.kind, tt.arg, isComplex, tt.complex, got.Inspect())
		}
	}
	// sqrt(-1) = i, ln(-1) = i*pi
	got := mathctx.ApplyFunction(mathctx.Sqrt, []object.Number{object.Real(-1)})
	if !closeTo(got.Real(), 0) || !closeTo(got.Imag(), 1) {
		t.Errorf("sqrt(-1) = %s", got.Inspect())
	}
	got = mathctx.ApplyFunction(mathctx.Ln, []object.Number{object.Real(-1)})
	if !closeTo(got.Real(), 0) || !closeTo(got.Imag(), math.Pi) {
		t.Errorf("ln(-1) = %s", got.Inspect())
	}
}

func TestPartExtraction(t *testing.T) {
	n := object.Complex(2.5, -3)
	re := mathctx.ApplyFunction(mathctx.RealPart, []object.Number{n})
	if re.Kind != object.REAL || re.Real() != 2.5 {
		t.Errorf("re(2.5-3i) = %s", re.Inspect())
	}
	im := mathctx.ApplyFunction(mathctx.ImagPart, []object.Number{n})
	if im.Kind != object.REAL || im.Real() != -3 {
		t.Errorf("im(2.5-3i) = %s", im.Inspect())
	}
}

func TestPowRootFunctions(t *testing.T) {
	got := mathctx.ApplyFunction(mathctx.PowFn, []object.Number{object.Real(5), object.Real(2)})
	if !closeTo(got.Real(), 25) {
		t.Errorf("pow(5, 2) = %s", got.Inspect())
	}
	got = mathctx.ApplyFunction(mathctx.Root, []object.Number{object.Real(25), object.Real(2)})
	if !closeTo(got.Real(), 5) {
		t.Errorf("root(25, 2) = %s", got.Inspect())
	}
	if got = mathctx.ApplyFunction(mathctx.PowFn, []object.Number{object.Real(5)}); !got.IsNaN() {
		t.Errorf("pow with one arg = %s", got.Inspect())
	}
}

func TestInverseRoundTrips(t *testing.T) {
	tests := []struct {
		outer, inner mathctx.FnKind
		arg          float64
	}{
		{mathctx.ArcCos, mathctx.Cos, math.Pi / 4},
		{mathctx.ArcSin, mathctx.Sin, math.Pi / 3},
		{mathctx.ArcTan, mathctx.Tan, math.Pi / 7},
		{mathctx.ArcCot, mathctx.Cot, math.Pi / 4},
		{mathctx.Ln, mathctx.Exp, 1.75},
	}
	for _, tt := range tests {
		inner := mathctx.ApplyFunction(tt.inner, []object.Number{object.Real(tt.arg)})
		got := mathctx.ApplyFunction(tt.outer, []object.Number{inner})
		if got.Kind != object.REAL || !closeTo(got.Real(), tt.arg) {
			t.Errorf("fn %d (fn %d (%g)) = %s", tt.outer, tt.inner, tt.arg, got.Inspect())
		}
	}
}
