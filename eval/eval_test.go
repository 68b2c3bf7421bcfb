package eval_test

import (
	"math"
	"strings"
	"testing"

	"termcalc.io/termcalc/eval"
	"termcalc.io/termcalc/object"
)

const eps = 1e-9

func evalNumber(t *testing.T, s *eval.State, input string) object.Number {
	t.Helper()
	res, err := eval.EvalString(s, input)
	if err != nil {
		t.Fatalf("EvalString(%q): %v", input, err)
	}
	n, ok := res.(object.Number)
	if !ok {
		t.Fatalf("EvalString(%q) = %T, want Number", input, res)
	}
	return n
}

func evalNil(t *testing.T, s *eval.State, input string) {
	t.Helper()
	res, err := eval.EvalString(s, input)
	if err != nil {
		t.Fatalf("EvalString(%q): %v", input, err)
	}
	if _, ok := res.(object.Null); !ok {
		t.Fatalf("EvalString(%q) = %T (%s), want Null", input, res, res.Inspect())
	}
}

func TestArithmetic(t *testing.T) {
	s := eval.NewState()
	tests := []struct {
		input    string
		expected float64
	}{
		{"1+1", 2},
		{"15-8.78", 6.22},
		{"1 + cos(pi) * 8", -7},
		{"5^-2", 0.04},
		{"tan(pi/3)", math.Sqrt(3)},
		{"exp(ln(3))", 3},
		{"24*74+9^1.55-88/3", 24*74 + math.Pow(9, 1.55) - 88.0/3},
		{"12*(1.0+2.7)", 44.4},
		{"(25+3)/-7", -4},
		{"6*--2", 12},
		{"+15.7^+--+-0.5", math.Pow(15.7, -0.5)},
		{"-3^2", 9},
		{"17%5", 2},
		{"root(25, 2)", 5},
		{"pow(5, 2)", 25},
		{"re(3-2i)", 3},
		{"im(3-2i)", -2},
	}
	for _, tt := range tests {
		got := evalNumber(t, s, tt.input)
		if got.Kind != object.REAL || math.Abs(got.Real()-tt.expected) > eps {
			t.Errorf("eval(%q) = %s, want %g", tt.input, got.Inspect(), tt.expected)
		}
	}
}

func TestComplexPromotion(t *testing.T) {
	s := eval.NewState()
	got := evalNumber(t, s, "sqrt(-1)")
	if got.Kind != object.COMPLEX || math.Abs(got.Imag()-1) > eps || math.Abs(got.Real()) > eps {
		t.Errorf("sqrt(-1) = %s", got.Inspect())
	}
	got = evalNumber(t, s, "ln(-1)")
	if got.Kind != object.COMPLEX || math.Abs(got.Imag()-math.Pi) > eps {
		t.Errorf("ln(-1) = %s", got.Inspect())
	}
	got = evalNumber(t, s, "sqrt(4)")
	if got.Kind != object.REAL || got.Real() != 2 {
		t.Errorf("sqrt(4) = %s", got.Inspect())
	}
	got = evalNumber(t, s, "ln(e)")
	if got.Kind != object.REAL || math.Abs(got.Real()-1) > eps {
		t.Errorf("ln(e) = %s", got.Inspect())
	}
	got = evalNumber(t, s, "2i*3i")
	if got.Kind != object.COMPLEX || math.Abs(got.Real()+6) > eps || math.Abs(got.Imag()) > eps {
		t.Errorf("2i*3i = %s", got.Inspect())
	}
	got = evalNumber(t, s, "arccos(45)")
	if got.Kind != object.COMPLEX || math.Abs(math.Abs(got.Imag())-4.4996861906) > 1e-8 {
		t.Errorf("arccos(45) = %s", got.Inspect())
	}
}

func TestAns(t *testing.T) {
	s := eval.NewState()
	evalNumber(t, s, "15-8.78")
	got := evalNumber(t, s, "ans")
	if math.Abs(got.Real()-6.22) > eps {
		t.Errorf("ans = %s, want 6.22", got.Inspect())
	}
	got = evalNumber(t, s, "ans+1")
	if math.Abs(got.Real()-7.22) > eps {
		t.Errorf("ans+1 = %s", got.Inspect())
	}
	// definitions leave ans alone
	evalNil(t, s, "c = 5")
	got = evalNumber(t, s, "ans")
	if math.Abs(got.Real()-7.22) > eps {
		t.Errorf("ans after definition = %s, want 7.22", got.Inspect())
	}
}

func TestConstantAssignment(t *testing.T) {
	s := eval.NewState()
	evalNil(t, s, "c = e + pi")
	got := evalNumber(t, s, "c")
	if math.Abs(got.Real()-(math.E+math.Pi)) > eps {
		t.Errorf("c = %s", got.Inspect())
	}
	// reassignment, self referencing
	evalNil(t, s, "c = c + 1")
	got = evalNumber(t, s, "c")
	if math.Abs(got.Real()-(math.E+math.Pi+1)) > eps {
		t.Errorf("c after increment = %s", got.Inspect())
	}
}

func TestFunctionDefinition(t *testing.T) {
	s := eval.NewState()
	evalNil(t, s, "f(x, y) = x + y")
	got := evalNumber(t, s, "f(3, 15.2)")
	if math.Abs(got.Real()-18.2) > eps {
		t.Errorf("f(3, 15.2) = %s", got.Inspect())
	}
	got = evalNumber(t, s, "f(3+5, arccos(0.7))")
	if math.Abs(got.Real()-(8+math.Acos(0.7))) > eps {
		t.Errorf("f(3+5, arccos(0.7)) = %s", got.Inspect())
	}
	// redefinition with a different arity
	evalNil(t, s, "f(x) = x + 1")
	got = evalNumber(t, s, "f(3)")
	if got.Real() != 4 {
		t.Errorf("f(3) after redefinition = %s", got.Inspect())
	}
	// unary minus over a parameter
	evalNil(t, s, "g(x) = -x")
	got = evalNumber(t, s, "g(5)")
	if got.Real() != -5 {
		t.Errorf("g(5) = %s", got.Inspect())
	}
	// square round trip
	evalNil(t, s, "sq(x) = x^2")
	if a, b := evalNumber(t, s, "sq(3)"), evalNumber(t, s, "3^2"); a.Real() != b.Real() {
		t.Errorf("sq(3) = %s, 3^2 = %s", a.Inspect(), b.Inspect())
	}
	// composition of user functions
	evalNil(t, s, "h(x) = sq(x) + f(x)")
	got = evalNumber(t, s, "h(2)")
	if got.Real() != 7 {
		t.Errorf("h(2) = %s, want 7", got.Inspect())
	}
}

func TestEvalIdempotent(t *testing.T) {
	s := eval.NewState()
	evalNil(t, s, "f(x) = x^2 + 1")
	first := evalNumber(t, s, "f(3)+f(4)")
	second := evalNumber(t, s, "f(3)+f(4)")
	if first != second {
		t.Errorf("re-evaluation differs: %s vs %s", first.Inspect(), second.Inspect())
	}
}

func TestNaNOutcomes(t *testing.T) {
	s := eval.NewState()
	evalNil(t, s, "x = 2")
	tests := []string{
		"1.5 % 2",   // fractional modulo
		"5 % 0",     // zero modulo
		"2i % 3",    // complex modulo
		"1+(x = 2)", // assignment below the root
		"5h",        // number literal with junk folded in
	}
	for _, input := range tests {
		if got := evalNumber(t, s, input); !got.IsNaN() {
			t.Errorf("eval(%q) = %s, want NaN", input, got.Inspect())
		}
	}
}

func TestRunawayRecursion(t *testing.T) {
	s := eval.NewState()
	evalNil(t, s, "f(x) = x + 1")
	// rebinding f to its own call recurses through the new definition
	evalNil(t, s, "f(x) = f(x) + 2")
	if got := evalNumber(t, s, "f(1)"); !got.IsNaN() {
		t.Errorf("f(1) = %s, want NaN", got.Inspect())
	}
}

func TestEvalErrors(t *testing.T) {
	s := eval.NewState()
	evalNil(t, s, "u(x, y) = x + y")
	tests := []struct {
		input    string
		expected string
	}{
		{
			"3-cis(pi/2)+sin(0)",
			"Error: Expected built-in or user defined function.\n3-cis(pi/2)+sin(0)\n    ^~~~ Found: unknown function \"cis(...)\"",
		},
		{
			"5*3+cos(py)-7^1",
			"Error: Expected built-in or user defined constant.\n5*3+cos(py)-7^1\n         ^~~~ Found: unknown constant \"py\"",
		},
		{
			"pi = 5",
			"Error: Expected new constant name or function name.\npi = 5\n ^~~~ Found: built-in expression \"pi\"",
		},
		{
			"z(x) = z(x) + 2",
			"Error: Expected non-symbolic expression.\nz(x) = z(x) + 2\n       ^~~~ Found: symbolic expression \"z\"",
		},
		{
			"y(x) = z",
			"Error: Expected non-symbolic expression.\ny(x) = z\n       ^~~~ Found: symbolic expression \"z\"",
		},
		{
			"h(x, y, x) = x^2+y",
			"Error: Expected distinct arguments.\nh(x, y, x) = x^2+y\n^~~~ Found: function definition with partly equal arguments",
		},
		{
			"u(1)",
			"Error: Expected 2 argument(s).\nu(1)\n^~~~ Found: 1 argument(s)",
		},
	}
	for _, tt := range tests {
		_, err := eval.EvalString(s, tt.input)
		if err == nil {
			t.Errorf("EvalString(%q): expected error, got none", tt.input)
			continue
		}
		if err.Error() != tt.expected {
			t.Errorf("EvalString(%q):\ngot  %q\nwant %q", tt.input, err.Error(), tt.expected)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := eval.NewState()
	evalNil(t, s, "c = 2+3i")
	evalNil(t, s, "f(x) = x^2")
	evalNil(t, s, "g(x) = f(x) + c")
	buf := strings.Builder{}
	if err := s.Context.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	restored := eval.NewState()
	if err := eval.LoadContext(restored, strings.NewReader(buf.String())); err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	got := evalNumber(t, restored, "g(2)")
	if got.Kind != object.COMPLEX || got.Real() != 6 || got.Imag() != 3 {
		t.Errorf("g(2) after reload = %s, want 6+3i", got.Inspect())
	}
}
