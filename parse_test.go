package formula

import (
	"math"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, text string) *Operation {
	t.Helper()
	funcs := newFunctionRegistry()
	registerDefaultFunctions(funcs)
	consts := newConstantRegistry()
	registerDefaultConstants(consts)
	root, _, err := buildAST(text, Invariant, funcs, consts)
	if err != nil {
		t.Fatalf("%s: unexpected parse error: %v", text, err)
	}
	return root
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"2+3*4", 14},
		{"2^3^2", 512},
		{"-2^2", -4},
		{"2+-3", -1},
		{"2*-3", -6},
		{"- -2", 2},
		{"(2+3)*4", 20},
		{"4-5-6", 4 - 5 - 6},
		{"4/5/6", 4.0 / 5.0 / 6.0},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			root := mustParse(t, c.src)
			got, err := interpret(root, nil)
			if err != nil {
				t.Fatalf("unexpected evaluation error: %v", err)
			}
			if got != c.want {
				t.Errorf("%s = %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestParseFunctionCalls(t *testing.T) {
	cases := []struct {
		src  string
		vars Environment
		want float64
	}{
		{"sin(pi)", nil, math.Sin(math.Pi)},
		{"logn(8,2)+sqrt(abs(-9))", nil, 3 + 3},
		{"x*x + 2*x + 1", Environment{"x": 3}, 16},
		{"ifmore(a,0,b,c)", Environment{"a": 1, "b": 10, "c": 20}, 10},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			root := mustParse(t, c.src)
			got, err := interpret(root, c.vars)
			if err != nil {
				t.Fatalf("unexpected evaluation error: %v", err)
			}
			if got != c.want {
				t.Errorf("%s = %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	funcs := newFunctionRegistry()
	registerDefaultFunctions(funcs)
	consts := newConstantRegistry()
	registerDefaultConstants(consts)

	cases := []struct {
		src  string
		want error
	}{
		{"max(1)", &CallError{}},
		{"sin(1,2)", &CallError{}},
		{"nosuchfunction(1)", &CallError{}},
		{"(1+2", &BracketError{}},
		{"1+2)", &BracketError{}},
		{"1+", &EmptyExpressionError{}},
		{"()", &EmptyExpressionError{}},
		{"1 2", &ParseError{}},
		{"1,2", &SeparatorError{}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, _, err := buildAST(c.src, Invariant, funcs, consts)
			if err == nil {
				t.Fatalf("%s: expected an error", c.src)
			}
			wantType := reflect.TypeOf(c.want)
			if gotType := reflect.TypeOf(err); gotType != wantType {
				t.Fatalf("%s: got %v (%T), want %v", c.src, err, err, wantType)
			}
		})
	}
}

func TestParseVars(t *testing.T) {
	funcs := newFunctionRegistry()
	registerDefaultFunctions(funcs)
	consts := newConstantRegistry()
	registerDefaultConstants(consts)
	_, names, err := buildAST("x + y*pi - sin(z)", Invariant, funcs, consts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"x", "y", "z"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	funcs := newFunctionRegistry()
	registerDefaultFunctions(funcs)
	consts := newConstantRegistry()
	registerDefaultConstants(consts)
	a, _, err := buildAST("SIN(PI)", Invariant, funcs, consts)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := buildAST("sin(pi)", Invariant, funcs, consts)
	if err != nil {
		t.Fatal(err)
	}
	av, _ := interpret(a, nil)
	bv, _ := interpret(b, nil)
	if av != bv {
		t.Errorf("case-insensitive forms disagree: %v vs %v", av, bv)
	}
}

func TestParseLocale(t *testing.T) {
	funcs := newFunctionRegistry()
	registerDefaultFunctions(funcs)
	consts := newConstantRegistry()
	registerDefaultConstants(consts)
	root, _, err := buildAST("max(1,5;2,5)", commaDecimal, funcs, consts)
	if err != nil {
		t.Fatal(err)
	}
	got, err := interpret(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2.5 {
		t.Errorf("got %v, want 2.5", got)
	}
}
