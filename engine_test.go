package formula

import "testing"

func TestEngineCalculateScenarios(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		src  string
		vars map[string]float64
		want float64
	}{
		{"2+3*4", nil, 14},
		{"2^3^2", nil, 512},
		{"-2^2", nil, -4},
		{"logn(8,2)+sqrt(abs(-9))", nil, 6},
		{"x*x + 2*x + 1", map[string]float64{"x": 3}, 16},
		{"ifmore(a,0,b,c)", map[string]float64{"a": 1, "b": 10, "c": 20}, 10},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := eng.Calculate(c.src, c.vars)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestEngineCaseInsensitivity(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	a, err := eng.Calculate("SIN(PI)", nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := eng.Calculate("sin(pi)", nil)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("SIN(PI)=%v, sin(pi)=%v", a, b)
	}
}

func TestEngineNameProtection(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Calculate("pi", map[string]float64{"pi": 3.0}); err == nil {
		t.Fatal("expected a VariableNameError shadowing a constant")
	} else if _, ok := err.(*VariableNameError); !ok {
		t.Fatalf("got %T, want *VariableNameError", err)
	}
	if _, err := eng.Calculate("sin", map[string]float64{"sin": 1.0}); err == nil {
		t.Fatal("expected a VariableNameError shadowing a function")
	}
}

func TestEngineArityEnforcement(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Build("max(1)"); err == nil {
		t.Fatal("expected a CallError for max/1")
	}
	if _, err := eng.Build("sin(1,2)"); err == nil {
		t.Fatal("expected a CallError for sin/2")
	}
}

func TestEngineCacheIdempotence(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	f1, err := eng.Build("x*2")
	if err != nil {
		t.Fatal(err)
	}
	f2, err := eng.Build("x*2")
	if err != nil {
		t.Fatal(err)
	}
	v1, err := f1(Environment{"x": 5})
	if err != nil {
		t.Fatal(err)
	}
	v2, err := f2(Environment{"x": 5})
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 {
		t.Errorf("two builds of the same text disagree: %v vs %v", v1, v2)
	}
}

func TestEngineCacheDisabled(t *testing.T) {
	eng, err := NewEngine(WithCache(false))
	if err != nil {
		t.Fatal(err)
	}
	got, err := eng.Calculate("1+1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("got %v, want 2", got)
	}
}

func TestEngineInterpretedMode(t *testing.T) {
	eng, err := NewEngine(WithExecutionMode(Interpreted))
	if err != nil {
		t.Fatal(err)
	}
	got, err := eng.Calculate("2^3^2", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 512 {
		t.Errorf("got %v, want 512", got)
	}
}

func TestEngineUnknownExecutionMode(t *testing.T) {
	if _, err := NewEngine(WithExecutionMode(ExecutionMode(99))); err == nil {
		t.Fatal("expected a ConfigError for an unknown execution mode")
	} else if _, ok := err.(*ConfigError); !ok {
		t.Fatalf("got %T, want *ConfigError", err)
	}
}

func TestEngineAddFunction(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.AddFunction2("double", func(a, b float64) float64 { return a + b }, true); err != nil {
		t.Fatal(err)
	}
	got, err := eng.Calculate("double(1,2)", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("got %v, want 3", got)
	}
	if err := eng.AddFunction0("sin", func() float64 { return 0 }, true); err == nil {
		t.Fatal("expected a RegistrationError overwriting the default sin")
	}
}

func TestEngineAddConstant(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.AddConstant("golden", 1.618); err != nil {
		t.Fatal(err)
	}
	got, err := eng.Calculate("golden*2", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.618*2 {
		t.Errorf("got %v, want %v", got, 1.618*2)
	}
	if err := eng.AddConstant("pi", 4); err == nil {
		t.Fatal("expected a RegistrationError overwriting the default pi")
	}
}

func TestEngineVerifyArgumentErrors(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Verify("", map[string]float64{}); err == nil {
		t.Fatal("expected an ArgumentError for empty formula text")
	}
	if err := eng.Verify("1+1", nil); err == nil {
		t.Fatal("expected an ArgumentError for a nil variables map")
	}
}

func TestEngineFunctionsAndConstants(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	fns := eng.Functions()
	if len(fns) == 0 {
		t.Fatal("expected the default function library to be registered")
	}
	cs := eng.Constants()
	found := map[string]bool{}
	for _, c := range cs {
		found[c.Name] = true
	}
	if !found["e"] || !found["pi"] {
		t.Fatalf("expected e and pi among constants, got %+v", cs)
	}
}

func TestEngineWithoutDefaults(t *testing.T) {
	eng, err := NewEngine(WithDefaultFunctions(false), WithDefaultConstants(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(eng.Functions()) != 0 {
		t.Fatal("expected no functions registered")
	}
	if _, err := eng.Calculate("pi", nil); err == nil {
		t.Fatal("expected pi to be an undefined variable without default constants")
	}
}
