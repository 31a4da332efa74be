package formula

import "testing"

func TestFunctionRegistryOverwrite(t *testing.T) {
	reg := newFunctionRegistry()
	fixed := &FunctionInfo{Name: "pi2", Arity: 0, call: func([]float64) float64 { return 1 }, IsOverwritable: false}
	if err := reg.Register(fixed); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	again := &FunctionInfo{Name: "pi2", Arity: 0, call: func([]float64) float64 { return 2 }, IsOverwritable: false}
	if err := reg.Register(again); err == nil {
		t.Fatal("expected RegistrationError overwriting a non-overwritable entry")
	}
	var regErr *RegistrationError
	if err := reg.Register(again); err != nil {
		if e, ok := err.(*RegistrationError); ok {
			regErr = e
		}
	}
	if regErr == nil {
		t.Fatal("expected *RegistrationError")
	}

	user := &FunctionInfo{Name: "custom", Arity: 1, call: func(a []float64) float64 { return a[0] }, IsOverwritable: true}
	if err := reg.Register(user); err != nil {
		t.Fatalf("registering overwritable entry failed: %v", err)
	}
	replace := &FunctionInfo{Name: "custom", Arity: 1, call: func(a []float64) float64 { return a[0] * 2 }, IsOverwritable: true}
	if err := reg.Register(replace); err != nil {
		t.Fatalf("replacing overwritable entry failed: %v", err)
	}
	if got := reg.Lookup("custom").Call([]float64{3}); got != 6 {
		t.Fatalf("got %v, want 6 (replacement should have taken effect)", got)
	}
}

func TestFunctionRegistryCaseInsensitive(t *testing.T) {
	reg := newFunctionRegistry()
	registerDefaultFunctions(reg)
	if !reg.Contains("sin") {
		t.Fatal("expected default registration of sin")
	}
	if reg.Lookup("SIN") == nil {
		t.Fatal("lookup is expected to be case-insensitive; entries are stored lowercase")
	}
}

func TestFunctionRegistryEntriesOrder(t *testing.T) {
	reg := newFunctionRegistry()
	names := []string{"a", "b", "c"}
	for _, n := range names {
		reg.Register(&FunctionInfo{Name: n, Arity: 0, call: func([]float64) float64 { return 0 }, IsOverwritable: true})
	}
	entries := reg.Entries()
	if len(entries) != len(names) {
		t.Fatalf("got %d entries, want %d", len(entries), len(names))
	}
	for i, n := range names {
		if entries[i].Name != n {
			t.Errorf("entry %d: got %q, want %q (insertion order not preserved)", i, entries[i].Name, n)
		}
	}
}

func TestFunctionInfoCanCall(t *testing.T) {
	fixed := &FunctionInfo{Arity: 2}
	if fixed.CanCall(1) || fixed.CanCall(3) {
		t.Fatal("fixed-arity function accepted wrong argument count")
	}
	if !fixed.CanCall(2) {
		t.Fatal("fixed-arity function rejected correct argument count")
	}
	variadic := &FunctionInfo{Arity: variadicArity}
	if variadic.CanCall(0) {
		t.Fatal("variadic function accepted zero arguments")
	}
	if !variadic.CanCall(1) || !variadic.CanCall(16) {
		t.Fatal("variadic function rejected a valid argument count")
	}
}

func TestConstantRegistryOverwrite(t *testing.T) {
	reg := newConstantRegistry()
	registerDefaultConstants(reg)
	if err := reg.Register(&ConstantInfo{Name: "pi", Value: 4, IsOverwritable: false}); err == nil {
		t.Fatal("expected RegistrationError overwriting the default pi")
	}
	if err := reg.Register(&ConstantInfo{Name: "scale", Value: 10, IsOverwritable: true}); err != nil {
		t.Fatalf("registering a new overwritable constant failed: %v", err)
	}
	if reg.Lookup("scale").Value != 10 {
		t.Fatal("lookup did not return the registered value")
	}
}
