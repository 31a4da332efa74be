package formula

// Callable is a reusable, concurrency-safe evaluator produced by Build. It
// closes over the registries it was built against but not over any specific
// variable environment; a single Callable may be invoked from any number of
// goroutines simultaneously as long as each call supplies its own
// Environment.
type Callable func(env Environment) (float64, error)

// compile turns root into a Callable that does not walk the tree at call
// time: every operator and function reference is resolved once, here, into
// a tree of closures, so evaluation never performs a registry or name-table
// lookup. This satisfies the compiler's contract of observational
// equivalence with interpret without requiring runtime code generation;
// Go's closures play the role the source's JIT does.
func compile(root *Operation) Callable {
	switch root.kind {
	case opConstant:
		v := root.value
		return func(Environment) (float64, error) { return v, nil }
	case opVariable:
		name := root.name
		return func(env Environment) (float64, error) {
			v, ok := env[name]
			if !ok {
				return 0, undefinedVariable(name)
			}
			return v, nil
		}
	case opNeg:
		child := compile(root.left)
		return func(env Environment) (float64, error) {
			v, err := child(env)
			if err != nil {
				return 0, err
			}
			return -v, nil
		}
	case opAdd, opSub, opMul, opDiv, opMod, opPow:
		left := compile(root.left)
		right := compile(root.right)
		kind := root.kind
		return func(env Environment) (float64, error) {
			l, err := left(env)
			if err != nil {
				return 0, err
			}
			r, err := right(env)
			if err != nil {
				return 0, err
			}
			return applyBinary(kind, l, r), nil
		}
	case opCall:
		args := make([]Callable, len(root.args))
		for i, a := range root.args {
			args[i] = compile(a)
		}
		fn := root.fn
		return func(env Environment) (float64, error) {
			// Each call gets its own argument slice: a Callable may be
			// invoked concurrently, so the buffer cannot be shared across
			// invocations.
			vals := make([]float64, len(args))
			for i, a := range args {
				v, err := a(env)
				if err != nil {
					return 0, err
				}
				vals[i] = v
			}
			return fn.Call(vals), nil
		}
	default:
		panic("formula: invalid AST node " + root.kind.String())
	}
}
