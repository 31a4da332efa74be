package formula

import "math"

// The FuncN types are the arity-tagged callables that AddFunction accepts,
// collapsing the source's seventeen fixed-arity overloads (arities zero
// through sixteen) plus a variadic form into a small family of named
// function types, each adapted to the registry's single packed-argument
// call shape at registration time.
type (
	Func0  func() float64
	Func1  func(a0 float64) float64
	Func2  func(a0, a1 float64) float64
	Func3  func(a0, a1, a2 float64) float64
	Func4  func(a0, a1, a2, a3 float64) float64
	Func5  func(a0, a1, a2, a3, a4 float64) float64
	Func6  func(a0, a1, a2, a3, a4, a5 float64) float64
	Func7  func(a0, a1, a2, a3, a4, a5, a6 float64) float64
	Func8  func(a0, a1, a2, a3, a4, a5, a6, a7 float64) float64
	Func9  func(a0, a1, a2, a3, a4, a5, a6, a7, a8 float64) float64
	Func10 func(a0, a1, a2, a3, a4, a5, a6, a7, a8, a9 float64) float64
	Func11 func(a0, a1, a2, a3, a4, a5, a6, a7, a8, a9, a10 float64) float64
	Func12 func(a0, a1, a2, a3, a4, a5, a6, a7, a8, a9, a10, a11 float64) float64
	Func13 func(a0, a1, a2, a3, a4, a5, a6, a7, a8, a9, a10, a11, a12 float64) float64
	Func14 func(a0, a1, a2, a3, a4, a5, a6, a7, a8, a9, a10, a11, a12, a13 float64) float64
	Func15 func(a0, a1, a2, a3, a4, a5, a6, a7, a8, a9, a10, a11, a12, a13, a14 float64) float64
	Func16 func(a0, a1, a2, a3, a4, a5, a6, a7, a8, a9, a10, a11, a12, a13, a14, a15 float64) float64

	// FuncVariadic accepts any number of arguments greater than or equal to
	// one, packed into a single slice.
	FuncVariadic func(args []float64) float64
)

// pack adapts a fixed-arity FuncN into the registry's packed-argument call
// shape. It panics if called with the wrong number of arguments, which
// cannot happen through the public API since AddFunctionN records the
// matching arity.
func pack(arity int, fn any) func(args []float64) float64 {
	switch f := fn.(type) {
	case Func0:
		return func(args []float64) float64 { return f() }
	case Func1:
		return func(args []float64) float64 { return f(args[0]) }
	case Func2:
		return func(args []float64) float64 { return f(args[0], args[1]) }
	case Func3:
		return func(args []float64) float64 { return f(args[0], args[1], args[2]) }
	case Func4:
		return func(args []float64) float64 { return f(args[0], args[1], args[2], args[3]) }
	case Func5:
		return func(args []float64) float64 { return f(args[0], args[1], args[2], args[3], args[4]) }
	case Func6:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5])
		}
	case Func7:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6])
		}
	case Func8:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7])
		}
	case Func9:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8])
		}
	case Func10:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9])
		}
	case Func11:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9], args[10])
		}
	case Func12:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9], args[10], args[11])
		}
	case Func13:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9], args[10], args[11], args[12])
		}
	case Func14:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9], args[10], args[11], args[12], args[13])
		}
	case Func15:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9], args[10], args[11], args[12], args[13], args[14])
		}
	case Func16:
		return func(args []float64) float64 {
			return f(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9], args[10], args[11], args[12], args[13], args[14], args[15])
		}
	case FuncVariadic:
		return func(args []float64) float64 { return f(args) }
	default:
		panic("formula: unsupported function type")
	}
}

// logn computes the base-b logarithm of x.
func logn(x, base float64) float64 {
	return math.Log(x) / math.Log(base)
}

func ifThen(cond, ifTrue, ifFalse float64) float64 {
	if cond != 0 {
		return ifTrue
	}
	return ifFalse
}

func ifLess(a, b, ifTrue, ifFalse float64) float64 {
	if a < b {
		return ifTrue
	}
	return ifFalse
}

func ifMore(a, b, ifTrue, ifFalse float64) float64 {
	if a > b {
		return ifTrue
	}
	return ifFalse
}

func ifEqual(a, b, ifTrue, ifFalse float64) float64 {
	if a == b {
		return ifTrue
	}
	return ifFalse
}

// registerDefaultFunctions populates reg with the default scientific
// function library. Every entry is idempotent and not overwritable.
func registerDefaultFunctions(reg *FunctionRegistry) {
	add := func(name string, arity int, fn any) {
		_ = reg.Register(&FunctionInfo{
			Name:           name,
			Arity:          arity,
			call:           pack(arity, fn),
			IsIdempotent:   true,
			IsOverwritable: false,
		})
	}
	add("sin", 1, Func1(math.Sin))
	add("cos", 1, Func1(math.Cos))
	add("tan", 1, Func1(math.Tan))
	add("csc", 1, Func1(func(a0 float64) float64 { return 1 / math.Sin(a0) }))
	add("sec", 1, Func1(func(a0 float64) float64 { return 1 / math.Cos(a0) }))
	add("cot", 1, Func1(func(a0 float64) float64 { return 1 / math.Tan(a0) }))
	add("asin", 1, Func1(math.Asin))
	add("acos", 1, Func1(math.Acos))
	add("atan", 1, Func1(math.Atan))
	add("acot", 1, Func1(func(a0 float64) float64 { return math.Atan(1 / a0) }))
	add("loge", 1, Func1(math.Log))
	add("log10", 1, Func1(math.Log10))
	add("logn", 2, Func2(logn))
	add("sqrt", 1, Func1(math.Sqrt))
	add("abs", 1, Func1(math.Abs))
	add("max", 2, Func2(math.Max))
	add("min", 2, Func2(math.Min))
	add("if", 3, Func3(ifThen))
	add("ifless", 4, Func4(ifLess))
	add("ifmore", 4, Func4(ifMore))
	add("ifequal", 4, Func4(ifEqual))
	add("ceiling", 1, Func1(math.Ceil))
	add("floor", 1, Func1(math.Floor))
	add("truncate", 1, Func1(math.Trunc))
}

// registerDefaultConstants populates reg with the default constant library:
// e and pi. Both entries are not overwritable.
func registerDefaultConstants(reg *ConstantRegistry) {
	_ = reg.Register(&ConstantInfo{Name: "e", Value: math.E, IsOverwritable: false})
	_ = reg.Register(&ConstantInfo{Name: "pi", Value: math.Pi, IsOverwritable: false})
}
