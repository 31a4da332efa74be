package formula

import "strings"

// ExecutionMode selects the executor a built Callable uses.
type ExecutionMode int

const (
	// Compiled builds a Callable as a tree of closures with no per-call
	// registry lookups. It is the default.
	Compiled ExecutionMode = iota
	// Interpreted builds a Callable that walks the AST on every call.
	Interpreted
)

func (m ExecutionMode) String() string {
	switch m {
	case Compiled:
		return "Compiled"
	case Interpreted:
		return "Interpreted"
	default:
		return "unknown"
	}
}

// config accumulates the options passed to NewEngine.
type config struct {
	locale           Locale
	mode             ExecutionMode
	cacheEnabled     bool
	optimizerEnabled bool
	defaultFunctions bool
	defaultConstants bool
}

func defaultConfig() config {
	return config{
		locale:           Invariant,
		mode:             Compiled,
		cacheEnabled:     true,
		optimizerEnabled: true,
		defaultFunctions: true,
		defaultConstants: true,
	}
}

// Option configures an Engine at construction time.
type Option interface {
	apply(*config) error
}

type optionFunc func(*config) error

func (f optionFunc) apply(c *config) error { return f(c) }

// WithLocale sets the culture used to read formula text, selecting the
// decimal separator and function-argument separator.
func WithLocale(l Locale) Option {
	return optionFunc(func(c *config) error {
		c.locale = l
		return nil
	})
}

// WithLocaleTag resolves a BCP 47 locale tag (e.g. "de-DE") and sets it as
// the engine's locale.
func WithLocaleTag(tag string) Option {
	return optionFunc(func(c *config) error {
		l, err := ParseLocale(tag)
		if err != nil {
			return err
		}
		c.locale = l
		return nil
	})
}

// WithExecutionMode selects the executor. An unrecognized mode fails with a
// ConfigError.
func WithExecutionMode(mode ExecutionMode) Option {
	return optionFunc(func(c *config) error {
		if mode != Compiled && mode != Interpreted {
			return &ConfigError{Option: "execution_mode", Value: mode.String(), Msg: "unknown execution mode"}
		}
		c.mode = mode
		return nil
	})
}

// WithCache enables or disables the formula cache. Enabled by default.
func WithCache(enabled bool) Option {
	return optionFunc(func(c *config) error {
		c.cacheEnabled = enabled
		return nil
	})
}

// WithOptimizer enables or disables the constant-folding optimizer. Enabled
// by default.
func WithOptimizer(enabled bool) Option {
	return optionFunc(func(c *config) error {
		c.optimizerEnabled = enabled
		return nil
	})
}

// WithDefaultFunctions controls whether the default scientific function
// library is registered. Enabled by default.
func WithDefaultFunctions(enabled bool) Option {
	return optionFunc(func(c *config) error {
		c.defaultFunctions = enabled
		return nil
	})
}

// WithDefaultConstants controls whether e and pi are registered. Enabled by
// default.
func WithDefaultConstants(enabled bool) Option {
	return optionFunc(func(c *config) error {
		c.defaultConstants = enabled
		return nil
	})
}

// EnginePreset bundles a group of options so they can be reused across many
// NewEngine calls without re-specifying each one.
func EnginePreset(opts ...Option) Option {
	return optionFunc(func(c *config) error {
		for _, o := range opts {
			if err := o.apply(c); err != nil {
				return err
			}
		}
		return nil
	})
}

// Engine wires the token reader, AST builder, optimizer, executor, and
// formula cache behind the package's public calculate/build/verify surface.
// An Engine is safe for concurrent Calculate, Build, and Verify calls once
// construction and any AddFunction/AddConstant calls have finished; the
// registries are expected to be populated during setup and then left alone
// during evaluation (see the concurrency note on AddConstant).
type Engine struct {
	cfg    config
	funcs  *FunctionRegistry
	consts *ConstantRegistry
	cache  *formulaCache
}

// NewEngine constructs an Engine. Unknown option values fail with a
// ConfigError.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		if err := o.apply(&cfg); err != nil {
			return nil, err
		}
	}
	e := &Engine{
		cfg:    cfg,
		funcs:  newFunctionRegistry(),
		consts: newConstantRegistry(),
		cache:  newFormulaCache(),
	}
	if cfg.defaultFunctions {
		registerDefaultFunctions(e.funcs)
	}
	if cfg.defaultConstants {
		registerDefaultConstants(e.consts)
	}
	return e, nil
}

// Functions returns a stable snapshot of the registered functions in
// insertion order.
func (e *Engine) Functions() []FunctionInfo {
	return e.funcs.Entries()
}

// Constants returns a stable snapshot of the registered constants in
// insertion order.
func (e *Engine) Constants() []ConstantInfo {
	return e.consts.Entries()
}

// AddConstant registers a named constant, overwriting any existing
// overwritable entry of the same name. Registering over a non-overwritable
// entry (including any default constant) fails with a RegistrationError.
//
// AddConstant is expected to be called during setup, before any concurrent
// Calculate/Build/Verify call begins; concurrent registration and
// evaluation is not guaranteed safe (see Engine's doc comment).
func (e *Engine) AddConstant(name string, value float64) error {
	return e.consts.Register(&ConstantInfo{Name: strings.ToLower(name), Value: value, IsOverwritable: true})
}

func (e *Engine) addFunction(name string, arity int, fn any, idempotent bool) error {
	return e.funcs.Register(&FunctionInfo{
		Name:           strings.ToLower(name),
		Arity:          arity,
		call:           pack(arity, fn),
		IsIdempotent:   idempotent,
		IsOverwritable: true,
	})
}

// AddFunction0 registers a 0-ary function. idempotent marks whether the
// function is eligible for constant folding; per the design note on
// folding non-idempotent functions, there is no safe default, so callers
// must state it explicitly.
func (e *Engine) AddFunction0(name string, fn Func0, idempotent bool) error {
	return e.addFunction(name, 0, fn, idempotent)
}

func (e *Engine) AddFunction1(name string, fn Func1, idempotent bool) error {
	return e.addFunction(name, 1, fn, idempotent)
}

func (e *Engine) AddFunction2(name string, fn Func2, idempotent bool) error {
	return e.addFunction(name, 2, fn, idempotent)
}

func (e *Engine) AddFunction3(name string, fn Func3, idempotent bool) error {
	return e.addFunction(name, 3, fn, idempotent)
}

func (e *Engine) AddFunction4(name string, fn Func4, idempotent bool) error {
	return e.addFunction(name, 4, fn, idempotent)
}

func (e *Engine) AddFunction5(name string, fn Func5, idempotent bool) error {
	return e.addFunction(name, 5, fn, idempotent)
}

func (e *Engine) AddFunction6(name string, fn Func6, idempotent bool) error {
	return e.addFunction(name, 6, fn, idempotent)
}

func (e *Engine) AddFunction7(name string, fn Func7, idempotent bool) error {
	return e.addFunction(name, 7, fn, idempotent)
}

func (e *Engine) AddFunction8(name string, fn Func8, idempotent bool) error {
	return e.addFunction(name, 8, fn, idempotent)
}

func (e *Engine) AddFunction9(name string, fn Func9, idempotent bool) error {
	return e.addFunction(name, 9, fn, idempotent)
}

func (e *Engine) AddFunction10(name string, fn Func10, idempotent bool) error {
	return e.addFunction(name, 10, fn, idempotent)
}

func (e *Engine) AddFunction11(name string, fn Func11, idempotent bool) error {
	return e.addFunction(name, 11, fn, idempotent)
}

func (e *Engine) AddFunction12(name string, fn Func12, idempotent bool) error {
	return e.addFunction(name, 12, fn, idempotent)
}

func (e *Engine) AddFunction13(name string, fn Func13, idempotent bool) error {
	return e.addFunction(name, 13, fn, idempotent)
}

func (e *Engine) AddFunction14(name string, fn Func14, idempotent bool) error {
	return e.addFunction(name, 14, fn, idempotent)
}

func (e *Engine) AddFunction15(name string, fn Func15, idempotent bool) error {
	return e.addFunction(name, 15, fn, idempotent)
}

func (e *Engine) AddFunction16(name string, fn Func16, idempotent bool) error {
	return e.addFunction(name, 16, fn, idempotent)
}

// AddFunctionVariadic registers a function accepting any number of
// arguments greater than or equal to one.
func (e *Engine) AddFunctionVariadic(name string, fn FuncVariadic, idempotent bool) error {
	return e.addFunction(name, variadicArity, fn, idempotent)
}

// Build parses text and returns a reusable Callable, going through the
// formula cache if enabled. Build does not evaluate the callable.
func (e *Engine) Build(text string) (Callable, error) {
	if text == "" {
		return nil, &ArgumentError{Msg: "formula text must not be empty"}
	}
	build := func() (Callable, error) {
		root, _, err := buildAST(text, e.cfg.locale, e.funcs, e.consts)
		if err != nil {
			return nil, err
		}
		if e.cfg.optimizerEnabled {
			root = optimize(root)
		}
		switch e.cfg.mode {
		case Interpreted:
			return func(env Environment) (float64, error) { return interpret(root, env) }, nil
		default:
			return compile(root), nil
		}
	}
	if !e.cfg.cacheEnabled {
		return build()
	}
	return e.cache.getOrBuild(text, build)
}

// parse runs the parsing and optimization steps of Build and returns the
// parsed Expr instead of a Callable, for callers (Formula) that need the
// variable list or a renderable AST. It does not consult or populate the
// formula cache.
func (e *Engine) parse(text string) (*Expr, error) {
	root, names, err := buildAST(text, e.cfg.locale, e.funcs, e.consts)
	if err != nil {
		return nil, err
	}
	if e.cfg.optimizerEnabled {
		root = optimize(root)
	}
	return &Expr{root: root, names: names}, nil
}

// Verify checks that text is non-empty, that vars is non-nil, and that no name in vars
// shadows a non-overwritable constant or any registered function.
func (e *Engine) Verify(text string, vars map[string]float64) error {
	if text == "" {
		return &ArgumentError{Msg: "formula text must not be empty"}
	}
	if vars == nil {
		return &ArgumentError{Msg: "variables map must not be nil"}
	}
	for name := range vars {
		if e.funcs.Contains(name) {
			return &VariableNameError{Name: name}
		}
		if c := e.consts.Lookup(name); c != nil && !c.IsOverwritable {
			return &VariableNameError{Name: name}
		}
	}
	return nil
}

// Calculate lowercases the names in vars, verifies them, builds text
// (consulting the cache), and evaluates the result.
func (e *Engine) Calculate(text string, vars map[string]float64) (float64, error) {
	if vars == nil {
		vars = map[string]float64{}
	}
	lowered := make(map[string]float64, len(vars))
	for k, v := range vars {
		lowered[strings.ToLower(k)] = v
	}
	if err := e.Verify(text, lowered); err != nil {
		return 0, err
	}
	return e.CalculateUnsafe(text, lowered)
}

// CalculateSimple is equivalent to Calculate(text, nil).
func (e *Engine) CalculateSimple(text string) (float64, error) {
	return e.Calculate(text, nil)
}

// CalculateUnsafe skips lowercasing and name verification, evaluating vars
// as given. The caller is responsible for pre-normalizing names. The
// environment is not aliased: CalculateUnsafe copies vars into a fresh
// Environment, so mutating the caller's map afterward has no effect on the
// evaluation that already happened, and vice versa. Registered constants are
// not added to that Environment; the parser has already replaced references
// to them with their values.
func (e *Engine) CalculateUnsafe(text string, vars map[string]float64) (float64, error) {
	fn, err := e.Build(text)
	if err != nil {
		return 0, err
	}
	env := make(Environment, len(vars))
	for k, v := range vars {
		env[k] = v
	}
	return fn(env)
}
