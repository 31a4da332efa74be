package formula

// Builder is a fluent, external collaborator around Engine.Build: it
// accumulates named variable declarations and evaluates the formula against
// them with Calculate. The Callable returned by Build is not bound to those
// declarations. Builder is not part of the expression pipeline; it
// exists so callers that know their variable names ahead of time can bind
// them incrementally instead of constructing a map by hand.
type Builder struct {
	engine *Engine
	text   string
	expr   *Expr
	err    error
	vars   map[string]float64
}

// Formula parses text and returns a Builder for it. Parsing happens
// immediately so that ParseError surfaces at Formula time rather than being
// deferred to the first With call or Build.
func (e *Engine) Formula(text string) (*Builder, error) {
	expr, err := e.parse(text)
	if err != nil {
		return nil, err
	}
	return &Builder{engine: e, text: text, expr: expr, vars: make(map[string]float64)}, nil
}

// With binds name to value, returning the Builder to allow chaining. A name
// that collides with a registered function or non-overwritable constant is
// recorded and surfaces from Build or Calculate rather than panicking
// immediately, so a chain of With calls can be written without an error
// check after each one.
func (b *Builder) With(name string, value float64) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.engine.Verify(b.text, map[string]float64{name: value}); err != nil {
		b.err = err
		return b
	}
	b.vars[name] = value
	return b
}

// Vars reports the free variable names the underlying formula references,
// regardless of which have been bound so far via With.
func (b *Builder) Vars() []string {
	return b.expr.Vars()
}

// String renders the underlying parsed (and, unless disabled, optimized)
// expression tree, primarily for diagnostic -echo-style output.
func (b *Builder) String() string {
	return b.expr.String()
}

// Calculate evaluates the formula against the variables accumulated via
// With.
func (b *Builder) Calculate() (float64, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.engine.Calculate(b.text, b.vars)
}

// Build returns a Callable for the underlying formula, independent of any
// variables bound via With; it goes through the same cache as Engine.Build.
func (b *Builder) Build() (Callable, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.engine.Build(b.text)
}
