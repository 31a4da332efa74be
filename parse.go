package formula

import (
	"strconv"
	"strings"
)

// Expr = Term
// Term = Atom { BinOp Term }
// Atom = Integer | Float | Constant | Variable | Call | '-' Atom | '(' Expr ')'
// Call = Identifier '(' [ Expr { ',' Expr } ] ')'
// BinOp = '+' | '-' | '*' | '/' | '%' | '^'
//
// Precedence, loosest to tightest: binary +- ; binary */% ; unary - ; '^'.
// This departs from a literal reading of the precedence table in the
// design note on arithmetic precedence (DESIGN.md): the worked example
// "-2^2 == -4.0" only holds if unary minus binds looser than exponentiation,
// so that is the behavior implemented here.

// Expr is a parsed formula, ready to be optimized and built into a
// Callable.
type Expr struct {
	root  *Operation
	names []string
}

// Vars returns the sorted list of free variable names referenced by the
// expression.
func (e *Expr) Vars() []string {
	return append([]string(nil), e.names...)
}

// String renders a fully parenthesized representation of the expression.
func (e *Expr) String() string {
	return e.root.String()
}

// synOp describes a binary or unary operator entry on the shunting-yard
// operator stack.
type synOp struct {
	kind    opKind
	arity   int
	prec    int
	right   bool // right-associative
	isLeft  bool // left-bracket marker
	isFunc  bool // function-call marker
	pos     int  // position of a left-bracket marker
	fnName  string
	fnPos   int
	argc    int
	// pendingArgs accumulates completed argument expressions for a function
	// marker, one per argument separator seen so far.
	pendingArgs []*Operation
}

func (s synOp) isMarker() bool {
	return s.isLeft || s.isFunc
}

func (s synOp) args() []*Operation {
	return append([]*Operation(nil), s.pendingArgs...)
}

func binaryOperator(text string) (synOp, bool) {
	switch text {
	case "+":
		return synOp{kind: opAdd, arity: 2, prec: 1}, true
	case "-":
		return synOp{kind: opSub, arity: 2, prec: 1}, true
	case "*":
		return synOp{kind: opMul, arity: 2, prec: 2}, true
	case "/":
		return synOp{kind: opDiv, arity: 2, prec: 2}, true
	case "%":
		return synOp{kind: opMod, arity: 2, prec: 2}, true
	case "^":
		return synOp{kind: opPow, arity: 2, prec: 4, right: true}, true
	default:
		return synOp{}, false
	}
}

func unaryMinus() synOp {
	return synOp{kind: opNeg, arity: 1, prec: 3, right: true}
}

// astBuilder holds the mutable state of a single shunting-yard parse.
type astBuilder struct {
	reader *tokenReader
	funcs  *FunctionRegistry
	consts *ConstantRegistry
	values []*Operation
	ops    []synOp
	names  map[string]bool
}

// buildAST parses formula text into an Operation tree using a classical
// shunting-yard algorithm augmented for function calls and unary minus.
func buildAST(text string, locale Locale, funcs *FunctionRegistry, consts *ConstantRegistry) (*Operation, []string, error) {
	b := &astBuilder{
		reader: newTokenReader(text, locale),
		funcs:  funcs,
		consts: consts,
		names:  make(map[string]bool),
	}
	if err := b.run(); err != nil {
		return nil, nil, err
	}
	root, err := b.finish()
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(b.names))
	for k := range b.names {
		names = append(names, k)
	}
	sortStrings(names)
	return root, names, nil
}

func sortStrings(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// expectOperand is true whenever the next token must begin a new operand:
// at the start of the formula, immediately after a binary or unary
// operator, a left bracket, or an argument separator.
func (b *astBuilder) run() error {
	expectOperand := true
	for {
		tok, err := b.reader.next()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case tokenEOF:
			if expectOperand {
				return &EmptyExpressionError{Col: tok.Pos}
			}
			return nil
		case TokenInteger, TokenFloat:
			if !expectOperand {
				return &ParseError{Pos: tok.Pos, Text: tok.Text, Msg: "expected an operator before " + quote(tok.Text)}
			}
			b.values = append(b.values, constantNode(tok.Value))
			expectOperand = false
		case TokenIdentifier:
			if !expectOperand {
				return &ParseError{Pos: tok.Pos, Text: tok.Text, Msg: "expected an operator before " + quote(tok.Text)}
			}
			next, err := b.reader.next()
			if err != nil {
				return err
			}
			if next.Kind == TokenLeftBracket {
				b.ops = append(b.ops, synOp{isFunc: true, fnName: tok.Text, fnPos: tok.Pos})
				expectOperand = true
				continue
			}
			b.reader.push(next)
			if c := b.consts.Lookup(tok.Text); c != nil {
				b.values = append(b.values, constantNode(c.Value))
			} else {
				b.names[tok.Text] = true
				b.values = append(b.values, variableNode(tok.Text))
			}
			expectOperand = false
		case TokenOperation:
			if expectOperand {
				if tok.Text != "-" {
					return &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: true}
				}
				b.ops = append(b.ops, unaryMinus())
				// still expect an operand
				continue
			}
			o2, ok := binaryOperator(tok.Text)
			if !ok {
				return &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: false}
			}
			if err := b.reduceTo(o2); err != nil {
				return err
			}
			b.ops = append(b.ops, o2)
			expectOperand = true
		case TokenLeftBracket:
			if !expectOperand {
				return &ParseError{Pos: tok.Pos, Text: "(", Msg: "expected an operator before ("}
			}
			b.ops = append(b.ops, synOp{isLeft: true, pos: tok.Pos})
			expectOperand = true
		case TokenRightBracket:
			if err := b.closeBracket(tok, expectOperand); err != nil {
				return err
			}
			expectOperand = false
		case TokenArgSeparator:
			if err := b.separator(tok, expectOperand); err != nil {
				return err
			}
			expectOperand = true
		default:
			return &ParseError{Pos: tok.Pos, Text: tok.Text, Msg: "unexpected token"}
		}
	}
}

// reduceTo pops and applies operators of greater or equal (for
// left-associative o2) binding power than o2, stopping at any marker.
func (b *astBuilder) reduceTo(o2 synOp) error {
	for len(b.ops) > 0 {
		top := b.ops[len(b.ops)-1]
		if top.isMarker() {
			break
		}
		if top.prec > o2.prec || (top.prec == o2.prec && !o2.right) {
			if err := b.apply(top); err != nil {
				return err
			}
			b.ops = b.ops[:len(b.ops)-1]
			continue
		}
		break
	}
	return nil
}

func (b *astBuilder) apply(op synOp) error {
	if op.arity == 1 {
		if len(b.values) < 1 {
			return &ParseError{Msg: "malformed expression"}
		}
		v := b.values[len(b.values)-1]
		b.values = b.values[:len(b.values)-1]
		b.values = append(b.values, &Operation{kind: op.kind, left: v})
		return nil
	}
	if len(b.values) < 2 {
		return &ParseError{Msg: "malformed expression"}
	}
	r := b.values[len(b.values)-1]
	l := b.values[len(b.values)-2]
	b.values = b.values[:len(b.values)-2]
	b.values = append(b.values, &Operation{kind: op.kind, left: l, right: r})
	return nil
}

func (b *astBuilder) popAllOperators() error {
	for len(b.ops) > 0 && !b.ops[len(b.ops)-1].isMarker() {
		if err := b.apply(b.ops[len(b.ops)-1]); err != nil {
			return err
		}
		b.ops = b.ops[:len(b.ops)-1]
	}
	return nil
}

func (b *astBuilder) closeBracket(tok Token, expectOperand bool) error {
	if err := b.popAllOperators(); err != nil {
		return err
	}
	if len(b.ops) == 0 || !b.ops[len(b.ops)-1].isMarker() {
		return &BracketError{Col: tok.Pos, Right: ")"}
	}
	m := b.ops[len(b.ops)-1]
	b.ops = b.ops[:len(b.ops)-1]

	if m.isFunc {
		var args []*Operation
		if !expectOperand {
			if len(b.values) < 1 {
				return &ParseError{Pos: tok.Pos, Msg: "malformed expression"}
			}
			args = append(m.args(), b.values[len(b.values)-1])
			b.values = b.values[:len(b.values)-1]
		} else {
			if m.argc > 0 {
				return &EmptyExpressionError{Col: tok.Pos, End: ")"}
			}
			args = m.args()
		}
		fn := b.funcs.Lookup(m.fnName)
		if fn == nil {
			return &CallError{Col: m.fnPos, Func: m.fnName, Len: -1}
		}
		if !fn.CanCall(len(args)) {
			return &CallError{Col: m.fnPos, Func: m.fnName, Len: len(args), Want: arityDesc(fn)}
		}
		b.values = append(b.values, &Operation{kind: opCall, name: m.fnName, fn: fn, args: args})
		return nil
	}
	// Plain parenthesized subexpression: value already resolved, just
	// unwrap the bracket marker.
	if expectOperand {
		return &EmptyExpressionError{Col: tok.Pos, End: ")"}
	}
	return nil
}

func (b *astBuilder) separator(tok Token, expectOperand bool) error {
	if expectOperand {
		return &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
	}
	if err := b.popAllOperators(); err != nil {
		return err
	}
	if len(b.ops) == 0 || !b.ops[len(b.ops)-1].isFunc {
		return &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	}
	if len(b.values) < 1 {
		return &ParseError{Pos: tok.Pos, Msg: "malformed expression"}
	}
	v := b.values[len(b.values)-1]
	b.values = b.values[:len(b.values)-1]
	top := &b.ops[len(b.ops)-1]
	top.pendingArgs = append(top.pendingArgs, v)
	top.argc++
	return nil
}

func (b *astBuilder) finish() (*Operation, error) {
	if err := b.popAllOperators(); err != nil {
		return nil, err
	}
	if len(b.ops) > 0 {
		top := b.ops[len(b.ops)-1]
		pos := top.pos
		if top.isFunc {
			pos = top.fnPos
		}
		return nil, &BracketError{Col: pos, Left: "("}
	}
	if len(b.values) != 1 {
		return nil, &ParseError{Msg: "malformed expression"}
	}
	return b.values[0], nil
}

func arityDesc(fn *FunctionInfo) string {
	if fn.Variadic() {
		return "at least 1"
	}
	return strconv.Itoa(fn.Arity)
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
	return b.String()
}
