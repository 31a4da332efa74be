package formula

import "math"

// Environment is a mapping from lowercase variable name to value, presented
// to the interpreter and the compiled callable during evaluation.
type Environment map[string]float64

// interpret recursively walks root, evaluating it against env. It is used
// both as the Interpreted execution mode and internally by the optimizer to
// fold constant subtrees.
func interpret(root *Operation, env Environment) (float64, error) {
	switch root.kind {
	case opConstant:
		return root.value, nil
	case opVariable:
		v, ok := env[root.name]
		if !ok {
			return 0, undefinedVariable(root.name)
		}
		return v, nil
	case opNeg:
		v, err := interpret(root.left, env)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case opAdd, opSub, opMul, opDiv, opMod, opPow:
		l, err := interpret(root.left, env)
		if err != nil {
			return 0, err
		}
		r, err := interpret(root.right, env)
		if err != nil {
			return 0, err
		}
		return applyBinary(root.kind, l, r), nil
	case opCall:
		args := make([]float64, len(root.args))
		for i, a := range root.args {
			v, err := interpret(a, env)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return root.fn.Call(args), nil
	default:
		panic("formula: invalid AST node " + root.kind.String())
	}
}

// applyBinary computes a binary operator over IEEE-754 doubles. Division by
// zero yields ±Inf (or NaN for 0/0) and Pow defers to the host math library,
// matching the semantics Go's float64 arithmetic already provides.
func applyBinary(kind opKind, l, r float64) float64 {
	switch kind {
	case opAdd:
		return l + r
	case opSub:
		return l - r
	case opMul:
		return l * r
	case opDiv:
		return l / r
	case opMod:
		return math.Mod(l, r)
	case opPow:
		return math.Pow(l, r)
	default:
		panic("formula: invalid binary operator " + kind.String())
	}
}
