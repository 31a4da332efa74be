package formula

// optimize performs a single bottom-up constant-folding pass over root.
// After recursively optimizing a node's children, if every child is now a
// Constant and the node itself is eligible (any Unary or Binary node, or a
// Function node whose entry is idempotent), the node is replaced by a
// Constant carrying the result of evaluating it with the tree-walking
// interpreter over an empty environment.
//
// Folding uses the interpreter, never the compiler, so optimization never
// depends on the selected execution mode. It never raises: the current
// operator set cannot fail on constant operands (divide-by-zero and 0/0
// follow IEEE-754 semantics and yield a number, not an error), so if folding
// ever turned up an error that would indicate a bug in the interpreter.
func optimize(root *Operation) *Operation {
	if root == nil {
		return nil
	}
	switch root.kind {
	case opConstant, opVariable:
		return root
	case opNeg:
		root.left = optimize(root.left)
	case opAdd, opSub, opMul, opDiv, opMod, opPow:
		root.left = optimize(root.left)
		root.right = optimize(root.right)
	case opCall:
		for i, a := range root.args {
			root.args[i] = optimize(a)
		}
	}
	if !allConstant(root.children()) {
		return root
	}
	if root.kind == opCall && !root.fn.IsIdempotent {
		return root
	}
	v, err := interpret(root, nil)
	if err != nil {
		// The current operator set cannot fail on constant operands; if it
		// somehow does, leave the subtree as-is rather than raise during
		// optimization.
		return root
	}
	return constantNode(v)
}

func allConstant(nodes []*Operation) bool {
	for _, n := range nodes {
		if !n.IsConstant() {
			return false
		}
	}
	return true
}
