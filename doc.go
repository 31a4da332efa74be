// Package formula implements a calculator for textual mathematical formulas
// over the real numbers.
//
// A caller supplies a formula (e.g. "2*sin(x+pi)/max(a,b)"), optionally a
// mapping of free variables to numeric values, and receives either the
// numeric result or a reusable callable that can be invoked repeatedly with
// different variable bindings. The package ships a default library of
// scientific functions and constants, supports user-registered named
// constants and n-ary functions, culture-aware numeric literal parsing, an
// algebraic optimizer over the parsed representation, two evaluation
// strategies (tree-walk interpretation and compilation to a closure), and a
// thread-safe result cache keyed by formula text.
package formula
