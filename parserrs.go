package formula

import (
	"fmt"
	"strconv"
)

// InputError is an error with position information. Every error resulting
// from malformed formula text implements InputError, except the residual
// ParseError, which carries its position in a Pos field instead.
type InputError interface {
	error
	// Pos returns the position of the error as the 0-based character index
	// of the token that caused it.
	Pos() int
}

// errpos formats an error message with a leading position, matching the
// rendering used by every InputError implementation below.
func errpos(pos int, msg string) string {
	return "formula: " + strconv.Itoa(pos) + ": " + msg
}

// LexError indicates an invalid token encountered while reading formula
// text: an unrecognized character, or digits that do not form a valid
// number literal.
type LexError struct {
	// Text is the unrecognized character, or the malformed number literal
	// itself.
	Text string
	// Kind is the kind of token the reader was scanning: "number",
	// "identifier", or "" if no token kind had been decided yet.
	Kind string
	// Col is the position of the error.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "unrecognized character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" literal "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// OperatorError indicates an operator token the AST builder does not
// recognize: a binary operator outside the arithmetic six, or any unary
// operator other than '-'.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the builder expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError indicates a bracket with no matching counterpart: an opening
// bracket never closed, or a closing bracket with nothing open.
type BracketError struct {
	// Col is the position of the offending bracket.
	Col int
	// Left is the opening bracket, if one was found unclosed.
	Left string
	// Right is the closing bracket, if one was found unmatched.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError indicates an argument separator used outside a function
// call's argument list.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator text.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "argument separator "+strconv.Quote(err.Sep)+" outside a function call")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CallError indicates a function call the builder could not resolve: an
// unrecognized function name, or the wrong number of arguments for a known
// one.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call supplied, or -1 if Func is not
	// a registered function at all.
	Len int
	// Want describes the arity Func requires; empty when Len is -1.
	Want string
}

func (err *CallError) Error() string {
	if err.Len < 0 {
		return errpos(err.Col, "unknown function "+strconv.Quote(err.Func))
	}
	return errpos(err.Col, fmt.Sprintf("function %s expects %s arguments, got %d", err.Func, err.Want, err.Len))
}

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError indicates a subexpression with no operand where one
// was required: an empty pair of brackets, a trailing operator, or a
// missing argument in a function call.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the empty subexpression.
	Col int
	// End is the text of that token, or empty if the formula simply ran out
	// of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col == 0 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end of formula")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// ParseError is the residual syntax error for malformations the other
// InputError kinds don't name: this grammar, unlike the teacher's, has no
// implicit multiplication, so two operands in a row ("2 3", "2(3)") is a
// syntax error with no more specific taxonomy entry.
type ParseError struct {
	// Pos is the 0-based character index of the error.
	Pos int
	// Text is the offending lexeme, if any.
	Text string
	// Msg describes the problem.
	Msg string
}

func (err *ParseError) Error() string {
	return errpos(err.Pos, err.Msg)
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
