package formula

import "strconv"

// ArgumentError indicates an invalid call to a public operation: empty
// formula text, or a missing variables mapping where one is required.
type ArgumentError struct {
	Msg string
}

func (err *ArgumentError) Error() string {
	return "formula: " + err.Msg
}

// RegistrationError indicates an attempt to register a function or constant
// name over an existing entry that is not overwritable.
type RegistrationError struct {
	// Name is the name that could not be registered.
	Name string
	// Kind is "function" or "constant".
	Kind string
}

func (err *RegistrationError) Error() string {
	return "formula: " + err.Kind + " " + strconv.Quote(err.Name) + " is not overwritable"
}

// VariableNameError indicates that a name supplied in a caller's variable
// environment collides with a non-overwritable constant or any registered
// function name.
type VariableNameError struct {
	Name string
}

func (err *VariableNameError) Error() string {
	return "formula: variable name " + strconv.Quote(err.Name) + " collides with a registered constant or function"
}

// EvaluationError indicates a failure during evaluation of a built formula,
// e.g. a variable that was not bound in the supplied environment.
type EvaluationError struct {
	Msg string
}

func (err *EvaluationError) Error() string {
	return "formula: " + err.Msg
}

func undefinedVariable(name string) *EvaluationError {
	return &EvaluationError{Msg: "variable " + strconv.Quote(name) + " not defined"}
}

// ConfigError indicates an invalid engine construction option, such as an
// unknown execution mode or an unparsable locale tag.
type ConfigError struct {
	// Option is the name of the option that was invalid.
	Option string
	// Value is a string representation of the invalid value.
	Value string
	Msg   string
}

func (err *ConfigError) Error() string {
	return "formula: invalid " + err.Option + " option (" + err.Value + "): " + err.Msg
}
