package evaluator

import "fmt"

// UndefinedVariableError reports a `$name`/`@name` miss under strict
// mode.
type UndefinedVariableError struct{ Name string }

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// UndefinedFunctionError reports a call to a name absent from the
// function library.
type UndefinedFunctionError struct{ Name string }

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("undefined function %q", e.Name)
}

// DivisionByZeroError reports `/` or `%` with a zero right operand.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string { return "division by zero" }

// TypeMismatchError reports an operand of the wrong kind at a given
// evaluation site.
type TypeMismatchError struct {
	Expected string
	Actual   string
	Where    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s but got %s in %s", e.Expected, e.Actual, e.Where)
}

// ArgumentCountError reports a function call whose argument count
// falls outside its declared arity.
type ArgumentCountError struct {
	Function string
	Min      int
	Max      int
	Actual   int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("%s expects between %d and %d arguments, got %d", e.Function, e.Min, e.Max, e.Actual)
}

// InvalidOperationError reports an operator applied to operand kinds it
// does not support.
type InvalidOperationError struct {
	Operator     string
	OperandTypes []string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %s on %v", e.Operator, e.OperandTypes)
}

// PropertyAccessError reports a `.prop` access on a non-object (and
// non-null) base.
type PropertyAccessError struct {
	Property   string
	ObjectType string
}

func (e *PropertyAccessError) Error() string {
	return fmt.Sprintf("cannot access property %q on %s", e.Property, e.ObjectType)
}

// IndexAccessError reports a `[idx]` access on a base that is neither
// an array nor an object (and not null).
type IndexAccessError struct {
	Index      string
	ObjectType string
}

func (e *IndexAccessError) Error() string {
	return fmt.Sprintf("cannot index %s with %s", e.ObjectType, e.Index)
}

// MaxRecursionError reports recursion_depth exceeding
// max_recursion_depth.
type MaxRecursionError struct{ Limit int }

func (e *MaxRecursionError) Error() string {
	return fmt.Sprintf("exceeded max recursion depth of %d", e.Limit)
}

// MaxIterationsError reports iteration_count exceeding max_iterations
// inside SUM/FILTER/MAP.
type MaxIterationsError struct{ Limit int }

func (e *MaxIterationsError) Error() string {
	return fmt.Sprintf("exceeded max iteration count of %d", e.Limit)
}
