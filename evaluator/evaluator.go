package evaluator

import (
	"reflect"
	"strings"

	"github.com/formulaengine/core/ast"
	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/functions"
	"github.com/formulaengine/core/value"
)

// Options bundles the Evaluator's configuration: strictness for
// variable misses, the security guards of §5, the division defaults
// applied by the bare `/` operator (DIVIDE the builtin takes its own
// explicit scale/mode), and the function library to dispatch calls
// against.
type Options struct {
	StrictMode        bool
	MaxRecursionDepth int
	MaxIterations     int
	DivisionScale     int32
	DivisionMode      decimal.RoundingMode
	DecimalLimits     decimal.Limits
	Functions         *functions.Registry
}

// DefaultOptions mirrors the Engine config defaults of §6.2.
func DefaultOptions(fns *functions.Registry) Options {
	return Options{
		StrictMode:        true,
		MaxRecursionDepth: 100,
		MaxIterations:     10000,
		DivisionScale:     10,
		DivisionMode:      decimal.RoundHalfUp,
		DecimalLimits:     decimal.DefaultLimits(),
		Functions:         fns,
	}
}

// Evaluator tree-walks an AST against a Context, producing a
// value.Value. It is stateless across calls; all mutable state lives
// in the Frame passed to Evaluate.
type Evaluator struct {
	Options Options
}

// New creates an Evaluator with the given options.
func New(opts Options) *Evaluator { return &Evaluator{Options: opts} }

// Evaluate walks node depth-first, post-order for operands, against
// ctx, tracking recursion/iteration guards in frame.
func (e *Evaluator) Evaluate(node ast.Node, ctx *Context, frame *Frame) (value.Value, error) {
	frame.RecursionDepth++
	defer func() { frame.RecursionDepth-- }()
	if frame.RecursionDepth > e.Options.MaxRecursionDepth {
		return value.Value{}, &MaxRecursionError{Limit: e.Options.MaxRecursionDepth}
	}

	switch n := node.(type) {
	case *ast.DecimalLiteral:
		d, err := decimal.FromString(n.Text)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewDecimal(d), nil
	case *ast.FloatLiteral:
		return value.NewFloat(n.Value), nil
	case *ast.StringLiteral:
		return value.NewString(n.Value), nil
	case *ast.BooleanLiteral:
		return value.NewBool(n.Value), nil
	case *ast.NullLiteral:
		return value.Null, nil
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, ctx, frame)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(n, ctx, frame)
	case *ast.VariableReference:
		return e.resolveVariable(n, ctx, frame)
	case *ast.UnaryOperation:
		return e.evalUnary(n, ctx, frame)
	case *ast.BinaryOperation:
		return e.evalBinary(n, ctx, frame)
	case *ast.ConditionalExpression:
		return e.evalConditional(n, ctx, frame)
	case *ast.MemberAccess:
		return e.evalMemberAccess(n, ctx, frame)
	case *ast.IndexAccess:
		return e.evalIndexAccess(n, ctx, frame)
	case *ast.FunctionCall:
		return e.evalFunctionCall(n, ctx, frame)
	default:
		return value.Value{}, &TypeMismatchError{Expected: "known AST node", Actual: "unknown", Where: "Evaluate"}
	}
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, ctx *Context, frame *Frame) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.Evaluate(el, ctx, frame)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	return value.NewArray(elems), nil
}

func (e *Evaluator) evalObjectLiteral(n *ast.ObjectLiteral, ctx *Context, frame *Frame) (value.Value, error) {
	obj := value.NewObject()
	for _, p := range n.Properties {
		v, err := e.Evaluate(p.Value, ctx, frame)
		if err != nil {
			return value.Value{}, err
		}
		obj.Set(p.Key, v)
	}
	return value.NewObjectValue(obj), nil
}

func (e *Evaluator) resolveVariable(n *ast.VariableReference, ctx *Context, frame *Frame) (value.Value, error) {
	if n.Prefix == ast.VariablePrefixDollar {
		frame.AccessedVariables[n.Name] = struct{}{}
		raw, ok := ctx.Variables[n.Name]
		if !ok {
			if e.Options.StrictMode {
				return value.Value{}, &UndefinedVariableError{Name: n.Name}
			}
			return value.Null, nil
		}
		return value.FromNative(raw, true)
	}

	frame.AccessedVariables[n.Name] = struct{}{}
	raw, ok := ctx.Extra[n.Name]
	if !ok {
		if e.Options.StrictMode {
			return value.Value{}, &UndefinedVariableError{Name: n.Name}
		}
		return value.Null, nil
	}
	return value.FromNative(raw, false)
}

func (e *Evaluator) evalUnary(n *ast.UnaryOperation, ctx *Context, frame *Frame) (value.Value, error) {
	operand, err := e.Evaluate(n.Operand, ctx, frame)
	if err != nil {
		return value.Value{}, err
	}
	switch n.Operator {
	case "-":
		d, err := operand.ToDecimal()
		if err != nil {
			return value.Value{}, &TypeMismatchError{Expected: "numeric", Actual: operand.TypeName(), Where: "unary -"}
		}
		return value.NewDecimal(d.Neg()), nil
	case "!":
		return value.NewBool(!operand.ToBool()), nil
	default:
		return value.Value{}, &InvalidOperationError{Operator: n.Operator, OperandTypes: []string{operand.TypeName()}}
	}
}

func (e *Evaluator) evalConditional(n *ast.ConditionalExpression, ctx *Context, frame *Frame) (value.Value, error) {
	cond, err := e.Evaluate(n.Condition, ctx, frame)
	if err != nil {
		return value.Value{}, err
	}
	if cond.ToBool() {
		return e.Evaluate(n.Then, ctx, frame)
	}
	return e.Evaluate(n.Else, ctx, frame)
}

func (e *Evaluator) evalBinary(n *ast.BinaryOperation, ctx *Context, frame *Frame) (value.Value, error) {
	switch n.Operator {
	case "&&":
		left, err := e.Evaluate(n.Left, ctx, frame)
		if err != nil {
			return value.Value{}, err
		}
		if !left.ToBool() {
			return value.NewBool(false), nil
		}
		right, err := e.Evaluate(n.Right, ctx, frame)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(right.ToBool()), nil
	case "||":
		left, err := e.Evaluate(n.Left, ctx, frame)
		if err != nil {
			return value.Value{}, err
		}
		if left.ToBool() {
			return value.NewBool(true), nil
		}
		right, err := e.Evaluate(n.Right, ctx, frame)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(right.ToBool()), nil
	}

	left, err := e.Evaluate(n.Left, ctx, frame)
	if err != nil {
		return value.Value{}, err
	}
	right, err := e.Evaluate(n.Right, ctx, frame)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Operator {
	case "+":
		return e.evalPlus(left, right)
	case "-", "*", "/", "%", "^":
		return e.evalArith(n.Operator, left, right)
	case "==":
		return value.NewBool(looseEqual(left, right)), nil
	case "!=":
		return value.NewBool(!looseEqual(left, right)), nil
	case "<", "<=", ">", ">=":
		return e.evalOrdering(n.Operator, left, right)
	default:
		return value.Value{}, &InvalidOperationError{Operator: n.Operator, OperandTypes: []string{left.TypeName(), right.TypeName()}}
	}
}

func (e *Evaluator) evalPlus(left, right value.Value) (value.Value, error) {
	if left.Kind() == value.KindString || right.Kind() == value.KindString {
		return value.NewString(left.String() + right.String()), nil
	}
	return e.evalArith("+", left, right)
}

func (e *Evaluator) evalArith(op string, left, right value.Value) (value.Value, error) {
	l, lerr := left.ToDecimal()
	r, rerr := right.ToDecimal()
	if lerr != nil || rerr != nil {
		return value.Value{}, &InvalidOperationError{Operator: op, OperandTypes: []string{left.TypeName(), right.TypeName()}}
	}

	var result decimal.Decimal
	switch op {
	case "+":
		result = l.Add(r)
	case "-":
		result = l.Sub(r)
	case "*":
		result = l.Mul(r)
	case "/":
		if r.IsZero() {
			return value.Value{}, &DivisionByZeroError{}
		}
		q, err := l.DivScale(r, e.Options.DivisionScale, e.Options.DivisionMode)
		if err != nil {
			return value.Value{}, &DivisionByZeroError{}
		}
		result = q
	case "%":
		if r.IsZero() {
			return value.Value{}, &DivisionByZeroError{}
		}
		m, err := l.Mod(r)
		if err != nil {
			return value.Value{}, &DivisionByZeroError{}
		}
		result = m
	case "^":
		if r.IsInteger() {
			result = l.PowInt(r.IntPart())
		} else {
			result = l.PowFloat(r.Float64())
		}
	default:
		return value.Value{}, &InvalidOperationError{Operator: op, OperandTypes: []string{left.TypeName(), right.TypeName()}}
	}

	// Catch a result whose magnitude ran past the configured
	// max_exponent/min_exponent bounds (§6.2) before it reaches any
	// dependent formula or output.
	if err := decimal.CheckLimits(result, e.Options.DecimalLimits); err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(result), nil
}

func (e *Evaluator) evalOrdering(op string, left, right value.Value) (value.Value, error) {
	var cmp decimal.CompareResult
	switch {
	case left.IsNumeric() && right.IsNumeric():
		l, _ := left.ToDecimal()
		r, _ := right.ToDecimal()
		cmp = l.Compare(r)
	case left.Kind() == value.KindString && right.Kind() == value.KindString:
		switch {
		case left.AsString() < right.AsString():
			cmp = decimal.Less
		case left.AsString() > right.AsString():
			cmp = decimal.Greater
		default:
			cmp = decimal.Equal
		}
	default:
		return value.Value{}, &InvalidOperationError{Operator: op, OperandTypes: []string{left.TypeName(), right.TypeName()}}
	}

	switch op {
	case "<":
		return value.NewBool(cmp == decimal.Less), nil
	case "<=":
		return value.NewBool(cmp != decimal.Greater), nil
	case ">":
		return value.NewBool(cmp == decimal.Greater), nil
	case ">=":
		return value.NewBool(cmp != decimal.Less), nil
	default:
		return value.Value{}, &InvalidOperationError{Operator: op, OperandTypes: []string{left.TypeName(), right.TypeName()}}
	}
}

// looseEqual implements §4.5's `==`/`!=` contract: numeric kinds
// compare via Decimal regardless of Decimal/Float tagging, everything
// else compares structurally except arrays and objects, which compare
// by reference identity rather than deep value (any two empty arrays
// compare equal).
func looseEqual(a, b value.Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		da, _ := a.ToDecimal()
		db, _ := b.ToDecimal()
		return da.Equal(db)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case value.KindNull:
		return true
	case value.KindBool:
		return a.AsBool() == b.AsBool()
	case value.KindString:
		return a.AsString() == b.AsString()
	case value.KindArray:
		aArr, bArr := a.AsArray(), b.AsArray()
		if len(aArr) == 0 && len(bArr) == 0 {
			return true
		}
		return reflect.ValueOf(aArr).Pointer() == reflect.ValueOf(bArr).Pointer() && len(aArr) == len(bArr)
	case value.KindObject:
		return a.AsObject() == b.AsObject()
	default:
		return false
	}
}

func (e *Evaluator) evalMemberAccess(n *ast.MemberAccess, ctx *Context, frame *Frame) (value.Value, error) {
	obj, err := e.Evaluate(n.Object, ctx, frame)
	if err != nil {
		return value.Value{}, err
	}
	switch obj.Kind() {
	case value.KindNull:
		if e.Options.StrictMode {
			return value.Value{}, &PropertyAccessError{Property: n.Property, ObjectType: "null"}
		}
		return value.Null, nil
	case value.KindObject:
		if v, ok := obj.AsObject().Get(n.Property); ok {
			return v, nil
		}
		return value.Null, nil
	default:
		return value.Value{}, &PropertyAccessError{Property: n.Property, ObjectType: obj.TypeName()}
	}
}

func (e *Evaluator) evalIndexAccess(n *ast.IndexAccess, ctx *Context, frame *Frame) (value.Value, error) {
	obj, err := e.Evaluate(n.Object, ctx, frame)
	if err != nil {
		return value.Value{}, err
	}
	idx, err := e.Evaluate(n.Index, ctx, frame)
	if err != nil {
		return value.Value{}, err
	}

	switch obj.Kind() {
	case value.KindNull:
		if e.Options.StrictMode {
			return value.Value{}, &IndexAccessError{Index: idx.String(), ObjectType: "null"}
		}
		return value.Null, nil
	case value.KindArray:
		d, err := idx.ToDecimal()
		if err != nil {
			return value.Value{}, &TypeMismatchError{Expected: "numeric index", Actual: idx.TypeName(), Where: "index access"}
		}
		i := int(d.IntPart())
		arr := obj.AsArray()
		if i < 0 || i >= len(arr) {
			return value.Null, nil
		}
		return arr[i], nil
	case value.KindObject:
		key := idx.String()
		if v, ok := obj.AsObject().Get(key); ok {
			return v, nil
		}
		return value.Null, nil
	default:
		return value.Value{}, &IndexAccessError{Index: idx.String(), ObjectType: obj.TypeName()}
	}
}

func (e *Evaluator) evalFunctionCall(n *ast.FunctionCall, ctx *Context, frame *Frame) (value.Value, error) {
	name := strings.ToUpper(n.Name)

	switch {
	case name == "SUM" && len(n.Arguments) == 2:
		return e.evalIteratingSum(n, ctx, frame)
	case name == "FILTER":
		return e.evalFilter(n, ctx, frame)
	case name == "MAP":
		return e.evalMap(n, ctx, frame)
	}

	def, ok := e.Options.Functions.Lookup(name)
	if !ok {
		return value.Value{}, &UndefinedFunctionError{Name: name}
	}
	if err := functions.CheckArity(name, def, len(n.Arguments)); err != nil {
		argErr := err.(*functions.ArgumentCountError)
		return value.Value{}, &ArgumentCountError{Function: name, Min: argErr.Min, Max: argErr.Max, Actual: argErr.Actual}
	}

	args := make([]value.Value, len(n.Arguments))
	for i, a := range n.Arguments {
		v, err := e.Evaluate(a, ctx, frame)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return def.Call(args)
}

func (e *Evaluator) tick(frame *Frame) error {
	frame.IterationCount++
	if frame.IterationCount > e.Options.MaxIterations {
		return &MaxIterationsError{Limit: e.Options.MaxIterations}
	}
	return nil
}

func (e *Evaluator) evalIteratingSum(n *ast.FunctionCall, ctx *Context, frame *Frame) (value.Value, error) {
	arrVal, err := e.Evaluate(n.Arguments[0], ctx, frame)
	if err != nil {
		return value.Value{}, err
	}
	if arrVal.Kind() != value.KindArray {
		return value.Value{}, &TypeMismatchError{Expected: "array", Actual: arrVal.TypeName(), Where: "SUM"}
	}

	sum := decimal.Zero
	for _, item := range arrVal.AsArray() {
		if err := e.tick(frame); err != nil {
			return value.Value{}, err
		}
		child := withIt(ctx, item)
		v, err := e.Evaluate(n.Arguments[1], child, frame)
		if err != nil {
			return value.Value{}, err
		}
		d, err := v.ToDecimal()
		if err != nil {
			return value.Value{}, &TypeMismatchError{Expected: "numeric", Actual: v.TypeName(), Where: "SUM"}
		}
		sum = sum.Add(d)
	}
	return value.NewDecimal(sum), nil
}

func (e *Evaluator) evalFilter(n *ast.FunctionCall, ctx *Context, frame *Frame) (value.Value, error) {
	if len(n.Arguments) != 2 {
		return value.Value{}, &ArgumentCountError{Function: "FILTER", Min: 2, Max: 2, Actual: len(n.Arguments)}
	}
	arrVal, err := e.Evaluate(n.Arguments[0], ctx, frame)
	if err != nil {
		return value.Value{}, err
	}
	if arrVal.Kind() != value.KindArray {
		return value.Value{}, &TypeMismatchError{Expected: "array", Actual: arrVal.TypeName(), Where: "FILTER"}
	}

	var out []value.Value
	for _, item := range arrVal.AsArray() {
		if err := e.tick(frame); err != nil {
			return value.Value{}, err
		}
		child := withIt(ctx, item)
		cond, err := e.Evaluate(n.Arguments[1], child, frame)
		if err != nil {
			return value.Value{}, err
		}
		if cond.ToBool() {
			out = append(out, item)
		}
	}
	return value.NewArray(out), nil
}

func (e *Evaluator) evalMap(n *ast.FunctionCall, ctx *Context, frame *Frame) (value.Value, error) {
	if len(n.Arguments) != 2 {
		return value.Value{}, &ArgumentCountError{Function: "MAP", Min: 2, Max: 2, Actual: len(n.Arguments)}
	}
	arrVal, err := e.Evaluate(n.Arguments[0], ctx, frame)
	if err != nil {
		return value.Value{}, err
	}
	if arrVal.Kind() != value.KindArray {
		return value.Value{}, &TypeMismatchError{Expected: "array", Actual: arrVal.TypeName(), Where: "MAP"}
	}

	src := arrVal.AsArray()
	out := make([]value.Value, 0, len(src))
	for _, item := range src {
		if err := e.tick(frame); err != nil {
			return value.Value{}, err
		}
		child := withIt(ctx, item)
		v, err := e.Evaluate(n.Arguments[1], child, frame)
		if err != nil {
			return value.Value{}, err
		}
		out = append(out, v)
	}
	return value.NewArray(out), nil
}
