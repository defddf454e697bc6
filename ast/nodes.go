package ast

import (
	"fmt"
	"strings"
)

// Node is the interface every AST node implements. Nodes are immutable
// once built and own their children; there is no sharing and no cycles.
type Node interface {
	String() string
	GetRange() *Range
}

// DecimalLiteral is a numeric literal kept in its original textual form so
// that decimal precision survives lexing unchanged.
type DecimalLiteral struct {
	Text  string
	Range *Range
}

func (n *DecimalLiteral) String() string  { return fmt.Sprintf("Decimal(%s)", n.Text) }
func (n *DecimalLiteral) GetRange() *Range { return n.Range }

// FloatLiteral is a binary-float literal, produced only when the source
// explicitly requested float semantics (scientific notation or an 'f'/'F'
// suffix).
type FloatLiteral struct {
	Value float64
	Range *Range
}

func (n *FloatLiteral) String() string  { return fmt.Sprintf("Float(%g)", n.Value) }
func (n *FloatLiteral) GetRange() *Range { return n.Range }

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Value string
	Range *Range
}

func (n *StringLiteral) String() string  { return fmt.Sprintf("String(%q)", n.Value) }
func (n *StringLiteral) GetRange() *Range { return n.Range }

// BooleanLiteral is the `true`/`false` keyword literal.
type BooleanLiteral struct {
	Value bool
	Range *Range
}

func (n *BooleanLiteral) String() string  { return fmt.Sprintf("Boolean(%t)", n.Value) }
func (n *BooleanLiteral) GetRange() *Range { return n.Range }

// NullLiteral is the `null` keyword literal.
type NullLiteral struct {
	Range *Range
}

func (n *NullLiteral) String() string  { return "Null" }
func (n *NullLiteral) GetRange() *Range { return n.Range }

// ArrayLiteral is a bracketed `[a, b, c]` literal.
type ArrayLiteral struct {
	Elements []Node
	Range    *Range
}

func (n *ArrayLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Array[%s]", strings.Join(parts, ", "))
}
func (n *ArrayLiteral) GetRange() *Range { return n.Range }

// ObjectProperty is one `key: value` pair of an ObjectLiteral. Order is
// the declaration order and is preserved for deterministic iteration.
type ObjectProperty struct {
	Key   string
	Value Node
}

// ObjectLiteral is a brace-delimited `{ key: value, ... }` literal.
type ObjectLiteral struct {
	Properties []ObjectProperty
	Range      *Range
}

func (n *ObjectLiteral) String() string {
	parts := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		parts[i] = fmt.Sprintf("%s: %s", p.Key, p.Value)
	}
	return fmt.Sprintf("Object{%s}", strings.Join(parts, ", "))
}
func (n *ObjectLiteral) GetRange() *Range { return n.Range }

// VariablePrefix distinguishes `$name` (formula/context variables) from
// `@name` (external context values).
type VariablePrefix byte

const (
	// VariablePrefixDollar is the `$` prefix.
	VariablePrefixDollar VariablePrefix = '$'
	// VariablePrefixAt is the `@` prefix.
	VariablePrefixAt VariablePrefix = '@'
)

// VariableReference is a `$name` or `@name` reference.
type VariableReference struct {
	Prefix VariablePrefix
	Name   string
	Range  *Range
}

func (n *VariableReference) String() string {
	return fmt.Sprintf("Var(%c%s)", n.Prefix, n.Name)
}
func (n *VariableReference) GetRange() *Range { return n.Range }

// UnaryOperation is a prefix `-` or `!` operation.
type UnaryOperation struct {
	Operator string
	Operand  Node
	Range    *Range
}

func (n *UnaryOperation) String() string {
	return fmt.Sprintf("Unary(%q, %s)", n.Operator, n.Operand)
}
func (n *UnaryOperation) GetRange() *Range { return n.Range }

// BinaryOperation is an infix arithmetic, comparison, or logical operation.
type BinaryOperation struct {
	Operator string
	Left     Node
	Right    Node
	Range    *Range
}

func (n *BinaryOperation) String() string {
	return fmt.Sprintf("Binary(%q, %s, %s)", n.Operator, n.Left, n.Right)
}
func (n *BinaryOperation) GetRange() *Range { return n.Range }

// ConditionalExpression is the ternary `cond ? then : else` form.
type ConditionalExpression struct {
	Condition Node
	Then      Node
	Else      Node
	Range     *Range
}

func (n *ConditionalExpression) String() string {
	return fmt.Sprintf("Cond(%s ? %s : %s)", n.Condition, n.Then, n.Else)
}
func (n *ConditionalExpression) GetRange() *Range { return n.Range }

// FunctionCall is a call `NAME(args...)`; Name is always upper-cased by
// the parser before the node is constructed.
type FunctionCall struct {
	Name      string
	Arguments []Node
	Range     *Range
}

func (n *FunctionCall) String() string {
	parts := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		parts[i] = a.String()
	}
	return fmt.Sprintf("Call(%s, [%s])", n.Name, strings.Join(parts, ", "))
}
func (n *FunctionCall) GetRange() *Range { return n.Range }

// MemberAccess is a `obj.prop` access; Property is a bare identifier name.
type MemberAccess struct {
	Object   Node
	Property string
	Range    *Range
}

func (n *MemberAccess) String() string {
	return fmt.Sprintf("Member(%s.%s)", n.Object, n.Property)
}
func (n *MemberAccess) GetRange() *Range { return n.Range }

// IndexAccess is a `obj[index]` access; Index is an arbitrary sub-expression.
type IndexAccess struct {
	Object Node
	Index  Node
	Range  *Range
}

func (n *IndexAccess) String() string {
	return fmt.Sprintf("Index(%s[%s])", n.Object, n.Index)
}
func (n *IndexAccess) GetRange() *Range { return n.Range }
