// Package dependency extracts inter-formula references from an AST and
// schedules formula evaluation order via a directed dependency graph
// with cycle detection, per §4.3 and §4.4.
package dependency

import "github.com/formulaengine/core/ast"

// Extract walks node and returns the set of `$`-prefixed variable names
// it references. `@`-variables are never collected; for member/index
// chains only the root variable is collected, though index expressions
// and object-literal values are recursed into fully.
func Extract(node ast.Node) map[string]struct{} {
	names := make(map[string]struct{})
	walk(node, names)
	return names
}

func walk(node ast.Node, names map[string]struct{}) {
	switch n := node.(type) {
	case nil:
		return
	case *ast.VariableReference:
		if n.Prefix == ast.VariablePrefixDollar {
			names[n.Name] = struct{}{}
		}
	case *ast.UnaryOperation:
		walk(n.Operand, names)
	case *ast.BinaryOperation:
		walk(n.Left, names)
		walk(n.Right, names)
	case *ast.ConditionalExpression:
		walk(n.Condition, names)
		walk(n.Then, names)
		walk(n.Else, names)
	case *ast.FunctionCall:
		for _, arg := range n.Arguments {
			walk(arg, names)
		}
	case *ast.MemberAccess:
		// Only the root of the chain contributes a dependency; recurse
		// into the object anyway to find that root (and to catch index
		// expressions embedded within it).
		walk(n.Object, names)
	case *ast.IndexAccess:
		walk(n.Object, names)
		walk(n.Index, names)
	case *ast.ArrayLiteral:
		for _, e := range n.Elements {
			walk(e, names)
		}
	case *ast.ObjectLiteral:
		for _, p := range n.Properties {
			walk(p.Value, names)
		}
	}
}
