// Package evaluator walks a parsed expression tree against a Context
// and produces a value.Value, per §4.5: variable/member/index
// resolution, operator semantics, and function-call dispatch including
// the three engine-known iterating forms (SUM's two-argument form,
// FILTER, MAP).
package evaluator

import "github.com/formulaengine/core/value"

// Context pairs the two caller-supplied namespaces formulas resolve
// against: `variables` (the `$`-namespace, eligible for auto-Decimal
// promotion) and `extra` (the `@`-namespace, returned as-is). Values
// may be stored as raw Go natives (int, float64, string, bool, nil,
// []interface{}, map[string]interface{}) or already-converted
// value.Value; resolution converts on read.
type Context struct {
	Variables map[string]interface{}
	Extra     map[string]interface{}
}

// NewContext builds an empty context.
func NewContext() *Context {
	return &Context{Variables: map[string]interface{}{}, Extra: map[string]interface{}{}}
}

// Clone returns a shallow copy: a new top-level map sharing the
// existing entries, matching §5's "evaluate_all mutates only its
// private working copy" contract.
func (c *Context) Clone() *Context {
	vars := make(map[string]interface{}, len(c.Variables))
	for k, v := range c.Variables {
		vars[k] = v
	}
	extra := make(map[string]interface{}, len(c.Extra))
	for k, v := range c.Extra {
		extra[k] = v
	}
	return &Context{Variables: vars, Extra: extra}
}

// withIt returns a child context overlaying `it` (and the internal
// `_currentItem` extra hook) onto a shallow snapshot of parent, so
// nested iteration never cross-contaminates outer frames.
func withIt(parent *Context, item value.Value) *Context {
	vars := make(map[string]interface{}, len(parent.Variables)+1)
	for k, v := range parent.Variables {
		vars[k] = v
	}
	vars["it"] = item

	extra := make(map[string]interface{}, len(parent.Extra)+1)
	for k, v := range parent.Extra {
		extra[k] = v
	}
	extra["_currentItem"] = item

	return &Context{Variables: vars, Extra: extra}
}

// Frame is the per-evaluation mutable state threaded through recursive
// node dispatch: recursion depth, iteration counters, and the set of
// variable names actually read (returned to callers in the result
// envelope as `accessed_vars`).
type Frame struct {
	RecursionDepth    int
	IterationCount    int
	AccessedVariables map[string]struct{}
}

// NewFrame starts a fresh frame for one top-level evaluate call.
func NewFrame() *Frame {
	return &Frame{AccessedVariables: map[string]struct{}{}}
}
