package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/formulaengine/core/ast"
	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/dependency"
	"github.com/formulaengine/core/evaluator"
	"github.com/formulaengine/core/functions"
	"github.com/formulaengine/core/lexer"
	"github.com/formulaengine/core/parser"
	"github.com/formulaengine/core/value"
)

// Engine is the façade of §4.6: parse/evaluate/evaluate_all/validate
// over a shared AST cache, dependency cache, and function registry.
// Concurrent use of a single Engine from multiple goroutines is not
// supported — each goroutine needing parallel evaluation should own
// its own Engine, per §5.
type Engine struct {
	config    Config
	functions *functions.Registry
	cache     *fifoCache
}

// New constructs an Engine. A zero-value Config is not valid; callers
// should start from DefaultConfig().
func New(cfg Config) *Engine {
	return &Engine{
		config:    cfg,
		functions: functions.NewRegistry(),
		cache:     newFIFOCache(cfg.MaxCacheSize),
	}
}

// EvalResult is the result envelope returned by Evaluate, matching
// §4.6: a catch-all that never propagates an evaluator error, instead
// reporting it structurally.
type EvalResult struct {
	Value        value.Value
	Success      bool
	Error        error
	ElapsedMs    int64
	AccessedVars []string
}

// Parse tokenizes and parses expr, consulting (and populating) the
// shared AST/dependency cache when enabled. Expressions longer than
// security.max_expression_length are rejected before parsing.
func (e *Engine) Parse(expr string) (ast.Node, error) {
	if e.config.Security.MaxExpressionLength > 0 && len(expr) > e.config.Security.MaxExpressionLength {
		return nil, &MaxExpressionLengthError{Length: len(expr), Limit: e.config.Security.MaxExpressionLength}
	}
	if e.config.EnableCache {
		if entry, ok := e.cache.lookup(expr); ok {
			e.cache.recordHit()
			return entry.node, nil
		}
		e.cache.recordMiss()
	}
	node, err := parser.ParseWithOptions(expr, e.lexerOptions())
	if err != nil {
		return nil, err
	}
	if e.config.EnableCache {
		e.cache.put(expr, &cacheEntry{node: node})
	}
	return node, nil
}

// lexerOptions translates the configured variable/context prefix bytes
// (§6.2) into lexer.Options.
func (e *Engine) lexerOptions() lexer.Options {
	return lexer.Options{VariablePrefix: e.config.VariablePrefix, ContextPrefix: e.config.ContextPrefix}
}

// ExtractDependencies returns expr's `$`-variable dependency set. It
// shares the AST cache's entries and keyspace (§3: the AST and
// dependency caches "share the same keyspace and [are] evicted in
// lockstep") rather than keeping a second, independently-evicted cache:
// an expression already cached by Parse has its dependency set attached
// to that same entry instead of a parallel lookup structure.
func (e *Engine) ExtractDependencies(expr string) (map[string]struct{}, error) {
	if !e.config.EnableCache {
		node, err := e.Parse(expr)
		if err != nil {
			return nil, err
		}
		return dependency.Extract(node), nil
	}

	if entry, ok := e.cache.lookup(expr); ok {
		if entry.hasDeps {
			e.cache.recordHit()
			return entry.deps, nil
		}
		// AST already cached (by a prior Parse) but dependencies for it
		// have never been computed; attach them to the same entry so
		// both stay keyed together and evict together.
		e.cache.recordMiss()
		entry.deps = dependency.Extract(entry.node)
		entry.hasDeps = true
		return entry.deps, nil
	}

	e.cache.recordMiss()
	if e.config.Security.MaxExpressionLength > 0 && len(expr) > e.config.Security.MaxExpressionLength {
		return nil, &MaxExpressionLengthError{Length: len(expr), Limit: e.config.Security.MaxExpressionLength}
	}
	node, err := parser.ParseWithOptions(expr, e.lexerOptions())
	if err != nil {
		return nil, err
	}
	deps := dependency.Extract(node)
	e.cache.put(expr, &cacheEntry{node: node, deps: deps, hasDeps: true})
	return deps, nil
}

func (e *Engine) evaluatorOptions() evaluator.Options {
	return evaluator.Options{
		StrictMode:        e.config.StrictMode,
		MaxRecursionDepth: e.config.Security.MaxRecursionDepth,
		MaxIterations:     e.config.Security.MaxIterations,
		DivisionScale:     e.config.Decimal.DivisionScale,
		DivisionMode:      e.config.Decimal.RoundingMode,
		DecimalLimits: decimal.Limits{
			MaxExponent: e.config.Decimal.MaxExponent,
			MinExponent: e.config.Decimal.MinExponent,
		},
		Functions: e.functions,
	}
}

// Evaluate parses and evaluates a single expression against ctx. Any
// evaluator error is caught and reported inside the envelope rather
// than returned, per §7's propagation policy for single evaluate.
func (e *Engine) Evaluate(expr string, ctx *evaluator.Context) EvalResult {
	start := time.Now()
	node, err := e.Parse(expr)
	if err != nil {
		return EvalResult{Value: value.Null, Success: false, Error: err, ElapsedMs: time.Since(start).Milliseconds()}
	}

	frame := evaluator.NewFrame()
	ev := evaluator.New(e.evaluatorOptions())
	v, err := ev.Evaluate(node, ctx, frame)
	elapsed := time.Since(start).Milliseconds()
	accessed := accessedNames(frame)
	if err != nil {
		return EvalResult{Value: value.Null, Success: false, Error: err, ElapsedMs: elapsed, AccessedVars: accessed}
	}
	return EvalResult{Value: e.normalizeResult(v), Success: true, ElapsedMs: elapsed, AccessedVars: accessed}
}

// normalizeResult trims a Decimal result's trailing zeros unless
// decimal.preserve_trailing_zeros is configured true, per §6.2.
func (e *Engine) normalizeResult(v value.Value) value.Value {
	if v.Kind() != value.KindDecimal || e.config.Decimal.PreserveTrailingZeros {
		return v
	}
	return value.NewDecimal(v.AsDecimal().Normalize())
}

func accessedNames(frame *evaluator.Frame) []string {
	names := make([]string, 0, len(frame.AccessedVariables))
	for name := range frame.AccessedVariables {
		names = append(names, name)
	}
	return names
}

// Formula is one named entry of a batch submitted to EvaluateAll.
// Dependencies, when non-empty, override automatic extraction (used by
// callers that already know their graph, e.g. re-running a validated
// batch). Rounding overrides the engine default when Enabled.
type Formula struct {
	ID           string
	Expr         string
	Dependencies []string
	OnError      ErrorPolicy
	Rounding     RoundingPolicy
	DefaultValue value.Value
}

// BatchOptions tunes one EvaluateAll call.
type BatchOptions struct {
	DisableIntermediateRounding bool
}

// BatchResult is returned by EvaluateAll, per §4.6 step 6.
type BatchResult struct {
	BatchID         string
	Results         map[string]EvalResult
	EvaluationOrder []string
	Errors          []error
	Success         bool
	TotalElapsedMs  int64
}

// EvaluateAll builds the dependency graph for formulas, topologically
// sorts it, and evaluates each formula in order against a private
// working copy of ctx, propagating each formula's (possibly rounded)
// result to its dependents via working.Variables before they run.
func (e *Engine) EvaluateAll(formulas []Formula, ctx *evaluator.Context, opts BatchOptions) BatchResult {
	start := time.Now()
	batchID := uuid.NewString()

	seen := make(map[string]bool, len(formulas))
	byID := make(map[string]Formula, len(formulas))
	for _, f := range formulas {
		if seen[f.ID] {
			return BatchResult{
				BatchID: batchID, Success: false,
				Errors:         []error{&DuplicateFormulaError{ID: f.ID}},
				TotalElapsedMs: time.Since(start).Milliseconds(),
			}
		}
		seen[f.ID] = true
		byID[f.ID] = f
	}

	graph := dependency.New()
	for _, f := range formulas {
		graph.AddNode(f.ID)
	}
	for _, f := range formulas {
		var deps map[string]struct{}
		if len(f.Dependencies) > 0 {
			deps = make(map[string]struct{}, len(f.Dependencies))
			for _, d := range f.Dependencies {
				deps[d] = struct{}{}
			}
		} else {
			extracted, err := e.ExtractDependencies(f.Expr)
			if err != nil {
				return BatchResult{
					BatchID: batchID, Success: false,
					Errors:         []error{err},
					TotalElapsedMs: time.Since(start).Milliseconds(),
				}
			}
			deps = extracted
		}
		for dep := range deps {
			if _, isFormula := byID[dep]; isFormula {
				graph.AddEdge(f.ID, dep)
			}
		}
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		return BatchResult{
			BatchID: batchID, Success: false,
			Errors:         []error{err},
			TotalElapsedMs: time.Since(start).Milliseconds(),
		}
	}

	working := ctx.Clone()
	if e.config.Decimal.AutoConvertFloats {
		autoConvertVariables(working)
	}

	results := make(map[string]EvalResult, len(order))
	var batchErrors []error

	for _, id := range order {
		f := byID[id]
		res := e.Evaluate(f.Expr, working)

		if res.Success {
			if !opts.DisableIntermediateRounding {
				res.Value = e.applyRounding(f, res.Value)
			}
			working.Variables[id] = res.Value
			results[id] = res
			continue
		}

		batchErrors = append(batchErrors, res.Error)
		switch e.errorPolicy(f) {
		case ErrorThrow:
			// Terminal for this formula but not the batch: remaining
			// independent formulas may still evaluate, matching §7's
			// "policies other than THROW never abort the batch" note
			// by contrast — THROW simply leaves no substituted value.
		case ErrorNull:
			working.Variables[id] = value.Null
		case ErrorZero:
			res.Value = value.NewDecimal(decimal.Zero)
			working.Variables[id] = res.Value
		case ErrorDefault:
			if f.DefaultValue.Kind() == value.KindNull && f.DefaultValue.IsNull() {
				working.Variables[id] = value.Null
			} else {
				res.Value = f.DefaultValue
				working.Variables[id] = f.DefaultValue
			}
		case ErrorSkip:
			// id stays absent from working.Variables.
		}
		results[id] = res
	}

	return BatchResult{
		BatchID:         batchID,
		Results:         results,
		EvaluationOrder: order,
		Errors:          batchErrors,
		Success:         len(batchErrors) == 0,
		TotalElapsedMs:  time.Since(start).Milliseconds(),
	}
}

func (e *Engine) errorPolicy(f Formula) ErrorPolicy {
	if f.OnError != ErrorThrow {
		return f.OnError
	}
	return e.config.DefaultErrorBehavior
}

// applyRounding rounds a Decimal result per formula.Rounding if
// enabled, else the engine's default_rounding if enabled, else leaves
// it untouched. Rounding happens before the value is injected into the
// working context, so dependents observe the rounded value, per §5.
func (e *Engine) applyRounding(f Formula, v value.Value) value.Value {
	if v.Kind() != value.KindDecimal {
		return v
	}
	policy := f.Rounding
	if !policy.Enabled {
		policy = e.config.DefaultRounding
	}
	if !policy.Enabled {
		return v
	}
	return value.NewDecimal(v.AsDecimal().Round(policy.Precision, policy.Mode))
}

func autoConvertVariables(ctx *evaluator.Context) {
	for k, raw := range ctx.Variables {
		if converted, err := value.FromNative(raw, true); err == nil {
			ctx.Variables[k] = converted
		}
	}
}

// ValidationResult is returned by Validate, per §4.6.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	Graph    *dependency.Graph
	Order    []string
}

// Validate parses every formula (collecting syntax errors), detects
// duplicate ids, builds the dependency graph, and attempts a
// topological sort — all without evaluating anything.
func (e *Engine) Validate(formulas []Formula) ValidationResult {
	var errs []error
	var warnings []string

	seen := make(map[string]bool, len(formulas))
	byID := make(map[string]Formula, len(formulas))
	for _, f := range formulas {
		if seen[f.ID] {
			errs = append(errs, &DuplicateFormulaError{ID: f.ID})
			continue
		}
		seen[f.ID] = true
		byID[f.ID] = f
	}

	graph := dependency.New()
	for id := range byID {
		graph.AddNode(id)
	}
	for _, f := range formulas {
		if _, err := e.Parse(f.Expr); err != nil {
			errs = append(errs, err)
			continue
		}
		deps, err := e.ExtractDependencies(f.Expr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for dep := range deps {
			if _, isFormula := byID[dep]; isFormula {
				graph.AddEdge(f.ID, dep)
			} else {
				warnings = append(warnings, "formula "+f.ID+" references unresolved variable "+dep)
			}
		}
	}

	var order []string
	if len(errs) == 0 {
		o, err := graph.TopologicalSort()
		if err != nil {
			errs = append(errs, err)
		} else {
			order = o
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs, Warnings: warnings, Graph: graph, Order: order}
}

// RegisterFunction inserts a custom function definition, overriding
// any built-in of the same (upper-cased) name.
func (e *Engine) RegisterFunction(name string, def functions.Definition) {
	e.functions.Register(name, def)
}

// ClearCache empties the shared AST/dependency cache and resets its
// hit/miss counters.
func (e *Engine) ClearCache() {
	e.cache.clear()
}

// CacheStats reports the shared AST/dependency cache's size, cumulative
// hits/misses, and hit rate, per the single cache_stats contract of
// §4.6 — Parse and ExtractDependencies lookups both feed these counters.
func (e *Engine) CacheStats() CacheStats {
	return e.cache.stats()
}
