package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"

	"github.com/formulaengine/core/evaluator"
)

// parseVarFlag splits one "name=value" CLI flag and coerces value with
// the same flexible-string rules used for context values arriving from
// outside the engine: integers and floats parse as numbers, "true"/
// "false" parse as booleans, everything else stays a string.
func parseVarFlag(flag string) (string, interface{}, error) {
	name, raw, ok := strings.Cut(flag, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid --var %q: expected name=value", flag)
	}
	if name == "" {
		return "", nil, fmt.Errorf("invalid --var %q: empty name", flag)
	}
	return name, coerceVarValue(raw), nil
}

func coerceVarValue(raw string) interface{} {
	if i, err := cast.ToInt64E(raw); err == nil {
		return i
	}
	if f, err := cast.ToFloat64E(raw); err == nil {
		return f
	}
	if b, err := cast.ToBoolE(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	return raw
}

// buildContext turns repeated --var/--extra flags into a Context.
func buildContext(varFlags, extraFlags []string) (*evaluator.Context, error) {
	ctx := evaluator.NewContext()
	for _, flag := range varFlags {
		name, value, err := parseVarFlag(flag)
		if err != nil {
			return nil, err
		}
		ctx.Variables[name] = value
	}
	for _, flag := range extraFlags {
		name, value, err := parseVarFlag(flag)
		if err != nil {
			return nil, err
		}
		ctx.Extra[name] = value
	}
	return ctx, nil
}

// openOutput resolves a --output/-o flag to its writer: stdout when path
// is empty, otherwise a newly created file. The returned close func is
// always safe to defer, even for stdout (a no-op there).
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output file %q: %w", path, err)
	}
	return f, f.Close, nil
}
