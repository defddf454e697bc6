package functions

import "github.com/formulaengine/core/value"

func registerLogical(r *Registry) {
	r.Register("IF", Definition{MinArgs: 3, MaxArgs: 3, Call: fnIf})
	r.Register("COALESCE", Definition{MinArgs: 1, MaxArgs: -1, Call: fnCoalesce})
	r.Register("ISNULL", Definition{MinArgs: 1, MaxArgs: 1, Call: fnIsNull})
	r.Register("ISEMPTY", Definition{MinArgs: 1, MaxArgs: 1, Call: fnIsEmpty})
	r.Register("DEFAULT", Definition{MinArgs: 2, MaxArgs: 2, Call: fnDefault})
	r.Register("AND", Definition{MinArgs: 1, MaxArgs: -1, Call: fnAnd})
	r.Register("OR", Definition{MinArgs: 1, MaxArgs: -1, Call: fnOr})
	r.Register("NOT", Definition{MinArgs: 1, MaxArgs: 1, Call: fnNot})
}

// fnIf is a regular eagerly-evaluated function, unlike the `?:`
// operator which short-circuits: all three arguments are already
// evaluated by the time the call reaches the registry.
func fnIf(args []value.Value) (value.Value, error) {
	if args[0].ToBool() {
		return args[1], nil
	}
	return args[2], nil
}

func fnCoalesce(args []value.Value) (value.Value, error) {
	for _, a := range args {
		if !a.IsNull() {
			return a, nil
		}
	}
	return value.Null, nil
}

func fnIsNull(args []value.Value) (value.Value, error) {
	return value.NewBool(args[0].IsNull()), nil
}

func fnIsEmpty(args []value.Value) (value.Value, error) {
	switch args[0].Kind() {
	case value.KindNull:
		return value.NewBool(true), nil
	case value.KindString:
		return value.NewBool(args[0].AsString() == ""), nil
	case value.KindArray:
		return value.NewBool(len(args[0].AsArray()) == 0), nil
	case value.KindObject:
		return value.NewBool(args[0].AsObject().Len() == 0), nil
	default:
		return value.NewBool(false), nil
	}
}

func fnDefault(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return args[1], nil
	}
	return args[0], nil
}

func fnAnd(args []value.Value) (value.Value, error) {
	for _, a := range args {
		if !a.ToBool() {
			return value.NewBool(false), nil
		}
	}
	return value.NewBool(true), nil
}

func fnOr(args []value.Value) (value.Value, error) {
	for _, a := range args {
		if a.ToBool() {
			return value.NewBool(true), nil
		}
	}
	return value.NewBool(false), nil
}

func fnNot(args []value.Value) (value.Value, error) {
	return value.NewBool(!args[0].ToBool()), nil
}
