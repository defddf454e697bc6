package functions

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/value"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func registerString(r *Registry) {
	r.Register("LEN", Definition{MinArgs: 1, MaxArgs: 1, Call: fnLen})
	r.Register("UPPER", Definition{MinArgs: 1, MaxArgs: 1, Call: fnUpper})
	r.Register("LOWER", Definition{MinArgs: 1, MaxArgs: 1, Call: fnLower})
	r.Register("TRIM", Definition{MinArgs: 1, MaxArgs: 1, Call: fnTrim})
	r.Register("CONCAT", Definition{MinArgs: 0, MaxArgs: -1, Call: fnConcat})
	r.Register("SUBSTR", Definition{MinArgs: 2, MaxArgs: 3, Call: fnSubstr})
	r.Register("REPLACE", Definition{MinArgs: 3, MaxArgs: 3, Call: fnReplace})
	r.Register("CONTAINS", Definition{MinArgs: 2, MaxArgs: 2, Call: fnContains})
	r.Register("STARTSWITH", Definition{MinArgs: 2, MaxArgs: 2, Call: fnStartsWith})
	r.Register("ENDSWITH", Definition{MinArgs: 2, MaxArgs: 2, Call: fnEndsWith})
}

// fnLen reports string rune-count or array/object length, mirroring
// what TYPEOF would call the argument's natural "size".
func fnLen(args []value.Value) (value.Value, error) {
	switch args[0].Kind() {
	case value.KindString:
		return value.NewDecimal(decimal.FromInt(int64(len([]rune(args[0].AsString()))))), nil
	case value.KindArray:
		return value.NewDecimal(decimal.FromInt(int64(len(args[0].AsArray())))), nil
	case value.KindObject:
		return value.NewDecimal(decimal.FromInt(int64(args[0].AsObject().Len()))), nil
	default:
		return value.Value{}, &Error{Function: "LEN", Message: "expected a string, array, or object"}
	}
}

func fnUpper(args []value.Value) (value.Value, error) {
	return value.NewString(upperCaser.String(toStr(args[0]))), nil
}

func fnLower(args []value.Value) (value.Value, error) {
	return value.NewString(lowerCaser.String(toStr(args[0]))), nil
}

func fnTrim(args []value.Value) (value.Value, error) {
	return value.NewString(strings.TrimSpace(toStr(args[0]))), nil
}

func fnConcat(args []value.Value) (value.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(toStr(a))
	}
	return value.NewString(sb.String()), nil
}

func fnSubstr(args []value.Value) (value.Value, error) {
	s := []rune(toStr(args[0]))
	start, err := toInt("SUBSTR", args[1])
	if err != nil {
		return value.Value{}, err
	}
	start = clampIndex(start, len(s))
	end := len(s)
	if len(args) > 2 && !args[2].IsNull() {
		n, err := toInt("SUBSTR", args[2])
		if err != nil {
			return value.Value{}, err
		}
		end = clampIndex(start+n, len(s))
	}
	if start > end {
		return value.NewString(""), nil
	}
	return value.NewString(string(s[start:end])), nil
}

func fnReplace(args []value.Value) (value.Value, error) {
	s := toStr(args[0])
	find := toStr(args[1])
	rep := toStr(args[2])
	return value.NewString(strings.ReplaceAll(s, find, rep)), nil
}

func fnContains(args []value.Value) (value.Value, error) {
	return value.NewBool(strings.Contains(toStr(args[0]), toStr(args[1]))), nil
}

func fnStartsWith(args []value.Value) (value.Value, error) {
	return value.NewBool(strings.HasPrefix(toStr(args[0]), toStr(args[1]))), nil
}

func fnEndsWith(args []value.Value) (value.Value, error) {
	return value.NewBool(strings.HasSuffix(toStr(args[0]), toStr(args[1]))), nil
}
