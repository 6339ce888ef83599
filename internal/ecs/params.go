package ecs

// Positional parameter helpers. A missing or nil parameter falls back to the
// default, the same way CreateComponent callers omit trailing arguments.
// Numbers decoded from YAML or TOML may arrive as int, int64 or float64.

func param(params []any, i int) (any, bool) {
	if i < 0 || i >= len(params) || params[i] == nil {
		return nil, false
	}
	return params[i], true
}

// IntParam returns params[i] as an int, or def.
func IntParam(params []any, i, def int) int {
	v, ok := param(params, i)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}
	return def
}

// FloatParam returns params[i] as a float64, or def.
func FloatParam(params []any, i int, def float64) float64 {
	v, ok := param(params, i)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

// StringParam returns params[i] as a string, or def.
func StringParam(params []any, i int, def string) string {
	v, ok := param(params, i)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// BoolParam returns params[i] as a bool, or def.
func BoolParam(params []any, i int, def bool) bool {
	v, ok := param(params, i)
	if !ok {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}
