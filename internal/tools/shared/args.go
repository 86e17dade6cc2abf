package shared

// StringArg extracts a string argument.
func StringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok && v != ""
}

// StringArgAny returns the first present string among the given keys.
func StringArgAny(args map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := StringArg(args, key); ok {
			return v, true
		}
	}
	return "", false
}

// MapArg extracts a nested object argument.
func MapArg(args map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, ok := args[key].(map[string]interface{})
	return v, ok
}

// MapArgAny returns the first present object among the given keys.
func MapArgAny(args map[string]interface{}, keys ...string) (map[string]interface{}, bool) {
	for _, key := range keys {
		if v, ok := MapArg(args, key); ok {
			return v, true
		}
	}
	return nil, false
}

// IntArg extracts a numeric argument, defaulting when absent.
// JSON numbers arrive as float64.
func IntArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// FloatArg extracts a float argument, defaulting when absent.
func FloatArg(args map[string]interface{}, key string, def float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}
