package codegen

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var variableMarker = regexp.MustCompile(`^\{\{\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\}\}$`)

// VariableName extracts the identifier from a {{name}} marker.
func VariableName(s string) (string, bool) {
	m := variableMarker.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// FormatArg renders a recorded run-time value as a TypeScript literal. A
// {{name}}-wrapped string becomes a bare identifier reference, a one-element
// array collapses to its element, objects render with unquoted keys sorted
// for deterministic output.
func FormatArg(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		if name, ok := VariableName(v); ok {
			return name
		}

		return quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []any:
		return formatArray(v)
	case []string:
		arr := make([]any, len(v))
		for i, s := range v {
			arr[i] = s
		}

		return formatArray(arr)
	case map[string]any:
		return formatObject(v)
	default:
		return quote(fmt.Sprintf("%v", v))
	}
}

// FormatCallArgs renders a value as the argument list of a method call. An
// array spreads into comma-separated arguments instead of a single array
// literal; nil renders as no arguments.
func FormatCallArgs(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = FormatArg(item)
		}

		return strings.Join(parts, ", ")
	default:
		return FormatArg(value)
	}
}

func formatArray(values []any) string {
	if len(values) == 0 {
		return "[]"
	}

	if len(values) == 1 {
		return FormatArg(values[0])
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatArg(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func formatObject(obj map[string]any) string {
	if len(obj) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + FormatArg(obj[k])
	}

	return "{ " + strings.Join(parts, ", ") + " }"
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)

	return "'" + s + "'"
}
