package codegen

import (
	"testing"
)

func TestFormatArg(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{
			name:     "variable marker renders as bare identifier",
			value:    "{{query}}",
			expected: "query",
		},
		{
			name:     "variable marker with spaces",
			value:    "{{ userEmail }}",
			expected: "userEmail",
		},
		{
			name:     "plain string is quoted",
			value:    "hello",
			expected: "'hello'",
		},
		{
			name:     "internal quote is escaped",
			value:    "it's fine",
			expected: `'it\'s fine'`,
		},
		{
			name:     "partial marker is still a string",
			value:    "{{query}} extra",
			expected: "'{{query}} extra'",
		},
		{
			name:     "nil renders null",
			value:    nil,
			expected: "null",
		},
		{
			name:     "bool renders literal",
			value:    true,
			expected: "true",
		},
		{
			name:     "integral float renders without fraction",
			value:    float64(3),
			expected: "3",
		},
		{
			name:     "fractional float keeps fraction",
			value:    3.5,
			expected: "3.5",
		},
		{
			name:     "int renders literal",
			value:    42,
			expected: "42",
		},
		{
			name:     "empty array",
			value:    []any{},
			expected: "[]",
		},
		{
			name:     "one-element array collapses",
			value:    []any{"opt-a"},
			expected: "'opt-a'",
		},
		{
			name:     "multi-element array is bracketed",
			value:    []any{"a", "b"},
			expected: "['a', 'b']",
		},
		{
			name:     "nested one-element array collapses recursively",
			value:    []any{[]any{"x"}},
			expected: "'x'",
		},
		{
			name:     "object renders unquoted sorted keys",
			value:    map[string]any{"b": "x", "a": float64(1)},
			expected: "{ a: 1, b: 'x' }",
		},
		{
			name:     "variable marker inside array",
			value:    []any{"{{user}}", "literal"},
			expected: "[user, 'literal']",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatArg(tt.value)
			if got != tt.expected {
				t.Errorf("FormatArg(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestFormatArgOneElementArrayMatchesElement(t *testing.T) {
	values := []any{"text", float64(7), true, "{{token}}"}

	for _, v := range values {
		single := FormatArg([]any{v})
		alone := FormatArg(v)

		if single != alone {
			t.Errorf("FormatArg([%v]) = %q, want same as FormatArg(%v) = %q", v, single, v, alone)
		}
	}
}

func TestVariableNameRoundTrip(t *testing.T) {
	name, ok := VariableName("{{var}}")
	if !ok {
		t.Fatalf("expected {{var}} to be recognized as a variable marker")
	}

	if name != "var" {
		t.Errorf("VariableName({{var}}) = %q, want %q", name, "var")
	}

	if FormatArg("{{var}}") != "var" {
		t.Errorf("formatting a marker must emit the bare identifier")
	}

	if _, ok := VariableName("var"); ok {
		t.Errorf("bare string must not be treated as a marker")
	}
}

func TestFormatCallArgs(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil yields no arguments", nil, ""},
		{"scalar is a single argument", "Enter", "'Enter'"},
		{"array spreads into arguments", []any{"a", float64(2)}, "'a', 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCallArgs(tt.value); got != tt.expected {
				t.Errorf("FormatCallArgs(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}
