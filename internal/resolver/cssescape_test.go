package resolver

import "testing"

func TestCSSEscape(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain identifier", "main-panel", "main-panel"},
		{"dot", "main.panel", `main\.panel`},
		{"colon and brackets", "a:b[c]", `a\:b\[c\]`},
		{"leading digit", "1abc", `\31 abc`},
		{"interior digit", "a1b", "a1b"},
		{"lone hyphen", "-", `\-`},
		{"hyphen prefix", "-main", "-main"},
		{"space", "two words", `two\ words`},
		{"control character", "a\tb", `a\9 b`},
		{"unicode untouched", "bücher", "bücher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cssEscape(tt.in); got != tt.expected {
				t.Errorf("cssEscape(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestEscapeAttrValue(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{`both\"`, `both\\\"`},
	}

	for _, tt := range tests {
		if got := escapeAttrValue(tt.in); got != tt.expected {
			t.Errorf("escapeAttrValue(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestInferRole(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		typeAttr string
		roleAttr string
		expected string
	}{
		{"explicit role wins", "div", "", "navigation", "navigation"},
		{"button tag", "button", "", "", "button"},
		{"anchor", "a", "", "", "link"},
		{"checkbox input", "input", "checkbox", "", "checkbox"},
		{"radio input", "input", "radio", "", "radio"},
		{"submit input", "input", "submit", "", "button"},
		{"text input", "input", "text", "", "textbox"},
		{"typeless input", "input", "", "", "textbox"},
		{"select", "select", "", "", "combobox"},
		{"textarea", "textarea", "", "", "textbox"},
		{"image", "img", "", "", "img"},
		{"heading", "h2", "", "", "heading"},
		{"plain div", "div", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferRole(tt.tag, tt.typeAttr, tt.roleAttr); got != tt.expected {
				t.Errorf("inferRole(%q, %q, %q) = %q, want %q", tt.tag, tt.typeAttr, tt.roleAttr, got, tt.expected)
			}
		})
	}
}
