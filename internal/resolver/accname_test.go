package resolver

import (
	"context"
	"testing"
)

func TestAccessibleName(t *testing.T) {
	tests := []struct {
		name     string
		el       *fakeElement
		expected string
	}{
		{
			"aria-label wins over everything",
			&fakeElement{
				tag:       "button",
				text:      "X",
				attrs:     map[string]string{"aria-label": "Close dialog"},
				labelText: "ignored",
			},
			"Close dialog",
		},
		{
			"button text",
			&fakeElement{tag: "button", text: "  Sign up  "},
			"Sign up",
		},
		{
			"link text",
			&fakeElement{tag: "a", text: "Docs"},
			"Docs",
		},
		{
			"explicit role button uses text",
			&fakeElement{tag: "div", text: "Go", attrs: map[string]string{"role": "button"}},
			"Go",
		},
		{
			"submit input value",
			&fakeElement{tag: "input", inputValue: "Search", attrs: map[string]string{"type": "submit"}},
			"Search",
		},
		{
			"text input ignores value, uses label",
			&fakeElement{tag: "input", inputValue: "typed text", labelText: "Email", attrs: map[string]string{"type": "text"}},
			"Email",
		},
		{
			"image alt",
			&fakeElement{tag: "img", attrs: map[string]string{"alt": "Company logo"}},
			"Company logo",
		},
		{
			"aria-labelledby joins referenced texts",
			&fakeElement{
				tag:     "div",
				attrs:   map[string]string{"aria-labelledby": "billing name"},
				idTexts: map[string]string{"billing": "Billing", "name": "Name"},
			},
			"Billing Name",
		},
		{
			"aria-labelledby skips missing and empty ids",
			&fakeElement{
				tag:     "div",
				attrs:   map[string]string{"aria-labelledby": "gone title blank"},
				idTexts: map[string]string{"title": "Settings", "blank": "   "},
			},
			"Settings",
		},
		{
			"text content fallback",
			&fakeElement{tag: "span", text: " trailing space "},
			"trailing space",
		},
		{
			"nothing names the element",
			&fakeElement{tag: "div"},
			"",
		},
		{
			"blank aria-label falls through",
			&fakeElement{tag: "button", text: "Next", attrs: map[string]string{"aria-label": "   "}},
			"Next",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccessibleName(context.Background(), tt.el); got != tt.expected {
				t.Errorf("AccessibleName = %q, want %q", got, tt.expected)
			}
		})
	}
}
