package resolver

import (
	"context"
	"testing"

	"github.com/posiumhq/posium-codegen/internal/entity"

	"go.uber.org/zap"
)

func newTestGenerator() *Generator {
	logger := zap.NewNop()

	return NewGenerator(testResolverConfig(), logger, NewValidator(logger))
}

func TestGenerateDefinitiveOnUniqueTestID(t *testing.T) {
	page := &fakePage{
		elements: map[string]*fakeElement{
			"//a[1]": {tag: "a", attrs: map[string]string{"data-testid": "nav-home"}},
		},
		counts: map[string]int{
			countKey(entity.SelectorKindTestID, "nav-home"): 1,
		},
	}

	candidates, el, definitive := newTestGenerator().Generate(context.Background(), page, "//a[1]")

	if el == nil || !definitive {
		t.Fatalf("unique test-id must short-circuit, got definitive=%v", definitive)
	}

	if len(candidates) != 1 || candidates[0].Kind != entity.SelectorKindTestID {
		t.Errorf("unexpected candidates: %+v", candidates)
	}
}

func TestGenerateNonDedicatedTestAttributeIsCSS(t *testing.T) {
	page := &fakePage{
		elements: map[string]*fakeElement{
			"//a[1]": {tag: "a", attrs: map[string]string{"data-qa": "nav-home"}},
		},
		counts: map[string]int{
			countKey(entity.SelectorKindCSS, `[data-qa="nav-home"]`): 1,
		},
	}

	candidates, _, definitive := newTestGenerator().Generate(context.Background(), page, "//a[1]")

	if !definitive {
		t.Fatal("unique test attribute must short-circuit")
	}

	want := entity.SelectorInfo{
		Selector:    `[data-qa="nav-home"]`,
		Kind:        entity.SelectorKindCSS,
		Reliability: entity.ReliabilityHigh,
	}

	if candidates[0] != want {
		t.Errorf("candidate = %+v, want %+v", candidates[0], want)
	}
}

func TestGenerateNonUniqueTestIDKeptAsCandidate(t *testing.T) {
	page := &fakePage{
		elements: map[string]*fakeElement{
			"//li[2]/a": {tag: "a", text: "Pricing", attrs: map[string]string{"data-testid": "nav-item"}},
		},
		counts: map[string]int{
			countKey(entity.SelectorKindTestID, "nav-item"):   3,
			countKey(entity.SelectorKindRole, "link|Pricing"): 1,
		},
	}

	candidates, _, definitive := newTestGenerator().Generate(context.Background(), page, "//li[2]/a")

	if definitive {
		t.Fatal("ambiguous test-id must not short-circuit")
	}

	if candidates[0].Kind != entity.SelectorKindTestID {
		t.Errorf("ambiguous test-id is still the first discovered candidate: %+v", candidates)
	}

	var hasRole bool
	for _, c := range candidates {
		if c.Kind == entity.SelectorKindRole && c.Selector == "link|Pricing" {
			hasRole = true
		}
	}

	if !hasRole {
		t.Errorf("expected a role candidate alongside the ambiguous test-id: %+v", candidates)
	}
}

func TestGenerateAriaLabelYieldsSecondRoleCandidate(t *testing.T) {
	page := &fakePage{
		elements: map[string]*fakeElement{
			"//button[5]": {
				tag:   "button",
				text:  "X",
				attrs: map[string]string{"aria-label": "Close dialog"},
			},
		},
		counts: map[string]int{
			countKey(entity.SelectorKindRole, "button|Close dialog"): 1,
		},
	}

	candidates, _, _ := newTestGenerator().Generate(context.Background(), page, "//button[5]")

	var roleCount int
	for _, c := range candidates {
		if c.Kind == entity.SelectorKindRole {
			roleCount++

			if c.Selector != "button|Close dialog" {
				t.Errorf("unexpected role selector %q", c.Selector)
			}
		}
	}

	// The accessible name resolves to the aria-label, so the name-derived
	// and the label-derived candidates coincide and both are kept.
	if roleCount != 2 {
		t.Errorf("expected two role candidates, got %d in %+v", roleCount, candidates)
	}
}

func TestGenerateTextLengthBounds(t *testing.T) {
	long := make([]byte, 120)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name     string
		text     string
		unique   bool
		expected bool
	}{
		{"normal text", "Welcome back", true, true},
		{"too long", string(long), true, false},
		{"empty", "", true, false},
		{"not unique", "Home", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := map[string]int{}
			if tt.unique {
				counts[countKey(entity.SelectorKindText, tt.text)] = 1
			}

			page := &fakePage{
				elements: map[string]*fakeElement{"//p[1]": {tag: "p", text: tt.text}},
				counts:   counts,
			}

			candidates, _, _ := newTestGenerator().Generate(context.Background(), page, "//p[1]")

			var found bool
			for _, c := range candidates {
				if c.Kind == entity.SelectorKindText {
					found = true
				}
			}

			if found != tt.expected {
				t.Errorf("text candidate present = %v, want %v (%+v)", found, tt.expected, candidates)
			}
		})
	}
}

func TestGenerateIDCandidateUsesEscapedCSS(t *testing.T) {
	page := &fakePage{
		elements: map[string]*fakeElement{
			"//div[1]": {tag: "div", attrs: map[string]string{"id": "main.panel"}},
		},
		counts: map[string]int{
			countKey(entity.SelectorKindCSS, `#main\.panel`): 1,
		},
	}

	candidates, _, _ := newTestGenerator().Generate(context.Background(), page, "//div[1]")

	want := entity.SelectorInfo{
		Selector:    `#main\.panel`,
		Kind:        entity.SelectorKindCSS,
		Reliability: entity.ReliabilityHigh,
	}

	var found bool
	for _, c := range candidates {
		if c == want {
			found = true
		}
	}

	if !found {
		t.Errorf("expected escaped id candidate %+v in %+v", want, candidates)
	}
}

func TestGenerateAlwaysEndsWithXPathFallback(t *testing.T) {
	page := &fakePage{
		elements: map[string]*fakeElement{
			"//span[9]": {tag: "span", text: "hi"},
		},
		counts: map[string]int{
			countKey(entity.SelectorKindText, "hi"): 1,
		},
	}

	candidates, _, definitive := newTestGenerator().Generate(context.Background(), page, "//span[9]")

	if definitive {
		t.Fatal("text tier never short-circuits")
	}

	last := candidates[len(candidates)-1]
	if last != entity.XPathFallback("//span[9]") {
		t.Errorf("candidate list must end with the xpath fallback, got %+v", last)
	}
}
