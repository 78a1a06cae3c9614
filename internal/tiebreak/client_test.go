package tiebreak

import (
	"strings"
	"testing"

	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/entity"

	"go.uber.org/zap"
)

func TestNewTieBreakerDisabled(t *testing.T) {
	tests := []struct {
		name string
		ai   *config.AIConfig
	}{
		{"disabled", &config.AIConfig{Enabled: false, APIKey: "sk-test"}},
		{"no key", &config.AIConfig{Enabled: true, APIKey: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := NewTieBreaker(Params{
				Config: &config.Config{AIConfig: tt.ai},
				Logger: zap.NewNop(),
			})

			if tb != nil {
				t.Errorf("expected nil tie-breaker, got %T", tb)
			}
		})
	}
}

func TestNewTieBreakerEnabled(t *testing.T) {
	tb := NewTieBreaker(Params{
		Config: &config.Config{AIConfig: &config.AIConfig{Enabled: true, APIKey: "sk-test"}},
		Logger: zap.NewNop(),
	})

	if tb == nil {
		t.Fatal("expected a configured client")
	}
}

func textResponse(text string) *claudeResponse {
	return &claudeResponse{
		Content: []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		}{
			{Type: "text", Text: text},
		},
	}
}

func TestParseProposal(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain json", `{"type": "css", "selector": "#main", "reliability": "medium", "explanation": "stable id"}`},
		{"fenced json", "```json\n{\"type\": \"css\", \"selector\": \"#main\", \"reliability\": \"medium\"}\n```"},
		{"bare fence", "```\n{\"type\": \"css\", \"selector\": \"#main\", \"reliability\": \"medium\"}\n```"},
		{"surrounding whitespace", "  \n{\"type\": \"css\", \"selector\": \"#main\", \"reliability\": \"medium\"}\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposal, err := parseProposal(textResponse(tt.text))
			if err != nil {
				t.Fatalf("parseProposal: %v", err)
			}

			if proposal.Kind != entity.SelectorKindCSS || proposal.Selector != "#main" {
				t.Errorf("unexpected proposal: %+v", proposal)
			}
		})
	}
}

func TestParseProposalRejects(t *testing.T) {
	tests := []struct {
		name string
		resp *claudeResponse
	}{
		{"empty response", &claudeResponse{}},
		{"not json", textResponse("I would pick the css selector.")},
		{"unknown kind", textResponse(`{"type": "jquery", "selector": "#main"}`)},
		{"empty selector", textResponse(`{"type": "css", "selector": ""}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseProposal(tt.resp); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBuildPromptIncludesElementData(t *testing.T) {
	prompt, err := buildPrompt(&entity.TieBreakRequest{
		OriginalXPath: "//button[2]",
		Candidates: []entity.SelectorInfo{
			{Selector: "button|Sign up", Kind: entity.SelectorKindRole, Reliability: entity.ReliabilityHigh},
		},
		ElementHTML:       `<button class="btn">Sign up</button>`,
		ElementAttributes: map[string]string{"class": "btn"},
	})
	if err != nil {
		t.Fatalf("buildPrompt: %v", err)
	}

	for _, want := range []string{
		"//button[2]",
		`<button class="btn">Sign up</button>`,
		"button|Sign up",
		`"reliability": "high"`,
		"JSON only",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
