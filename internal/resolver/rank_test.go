package resolver

import (
	"testing"

	"github.com/posiumhq/posium-codegen/internal/entity"
)

func TestRankOrdersByReliabilityThenKind(t *testing.T) {
	candidates := []entity.SelectorInfo{
		{Selector: "//div[1]", Kind: entity.SelectorKindXPath, Reliability: entity.ReliabilityLow},
		{Selector: "Welcome", Kind: entity.SelectorKindText, Reliability: entity.ReliabilityMedium},
		{Selector: "Search...", Kind: entity.SelectorKindPlaceholder, Reliability: entity.ReliabilityHigh},
		{Selector: "submit", Kind: entity.SelectorKindTestID, Reliability: entity.ReliabilityHigh},
		{Selector: "button|Go", Kind: entity.SelectorKindRole, Reliability: entity.ReliabilityHigh},
	}

	ranked := Rank(candidates)

	wantKinds := []entity.SelectorKind{
		entity.SelectorKindTestID,
		entity.SelectorKindRole,
		entity.SelectorKindPlaceholder,
		entity.SelectorKindText,
		entity.SelectorKindXPath,
	}

	for i, kind := range wantKinds {
		if ranked[i].Kind != kind {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].Kind, kind)
		}
	}
}

func TestRankTiesKeepDiscoveryOrder(t *testing.T) {
	candidates := []entity.SelectorInfo{
		{Selector: "button|Accessible name", Kind: entity.SelectorKindRole, Reliability: entity.ReliabilityHigh},
		{Selector: "button|Aria label", Kind: entity.SelectorKindRole, Reliability: entity.ReliabilityHigh},
	}

	ranked := Rank(candidates)

	if ranked[0].Selector != "button|Accessible name" || ranked[1].Selector != "button|Aria label" {
		t.Errorf("equal candidates must keep discovery order: %+v", ranked)
	}
}

func TestRankDoesNotModifyInput(t *testing.T) {
	candidates := []entity.SelectorInfo{
		{Selector: "//a", Kind: entity.SelectorKindXPath, Reliability: entity.ReliabilityLow},
		{Selector: "go", Kind: entity.SelectorKindTestID, Reliability: entity.ReliabilityHigh},
	}

	Rank(candidates)

	if candidates[0].Kind != entity.SelectorKindXPath {
		t.Errorf("input slice was reordered: %+v", candidates)
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("Rank(nil) = %+v, want empty", got)
	}
}
