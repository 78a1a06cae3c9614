package entity

import (
	"encoding/json"
	"testing"
)

func TestKindPreferenceRank(t *testing.T) {
	if SelectorKindTestID.PreferenceRank() != 0 {
		t.Error("test-id must be the most preferred kind")
	}

	if SelectorKindXPath.PreferenceRank() != len(KindPreferenceOrder)-1 {
		t.Error("xpath must be the least preferred known kind")
	}

	if SelectorKind("bogus").PreferenceRank() != len(KindPreferenceOrder) {
		t.Error("unknown kinds rank after every known kind")
	}

	for i := 1; i < len(KindPreferenceOrder); i++ {
		if KindPreferenceOrder[i-1].PreferenceRank() >= KindPreferenceOrder[i].PreferenceRank() {
			t.Fatalf("preference order not strictly increasing at %d", i)
		}
	}
}

func TestKindValid(t *testing.T) {
	for _, kind := range KindPreferenceOrder {
		if !kind.Valid() {
			t.Errorf("%s must be valid", kind)
		}
	}

	if SelectorKind("jquery").Valid() {
		t.Error("unknown kind must be invalid")
	}

	if SelectorKind("").Valid() {
		t.Error("empty kind must be invalid")
	}
}

func TestReliabilityRank(t *testing.T) {
	if ReliabilityHigh.Rank() >= ReliabilityMedium.Rank() || ReliabilityMedium.Rank() >= ReliabilityLow.Rank() {
		t.Error("reliability ranks must increase from high to low")
	}

	if Reliability("unknown").Rank() <= ReliabilityLow.Rank() {
		t.Error("unknown reliability ranks after low")
	}
}

func TestXPathFallback(t *testing.T) {
	info := XPathFallback("//div[1]")

	if info.Selector != "//div[1]" || info.Kind != SelectorKindXPath || info.Reliability != ReliabilityLow {
		t.Errorf("unexpected fallback: %+v", info)
	}
}

func TestCommandDetailsJSONTags(t *testing.T) {
	raw := `{
		"method": "click",
		"xpath": "//button[1]",
		"selector": "save",
		"selector_type": "test-id"
	}`

	var details CommandDetails

	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		t.Fatal(err)
	}

	if details.SelectorKind != SelectorKindTestID {
		t.Errorf("selector_type not decoded: %+v", details)
	}

	out, err := json.Marshal(details)
	if err != nil {
		t.Fatal(err)
	}

	if string(out) != `{"method":"click","xpath":"//button[1]","selector":"save","selector_type":"test-id"}` {
		t.Errorf("unexpected round trip: %s", out)
	}
}
