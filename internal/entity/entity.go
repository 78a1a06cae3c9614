package entity

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Steps     []PlanStep `json:"steps"`
	CreatedAt time.Time  `json:"created_at"`
}

type PlanStep struct {
	Index       int            `json:"index"`
	Type        StepType       `json:"type"`
	Description string         `json:"description"`
	Conditional bool           `json:"conditional"`
	Command     *CommandResult `json:"command,omitempty"`
}

type StepType string

const (
	StepTypeAct    StepType = "act"
	StepTypeAssert StepType = "assert"
	StepTypeGoto   StepType = "goto"
)

type CommandResult struct {
	Success bool            `json:"success"`
	Details *CommandDetails `json:"command_details,omitempty"`
}

// CommandDetails is the recorded outcome of one executed command. Act steps
// carry Method/XPath/Args, assert steps Method/XPath/Value, goto steps
// Method/URL/Args. Selector and SelectorKind are present only when a stable
// selector was already resolved for the step.
type CommandDetails struct {
	Method       string       `json:"method"`
	XPath        string       `json:"xpath,omitempty"`
	URL          string       `json:"url,omitempty"`
	Args         any          `json:"args,omitempty"`
	Value        any          `json:"value,omitempty"`
	Selector     string       `json:"selector,omitempty"`
	SelectorKind SelectorKind `json:"selector_type,omitempty"`
}

type SelectorKind string

const (
	SelectorKindTestID      SelectorKind = "test-id"
	SelectorKindRole        SelectorKind = "role"
	SelectorKindLabel       SelectorKind = "label"
	SelectorKindPlaceholder SelectorKind = "placeholder"
	SelectorKindAltText     SelectorKind = "alt-text"
	SelectorKindTitle       SelectorKind = "title"
	SelectorKindText        SelectorKind = "text"
	SelectorKindCSS         SelectorKind = "css"
	SelectorKindXPath       SelectorKind = "xpath"
)

// KindPreferenceOrder is the tie-break order used by the ranker, most
// durable kind first.
var KindPreferenceOrder = []SelectorKind{
	SelectorKindTestID,
	SelectorKindRole,
	SelectorKindLabel,
	SelectorKindPlaceholder,
	SelectorKindAltText,
	SelectorKindTitle,
	SelectorKindText,
	SelectorKindCSS,
	SelectorKindXPath,
}

func (k SelectorKind) PreferenceRank() int {
	for i, kind := range KindPreferenceOrder {
		if kind == k {
			return i
		}
	}

	return len(KindPreferenceOrder)
}

func (k SelectorKind) Valid() bool {
	for _, kind := range KindPreferenceOrder {
		if kind == k {
			return true
		}
	}

	return false
}

type Reliability string

const (
	ReliabilityHigh   Reliability = "high"
	ReliabilityMedium Reliability = "medium"
	ReliabilityLow    Reliability = "low"
)

func (r Reliability) Rank() int {
	switch r {
	case ReliabilityHigh:
		return 0
	case ReliabilityMedium:
		return 1
	case ReliabilityLow:
		return 2
	default:
		return 3
	}
}

type SelectorInfo struct {
	Selector    string       `json:"selector"`
	Kind        SelectorKind `json:"type"`
	Reliability Reliability  `json:"reliability"`
}

// XPathFallback is the terminal resolution outcome for a locator that could
// not be improved.
func XPathFallback(xpath string) SelectorInfo {
	return SelectorInfo{
		Selector:    xpath,
		Kind:        SelectorKindXPath,
		Reliability: ReliabilityLow,
	}
}

type TieBreakRequest struct {
	OriginalXPath     string            `json:"original_xpath"`
	Candidates        []SelectorInfo    `json:"candidates"`
	ElementHTML       string            `json:"element_html"`
	ElementAttributes map[string]string `json:"element_attributes"`
}

type TieBreakProposal struct {
	Kind        SelectorKind `json:"type"`
	Selector    string       `json:"selector"`
	Reliability Reliability  `json:"reliability"`
	Explanation string       `json:"explanation"`
}

type GenerationRun struct {
	ID        uuid.UUID
	PlanID    uuid.UUID
	Script    string
	Steps     int
	Resolved  int
	StartedAt time.Time
}
