package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/entity"
	"github.com/posiumhq/posium-codegen/internal/ports"
	"github.com/posiumhq/posium-codegen/pkg/logg"

	"go.uber.org/zap"
)

const (
	generatorName  = "CandidateGenerator"
	dedicatedAttr  = "data-testid"
	labelTagInput  = "input"
	labelTagSelect = "select"
	labelTagArea   = "textarea"
)

// Generator inspects one DOM element and produces typed selector candidates
// in discovery order.
type Generator struct {
	config    *config.ResolverConfig
	logger    *zap.Logger
	validator *Validator
}

func NewGenerator(conf *config.ResolverConfig, logger *zap.Logger, validator *Validator) *Generator {
	return &Generator{
		config:    conf,
		logger:    logger.With(zap.String(logg.Layer, generatorName)),
		validator: validator,
	}
}

// Generate walks the candidate tiers for the element the xpath addresses.
// The returned element is nil when the xpath no longer resolves; definitive
// means a tier short-circuited on an immediately unique, high-reliability
// candidate and the list holds exactly that winner.
func (g *Generator) Generate(ctx context.Context, page ports.PageProbe, xpath string) (candidates []entity.SelectorInfo, el ports.Element, definitive bool) {
	logger := g.logger.With(zap.String(logg.XPath, xpath))

	el, err := page.ResolveXPath(ctx, xpath, float64(g.config.OriginalWaitMs))
	if err != nil {
		logger.Debug("Original xpath no longer resolves", zap.Error(err))

		return []entity.SelectorInfo{entity.XPathFallback(xpath)}, nil, false
	}

	attrs, err := el.Attributes(ctx)
	if err != nil {
		attrs = map[string]string{}
	}

	tag, _ := el.Tag(ctx)
	tag = strings.ToLower(tag)

	if cand, ok := g.testAttributeCandidate(attrs); ok {
		if g.validator.IsUnique(ctx, page, cand.Kind, cand.Selector) {
			return []entity.SelectorInfo{cand}, el, true
		}

		candidates = append(candidates, cand)
	}

	if tag == labelTagInput || tag == labelTagSelect || tag == labelTagArea {
		if label, err := el.AssociatedLabelText(ctx); err == nil {
			if label = strings.TrimSpace(label); label != "" &&
				g.validator.IsUnique(ctx, page, entity.SelectorKindLabel, label) {
				return []entity.SelectorInfo{{
					Selector:    label,
					Kind:        entity.SelectorKindLabel,
					Reliability: entity.ReliabilityHigh,
				}}, el, true
			}
		}
	}

	candidates = append(candidates, g.roleCandidates(ctx, page, el, tag, attrs)...)

	if text, err := el.Text(ctx); err == nil {
		text = strings.TrimSpace(text)
		if len(text) >= 1 && len(text) <= g.config.MaxTextLength &&
			g.validator.IsUnique(ctx, page, entity.SelectorKindText, text) {
			candidates = append(candidates, entity.SelectorInfo{
				Selector:    text,
				Kind:        entity.SelectorKindText,
				Reliability: entity.ReliabilityMedium,
			})
		}
	}

	for _, tier := range []struct {
		attr string
		kind entity.SelectorKind
	}{
		{"placeholder", entity.SelectorKindPlaceholder},
		{"alt", entity.SelectorKindAltText},
		{"title", entity.SelectorKindTitle},
	} {
		if value := attrs[tier.attr]; value != "" && g.validator.IsUnique(ctx, page, tier.kind, value) {
			candidates = append(candidates, entity.SelectorInfo{
				Selector:    value,
				Kind:        tier.kind,
				Reliability: entity.ReliabilityHigh,
			})
		}
	}

	candidates = append(candidates, g.cssAttributeCandidates(ctx, page, attrs)...)

	candidates = append(candidates, entity.XPathFallback(xpath))

	return candidates, el, false
}

func (g *Generator) testAttributeCandidate(attrs map[string]string) (entity.SelectorInfo, bool) {
	for _, attr := range g.config.TestAttributes {
		value := attrs[attr]
		if value == "" {
			continue
		}

		if attr == dedicatedAttr {
			return entity.SelectorInfo{
				Selector:    value,
				Kind:        entity.SelectorKindTestID,
				Reliability: entity.ReliabilityHigh,
			}, true
		}

		return entity.SelectorInfo{
			Selector:    fmt.Sprintf(`[%s="%s"]`, attr, escapeAttrValue(value)),
			Kind:        entity.SelectorKindCSS,
			Reliability: entity.ReliabilityHigh,
		}, true
	}

	return entity.SelectorInfo{}, false
}

func (g *Generator) roleCandidates(ctx context.Context, page ports.PageProbe, el ports.Element, tag string, attrs map[string]string) []entity.SelectorInfo {
	role := inferRole(tag, attrs["type"], attrs["role"])
	if role == "" {
		return nil
	}

	var candidates []entity.SelectorInfo

	name := AccessibleName(ctx, el)

	selector := role
	reliability := entity.ReliabilityMedium

	if name != "" {
		selector = role + "|" + name
		reliability = entity.ReliabilityHigh
	}

	if g.validator.IsUnique(ctx, page, entity.SelectorKindRole, selector) {
		candidates = append(candidates, entity.SelectorInfo{
			Selector:    selector,
			Kind:        entity.SelectorKindRole,
			Reliability: reliability,
		})
	}

	// A present aria-label yields its own candidate even when it coincides
	// with the accessible name; the ranker keeps discovery order.
	if ariaLabel := attrs["aria-label"]; ariaLabel != "" {
		labelled := role + "|" + ariaLabel
		if g.validator.IsUnique(ctx, page, entity.SelectorKindRole, labelled) {
			candidates = append(candidates, entity.SelectorInfo{
				Selector:    labelled,
				Kind:        entity.SelectorKindRole,
				Reliability: entity.ReliabilityHigh,
			})
		}
	}

	return candidates
}

func (g *Generator) cssAttributeCandidates(ctx context.Context, page ports.PageProbe, attrs map[string]string) []entity.SelectorInfo {
	var candidates []entity.SelectorInfo

	for _, attr := range g.config.CSSAttributes {
		value := attrs[attr]
		if value == "" {
			continue
		}

		var selector string
		if attr == "id" {
			selector = "#" + cssEscape(value)
		} else {
			selector = fmt.Sprintf(`[%s="%s"]`, attr, escapeAttrValue(value))
		}

		if !g.validator.IsUnique(ctx, page, entity.SelectorKindCSS, selector) {
			continue
		}

		reliability := entity.ReliabilityMedium
		if attr == "id" || g.isTestAttribute(attr) {
			reliability = entity.ReliabilityHigh
		}

		candidates = append(candidates, entity.SelectorInfo{
			Selector:    selector,
			Kind:        entity.SelectorKindCSS,
			Reliability: reliability,
		})
	}

	return candidates
}

func (g *Generator) isTestAttribute(attr string) bool {
	for _, a := range g.config.TestAttributes {
		if a == attr {
			return true
		}
	}

	return false
}
