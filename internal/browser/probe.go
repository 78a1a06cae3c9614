package browser

import (
	"context"
	"strings"

	"github.com/posiumhq/posium-codegen/internal/entity"
	"github.com/posiumhq/posium-codegen/internal/ports"
	"github.com/posiumhq/posium-codegen/pkg/apperr"

	"github.com/playwright-community/playwright-go"
)

// Probe implements the live-page capability over the manager's current
// page. Every query runs against the kind's native Playwright locator.
type Probe struct {
	manager *Manager
}

func (p *Probe) ResolveXPath(ctx context.Context, xpath string, timeoutMs float64) (ports.Element, error) {
	const op = "ResolveXPath"

	if err := p.manager.ensurePageActive(ctx); err != nil {
		return nil, err
	}

	locator := p.manager.page.Locator("xpath=" + xpath).First()

	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeLocatorInvalid, err, map[string]any{
			apperr.MetaReason: "xpath_not_attached",
			apperr.MetaStage:  apperr.StageResolution,
			apperr.MetaXPath:  xpath,
		})
	}

	return &element{locator: locator}, nil
}

func (p *Probe) Count(ctx context.Context, kind entity.SelectorKind, selector string) (int, error) {
	const op = "Count"

	if err := p.manager.ensurePageActive(ctx); err != nil {
		return 0, err
	}

	locator, err := p.locatorFor(kind, selector)
	if err != nil {
		return 0, err
	}

	count, err := locator.Count()
	if err != nil {
		return 0, apperr.Wrap(op, apperr.CodeQueryError, err, map[string]any{
			apperr.MetaReason:   "count_failed",
			apperr.MetaStage:    apperr.StageResolution,
			apperr.MetaSelector: selector,
		})
	}

	return count, nil
}

func (p *Probe) locatorFor(kind entity.SelectorKind, selector string) (playwright.Locator, error) {
	page := p.manager.page

	switch kind {
	case entity.SelectorKindTestID:
		return page.GetByTestId(selector), nil
	case entity.SelectorKindRole:
		role, name, _ := strings.Cut(selector, "|")
		if name != "" {
			return page.GetByRole(playwright.AriaRole(role), playwright.PageGetByRoleOptions{
				Name:  name,
				Exact: playwright.Bool(true),
			}), nil
		}

		return page.GetByRole(playwright.AriaRole(role)), nil
	case entity.SelectorKindLabel:
		return page.GetByLabel(selector, playwright.PageGetByLabelOptions{Exact: playwright.Bool(true)}), nil
	case entity.SelectorKindPlaceholder:
		return page.GetByPlaceholder(selector, playwright.PageGetByPlaceholderOptions{Exact: playwright.Bool(true)}), nil
	case entity.SelectorKindAltText:
		return page.GetByAltText(selector, playwright.PageGetByAltTextOptions{Exact: playwright.Bool(true)}), nil
	case entity.SelectorKindTitle:
		return page.GetByTitle(selector, playwright.PageGetByTitleOptions{Exact: playwright.Bool(true)}), nil
	case entity.SelectorKindText:
		return page.GetByText(selector, playwright.PageGetByTextOptions{Exact: playwright.Bool(true)}), nil
	case entity.SelectorKindCSS:
		return page.Locator(selector), nil
	case entity.SelectorKindXPath:
		return page.Locator("xpath=" + selector), nil
	default:
		return nil, apperr.WrapErrorWithReason("locatorFor", apperr.CodeQueryError, "unsupported_selector_kind")
	}
}

type element struct {
	locator playwright.Locator
}

func (e *element) Tag(ctx context.Context) (string, error) {
	result, err := e.locator.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return "", err
	}

	tag, _ := result.(string)

	return tag, nil
}

func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	result, err := e.locator.Evaluate("(el, name) => el.getAttribute(name)", name)
	if err != nil {
		return "", false, err
	}

	value, ok := result.(string)
	if !ok {
		return "", false, nil
	}

	return value, true, nil
}

func (e *element) Attributes(ctx context.Context) (map[string]string, error) {
	result, err := e.locator.Evaluate(attributesScript(), nil)
	if err != nil {
		return nil, err
	}

	raw, ok := result.(map[string]interface{})
	if !ok {
		return map[string]string{}, nil
	}

	attrs := make(map[string]string, len(raw))

	for k, v := range raw {
		if s, ok := v.(string); ok {
			attrs[k] = s
		}
	}

	return attrs, nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.locator.InnerText()
}

func (e *element) InputValue(ctx context.Context) (string, error) {
	return e.locator.InputValue()
}

func (e *element) AssociatedLabelText(ctx context.Context) (string, error) {
	result, err := e.locator.Evaluate(associatedLabelScript(), nil)
	if err != nil {
		return "", err
	}

	label, _ := result.(string)

	return label, nil
}

func (e *element) TextByID(ctx context.Context, id string) (string, error) {
	result, err := e.locator.Evaluate(textByIDScript(), id)
	if err != nil {
		return "", err
	}

	text, _ := result.(string)

	return text, nil
}

func (e *element) OuterHTML(ctx context.Context) (string, error) {
	result, err := e.locator.Evaluate("el => el.outerHTML", nil)
	if err != nil {
		return "", err
	}

	html, _ := result.(string)

	return html, nil
}
