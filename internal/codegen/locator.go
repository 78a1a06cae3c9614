package codegen

import (
	"fmt"
	"strings"

	"github.com/posiumhq/posium-codegen/internal/entity"
)

// LocatorExpr renders a resolved selector as a Playwright locator
// expression rooted at the page.
func LocatorExpr(info entity.SelectorInfo) string {
	switch info.Kind {
	case entity.SelectorKindTestID:
		return fmt.Sprintf("page.getByTestId(%s)", quote(info.Selector))
	case entity.SelectorKindRole:
		role, name, found := strings.Cut(info.Selector, "|")
		if found && name != "" {
			return fmt.Sprintf("page.getByRole(%s, { name: %s })", quote(role), quote(name))
		}

		return fmt.Sprintf("page.getByRole(%s)", quote(role))
	case entity.SelectorKindLabel:
		return fmt.Sprintf("page.getByLabel(%s)", quote(info.Selector))
	case entity.SelectorKindPlaceholder:
		return fmt.Sprintf("page.getByPlaceholder(%s)", quote(info.Selector))
	case entity.SelectorKindAltText:
		return fmt.Sprintf("page.getByAltText(%s)", quote(info.Selector))
	case entity.SelectorKindTitle:
		return fmt.Sprintf("page.getByTitle(%s)", quote(info.Selector))
	case entity.SelectorKindText:
		return fmt.Sprintf("page.getByText(%s)", quote(info.Selector))
	case entity.SelectorKindCSS:
		return fmt.Sprintf("page.locator(%s)", quote(info.Selector))
	case entity.SelectorKindXPath:
		return XPathLocatorExpr(info.Selector)
	default:
		return XPathLocatorExpr(info.Selector)
	}
}

// XPathLocatorExpr renders the raw-xpath fallback locator.
func XPathLocatorExpr(xpath string) string {
	return fmt.Sprintf("page.locator(%s)", quote("xpath="+xpath))
}
