package resolver

import (
	"context"
	"strings"

	"github.com/posiumhq/posium-codegen/internal/ports"
)

// AccessibleName computes the human-equivalent name of an element the way
// assistive technology would. Probe errors at any step are treated as "no
// value there" and the chain continues; the result is empty when nothing
// names the element.
func AccessibleName(ctx context.Context, el ports.Element) string {
	if label, ok, err := el.Attribute(ctx, "aria-label"); err == nil && ok && strings.TrimSpace(label) != "" {
		return strings.TrimSpace(label)
	}

	tag, err := el.Tag(ctx)
	if err != nil {
		return ""
	}

	role, _, _ := el.Attribute(ctx, "role")

	if tag == "button" || tag == "a" || role == "button" || role == "link" {
		if text, err := el.Text(ctx); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}

	if tag == "input" {
		if typ, _, _ := el.Attribute(ctx, "type"); typ == "button" || typ == "submit" || typ == "reset" {
			if value, err := el.InputValue(ctx); err == nil && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
	}

	if label, err := el.AssociatedLabelText(ctx); err == nil && strings.TrimSpace(label) != "" {
		return strings.TrimSpace(label)
	}

	if tag == "img" {
		if alt, ok, err := el.Attribute(ctx, "alt"); err == nil && ok && strings.TrimSpace(alt) != "" {
			return strings.TrimSpace(alt)
		}
	}

	if name := labelledByName(ctx, el); name != "" {
		return name
	}

	if text, err := el.Text(ctx); err == nil {
		return strings.TrimSpace(text)
	}

	return ""
}

func labelledByName(ctx context.Context, el ports.Element) string {
	ids, ok, err := el.Attribute(ctx, "aria-labelledby")
	if err != nil || !ok {
		return ""
	}

	parts := make([]string, 0, 2)

	for _, id := range strings.Fields(ids) {
		text, err := el.TextByID(ctx, id)
		if err != nil {
			continue
		}

		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}
