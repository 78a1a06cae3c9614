package resolver

// inferRole derives the explicit or implicit ARIA role of an element from
// its tag, type attribute and role attribute. Empty means no role applies.
func inferRole(tag, typeAttr, roleAttr string) string {
	if roleAttr != "" {
		return roleAttr
	}

	switch tag {
	case "button":
		return "button"
	case "a":
		return "link"
	case "input":
		switch typeAttr {
		case "checkbox":
			return "checkbox"
		case "radio":
			return "radio"
		case "button", "submit", "reset":
			return "button"
		default:
			return "textbox"
		}
	case "select":
		return "combobox"
	case "textarea":
		return "textbox"
	case "img":
		return "img"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "heading"
	default:
		return ""
	}
}
