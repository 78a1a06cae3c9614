package resolver

import (
	"fmt"
	"strings"
)

const cssPunctuation = " !\"#$%&'()*+,./:;<=>?@[\\]^`{|}~"

// cssEscape makes a raw attribute value safe for use inside a CSS selector.
// Control characters and a leading digit get code-point escapes, a lone
// leading hyphen and the punctuation set get backslash escapes.
func cssEscape(value string) string {
	var b strings.Builder

	for i, r := range value {
		switch {
		case r <= 0x1f || r == 0x7f:
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 0 && r == '-' && len(value) == 1:
			b.WriteString("\\-")
		case strings.ContainsRune(cssPunctuation, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// escapeAttrValue escapes a value for the quoted part of an [attr="value"]
// selector.
func escapeAttrValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)

	return strings.ReplaceAll(value, `"`, `\"`)
}
