package repositorycache

import (
	"strings"
	"unicode"
)

// namespaceFor turns a kind name such as "Product" or "OrderLine" into the
// cache namespace "product" / "order_line". Anything that is not a letter or
// digit collapses into a single underscore so the namespace is safe for
// prefix scans on every backend.
func namespaceFor(name string) string {
	runes := []rune(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	underscore := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
			b.WriteByte('_')
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					underscore()
				}
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			underscore()
		}
	}

	return strings.Trim(b.String(), "_")
}
