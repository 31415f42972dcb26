package catalog

import "strings"

// Slug lowercases name, replaces every run of non-alphanumeric characters with a single '-'
// and trims leading and trailing separators. "Gamma.app" becomes "gamma-app".
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
