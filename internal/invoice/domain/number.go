package domain

import "strings"

// SupplierPrefix is the first six uppercase alphanumerics of the supplier
// name; suppliers whose names carry none fall back to "SUP".
func SupplierPrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 6 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "SUP"
	}
	return b.String()
}
