package bitattr

import (
	"strings"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// isBlank matches empty and whitespace-only strings; such values are
// silently dropped from encode input.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func rpad(s string, n int, pad rune) string {
	rem := n - len(s)
	if rem <= 0 {
		return s
	}
	return s + strings.Repeat(string(pad), rem)
}
