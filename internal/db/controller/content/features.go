package content

import (
	"strings"

	"github.com/samber/lo"
)

// ParseFeatures splits a comma or newline separated list, dropping blanks.
func ParseFeatures(input string) []string {
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	return lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)

		return p, p != ""
	})
}

// JoinFeatures is the inverse of ParseFeatures for edit forms.
func JoinFeatures(features []string) string {
	return strings.Join(features, ", ")
}
