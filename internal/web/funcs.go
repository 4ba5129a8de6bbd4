package web

import (
	"html/template"
	"strings"
	"time"

	"github.com/jlsurveying/jls-web/internal/web/navigation"
)

const dateLayout = "January 2, 2006"

func templateFuncs() map[string]any {
	return map[string]any{
		"iterate": func(count int) []int {
			result := make([]int, count)
			for i := range result {
				result[i] = i
			}

			return result
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"publicMenu": navigation.PublicMenu,
		"adminMenu":  navigation.AdminMenu,
		"year": func() int {
			return time.Now().Year()
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}

			return t.Format(dateLayout)
		},
		"dateInput": func(t time.Time) string {
			return t.Format(time.DateOnly)
		},
		"truncate": truncate,
		"join":     strings.Join,
		// paragraphs splits text on blank lines for article bodies.
		"paragraphs": func(s string) []string {
			var out []string

			for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}

			return out
		},
		"messages": messages,
		"safeCSS": func(s string) template.CSS {
			return template.CSS(s) //nolint:gosec
		},
	}
}

// truncate shortens s to at most n runes, ending in an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return strings.TrimSpace(string(r[:n])) + "…"
}

// messages turns a flash value (string, []string or error) into lines.
func messages(v any) []string {
	switch m := v.(type) {
	case string:
		if m == "" {
			return nil
		}

		return []string{m}
	case []string:
		return m
	case error:
		return []string{m.Error()}
	default:
		return nil
	}
}
