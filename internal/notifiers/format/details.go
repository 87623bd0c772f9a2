package format

import "strings"

// DetailsList turns "a; b" into a markdown bullet list.
func DetailsList(details string) string {
	if strings.TrimSpace(details) == "" {
		return "n/a"
	}
	var out []string
	for _, p := range strings.Split(details, ";") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, "- "+p)
	}
	if len(out) == 0 {
		return "n/a"
	}
	return strings.Join(out, "\n")
}
