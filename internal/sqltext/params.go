package sqltext

import (
	"regexp"
	"strconv"
	"strings"
)

// rePlaceholder matches a named parameter (:name). The optional second colon
// catches PostgreSQL type casts (value::int) so they can be left alone.
var rePlaceholder = regexp.MustCompile(`::?[A-Za-z_]\w*`)

// Placeholders returns the named parameters of a statement in order of
// first appearance, without the leading colon. Type casts (::int) are not
// parameters.
func Placeholders(statement string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range rePlaceholder.FindAllString(statement, -1) {
		if strings.HasPrefix(m, "::") {
			continue
		}
		name := m[1:]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// RebindDollar rewrites :name parameters to PostgreSQL ordinal placeholders
// ($1..$N). Repeated names share one ordinal. The returned list holds the
// parameter names in ordinal order.
func RebindDollar(statement string) (string, []string) {
	var names []string
	ordinals := make(map[string]int)
	rebound := rePlaceholder.ReplaceAllStringFunc(statement, func(m string) string {
		if strings.HasPrefix(m, "::") {
			return m
		}
		name := m[1:]
		n, ok := ordinals[name]
		if !ok {
			names = append(names, name)
			n = len(names)
			ordinals[name] = n
		}
		return "$" + strconv.Itoa(n)
	})
	return rebound, names
}

// RebindQuestion rewrites :name parameters to MySQL ? placeholders. Each
// occurrence needs its own argument, so the returned list holds one name
// per occurrence in statement order.
func RebindQuestion(statement string) (string, []string) {
	var names []string
	rebound := rePlaceholder.ReplaceAllStringFunc(statement, func(m string) string {
		if strings.HasPrefix(m, "::") {
			return m
		}
		names = append(names, m[1:])
		return "?"
	})
	return rebound, names
}
