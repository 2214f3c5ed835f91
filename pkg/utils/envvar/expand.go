// Package envvar expands environment placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${NAME} and ${NAME:-fallback}. A bare $NAME is left alone so
// that URLs and tokens containing a dollar sign survive expansion.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// Expand replaces placeholders with the value of the named environment
// variable. An unset or empty variable yields the fallback, or "" without one.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)

		if resolved := os.Getenv(groups[1]); resolved != "" {
			return resolved
		}

		return groups[2]
	})
}

// HasPlaceholder reports whether value contains at least one placeholder.
func HasPlaceholder(value string) bool {
	return pattern.MatchString(value)
}
