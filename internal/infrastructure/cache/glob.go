package cache

import (
	"regexp"
	"strings"
)

// CompileGlob turns a Redis-style key pattern into an anchored regexp:
// '*' matches any run of characters, '?' exactly one. Everything else is
// literal.
func CompileGlob(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
