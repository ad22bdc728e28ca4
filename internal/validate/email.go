// Package validate holds pure input validation helpers shared by the
// submission and login flows.
package validate

import (
	"regexp"
	"strings"
)

// emailPattern matches local@domain.tld where local and domain allow word
// characters, dots and hyphens. Anchored at both ends so trailing garbage
// after an otherwise valid address is rejected.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// Email reports whether s, after trimming surrounding whitespace, is a
// syntactically valid email address.
func Email(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// SplitEmails splits a comma-separated address list into trimmed,
// non-empty entries. It performs no validation; callers pair it with Email.
func SplitEmails(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
