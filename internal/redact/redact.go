// Package redact strips sensitive fragments from error text before it is
// logged. Storage drivers tend to echo connection strings, credentials, SQL
// and file paths in their errors; none of that belongs in a log line.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; credentials go first so later rules never see them.
var rules = []rule{
	// scheme://user:pass@ in postgres, mysql or generic URLs
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|sqlite|file|db|database)://[^@\s/]+@`),
		replacement: "$1://" + RedactedCredentialPlaceholder + "@",
	},
	// go-sql-driver/mysql DSN: user:pass@tcp(host:port)/db
	{
		pattern:     regexp.MustCompile(`\b[^\s:@/]+:[^\s@/]*@(tcp|unix)\([^)]*\)`),
		replacement: RedactedCredentialPlaceholder + "@$1(" + RedactedHostPlaceholder + ")",
	},
	// key=value credentials in libpq-style DSNs and query strings
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|token)(\s*[=:]\s*)['"]?[^'"&\s]+['"]?`),
		replacement: "$1$2" + RedactedCredentialPlaceholder,
	},
	// SQL statements
	{
		pattern:     regexp.MustCompile(
			`(?i)\b(?:SELECT\b[\s\S]*?\bFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM|(?:CREATE|ALTER|DROP)\s+TABLE)\b[\s\S]*?(?:;|$)`,
		),
		replacement: RedactedSQLPlaceholder,
	},
	// absolute unix paths with at least two segments
	{
		pattern:     regexp.MustCompile(`(?:^|\s)(/[\w.-]+){2,}`),
		replacement: " " + RedactedPathPlaceholder,
	},
	// host:port pairs
	{
		pattern:     regexp.MustCompile(`\b(?:\d{1,3}(?:\.\d{1,3}){3}|localhost|[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)+):\d{2,5}\b`),
		replacement: RedactedHostPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
