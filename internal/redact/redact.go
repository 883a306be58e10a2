// Package redact strips sensitive details from strings before they are
// logged or returned in error responses. Errors from cache provisioning and
// table loading routinely carry download URLs (sometimes signed or with
// credentials), file system paths and internal host names.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder    = "[REDACTED]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
	RedactedURLPlaceholder  = "[REDACTED_URL]"
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
	RedactedHostPlaceholder = "[REDACTED_HOST]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// rules run in order; URLs and stack traces go first so that the path and
// host rules never see their fragments.
var rules = []rule{
	{
		re:          regexp.MustCompile(`(?i)\b(?:https?|file|s3|gs)://[^\s"'<>]+`),
		placeholder: RedactedURLPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		placeholder: "[STACK_TRACE_REDACTED]",
	},
	{
		re:          regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		placeholder: "[REDACTED_JWT]",
	},
	{
		re: regexp.MustCompile(
			`(?i)(api[_-]?key|token|secret|signature|password)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
		),
		placeholder: RedactedKeyPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(/[\w.-]+){2,}`),
		placeholder: RedactedPathPlaceholder,
	},
	{
		re:          regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		placeholder: RedactedPathPlaceholder,
	},
	{
		re:          regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}(?::\d{1,5})?\b`),
		placeholder: RedactedHostPlaceholder,
	},
	{
		re:          regexp.MustCompile(`\b(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}:\d{1,5}\b`),
		placeholder: RedactedHostPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?i)(?:no such file|file not found|can't open|cannot open)`),
		placeholder: "[REDACTED_FILE_ERROR]",
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllLiteralString(result, r.placeholder)
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
