package logging

import (
	"fmt"
	"regexp"
	"strings"
)

// Bearer credentials and JWTs must never reach log output verbatim.
var (
	bearerRe = regexp.MustCompile(`Bearer\s+[^\s"]+`)
	jwtRe    = regexp.MustCompile(`\beyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*\b`)
)

var sensitiveFieldNames = []string{"password", "token", "authorization", "secret", "credential"}

// redact masks bearer tokens and JWTs embedded in a string.
func redact(s string) string {
	s = bearerRe.ReplaceAllString(s, "Bearer [REDACTED]")
	s = jwtRe.ReplaceAllString(s, "[REDACTED]")
	return s
}

// redactFields returns a copy of fields with credential-bearing values masked.
func redactFields(fields map[string]interface{}) map[string]interface{} {
	if len(fields) == 0 {
		return fields
	}
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if isSensitiveField(k) {
			out[k] = "[REDACTED]"
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = redact(s)
			continue
		}
		out[k] = v
	}
	return out
}

func isSensitiveField(name string) bool {
	lower := strings.ToLower(fmt.Sprintf("%s", name))
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
