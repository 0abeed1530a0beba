package utils

import (
	"regexp"
	"strings"
)

var (
	// user:password@ in URL-style and mysql-style DSNs
	credentialAt = regexp.MustCompile(`(://|^)([^:/@\s]+):([^@\s]+)@`)
	// password=... in key/value DSNs
	passwordKV = regexp.MustCompile(`(?i)(password=)([^ ;]+)`)
)

// RedactDSN masks credentials in a connection string so it can be logged or
// surfaced in an error without leaking secrets.
func RedactDSN(dsn string) string {
	out := credentialAt.ReplaceAllString(dsn, "${1}${2}:****@")
	out = passwordKV.ReplaceAllString(out, "${1}****")
	return out
}

// RedactSecret masks all but the first two characters of a secret value.
func RedactSecret(secret string) string {
	if len(secret) <= 2 {
		return "****"
	}
	return secret[:2] + strings.Repeat("*", 4)
}
