package utils

import "strings"

// MaskEmail masks an email address for safe logging.
// Example: "user@example.com" -> "u***@example.com"
func MaskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return "***"
	}
	local := parts[0]
	if len(local) <= 1 {
		return local + "***@" + parts[1]
	}
	return string(local[0]) + "***@" + parts[1]
}

// MaskToken keeps only a short prefix of a bearer secret for logs.
// Example: "rv_3fa9c0..." -> "rv_3fa9***"
func MaskToken(token string) string {
	const keep = 7
	if len(token) <= keep {
		return "***"
	}
	return token[:keep] + "***"
}
