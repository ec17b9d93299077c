package sanitizer

import (
	"strings"
)

// NormalizePhone trims the phone string. Applicant phone numbers are accepted
// in a permissive local format (digits, spaces, parentheses, plus, hyphen,
// dot), so no E.164 canonicalization is applied here; format enforcement
// belongs to the validators.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
