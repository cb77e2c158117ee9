package site

import "strings"

const countryCode = "55"

// DisabledContactLink is the placeholder href used when a tenant has no
// usable contact number.
const DisabledContactLink = "#"

// NormalizeContact reduces a raw phone/WhatsApp string to digits and
// ensures the Brazilian country code. Numbers of up to eleven digits
// (DDD + local number) that do not already start with 55 get the code
// prepended; longer or already-prefixed numbers pass through, which makes
// the normalization idempotent.
func NormalizeContact(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if len(digits) <= 11 && !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}
	return digits
}

// ContactLink derives the WhatsApp deep link for a raw contact string, or
// the disabled placeholder when no digits survive normalization.
func ContactLink(raw string) string {
	digits := NormalizeContact(raw)
	if digits == "" {
		return DisabledContactLink
	}
	return "https://wa.me/" + digits
}
