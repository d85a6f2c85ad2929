package domain

import "strings"

// PhoneNormalizer maps local and international phone strings to a leading-plus
// form. It does not validate digit counts or country codes; malformed numbers
// are passed through for the transport to reject.
type PhoneNormalizer struct {
	CountryCode string
}

func NewPhoneNormalizer(countryCode string) PhoneNormalizer {
	return PhoneNormalizer{CountryCode: countryCode}
}

// Normalize rewrites a trunk-prefixed number ("07...") with the default
// country code, prefixes bare international numbers with "+", and returns
// anything already starting with "+" unchanged.
func (n PhoneNormalizer) Normalize(raw string) string {
	switch {
	case strings.HasPrefix(raw, "0"):
		return n.CountryCode + raw[1:]
	case !strings.HasPrefix(raw, "+"):
		return "+" + raw
	}
	return raw
}
