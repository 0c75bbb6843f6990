// Package normalize turns raw contact fields into the canonical strings that
// are fed to the identity hasher.
//
// Normalization is total: it never panics and never returns an error. Input
// that is absent, empty or blank after cleaning yields ("", false), which the
// hasher maps to a null hash. Applying Normalize to its own output returns the
// same value for every Kind.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind selects the normalization rules applied to a field.
type Kind string

const (
	KindEmail        Kind = "email"
	KindPersonalName Kind = "personal_name"
	KindAddressLine  Kind = "address_line"
	KindCity         Kind = "city"
	KindRegion       Kind = "region"
	KindPostcode     Kind = "postcode"
	KindCountryCode  Kind = "country_code"
	KindPhone        Kind = "phone"
)

// Kinds lists every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindEmail,
		KindPersonalName,
		KindAddressLine,
		KindCity,
		KindRegion,
		KindPostcode,
		KindCountryCode,
		KindPhone,
	}
}

// Normalize canonicalizes raw according to kind. countryHint is only consulted
// for KindPhone, where a US or CA hint turns a 10 digit national number into
// its 11 digit form. The boolean is false when the result is empty or the kind
// is unknown.
func Normalize(raw any, kind Kind, countryHint string) (string, bool) {
	s := Coerce(raw)

	var out string
	switch kind {
	case KindEmail, KindPersonalName, KindCity, KindRegion:
		out = lower(collapseSpaces(s))
	case KindAddressLine:
		out = addressLine(s)
	case KindPostcode:
		out = postcode(s)
	case KindCountryCode:
		out = strings.ToUpper(strings.TrimSpace(s))
	case KindPhone:
		out = phone(s, countryHint)
	default:
		return "", false
	}
	return out, out != ""
}

// collapseSpaces trims s and replaces every run of whitespace with one space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// lower applies Unicode lower-casing. A Caser keeps state between calls, so a
// fresh one is built per value.
func lower(s string) string {
	if s == "" {
		return s
	}
	return cases.Lower(language.Und).String(s)
}

func addressLine(s string) string {
	folded := lower(collapseSpaces(s))
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			return r
		}
		return -1
	}, folded)
	// stripping punctuation can leave double or edge spaces behind
	return collapseSpaces(kept)
}

func postcode(s string) string {
	stripped := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToUpper(stripped)
}

func phone(s, countryHint string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return ""
	}
	switch strings.ToUpper(countryHint) {
	case "US", "CA":
		if len(digits) == 10 {
			digits = "1" + digits
		}
	}
	return "+" + digits
}
