package validation

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	panPattern    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstinPattern  = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	cinPattern    = regexp.MustCompile(`^[LU][0-9]{5}[A-Z]{2}[0-9]{4}[A-Z]{3}[0-9]{6}$`)
	ifscPattern   = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	digits12Regex = regexp.MustCompile(`^[0-9]{12}$`)
)

func IsEmailShaped(s string) bool { return emailPattern.MatchString(s) }

// IsPAN matches an Indian permanent account number. Input must already be
// upper-cased; see NormalizeCode.
func IsPAN(s string) bool { return panPattern.MatchString(s) }

func IsGSTIN(s string) bool { return gstinPattern.MatchString(s) }

func IsCIN(s string) bool { return cinPattern.MatchString(s) }

func IsIFSC(s string) bool { return ifscPattern.MatchString(s) }

func IsTwelveDigits(s string) bool { return digits12Regex.MatchString(s) }

// NormalizeCode trims and upper-cases identifiers whose format is
// case-insensitive (tax ids, bank routing codes).
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeText puts free-text names into NFC form, trims them and
// collapses runs of whitespace, so visually equal names compare equal.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
