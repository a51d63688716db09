// Package validation holds the canonical field validators shared by every
// form in the client (registration, login, profile edit, password recovery).
// Each validator is a pure function returning nil for valid input or one of
// the exported sentinel errors; the error text is user-facing and each
// failure keeps its own distinct reason.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrEmailRequired      = errors.New("email must not be empty")
	ErrEmailAtSign        = errors.New("email must contain exactly one @")
	ErrEmailLocalTooShort = errors.New("email local part must have at least 3 characters")
	ErrEmailLocalTooLong  = errors.New("email local part must not exceed 64 characters")
	ErrEmailLocalFormat   = errors.New("email local part must use letters, digits, dots, underscores or hyphens and start and end with a letter or digit")
	ErrEmailDomainMissing = errors.New("email domain must not be empty")
	ErrEmailDomainTooLong = errors.New("email domain must not exceed 255 characters")
	ErrEmailDomainNoDot   = errors.New("email domain must contain at least one dot")
	ErrEmailDomainFormat  = errors.New("email domain format is invalid")
	ErrEmailSpecialRun    = errors.New("email must not contain consecutive special characters")

	ErrUsernameRequired = errors.New("username must not be empty")
	ErrUsernameTooShort = errors.New("username must have at least 3 characters")
	ErrUsernameTooLong  = errors.New("username must have at most 20 characters")
	ErrUsernameCharset  = errors.New("username must contain only letters, digits and underscores")

	ErrPasswordRequired    = errors.New("password must not be empty")
	ErrPasswordTooShort    = errors.New("password must have at least 8 characters")
	ErrPasswordTooLong     = errors.New("password must have at most 32 characters")
	ErrPasswordCharset     = errors.New("password may contain only letters, digits and !@#$%^&*")
	ErrPasswordNoUpper     = errors.New("password must contain an uppercase letter")
	ErrPasswordNoLower     = errors.New("password must contain a lowercase letter")
	ErrPasswordNoDigit     = errors.New("password must contain a digit")
	ErrPasswordNoSymbol    = errors.New("password must contain a symbol (!@#$%^&*)")
	ErrPasswordRepeatedRun = errors.New("password must not repeat the same character more than twice in a row")
	ErrPasswordWhitespace  = errors.New("password must not contain spaces")
	ErrPasswordNonASCII    = errors.New("password must not contain non-ASCII characters")

	ErrConfirmRequired = errors.New("password confirmation must not be empty")
	ErrConfirmMismatch = errors.New("passwords do not match")
)

var (
	localPartRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*[a-zA-Z0-9]$`)
	// The stricter of the domain grammars the pages disagreed on: letters,
	// dots and hyphens only, ending in a dotted alphabetic TLD.
	domainRe       = regexp.MustCompile(`^[a-zA-Z][-a-zA-Z.]*[a-zA-Z](\.[a-zA-Z]{2,})+$`)
	specialRunRe   = regexp.MustCompile(`[^a-zA-Z0-9]{3,}`)
	usernameRe     = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	passwordableRe = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*]+$`)
)

// Email validates the structural grammar of an email address.
func Email(value string) error {
	if value == "" {
		return ErrEmailRequired
	}
	value = strings.TrimSpace(value)

	if strings.Count(value, "@") != 1 {
		return ErrEmailAtSign
	}

	localPart, domain, _ := strings.Cut(value, "@")

	if len(localPart) < 3 {
		return ErrEmailLocalTooShort
	}
	if len(localPart) > 64 {
		return ErrEmailLocalTooLong
	}
	if !localPartRe.MatchString(localPart) {
		return ErrEmailLocalFormat
	}

	if domain == "" {
		return ErrEmailDomainMissing
	}
	if len(domain) > 255 {
		return ErrEmailDomainTooLong
	}
	if !strings.Contains(domain, ".") {
		return ErrEmailDomainNoDot
	}
	if !domainRe.MatchString(domain) {
		return ErrEmailDomainFormat
	}

	if strings.Contains(value, "..") || strings.Contains(value, "--") || strings.Contains(value, "__") {
		return ErrEmailSpecialRun
	}
	if specialRunRe.MatchString(value) {
		return ErrEmailSpecialRun
	}

	return nil
}

// Username validates the 3–20 character account name.
func Username(value string) error {
	if value == "" {
		return ErrUsernameRequired
	}
	if len(value) < 3 {
		return ErrUsernameTooShort
	}
	if len(value) > 20 {
		return ErrUsernameTooLong
	}
	if !usernameRe.MatchString(value) {
		return ErrUsernameCharset
	}
	return nil
}

// Password enforces the registration strength policy. Login accepts any
// non-empty password; only new passwords go through this check.
func Password(value string) error {
	if value == "" {
		return ErrPasswordRequired
	}
	if len(value) < 8 {
		return ErrPasswordTooShort
	}
	if len(value) > 32 {
		return ErrPasswordTooLong
	}
	if !passwordableRe.MatchString(value) {
		return ErrPasswordCharset
	}
	if !strings.ContainsFunc(value, unicode.IsUpper) {
		return ErrPasswordNoUpper
	}
	if !strings.ContainsFunc(value, unicode.IsLower) {
		return ErrPasswordNoLower
	}
	if !strings.ContainsAny(value, "0123456789") {
		return ErrPasswordNoDigit
	}
	if !strings.ContainsAny(value, "!@#$%^&*") {
		return ErrPasswordNoSymbol
	}
	if hasTripleRun(value) {
		return ErrPasswordRepeatedRun
	}
	if strings.ContainsFunc(value, unicode.IsSpace) {
		return ErrPasswordWhitespace
	}
	for _, r := range value {
		if r > 127 {
			return ErrPasswordNonASCII
		}
	}
	return nil
}

// ConfirmPassword checks that the confirmation matches the primary field.
func ConfirmPassword(value, password string) error {
	if value == "" {
		return ErrConfirmRequired
	}
	if value != password {
		return ErrConfirmMismatch
	}
	return nil
}

// hasTripleRun reports whether s contains the same byte three or more times
// in a row.
func hasTripleRun(s string) bool {
	for i := 2; i < len(s); i++ {
		if s[i] == s[i-1] && s[i] == s[i-2] {
			return true
		}
	}
	return false
}
