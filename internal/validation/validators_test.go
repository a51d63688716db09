package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  error
	}{
		{"valid", "abc@example.com", nil},
		{"valid with separators", "john.doe@example.com.br", nil},
		{"empty", "", ErrEmailRequired},
		{"no at sign", "abcexample.com", ErrEmailAtSign},
		{"two at signs", "a@b@example.com", ErrEmailAtSign},
		{"local part too short", "a@b.com", ErrEmailLocalTooShort},
		{"local part starts with dot", ".abc@example.com", ErrEmailLocalFormat},
		{"local part ends with hyphen", "abc-@example.com", ErrEmailLocalFormat},
		{"domain without dot", "abc@example", ErrEmailDomainNoDot},
		{"domain starts with hyphen", "abc@-example.com", ErrEmailDomainFormat},
		{"domain with digits", "abc@exa4mple.com", ErrEmailDomainFormat},
		{"double dot run", "ab..c@example.com", ErrEmailSpecialRun},
		{"double underscore run", "ab__c@example.com", ErrEmailSpecialRun},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Email(tc.value), tc.want)
		})
	}
}

func TestEmail_LocalPartTooLong(t *testing.T) {
	local := make([]byte, 65)
	for i := range local {
		local[i] = 'a'
	}
	assert.ErrorIs(t, Email(string(local)+"@example.com"), ErrEmailLocalTooLong)
}

func TestEmail_IsPure(t *testing.T) {
	// Same input, same verdict.
	first := Email("abc@example.com")
	second := Email("abc@example.com")
	assert.Equal(t, first, second)
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  error
	}{
		{"valid", "eco_user1", nil},
		{"empty", "", ErrUsernameRequired},
		{"too short", "ab", ErrUsernameTooShort},
		{"too long", "abcdefghijklmnopqrstu", ErrUsernameTooLong},
		{"invalid charset", "eco user", ErrUsernameCharset},
		{"hyphen not allowed", "eco-user", ErrUsernameCharset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Username(tc.value), tc.want)
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  error
	}{
		{"valid", "Abcdef1!", nil},
		{"empty", "", ErrPasswordRequired},
		{"too short", "Ab1!def", ErrPasswordTooShort},
		{"too long", "Ab1!defghijklmnopqrstuvwxyzabcdef", ErrPasswordTooLong},
		{"disallowed symbol", "Abcdef1?", ErrPasswordCharset},
		{"no uppercase", "abcdefgh", ErrPasswordNoUpper},
		{"no lowercase", "ABCDEF1!", ErrPasswordNoLower},
		{"no digit", "Abcdefg!", ErrPasswordNoDigit},
		{"no symbol", "Abcdefg1", ErrPasswordNoSymbol},
		{"triple repeat", "Abbbdef1!", ErrPasswordRepeatedRun},
		{"embedded space", "Abc def1!", ErrPasswordCharset},
		{"non-ascii", "Abcdef1!é", ErrPasswordCharset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Password(tc.value), tc.want)
		})
	}
}

func TestConfirmPassword(t *testing.T) {
	assert.NoError(t, ConfirmPassword("Abcdef1!", "Abcdef1!"))
	assert.ErrorIs(t, ConfirmPassword("", "Abcdef1!"), ErrConfirmRequired)
	assert.ErrorIs(t, ConfirmPassword("Abcdef1@", "Abcdef1!"), ErrConfirmMismatch)
}
