package validation

import (
	"errors"
	"strings"
)

var (
	ErrCPFRequired       = errors.New("CPF must not be empty")
	ErrCPFLength         = errors.New("CPF must contain exactly 11 digits")
	ErrCPFRepeatedDigits = errors.New("CPF with all digits repeated is not valid")
	ErrCPFFirstCheck     = errors.New("CPF first check digit does not match")
	ErrCPFSecondCheck    = errors.New("CPF second check digit does not match")
)

// StripCPF removes everything but digits, so formatted input like
// "111.444.777-35" can be validated and sent to the backend.
func StripCPF(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF renders an 11-digit CPF in the conventional
// XXX.XXX.XXX-XX form. Input of any other length is returned unchanged.
func FormatCPF(digits string) string {
	if len(digits) != 11 {
		return digits
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

// CPF validates an 11-digit Brazilian taxpayer id. The caller strips
// non-digit characters first (see StripCPF).
//
// The two trailing digits are check digits: the first is derived from a
// weighted sum of digits 1–9 (weights 10 down to 2), the second from digits
// 1–10 (weights 11 down to 2). Each sum is multiplied by 10 and reduced
// modulo 11, with remainders of 10 or 11 mapping to 0.
func CPF(value string) error {
	if value == "" {
		return ErrCPFRequired
	}
	if len(value) != 11 {
		return ErrCPFLength
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return ErrCPFLength
		}
	}

	allSame := true
	for i := 1; i < 11; i++ {
		if value[i] != value[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return ErrCPFRepeatedDigits
	}

	if checkDigit(value, 9) != int(value[9]-'0') {
		return ErrCPFFirstCheck
	}
	if checkDigit(value, 10) != int(value[10]-'0') {
		return ErrCPFSecondCheck
	}
	return nil
}

// checkDigit computes the check digit over the first n digits of cpf, with
// weights descending from n+1 down to 2.
func checkDigit(cpf string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(cpf[i]-'0') * (n + 1 - i)
	}
	remainder := (sum * 10) % 11
	if remainder == 10 || remainder == 11 {
		remainder = 0
	}
	return remainder
}
