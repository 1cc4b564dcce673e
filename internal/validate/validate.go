// Package validate implements the client-side form checks that run before any
// network call. Each failure carries a distinct user-facing message in the
// wording the assistant uses everywhere else.
package validate

import (
	"errors"
	"strings"
	"unicode"
)

// Validation failures. The messages are user-facing and shown verbatim in the
// banner, which is why they are full Spanish sentences rather than Go-style
// lowercase error strings.
var (
	// ErrEmptyFields is returned when any required field is blank after
	// trimming.
	ErrEmptyFields = errors.New("Por favor, completa todos los campos")

	// ErrPasswordMismatch is returned when the two registration passwords
	// differ.
	ErrPasswordMismatch = errors.New("Las contraseñas no coinciden. Por favor, verifica")

	// ErrPhoneFormat is returned when the phone is not a Colombian mobile
	// number: exactly 10 digits starting with 3.
	ErrPhoneFormat = errors.New("El número debe tener 10 dígitos y comenzar con 3. Ejemplo: 3001234567")

	// ErrWeakPassword is returned when the password does not meet the
	// minimum strength: 6+ characters with at least 3 letters and 3 digits.
	ErrWeakPassword = errors.New("La contraseña debe tener al menos 6 caracteres, con 3 letras y 3 números")
)

// Login checks the login form. Both fields must be non-empty after trimming.
// Login deliberately skips the phone-format and strength checks so existing
// accounts created under older rules can still sign in.
func Login(phone, password string) error {
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(password) == "" {
		return ErrEmptyFields
	}
	return nil
}

// Register checks the registration form: all three fields non-empty, a valid
// phone format, sufficient password strength, and matching passwords. Checks
// run in that order and the first failure wins, so the user sees one problem
// at a time.
func Register(phone, password, confirm string) error {
	phone = strings.TrimSpace(phone)
	password = strings.TrimSpace(password)
	confirm = strings.TrimSpace(confirm)

	if phone == "" || password == "" || confirm == "" {
		return ErrEmptyFields
	}
	if err := PhoneFormat(phone); err != nil {
		return err
	}
	if err := PasswordStrength(password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// PhoneFormat checks for a Colombian mobile number: 10 digits, leading 3.
func PhoneFormat(phone string) error {
	if len(phone) != 10 || !allDigits(phone) || phone[0] != '3' {
		return ErrPhoneFormat
	}
	return nil
}

// PasswordStrength enforces the minimum adopted for older adults: at least 6
// characters with at least 3 letters and 3 digits. Longer passphrases pass
// automatically as long as the letter/digit mix is there.
func PasswordStrength(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	letters, digits := 0, 0
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters < 3 || digits < 3 {
		return ErrWeakPassword
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
