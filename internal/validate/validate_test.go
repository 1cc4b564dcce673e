package validate

import (
	"errors"
	"testing"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		password string
		wantErr  error
	}{
		{"both fields present", "3001234567", "secret", nil},
		{"empty phone", "", "secret", ErrEmptyFields},
		{"empty password", "3001234567", "", ErrEmptyFields},
		{"both empty", "", "", ErrEmptyFields},
		{"whitespace-only phone", "   ", "secret", ErrEmptyFields},
		{"whitespace-only password", "3001234567", "  \t", ErrEmptyFields},
		// Login deliberately accepts malformed phones so accounts created
		// under older rules can still sign in.
		{"malformed phone accepted", "12345", "secret", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Login(tt.phone, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Login(%q, %q) = %v, want %v", tt.phone, tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		password string
		confirm  string
		wantErr  error
	}{
		{"valid registration", "3001234567", "abc123", "abc123", nil},
		{"empty phone", "", "abc123", "abc123", ErrEmptyFields},
		{"empty password", "3001234567", "", "abc123", ErrEmptyFields},
		{"empty confirmation", "3001234567", "abc123", "", ErrEmptyFields},
		{"phone too short", "300123", "abc123", "abc123", ErrPhoneFormat},
		{"phone too long", "30012345678", "abc123", "abc123", ErrPhoneFormat},
		{"phone not starting with 3", "6001234567", "abc123", "abc123", ErrPhoneFormat},
		{"phone with letters", "300123456a", "abc123", "abc123", ErrPhoneFormat},
		{"weak password", "3001234567", "abc12", "abc12", ErrWeakPassword},
		{"mismatched passwords", "3001234567", "abc123", "abc124", ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Register(tt.phone, tt.password, tt.confirm)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register(%q, %q, %q) = %v, want %v", tt.phone, tt.password, tt.confirm, err, tt.wantErr)
			}
		})
	}
}

// The first failing check wins, so the user fixes one problem at a time.
func TestRegister_CheckOrder(t *testing.T) {
	// Bad phone AND weak password: phone reported first
	if err := Register("123", "x", "y"); !errors.Is(err, ErrPhoneFormat) {
		t.Errorf("Register with bad phone and weak password = %v, want ErrPhoneFormat", err)
	}

	// Good phone, weak password AND mismatch: strength reported first
	if err := Register("3001234567", "x", "y"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Register with weak mismatched password = %v, want ErrWeakPassword", err)
	}
}

func TestPhoneFormat(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"3001234567", true},
		{"3999999999", true},
		{"3101234567", true},
		{"300123456", false},   // 9 digits
		{"30012345678", false}, // 11 digits
		{"2001234567", false},  // wrong prefix
		{"300123456x", false},  // letter
		{"", false},
		{"          ", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := PhoneFormat(tt.phone)
			if tt.valid && err != nil {
				t.Errorf("PhoneFormat(%q) = %v, want nil", tt.phone, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("PhoneFormat(%q) = nil, want error", tt.phone)
			}
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"exactly the minimum", "abc123", true},
		{"longer mix", "claveSegura2024", true},
		{"accented letters count", "año1234x", true},
		{"too short", "ab12", false},
		{"only letters", "abcdef", false},
		{"only digits", "123456", false},
		{"two letters four digits", "ab1234", false},
		{"three letters two digits", "abcd12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PasswordStrength(tt.password)
			if tt.valid && err != nil {
				t.Errorf("PasswordStrength(%q) = %v, want nil", tt.password, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("PasswordStrength(%q) = nil, want error", tt.password)
			}
		})
	}
}
