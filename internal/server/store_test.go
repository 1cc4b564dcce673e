package server

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := newTestStore(t)

	if err := s.Register("3001234567", "abc123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}

	if err := s.Authenticate("3001234567", "abc123"); err != nil {
		t.Errorf("Authenticate() with correct password = %v, want nil", err)
	}
	if err := s.Authenticate("3001234567", "wrong1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() with wrong password = %v, want ErrInvalidCredentials", err)
	}
}

func TestStoreRegister_Duplicate(t *testing.T) {
	s := newTestStore(t)

	if err := s.Register("3001234567", "abc123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := s.Register("3001234567", "other12"); !errors.Is(err, ErrUserExists) {
		t.Errorf("second Register() = %v, want ErrUserExists", err)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	s := newTestStore(t)

	if err := s.Authenticate("3009999999", "abc123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() for unknown user = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_Lockout(t *testing.T) {
	s := newTestStore(t)
	if err := s.Register("3001234567", "abc123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	now := time.Now()
	s.now = func() time.Time { return now }

	for i := 0; i < maxFailedAttempts; i++ {
		if err := s.Authenticate("3001234567", "wrong1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d = %v, want ErrInvalidCredentials", i+1, err)
		}
	}

	// Locked now, even with the right password
	if err := s.Authenticate("3001234567", "abc123"); !errors.Is(err, ErrAccountLocked) {
		t.Errorf("Authenticate() while locked = %v, want ErrAccountLocked", err)
	}

	// Lock expires after the window
	now = now.Add(lockDuration + time.Second)
	if err := s.Authenticate("3001234567", "abc123"); err != nil {
		t.Errorf("Authenticate() after lock expiry = %v, want nil", err)
	}
}

func TestAuthenticate_SuccessClearsFailures(t *testing.T) {
	s := newTestStore(t)
	if err := s.Register("3001234567", "abc123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	for i := 0; i < maxFailedAttempts-1; i++ {
		s.Authenticate("3001234567", "wrong1")
	}
	if err := s.Authenticate("3001234567", "abc123"); err != nil {
		t.Fatalf("Authenticate() = %v, want nil", err)
	}

	// Counter reset: another wrong attempt must not lock
	if err := s.Authenticate("3001234567", "wrong1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() after reset = %v, want ErrInvalidCredentials", err)
	}
	if err := s.Authenticate("3001234567", "abc123"); err != nil {
		t.Errorf("Authenticate() = %v, want nil (not locked)", err)
	}
}

func TestStore_PersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	s1, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if err := s1.Register("3001234567", "abc123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() reload error = %v", err)
	}
	if s2.Count() != 1 {
		t.Errorf("Count() after reload = %d, want 1", s2.Count())
	}
	if err := s2.Authenticate("3001234567", "abc123"); err != nil {
		t.Errorf("Authenticate() after reload = %v, want nil", err)
	}
}

// Lockout state is in memory only; a restart clears it.
func TestStore_LockoutNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	s1, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if err := s1.Register("3001234567", "abc123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	for i := 0; i < maxFailedAttempts; i++ {
		s1.Authenticate("3001234567", "wrong1")
	}

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() reload error = %v", err)
	}
	if err := s2.Authenticate("3001234567", "abc123"); err != nil {
		t.Errorf("Authenticate() after restart = %v, want nil", err)
	}
}
