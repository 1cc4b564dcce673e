package server

import (
	"crypto/pbkdf2"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLength  = 32
	saltLength       = 16

	// maxFailedAttempts failed logins lock the account for lockDuration.
	maxFailedAttempts = 5
	lockDuration      = 5 * time.Minute
)

var (
	// ErrUserExists is returned when registering an already-taken phone.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned for a wrong phone or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountLocked is returned while a lockout window is active.
	ErrAccountLocked = errors.New("account temporarily locked")
)

// userRecord is the persisted form of one account. Only the salted hash is
// stored, never the password.
type userRecord struct {
	Phone     string    `json:"phone"`
	Salt      string    `json:"salt"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
}

// lockState tracks failed logins for one phone. Kept in memory only; a
// server restart clears pending lockouts.
type lockState struct {
	failures    int
	lockedUntil time.Time
}

// Store persists user accounts as a JSON file and enforces a lockout after
// repeated failed logins. Safe for concurrent use.
type Store struct {
	path string

	mu    sync.Mutex
	users map[string]userRecord
	locks map[string]*lockState
	now   func() time.Time // test hook
}

// NewStore loads the user file at path, creating an empty store when the
// file does not exist yet.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  path,
		users: make(map[string]userRecord),
		locks: make(map[string]*lockState),
		now:   time.Now,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user store: %w", err)
	}

	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse user store: %w", err)
	}
	for _, r := range records {
		s.users[r.Phone] = r
	}
	return s, nil
}

// Count returns the number of registered accounts.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Exists reports whether phone has a registered account.
func (s *Store) Exists(phone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[phone]
	return ok
}

// Register creates an account for phone. Returns ErrUserExists when the
// phone is already registered.
func (s *Store) Register(phone, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[phone]; ok {
		return ErrUserExists
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := pbkdf2.Key(sha256.New, password, salt, pbkdf2Iterations, pbkdf2KeyLength)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.users[phone] = userRecord{
		Phone:     phone,
		Salt:      hex.EncodeToString(salt),
		Hash:      hex.EncodeToString(hash),
		CreatedAt: s.now().UTC(),
	}
	return s.saveLocked()
}

// Authenticate verifies phone/password. Five consecutive failures lock the
// account for five minutes; a successful login clears the counter.
func (s *Store) Authenticate(phone, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lock, ok := s.locks[phone]; ok && s.now().Before(lock.lockedUntil) {
		return ErrAccountLocked
	}

	record, ok := s.users[phone]
	if !ok {
		s.recordFailureLocked(phone)
		return ErrInvalidCredentials
	}

	salt, err := hex.DecodeString(record.Salt)
	if err != nil {
		return fmt.Errorf("corrupt salt for %s: %w", phone, err)
	}
	want, err := hex.DecodeString(record.Hash)
	if err != nil {
		return fmt.Errorf("corrupt hash for %s: %w", phone, err)
	}
	got, err := pbkdf2.Key(sha256.New, password, salt, pbkdf2Iterations, pbkdf2KeyLength)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if subtle.ConstantTimeCompare(got, want) != 1 {
		s.recordFailureLocked(phone)
		return ErrInvalidCredentials
	}

	delete(s.locks, phone)
	return nil
}

// recordFailureLocked bumps the failure counter for phone and starts the
// lockout window once the limit is hit. Caller holds s.mu.
func (s *Store) recordFailureLocked(phone string) {
	lock := s.locks[phone]
	if lock == nil {
		lock = &lockState{}
		s.locks[phone] = lock
	}
	lock.failures++
	if lock.failures >= maxFailedAttempts {
		lock.lockedUntil = s.now().Add(lockDuration)
		lock.failures = 0
	}
}

// saveLocked writes the user file atomically. Caller holds s.mu.
func (s *Store) saveLocked() error {
	records := make([]userRecord, 0, len(s.users))
	for _, r := range s.users {
		records = append(records, r)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace user store: %w", err)
	}
	return nil
}
