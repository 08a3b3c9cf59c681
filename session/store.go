package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"villa-client/models"
	"villa-client/utils"
)

// Store holds the single authenticated session, mirrored to one JSON file so
// it survives restarts. One session at a time; login replaces, logout clears.
type Store struct {
	mu      sync.RWMutex
	path    string
	logger  *utils.Logger
	current *models.Session
	loading bool
}

// NewStore creates a Store backed by the given file path. Call Restore before
// first use.
func NewStore(path string, logger *utils.Logger) *Store {
	return &Store{path: path, logger: logger, loading: true}
}

// Restore attempts to load a persisted session. A missing file means
// unauthenticated; an unreadable or invariant-violating record is cleared
// and the store starts unauthenticated. Never returns an error to callers:
// a broken session file is recoverable by logging in again.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("[session] Could not read session file: %v", err)
		}
		return
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil || !sess.Valid() {
		s.logger.Warn("[session] Corrupt session record, clearing %s", s.path)
		if rmErr := os.Remove(s.path); rmErr != nil {
			s.logger.Warn("[session] Could not remove corrupt session file: %v", rmErr)
		}
		return
	}

	s.current = &sess
	s.logger.Debug("[session] Restored session for %s (%s)", sess.User.Email, sess.User.Role)
}

// Login stores the session in memory and on disk.
func (s *Store) Login(sess models.Session) error {
	if !(&sess).Valid() {
		return fmt.Errorf("session: refusing to store a session without a token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}

	s.current = &sess
	return nil
}

// Logout clears the session from memory and disk.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("[session] Could not remove session file: %v", err)
	}
}

// Current returns the active session, or nil when unauthenticated.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// User returns the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := s.current.User
	return &u
}

// Token returns the bearer token, or "" when unauthenticated. Implements
// api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Loading reports whether the initial restore attempt is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
