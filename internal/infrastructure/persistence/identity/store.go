// Package identity persists the signed-in user as a single JSON record keyed
// "user", the portal's one piece of durable client state. Reads and writes
// are synchronous at the call site.
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BiblioNova/bookhaven-go/internal/domain/session"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
)

// storeKey is the key the identity record lives under.
const storeKey = "user"

// Store is a file-backed identity store.
type Store struct {
	path   string
	logger *logging.ChanneledLogger
	mu     sync.Mutex
}

// NewStore creates a store backed by the given file path.
func NewStore(path string, logger *logging.ChanneledLogger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the persisted identity. Absence, a malformed record, or
// isAuthenticated=false all read back as no identity: the caller treats
// every one of those shapes as unauthenticated.
func (s *Store) Load() *session.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Auth().Warn("Failed to read persisted identity", "path", s.path, "error", err.Error())
		}
		return nil
	}

	var envelope map[string]session.Identity
	if err := json.Unmarshal(raw, &envelope); err != nil {
		s.logger.Auth().Warn("Persisted identity is malformed, ignoring", "path", s.path, "error", err.Error())
		return nil
	}

	stored, ok := envelope[storeKey]
	if !ok || !stored.IsAuthenticated {
		return nil
	}
	return &stored
}

// Save writes the identity record, replacing any previous one.
func (s *Store) Save(id session.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create identity store directory: %w", err)
	}

	raw, err := json.MarshalIndent(map[string]session.Identity{storeKey: id}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write identity store: %w", err)
	}
	return nil
}

// Clear removes the persisted identity. A missing file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear identity store: %w", err)
	}
	return nil
}
