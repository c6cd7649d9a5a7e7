// Package session holds the single logical client session: the current
// user in memory, mirrored to durable storage so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/examranking/rankcalc/internal/db"
	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/models"
)

// Durable storage keys. The user record and token are always written and
// cleared together.
const (
	keyUser  = "user"
	keyToken = "token"
)

// Store owns the current session. It is an explicit dependency passed to
// whoever needs it; there is no package-level singleton.
type Store struct {
	mu      sync.RWMutex
	db      *db.DB
	current *models.User
	token   string
}

// New creates an anonymous Store over the given storage. Call Initialize
// to restore a persisted session.
func New(database *db.DB) *Store {
	return &Store{db: database}
}

// Initialize seeds the session from durable storage. A session is restored
// only when both the user record and the token are present and the user
// record deserializes; anything less degrades to anonymous and clears the
// partial state. Corrupt data is never surfaced as an error.
func (s *Store) Initialize(ctx context.Context) {
	log := logger.FromContext(ctx).WithPrefix("session")

	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, haveUser, err := s.db.GetSessionValue(ctx, keyUser)
	if err != nil {
		log.Warn("failed to read persisted user, starting anonymous: %v", err)
		s.resetLocked(ctx, log)
		return
	}
	token, haveToken, err := s.db.GetSessionValue(ctx, keyToken)
	if err != nil {
		log.Warn("failed to read persisted token, starting anonymous: %v", err)
		s.resetLocked(ctx, log)
		return
	}

	if !haveUser || !haveToken {
		if haveUser || haveToken {
			log.Debug("partial persisted session, clearing")
			s.resetLocked(ctx, log)
		}
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		log.Warn("persisted user record is corrupt, clearing: %v", err)
		s.resetLocked(ctx, log)
		return
	}

	s.current = &user
	s.token = token
	log.Info("restored session for %s", user.Email)
}

func (s *Store) resetLocked(ctx context.Context, log *logger.Logger) {
	s.current = nil
	s.token = ""
	if err := s.db.DeleteSessionValues(ctx, keyUser, keyToken); err != nil {
		log.Warn("failed to clear persisted session: %v", err)
	}
}

// Login sets the session to authenticated and persists the user record
// together with the token. Calling it again with the same user is a plain
// overwrite.
func (s *Store) Login(ctx context.Context, user models.User, token string) error {
	log := logger.FromContext(ctx).WithPrefix("session")

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.PutSessionValues(ctx, map[string]string{
		keyUser:  string(raw),
		keyToken: token,
	}); err != nil {
		log.Error("failed to persist session: %v", err)
		return err
	}

	s.current = &user
	s.token = token
	log.Info("logged in as %s", user.Email)
	return nil
}

// Logout clears the session and removes both persisted entries. It
// succeeds even when no session was active.
func (s *Store) Logout(ctx context.Context) {
	log := logger.FromContext(ctx).WithPrefix("session")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.token = ""
	if err := s.db.DeleteSessionValues(ctx, keyUser, keyToken); err != nil {
		log.Warn("failed to clear persisted session on logout: %v", err)
	}
	log.Info("logged out")
}

// Current returns a copy of the authenticated user, or nil when anonymous.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// Token returns the persisted bearer token, empty when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a current user is set.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}
