package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"rentai/catalog"
	"rentai/models"
	"rentai/services"
)

// savedSession is the state of one rendered saved-homes page.
type savedSession struct {
	saved   []models.SavedListing
	expires time.Time
}

// SessionStore holds saved-homes page sessions addressed by a uuid token.
// Sessions expire after ttl without use. Safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*savedSession
	now      func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*savedSession),
		now:      time.Now,
	}
}

// Create starts a session from the saved seed and returns its token.
func (s *SessionStore) Create() (string, []models.SavedListing) {
	token := uuid.NewString()
	seed := catalog.SavedSeed()

	s.mu.Lock()
	s.sessions[token] = &savedSession{saved: seed, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return token, cloneSaved(seed)
}

// Saved returns the list held by token and extends its lifetime.
func (s *SessionStore) Saved(token string) ([]models.SavedListing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.liveLocked(token)
	if !ok {
		return nil, false
	}
	sess.expires = s.now().Add(s.ttl)
	return cloneSaved(sess.saved), true
}

// Remove drops the entry with id from the session's list. Removing an id
// that is not on the list leaves it unchanged.
func (s *SessionStore) Remove(token, id string) ([]models.SavedListing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.liveLocked(token)
	if !ok {
		return nil, false
	}
	sess.saved = services.RemoveSaved(sess.saved, id)
	sess.expires = s.now().Add(s.ttl)
	return cloneSaved(sess.saved), true
}

// Len reports the number of sessions currently held, expired or not.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) liveLocked(token string) (*savedSession, bool) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if !s.now().Before(sess.expires) {
		delete(s.sessions, token)
		return nil, false
	}
	return sess, true
}

// Evict deletes expired sessions and returns how many were removed.
func (s *SessionStore) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for token, sess := range s.sessions {
		if !now.Before(sess.expires) {
			delete(s.sessions, token)
			n++
		}
	}
	return n
}

// RunJanitor evicts expired sessions every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Evict()
		}
	}
}

func cloneSaved(in []models.SavedListing) []models.SavedListing {
	out := make([]models.SavedListing, len(in))
	for i, s := range in {
		s.Images = append([]string(nil), s.Images...)
		out[i] = s
	}
	return out
}
