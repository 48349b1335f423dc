// Package session keeps admin login sessions in memory.
//
// Sessions are identified by a random UUID carried in a cookie and expire
// after a fixed TTL. Expired sessions are dropped lazily on lookup and in
// bulk by a cron-scheduled purge.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// CookieName is the name of the admin session cookie.
const CookieName = "nonprofit_session"

// Session is one signed-in admin.
type Session struct {
	ID        string
	Admin     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store holds active sessions.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time

	cron *cron.Cron
}

// NewStore creates an empty store whose sessions live for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create starts a session for admin.
func (s *Store) Create(admin string) Session {
	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		Admin:     admin,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the live session with id.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, id)
		return Session{}, false
	}
	return sess, true
}

// Delete ends session id. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Purge removes expired sessions and returns how many were dropped.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartCleanup purges expired sessions every interval until Stop.
func (s *Store) StartCleanup(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("session cleanup interval must be positive, got %s", interval)
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if n := s.Purge(); n > 0 {
			slog.Debug("purged expired sessions", "count", n)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()

	c.Start()
	return nil
}

// Stop halts the cleanup schedule and waits for a running purge.
func (s *Store) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
