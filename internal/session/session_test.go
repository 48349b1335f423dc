package session

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*Store, *clock) {
	c := &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = c.now
	return s, c
}

func TestStore_CreateGet(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	sess := s.Create("admin@example.org")
	if sess.ID == "" {
		t.Fatal("session id is empty")
	}
	if got := sess.ExpiresAt.Sub(sess.CreatedAt); got != time.Hour {
		t.Errorf("lifetime = %v, want 1h", got)
	}

	got, ok := s.Get(sess.ID)
	if !ok || got.Admin != "admin@example.org" {
		t.Errorf("Get = %+v, %v", got, ok)
	}
	if _, ok := s.Get("nope"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestStore_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.Create("a@example.org").ID
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}

func TestStore_Expiry(t *testing.T) {
	s, c := newTestStore(time.Hour)
	sess := s.Create("admin@example.org")

	c.t = c.t.Add(59 * time.Minute)
	if _, ok := s.Get(sess.ID); !ok {
		t.Fatal("session expired early")
	}

	c.t = c.t.Add(time.Minute)
	if _, ok := s.Get(sess.ID); ok {
		t.Fatal("session should expire at its deadline")
	}
	if s.Len() != 0 {
		t.Error("expired session should be removed on lookup")
	}
}

func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	sess := s.Create("admin@example.org")

	s.Delete(sess.ID)
	s.Delete("unknown")

	if _, ok := s.Get(sess.ID); ok {
		t.Error("deleted session still resolves")
	}
}

func TestStore_Purge(t *testing.T) {
	s, c := newTestStore(time.Hour)
	s.Create("old@example.org")
	c.t = c.t.Add(30 * time.Minute)
	fresh := s.Create("new@example.org")
	c.t = c.t.Add(45 * time.Minute)

	if n := s.Purge(); n != 1 {
		t.Errorf("Purge removed %d, want 1", n)
	}
	if _, ok := s.Get(fresh.ID); !ok {
		t.Error("live session was purged")
	}
}

func TestStore_CleanupStops(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	if err := s.StartCleanup(time.Minute); err != nil {
		t.Fatalf("StartCleanup: %v", err)
	}
	s.Stop()
	s.Stop()
}

func TestStore_CleanupRejectsBadInterval(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	if err := s.StartCleanup(0); err == nil {
		s.Stop()
		t.Fatal("zero interval should be rejected")
	}
}

func TestAuthenticator_PlainPassword(t *testing.T) {
	auth, err := NewAuthenticator(" Admin@Example.org ", "", "open sesame")
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}

	tests := []struct {
		name, email, password string
		ok                    bool
	}{
		{"correct", "admin@example.org", "open sesame", true},
		{"email case", "ADMIN@example.org", "open sesame", true},
		{"wrong password", "admin@example.org", "open", false},
		{"wrong email", "other@example.org", "open sesame", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Check(tt.email, tt.password)
			if tt.ok {
				if err != nil || got != "admin@example.org" {
					t.Errorf("Check = %q, %v", got, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Check error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAuthenticator_Hash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	auth, err := NewAuthenticator("admin@example.org", string(hash), "ignored")
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}
	if _, err := auth.Check("admin@example.org", "hunter2"); err != nil {
		t.Errorf("hash login failed: %v", err)
	}
	if _, err := auth.Check("admin@example.org", "ignored"); err == nil {
		t.Error("plain password must be ignored when a hash is configured")
	}
}

func TestNewAuthenticator_Errors(t *testing.T) {
	if _, err := NewAuthenticator("", "", "pw"); err == nil {
		t.Error("empty email should fail")
	}
	if _, err := NewAuthenticator("a@example.org", "", ""); err == nil {
		t.Error("missing password should fail")
	}
	if _, err := NewAuthenticator("a@example.org", "not-a-hash", ""); err == nil {
		t.Error("malformed hash should fail")
	}
}
