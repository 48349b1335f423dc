package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks the single admin account.
type Authenticator struct {
	email string
	hash  []byte
}

// NewAuthenticator builds an authenticator for email. passwordHash is a
// bcrypt hash; when empty, password is hashed instead.
func NewAuthenticator(email, passwordHash, password string) (*Authenticator, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, errors.New("admin email is empty")
	}

	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		return &Authenticator{email: email, hash: []byte(passwordHash)}, nil
	}

	if password == "" {
		return nil, errors.New("admin password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Authenticator{email: email, hash: hash}, nil
}

// Check verifies a login attempt and returns the canonical admin email.
// The password is always compared so a wrong email costs as much as a
// wrong password.
func (a *Authenticator) Check(email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(email)), []byte(a.email)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))

	if !emailOK || passErr != nil {
		return "", ErrInvalidCredentials
	}
	return a.email, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
