package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the shared credentials every player uses to reach the server.
type Config struct {
	Username string
	Password string
}

// Service verifies HTTP Basic credentials. The configured password is hashed
// at construction so the plaintext is not kept around.
type Service struct {
	username     string
	passwordHash []byte
}

// NewService creates an auth service from the configured credentials.
func NewService(cfg Config) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing configured password: %w", err)
	}
	return &Service{
		username:     cfg.Username,
		passwordHash: hash,
	}, nil
}

// VerifyBasic reports whether the given HTTP Basic credentials match the
// configured ones.
func (s *Service) VerifyBasic(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
