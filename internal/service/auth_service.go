package service

import (
	"context"
	"time"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/auth"
)

type AuthService interface {
	// Login returns a signed admin token, or auth.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	creds     auth.CredentialVerifier
	jwtSecret string
	now       func() time.Time
}

func NewAuthService(creds auth.CredentialVerifier, jwtSecret string) AuthService {
	return &authService{creds: creds, jwtSecret: jwtSecret, now: time.Now}
}

func (s *authService) Login(_ context.Context, username, password string) (string, error) {
	id, err := s.creds.Verify(username, password)
	if err != nil {
		return "", err
	}
	return auth.GenerateToken(s.jwtSecret, id, s.now())
}
