package auth

import (
	"crypto/subtle"
	"errors"
)

// AdminID is the identity marker embedded in every admin token.
const AdminID = "admin"

var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier decides whether a username/password pair identifies
// the admin and returns the identity to put in the token.
type CredentialVerifier interface {
	Verify(username, password string) (string, error)
}

// StaticCredentials compares against a single configured plaintext pair.
type StaticCredentials struct {
	Username string
	Password string
}

func (c StaticCredentials) Verify(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return AdminID, nil
}

// BcryptCredentials compares the password against a bcrypt hash.
type BcryptCredentials struct {
	Username     string
	PasswordHash string
}

func (c BcryptCredentials) Verify(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	if !CheckPassword(password, c.PasswordHash) || !userOK {
		return "", ErrInvalidCredentials
	}
	return AdminID, nil
}
