// Package auth implements sign-in as pure transitions over domain.Session
// plus a process-local token store for the web API.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/config"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Login checks creds against the registry and returns the signed-in session.
// On failure the original session is returned unchanged.
func Login(ctx context.Context, session domain.Session, creds domain.Credentials, registry config.CredentialRegistry) (domain.Session, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return session, ErrInvalidCredentials
	}

	account, err := registry.GetAccount(ctx, email)
	if err != nil {
		return session, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(account.Password), []byte(creds.Password)) != 1 {
		return session, ErrInvalidCredentials
	}

	user := account.User
	return domain.Session{
		Token:         uuid.NewString(),
		Authenticated: true,
		User:          &user,
	}, nil
}

// Logout always yields the signed-out session.
func Logout(domain.Session) domain.Session {
	return domain.Session{}
}
