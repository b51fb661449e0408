package auth

import (
	"context"
	"sync"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/config"
	"github.com/rs/zerolog"
)

// SessionStore keeps signed-in sessions by token for the lifetime of the process.
type SessionStore struct {
	mu       sync.RWMutex
	registry config.CredentialRegistry
	sessions map[string]domain.Session
}

func NewSessionStore(registry config.CredentialRegistry) *SessionStore {
	return &SessionStore{
		registry: registry,
		sessions: make(map[string]domain.Session),
	}
}

func (s *SessionStore) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	session, err := Login(ctx, domain.Session{}, creds, s.registry)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Str("email", creds.Email).Msg("login rejected")
		return session, err
	}

	s.mu.Lock()
	s.put(session.Token, session)
	s.mu.Unlock()

	zerolog.Ctx(ctx).Info().Str("email", session.User.Email).Msg("user signed in")
	return session, nil
}

func (s *SessionStore) Lookup(token string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok || token == "" {
		return domain.Session{}, ErrNotAuthenticated
	}
	return session, nil
}

// Logout applies the logout transition to the stored session and drops
// the token once the session is no longer authenticated.
func (s *SessionStore) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	session, ok := s.sessions[token]
	if !ok {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.put(token, Logout(session))
	s.mu.Unlock()

	zerolog.Ctx(ctx).Info().Str("email", session.User.Email).Msg("user signed out")
	return nil
}

// put stores an authenticated session and forgets any other. Callers hold mu.
func (s *SessionStore) put(token string, session domain.Session) {
	if !session.Authenticated {
		delete(s.sessions, token)
		return
	}
	s.sessions[token] = session
}

type sessionKey struct{}

// WithSession stores the session on ctx for downstream handlers.
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(domain.Session)
	return session, ok && session.Authenticated
}
