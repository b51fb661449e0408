package middleware

import (
	"net/http"

	"github.com/de-tools/solar-atlas/pkg/handlers"
	"github.com/de-tools/solar-atlas/pkg/handlers/session"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/auth"
	"github.com/rs/zerolog"
)

type SessionLookup interface {
	Lookup(token string) (domain.Session, error)
}

// RequireSession rejects requests without a valid bearer token and puts the
// session on the request context.
func RequireSession(sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s, err := sessions.Lookup(session.BearerToken(req))
			if err != nil {
				handlers.WriteError(w, req, http.StatusUnauthorized, "Please sign in to continue")
				return
			}

			ctx := auth.WithSession(req.Context(), s)
			if s.User != nil {
				logger := zerolog.Ctx(ctx).With().Str("user", s.User.Email).Logger()
				ctx = logger.WithContext(ctx)
			}

			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
