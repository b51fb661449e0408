package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/de-tools/solar-atlas/pkg/adapters"
	"github.com/de-tools/solar-atlas/pkg/handlers"
	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/auth"
	"github.com/rs/zerolog"
)

type Manager interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	sessions Manager
}

func NewHandler(sessions Manager) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, "Invalid login request")
		return
	}

	session, err := h.sessions.Login(ctx, domain.Credentials{Email: req.Email, Password: req.Password})
	if errors.Is(err, auth.ErrInvalidCredentials) {
		handlers.WriteError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("login failed")
		handlers.WriteError(w, r, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapDomainSessionToAPI(session))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), BearerToken(r)); err != nil {
		handlers.WriteError(w, r, http.StatusUnauthorized, "Not signed in")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
