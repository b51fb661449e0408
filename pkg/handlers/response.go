// Package handlers holds the JSON response helpers shared by the API handlers.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/solar-atlas/pkg/adapters"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/notification"
	"github.com/rs/zerolog"
)

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

// WriteNotification replies with the message the client should show.
func WriteNotification(w http.ResponseWriter, r *http.Request, status int, message string, severity domain.Severity) {
	n := notification.Show(domain.Notification{}, message, severity)
	WriteJSON(w, r, status, adapters.MapDomainNotificationToAPI(n))
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteNotification(w, r, status, message, domain.SeverityError)
}
