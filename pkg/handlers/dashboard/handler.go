package dashboard

import (
	"errors"
	"net/http"

	"github.com/de-tools/solar-atlas/pkg/adapters"
	"github.com/de-tools/solar-atlas/pkg/handlers"
	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/services/dashboard"
	"github.com/de-tools/solar-atlas/pkg/services/search"
	"github.com/rs/zerolog"
)

type Handler struct {
	explorer dashboard.Explorer
}

func NewHandler(explorer dashboard.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

// CriteriaFromRequest reads the q and filter query parameters.
func CriteriaFromRequest(r *http.Request) search.Criteria {
	q := r.URL.Query()
	return search.Criteria{Query: q.Get("q"), Filter: q.Get("filter")}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.explorer.Summary(ctx, CriteriaFromRequest(r))
	if err != nil {
		h.writeError(w, r, err, "failed to build dashboard")
		return
	}

	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapDomainReportInputToAPIDashboard(*summary))
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.explorer.ListProjects(ctx, CriteriaFromRequest(r))
	if err != nil {
		h.writeError(w, r, err, "failed to list projects")
		return
	}

	response := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		response = append(response, adapters.MapDomainProjectToAPI(p))
	}
	handlers.WriteJSON(w, r, http.StatusOK, response)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, search.ErrInvalidFilter) {
		handlers.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	handlers.WriteError(w, r, http.StatusInternalServerError, "Failed to load data. Please try again.")
}
