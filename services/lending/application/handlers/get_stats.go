package handlers

import (
	"net/http"

	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// GetStatsHandler handles GET /stats requests.
type GetStatsHandler struct {
	svc *appsvcs.Services
}

// NewGetStatsHandler returns a GetStatsHandler backed by the given services.
func NewGetStatsHandler(svc *appsvcs.Services) *GetStatsHandler {
	return &GetStatsHandler{svc: svc}
}

// Execute returns the aggregate circulation snapshot.
// Administrator only; the route carries the RequireAdmin middleware.
//
//	@Summary		Circulation statistics
//	@Description	Returns loan counts by status and user activity counts
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	repositories.Stats
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Router			/stats [get]
func (h *GetStatsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Query.Stats(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, stats)
}
