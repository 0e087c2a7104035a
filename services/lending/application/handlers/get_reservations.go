package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// ListReservationsResponse is one page of reservations in queue order.
type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"  example:"7"`
	Limit        int                   `json:"limit"  example:"20"`
	Offset       int                   `json:"offset" example:"0"`
} // @name ListReservationsResponse

// GetReservationsHandler handles GET /reservations requests.
type GetReservationsHandler struct {
	svc *appsvcs.Services
}

// NewGetReservationsHandler returns a GetReservationsHandler backed by the given services.
func NewGetReservationsHandler(svc *appsvcs.Services) *GetReservationsHandler {
	return &GetReservationsHandler{svc: svc}
}

// Execute lists reservations, longest-waiting first. Non-administrators see
// their own reservations only; administrators may filter by user_id, item_id,
// and status.
//
//	@Summary		List reservations
//	@Description	Returns a paginated page of reservations in request order
//	@Tags			reservations
//	@Produce		json
//	@Param			user_id	query		string	false	"Filter by user (administrators only)"
//	@Param			item_id	query		string	false	"Filter by item"
//	@Param			status	query		string	false	"Filter by status"	Enums(pending, approved, cancelled, completed)
//	@Param			limit	query		int		false	"Page size (max 100)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	ListReservationsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/reservations [get]
func (h *GetReservationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var filter repositories.ReservationFilter
	if id.IsAdmin {
		if v := r.URL.Query().Get("user_id"); v != "" {
			userID, err := uuid.Parse(v)
			if err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "invalid user_id")
				return
			}
			filter.UserID = &userID
		}
	} else {
		userID := id.UserID
		filter.UserID = &userID
	}

	if v := r.URL.Query().Get("item_id"); v != "" {
		itemID, err := uuid.Parse(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid item_id")
			return
		}
		filter.ItemID = &itemID
	}

	if v := r.URL.Query().Get("status"); v != "" {
		status := models.ReservationStatus(v)
		switch status {
		case models.ReservationPending, models.ReservationApproved,
			models.ReservationCancelled, models.ReservationCompleted:
			filter.Status = &status
		default:
			httpx.JSONError(w, http.StatusBadRequest, "invalid status")
			return
		}
	}

	opts := queryOpts(r)
	reservations, total, err := h.svc.Query.ListReservations(r.Context(), filter, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListReservationsResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
		Total:        total,
		Limit:        opts.Limit,
		Offset:       opts.Offset,
	}
	for _, res := range reservations {
		resp.Reservations = append(resp.Reservations, toReservationResponse(res))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
