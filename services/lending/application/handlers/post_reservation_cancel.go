package handlers

import (
	"net/http"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// PostReservationCancelHandler handles POST /reservations/{reservationID}/cancel requests.
type PostReservationCancelHandler struct {
	svc *appsvcs.Services
}

// NewPostReservationCancelHandler returns a PostReservationCancelHandler backed by the given services.
func NewPostReservationCancelHandler(svc *appsvcs.Services) *PostReservationCancelHandler {
	return &PostReservationCancelHandler{svc: svc}
}

// Execute withdraws the caller's own pending or approved reservation.
//
//	@Summary		Cancel a reservation
//	@Description	Withdraws the caller's reservation; completed and cancelled reservations cannot be withdrawn
//	@Tags			reservations
//	@Produce		json
//	@Param			reservationID	path	string	true	"Reservation ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/reservations/{reservationID}/cancel [post]
func (h *PostReservationCancelHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	resID, ok := pathUUID(r, "reservationID")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	if err := h.svc.Reservations.Cancel(r.Context(), resID, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
