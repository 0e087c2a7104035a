package handlers

import (
	"net/http"

	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// PostReservationApproveHandler handles POST /reservations/{reservationID}/approve requests.
type PostReservationApproveHandler struct {
	svc *appsvcs.Services
}

// NewPostReservationApproveHandler returns a PostReservationApproveHandler backed by the given services.
func NewPostReservationApproveHandler(svc *appsvcs.Services) *PostReservationApproveHandler {
	return &PostReservationApproveHandler{svc: svc}
}

// Execute admits a pending reservation to the notification queue.
// Administrator only; the route carries the RequireAdmin middleware.
//
//	@Summary		Approve a reservation
//	@Description	Marks a pending reservation as approved, queueing it for the next vacancy
//	@Tags			reservations
//	@Produce		json
//	@Param			reservationID	path	string	true	"Reservation ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/reservations/{reservationID}/approve [post]
func (h *PostReservationApproveHandler) Execute(w http.ResponseWriter, r *http.Request) {
	resID, ok := pathUUID(r, "reservationID")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	if err := h.svc.Reservations.Approve(r.Context(), resID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
