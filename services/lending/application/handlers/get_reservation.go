package handlers

import (
	"net/http"

	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// GetReservationHandler handles GET /reservations/{reservationID} requests.
type GetReservationHandler struct {
	svc *appsvcs.Services
}

// NewGetReservationHandler returns a GetReservationHandler backed by the given services.
func NewGetReservationHandler(svc *appsvcs.Services) *GetReservationHandler {
	return &GetReservationHandler{svc: svc}
}

// Execute returns one reservation.
//
//	@Summary		Get reservation
//	@Description	Returns one reservation record
//	@Tags			reservations
//	@Produce		json
//	@Param			reservationID	path		string	true	"Reservation ID"
//	@Success		200				{object}	ReservationResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/reservations/{reservationID} [get]
func (h *GetReservationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	resID, ok := pathUUID(r, "reservationID")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	res, err := h.svc.Query.ReservationDetail(r.Context(), resID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toReservationResponse(res))
}
