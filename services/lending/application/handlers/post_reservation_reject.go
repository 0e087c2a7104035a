package handlers

import (
	"net/http"

	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	pkgvalidator "github.com/ghuser/circulation/pkg/validator"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// RejectReservationRequest is the request body for POST /reservations/{reservationID}/reject.
type RejectReservationRequest struct {
	Remark string `json:"remark" validate:"max=500" example:"item withdrawn from circulation"`
} // @name RejectReservationRequest

// PostReservationRejectHandler handles POST /reservations/{reservationID}/reject requests.
type PostReservationRejectHandler struct {
	svc *appsvcs.Services
}

// NewPostReservationRejectHandler returns a PostReservationRejectHandler backed by the given services.
func NewPostReservationRejectHandler(svc *appsvcs.Services) *PostReservationRejectHandler {
	return &PostReservationRejectHandler{svc: svc}
}

// Execute cancels a pending reservation with a reviewer's remark.
// Administrator only; the route carries the RequireAdmin middleware.
//
//	@Summary		Reject a reservation
//	@Description	Cancels a pending reservation, recording the reviewer's remark
//	@Tags			reservations
//	@Accept			json
//	@Produce		json
//	@Param			reservationID	path	string						true	"Reservation ID"
//	@Param			request			body	RejectReservationRequest	true	"Rejection remark"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/reservations/{reservationID}/reject [post]
func (h *PostReservationRejectHandler) Execute(w http.ResponseWriter, r *http.Request) {
	resID, ok := pathUUID(r, "reservationID")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RejectReservationRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Reservations.Reject(r.Context(), resID, req.Remark); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
