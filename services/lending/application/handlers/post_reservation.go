package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	pkgvalidator "github.com/ghuser/circulation/pkg/validator"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// ReserveRequest is the request body for POST /reservations.
type ReserveRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required" example:"6f1f64a2-3c8e-4a1e-9a77-5f1b5f6f0a10"`
	Note   string    `json:"note"    validate:"max=500"  example:"needed for seminar"`
} // @name ReserveRequest

// ReserveResponse is returned on a successful reservation.
type ReserveResponse struct {
	ReservationID uuid.UUID `json:"reservation_id" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name ReserveResponse

// PostReservationHandler handles POST /reservations requests.
type PostReservationHandler struct {
	svc *appsvcs.Services
}

// NewPostReservationHandler returns a PostReservationHandler backed by the given services.
func NewPostReservationHandler(svc *appsvcs.Services) *PostReservationHandler {
	return &PostReservationHandler{svc: svc}
}

// Execute queues the caller for an out-of-stock item.
//
//	@Summary		Reserve an item
//	@Description	Creates a pending reservation; rejected while the item still has copies on the shelf
//	@Tags			reservations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ReserveRequest	true	"Reservation request"
//	@Success		201		{object}	ReserveResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/reservations [post]
func (h *PostReservationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ReserveRequest](w, r)
	if !ok {
		return
	}

	resID, err := h.svc.Reservations.Reserve(r.Context(), id.UserID, req.ItemID, req.Note)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, ReserveResponse{ReservationID: resID})
}
