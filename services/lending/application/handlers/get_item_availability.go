package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// AvailabilityResponse is an item's availability counter.
type AvailabilityResponse struct {
	ItemID    uuid.UUID `json:"item_id"   example:"6f1f64a2-3c8e-4a1e-9a77-5f1b5f6f0a10"`
	Total     int       `json:"total"     example:"3"`
	Available int       `json:"available" example:"1"`
} // @name AvailabilityResponse

// GetItemAvailabilityHandler handles GET /items/{itemID}/availability requests.
type GetItemAvailabilityHandler struct {
	svc *appsvcs.Services
}

// NewGetItemAvailabilityHandler returns a GetItemAvailabilityHandler backed by the given services.
func NewGetItemAvailabilityHandler(svc *appsvcs.Services) *GetItemAvailabilityHandler {
	return &GetItemAvailabilityHandler{svc: svc}
}

// Execute returns an item's availability counter.
//
//	@Summary		Get item availability
//	@Description	Returns total and currently available copy counts for an item
//	@Tags			items
//	@Produce		json
//	@Param			itemID	path		string	true	"Item ID"
//	@Success		200		{object}	AvailabilityResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/items/{itemID}/availability [get]
func (h *GetItemAvailabilityHandler) Execute(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(r, "itemID")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	stock, err := h.svc.Query.Availability(r.Context(), itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AvailabilityResponse{
		ItemID:    stock.ItemID,
		Total:     stock.Total,
		Available: stock.Available,
	})
}
