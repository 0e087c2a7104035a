package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/pkg/errhttp"
	pkgvalidator "github.com/ghuser/circulation/pkg/validator"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// RegisterStockRequest is the request body for POST /items.
type RegisterStockRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required" example:"6f1f64a2-3c8e-4a1e-9a77-5f1b5f6f0a10"`
	Total  int       `json:"total"   validate:"gte=0"    example:"3"`
} // @name RegisterStockRequest

// PostItemStockHandler handles POST /items requests.
type PostItemStockHandler struct {
	svc *appsvcs.Services
}

// NewPostItemStockHandler returns a PostItemStockHandler backed by the given services.
func NewPostItemStockHandler(svc *appsvcs.Services) *PostItemStockHandler {
	return &PostItemStockHandler{svc: svc}
}

// Execute registers the availability counter for a newly catalogued item.
// Administrator only; the route carries the RequireAdmin middleware.
//
//	@Summary		Register item stock
//	@Description	Creates the availability counter for an item with all copies on the shelf
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body	RegisterStockRequest	true	"Stock registration"
//	@Success		201
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterStockRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Engine.RegisterItem(r.Context(), req.ItemID, req.Total); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
