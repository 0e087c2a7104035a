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

// BorrowRequest is the request body for POST /loans.
type BorrowRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required" example:"6f1f64a2-3c8e-4a1e-9a77-5f1b5f6f0a10"`
} // @name BorrowRequest

// BorrowResponse is returned on a successful borrow.
type BorrowResponse struct {
	LoanID uuid.UUID `json:"loan_id" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name BorrowResponse

// PostLoanHandler handles POST /loans requests.
type PostLoanHandler struct {
	svc *appsvcs.Services
}

// NewPostLoanHandler returns a PostLoanHandler backed by the given services.
func NewPostLoanHandler(svc *appsvcs.Services) *PostLoanHandler {
	return &PostLoanHandler{svc: svc}
}

// Execute opens a loan of the requested item for the authenticated user.
//
//	@Summary		Borrow an item
//	@Description	Opens a 30-day loan for the caller if a copy is available and the caller is within circulation limits
//	@Tags			loans
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BorrowRequest	true	"Borrow request"
//	@Success		201		{object}	BorrowResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/loans [post]
func (h *PostLoanHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[BorrowRequest](w, r)
	if !ok {
		return
	}

	loanID, err := h.svc.Engine.Borrow(r.Context(), id.UserID, req.ItemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, BorrowResponse{LoanID: loanID})
}
