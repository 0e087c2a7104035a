package handlers

import (
	"net/http"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// GetLoanHandler handles GET /loans/{loanID} requests.
type GetLoanHandler struct {
	svc *appsvcs.Services
}

// NewGetLoanHandler returns a GetLoanHandler backed by the given services.
func NewGetLoanHandler(svc *appsvcs.Services) *GetLoanHandler {
	return &GetLoanHandler{svc: svc}
}

// Execute returns one loan. Visible to the loan owner and administrators.
//
//	@Summary		Get loan
//	@Description	Returns one loan record
//	@Tags			loans
//	@Produce		json
//	@Param			loanID	path		string	true	"Loan ID"
//	@Success		200		{object}	LoanResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/loans/{loanID} [get]
func (h *GetLoanHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	loanID, ok := pathUUID(r, "loanID")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	loan, err := h.svc.Query.LoanDetail(r.Context(), loanID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toLoanResponse(loan))
}
