package handlers

import (
	"net/http"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// PostLoanReturnHandler handles POST /loans/{loanID}/return requests.
type PostLoanReturnHandler struct {
	svc *appsvcs.Services
}

// NewPostLoanReturnHandler returns a PostLoanReturnHandler backed by the given services.
func NewPostLoanReturnHandler(svc *appsvcs.Services) *PostLoanReturnHandler {
	return &PostLoanReturnHandler{svc: svc}
}

// Execute returns a loan. Overdue loans are returnable; the caller must be
// the loan owner or an administrator.
//
//	@Summary		Return a loan
//	@Description	Closes the loan, frees a copy, and notifies the longest-waiting approved reservation
//	@Tags			loans
//	@Produce		json
//	@Param			loanID	path	string	true	"Loan ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/loans/{loanID}/return [post]
func (h *PostLoanReturnHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Engine.Return(r.Context(), loanID, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
