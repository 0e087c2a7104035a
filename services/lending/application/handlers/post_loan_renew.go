package handlers

import (
	"net/http"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// PostLoanRenewHandler handles POST /loans/{loanID}/renew requests.
type PostLoanRenewHandler struct {
	svc *appsvcs.Services
}

// NewPostLoanRenewHandler returns a PostLoanRenewHandler backed by the given services.
func NewPostLoanRenewHandler(svc *appsvcs.Services) *PostLoanRenewHandler {
	return &PostLoanRenewHandler{svc: svc}
}

// Execute extends a loan's due date by 15 days. Only the loan owner may
// renew, at most once, and not while the loan is overdue.
//
//	@Summary		Renew a loan
//	@Description	Extends the due date by the renewal period
//	@Tags			loans
//	@Produce		json
//	@Param			loanID	path	string	true	"Loan ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/loans/{loanID}/renew [post]
func (h *PostLoanRenewHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Engine.Renew(r.Context(), loanID, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
