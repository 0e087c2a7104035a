package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/errhttp"
	"github.com/ghuser/circulation/pkg/httpx"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// ListLoansResponse is one page of loans.
type ListLoansResponse struct {
	Loans  []LoanResponse `json:"loans"`
	Total  int            `json:"total"  example:"42"`
	Limit  int            `json:"limit"  example:"20"`
	Offset int            `json:"offset" example:"0"`
} // @name ListLoansResponse

// GetLoansHandler handles GET /loans requests.
type GetLoansHandler struct {
	svc *appsvcs.Services
}

// NewGetLoansHandler returns a GetLoansHandler backed by the given services.
func NewGetLoansHandler(svc *appsvcs.Services) *GetLoansHandler {
	return &GetLoansHandler{svc: svc}
}

// Execute lists loans, newest first. Non-administrators always see their own
// loans only; administrators may filter by user_id, item_id, and status.
//
//	@Summary		List loans
//	@Description	Returns a paginated page of loans
//	@Tags			loans
//	@Produce		json
//	@Param			user_id	query		string	false	"Filter by user (administrators only)"
//	@Param			item_id	query		string	false	"Filter by item"
//	@Param			status	query		string	false	"Filter by status"	Enums(active, overdue, returned)
//	@Param			limit	query		int		false	"Page size (max 100)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	ListLoansResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/loans [get]
func (h *GetLoansHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var filter repositories.LoanFilter
	if id.IsAdmin {
		if v := r.URL.Query().Get("user_id"); v != "" {
			userID, err := uuid.Parse(v)
			if err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "invalid user_id")
				return
			}
			filter.UserID = &userID
		}
	} else {
		userID := id.UserID
		filter.UserID = &userID
	}

	if v := r.URL.Query().Get("item_id"); v != "" {
		itemID, err := uuid.Parse(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid item_id")
			return
		}
		filter.ItemID = &itemID
	}

	if v := r.URL.Query().Get("status"); v != "" {
		status := models.LoanStatus(v)
		switch status {
		case models.LoanActive, models.LoanOverdue, models.LoanReturned:
			filter.Status = &status
		default:
			httpx.JSONError(w, http.StatusBadRequest, "invalid status")
			return
		}
	}

	opts := queryOpts(r)
	loans, total, err := h.svc.Query.ListLoans(r.Context(), filter, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListLoansResponse{
		Loans:  make([]LoanResponse, 0, len(loans)),
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for _, l := range loans {
		resp.Loans = append(resp.Loans, toLoanResponse(l))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
