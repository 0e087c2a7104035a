// Package handlers contains the HTTP handlers for the lending context.
// Each handler resolves the caller's Identity from the request context,
// validates input, delegates to the application services, and maps domain
// errors to HTTP status codes through errhttp.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"loan not found"`
} // @name ErrorResponse

// LoanResponse is the wire representation of a loan.
type LoanResponse struct {
	ID          uuid.UUID  `json:"id"            example:"123e4567-e89b-12d3-a456-426614174000"`
	UserID      uuid.UUID  `json:"user_id"       example:"550e8400-e29b-41d4-a716-446655440000"`
	ItemID      uuid.UUID  `json:"item_id"       example:"6f1f64a2-3c8e-4a1e-9a77-5f1b5f6f0a10"`
	BorrowedAt  time.Time  `json:"borrowed_at"   example:"2024-01-15T10:30:00Z"`
	DueAt       time.Time  `json:"due_at"        example:"2024-02-14T10:30:00Z"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
	RenewCount  int        `json:"renew_count"   example:"0"`
	OverdueDays int        `json:"overdue_days"  example:"0"`
	Status      string     `json:"status"        example:"active"`
} // @name LoanResponse

// ReservationResponse is the wire representation of a reservation.
type ReservationResponse struct {
	ID          uuid.UUID `json:"id"           example:"123e4567-e89b-12d3-a456-426614174000"`
	UserID      uuid.UUID `json:"user_id"      example:"550e8400-e29b-41d4-a716-446655440000"`
	ItemID      uuid.UUID `json:"item_id"      example:"6f1f64a2-3c8e-4a1e-9a77-5f1b5f6f0a10"`
	RequestedAt time.Time `json:"requested_at" example:"2024-01-15T10:30:00Z"`
	Status      string    `json:"status"       example:"pending"`
	Note        string    `json:"note"         example:""`
} // @name ReservationResponse

func toLoanResponse(l *models.Loan) LoanResponse {
	return LoanResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		ItemID:      l.ItemID,
		BorrowedAt:  l.BorrowedAt,
		DueAt:       l.DueAt,
		ReturnedAt:  l.ReturnedAt,
		RenewCount:  l.RenewCount,
		OverdueDays: l.OverdueDays,
		Status:      string(l.Status),
	}
}

func toReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ItemID:      r.ItemID,
		RequestedAt: r.RequestedAt,
		Status:      string(r.Status),
		Note:        r.Note,
	}
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// queryOpts reads limit and offset from the query string. Bounds are applied
// by the query service.
func queryOpts(r *http.Request) repositories.QueryOpts {
	var opts repositories.QueryOpts
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}
	return opts
}
