// Package errhttp maps lending domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/circulation/pkg/httpx"
	domain "github.com/ghuser/circulation/services/lending/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrUserDisabled):
		return http.StatusForbidden // 403
	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrOverCapacity),
		errors.Is(err, domain.ErrDuplicateLoan),
		errors.Is(err, domain.ErrDuplicateReservation),
		errors.Is(err, domain.ErrOverdueLoanExists),
		errors.Is(err, domain.ErrItemAvailable),
		errors.Is(err, domain.ErrItemExists):
		return http.StatusConflict // 409
	case errors.Is(err, domain.ErrLoanLimitReached),
		errors.Is(err, domain.ErrRenewLimitReached),
		errors.Is(err, domain.ErrAlreadyReturned),
		errors.Is(err, domain.ErrAlreadyOverdue),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidStock):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
