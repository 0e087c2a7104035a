package domain

import "errors"

// Sentinel errors for the lending domain. Use errors.Is() to check these.
// They are business-rule rejections, not transient faults: callers must not
// retry them.
var (
	// ErrItemNotFound indicates no availability record exists for the item.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemExists indicates an availability record is already registered
	// for the item.
	ErrItemExists = errors.New("item stock already registered")

	// ErrLoanNotFound indicates the requested loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrReservationNotFound indicates the requested reservation does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrUserNotFound indicates the borrowing user is unknown to the directory.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserDisabled indicates the user account is disabled and cannot borrow.
	ErrUserDisabled = errors.New("user is disabled")

	// ErrForbidden indicates the actor is neither the record owner nor an
	// administrator where one is required.
	ErrForbidden = errors.New("operation not permitted for this user")

	// ErrOutOfStock indicates the item has no available copies to lend.
	ErrOutOfStock = errors.New("item out of stock")

	// ErrOverCapacity indicates an increment would push available above total.
	ErrOverCapacity = errors.New("available count already at total")

	// ErrLoanLimitReached indicates the user already holds the maximum number
	// of open loans.
	ErrLoanLimitReached = errors.New("active loan limit reached")

	// ErrRenewLimitReached indicates the loan has exhausted its renewals.
	ErrRenewLimitReached = errors.New("renewal limit reached")

	// ErrOverdueLoanExists indicates the user holds an overdue loan and must
	// return it before borrowing again.
	ErrOverdueLoanExists = errors.New("user has an overdue loan")

	// ErrDuplicateLoan indicates the user already has an open loan for the item.
	ErrDuplicateLoan = errors.New("item already on loan to this user")

	// ErrDuplicateReservation indicates a pending or approved reservation
	// already exists for this user and item.
	ErrDuplicateReservation = errors.New("reservation already exists for this user and item")

	// ErrAlreadyReturned indicates the loan is closed; returned is terminal.
	ErrAlreadyReturned = errors.New("loan already returned")

	// ErrAlreadyOverdue indicates the loan is overdue and must be returned
	// before any renewal.
	ErrAlreadyOverdue = errors.New("loan is overdue")

	// ErrItemAvailable indicates the item has stock, so reserving it is
	// rejected in favour of borrowing directly.
	ErrItemAvailable = errors.New("item is available for direct borrowing")

	// ErrInvalidState indicates the operation is not legal for the record's
	// current status.
	ErrInvalidState = errors.New("operation not valid in current state")

	// ErrInvalidStock indicates an availability record violates its bounds.
	ErrInvalidStock = errors.New("invalid stock counts")
)
