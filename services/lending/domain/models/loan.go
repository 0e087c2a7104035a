package models

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/circulation/services/lending/domain"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	// LoanActive is an open loan that is not yet past due.
	LoanActive LoanStatus = "active"
	// LoanOverdue is an open loan past its due date, marked by the sweep.
	LoanOverdue LoanStatus = "overdue"
	// LoanReturned is terminal.
	LoanReturned LoanStatus = "returned"
)

// Loan is one borrowing of one item by one user.
//
// Transitions: active -> {overdue, returned}, overdue -> returned.
// DueAt only ever increases, via Renew. Loans are historical records and are
// never deleted.
type Loan struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ItemID     uuid.UUID
	BorrowedAt time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
	RenewCount int
	// OverdueDays is a snapshot: recomputed from DueAt on each sweep run and
	// again at return time, never accumulated.
	OverdueDays int
	Status      LoanStatus
}

// NewLoan opens a loan due period after now.
func NewLoan(userID, itemID uuid.UUID, now time.Time, period time.Duration) *Loan {
	return &Loan{
		ID:         uuid.New(),
		UserID:     userID,
		ItemID:     itemID,
		BorrowedAt: now,
		DueAt:      now.Add(period),
		Status:     LoanActive,
	}
}

// Open reports whether the loan still holds a copy (active or overdue).
func (l *Loan) Open() bool {
	return l.Status == LoanActive || l.Status == LoanOverdue
}

// Close returns the loan. Returning an overdue loan is allowed; the overdue
// day count is recomputed here from DueAt, not taken from the sweep's
// snapshot.
func (l *Loan) Close(now time.Time) error {
	if l.Status == LoanReturned {
		return domain.ErrAlreadyReturned
	}
	l.OverdueDays = OverdueDays(l.DueAt, now)
	l.ReturnedAt = &now
	l.Status = LoanReturned
	return nil
}

// Renew extends DueAt by period. Overdue loans must be returned first, and a
// loan may be renewed at most maxRenewals times.
func (l *Loan) Renew(period time.Duration, maxRenewals int) error {
	switch l.Status {
	case LoanReturned:
		return domain.ErrAlreadyReturned
	case LoanOverdue:
		return domain.ErrAlreadyOverdue
	}
	if l.RenewCount >= maxRenewals {
		return domain.ErrRenewLimitReached
	}
	l.DueAt = l.DueAt.Add(period)
	l.RenewCount++
	return nil
}

// MarkOverdue transitions an expired active loan to overdue. Only the sweep
// calls this. A loan that is not active, or not yet past due, is left alone.
func (l *Loan) MarkOverdue(now time.Time) bool {
	if l.Status != LoanActive || !now.After(l.DueAt) {
		return false
	}
	l.OverdueDays = OverdueDays(l.DueAt, now)
	l.Status = LoanOverdue
	return true
}

// OverdueDays counts whole days between dueAt and now, floored at zero.
func OverdueDays(dueAt, now time.Time) int {
	if !now.After(dueAt) {
		return 0
	}
	return int(now.Sub(dueAt).Hours() / 24)
}
