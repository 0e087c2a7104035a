// Package repositories defines the persistence ports for the lending context.
// The domain layer owns these interfaces; infrastructure implements them.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/services/lending/domain/events"
	"github.com/ghuser/circulation/services/lending/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// Store is the transactional boundary for all lending mutations. Everything
// inside fn commits or rolls back as a unit, counter mutations included.
//
// Lock discipline inside a transaction: repository Get methods take row locks
// (FOR UPDATE or equivalent), and the stock row is the per-item serialization
// point; any operation that touches an item's counter or its reservation
// queue must hold that item's stock lock when it does so. Loan locks are
// always taken before stock locks, never after, so borrow/return/sweep cannot
// deadlock each other.
type Store interface {
	Within(ctx context.Context, fn func(tx Tx) error) error
}

// Tx groups the repository views bound to one open transaction.
type Tx interface {
	Stock() StockRepository
	Loans() LoanRepository
	Reservations() ReservationRepository
	Users() UserDirectory

	// Publish stages evt for delivery in the same transaction as the state
	// change it describes (transactional outbox). Events are dropped, not
	// delivered, if the transaction rolls back.
	Publish(ctx context.Context, evt events.Event) error
}

// StockRepository persists availability counters.
type StockRepository interface {
	// Get reads the item's counter and takes its row lock, serializing the
	// caller against all other mutations of the same item.
	Get(ctx context.Context, itemID uuid.UUID) (*models.ItemStock, error)
	Create(ctx context.Context, stock *models.ItemStock) error
	Save(ctx context.Context, stock *models.ItemStock) error
}

// LoanRepository persists loans.
type LoanRepository interface {
	// Get reads a loan and takes its row lock.
	Get(ctx context.Context, id uuid.UUID) (*models.Loan, error)
	Create(ctx context.Context, loan *models.Loan) error
	Save(ctx context.Context, loan *models.Loan) error

	// CountOpenByUser counts the user's loans in {active, overdue}.
	CountOpenByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// CountOverdueByUser counts the user's overdue loans.
	CountOverdueByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// HasOpen reports whether the user already holds an open loan for the item.
	HasOpen(ctx context.Context, userID, itemID uuid.UUID) (bool, error)

	// ListExpiredActive returns IDs of active loans due before now. The sweep
	// re-reads each loan under its own lock before transitioning it.
	ListExpiredActive(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

// ReservationRepository persists reservations.
type ReservationRepository interface {
	// Get reads a reservation and takes its row lock.
	Get(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	Create(ctx context.Context, res *models.Reservation) error
	Save(ctx context.Context, res *models.Reservation) error

	// HasActive reports whether a pending or approved reservation exists for
	// (user, item).
	HasActive(ctx context.Context, userID, itemID uuid.UUID) (bool, error)

	// EarliestApproved returns the approved reservation with the oldest
	// RequestedAt for the item, locked, or (nil, nil) when the queue is empty.
	// Callers must hold the item's stock lock for a consistent read.
	EarliestApproved(ctx context.Context, itemID uuid.UUID) (*models.Reservation, error)
}

// UserDirectory is the read-only port onto the identity collaborator's user
// records. Returns domain.ErrUserNotFound for unknown IDs.
type UserDirectory interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.User, error)
}
