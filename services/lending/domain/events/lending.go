package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the lending context. Loan events are written
// in the same transaction as the state change they describe.
const (
	TopicLoanCreated          = "lending.loan.created"
	TopicLoanReturned         = "lending.loan.returned"
	TopicLoanOverdue          = "lending.loan.overdue"
	TopicReservationCompleted = "lending.reservation.completed"
)

// Event is implemented by every lending event payload.
type Event interface {
	Topic() string
}

// LoanCreatedEvent is published when a borrow succeeds.
type LoanCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	LoanID     uuid.UUID `json:"loan_id"`
	UserID     uuid.UUID `json:"user_id"`
	ItemID     uuid.UUID `json:"item_id"`
	DueAt      time.Time `json:"due_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (LoanCreatedEvent) Topic() string { return TopicLoanCreated }

// LoanReturnedEvent is published when a loan is closed.
type LoanReturnedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	LoanID      uuid.UUID `json:"loan_id"`
	UserID      uuid.UUID `json:"user_id"`
	ItemID      uuid.UUID `json:"item_id"`
	OverdueDays int       `json:"overdue_days"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (LoanReturnedEvent) Topic() string { return TopicLoanReturned }

// LoanOverdueEvent is published when the sweep marks a loan overdue.
type LoanOverdueEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	LoanID      uuid.UUID `json:"loan_id"`
	UserID      uuid.UUID `json:"user_id"`
	ItemID      uuid.UUID `json:"item_id"`
	OverdueDays int       `json:"overdue_days"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (LoanOverdueEvent) Topic() string { return TopicLoanOverdue }

// ReservationCompletedEvent is published when a return promotes the earliest
// approved reservation. It records a state change, not a delivery: actual
// notification transport is someone else's job.
type ReservationCompletedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Version       int       `json:"version"`
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	ItemID        uuid.UUID `json:"item_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (ReservationCompletedEvent) Topic() string { return TopicReservationCompleted }
