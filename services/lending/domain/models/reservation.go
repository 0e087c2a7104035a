package models

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/circulation/services/lending/domain"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	// ReservationPending awaits administrative review.
	ReservationPending ReservationStatus = "pending"
	// ReservationApproved is vetted and queued for the next vacancy.
	ReservationApproved ReservationStatus = "approved"
	// ReservationCancelled is terminal: withdrawn by the user or rejected.
	ReservationCancelled ReservationStatus = "cancelled"
	// ReservationCompleted is terminal: the holder was notified of a vacancy.
	ReservationCompleted ReservationStatus = "completed"
)

// CompletionNote is recorded when a return promotes a reservation.
const CompletionNote = "item returned, available for borrowing"

// Reservation is a queued request to be notified when an out-of-stock item
// becomes available. At most one pending or approved reservation may exist
// per (user, item).
type Reservation struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ItemID      uuid.UUID
	RequestedAt time.Time
	Status      ReservationStatus
	Note        string
}

// NewReservation creates a pending reservation.
func NewReservation(userID, itemID uuid.UUID, note string, now time.Time) *Reservation {
	return &Reservation{
		ID:          uuid.New(),
		UserID:      userID,
		ItemID:      itemID,
		RequestedAt: now,
		Status:      ReservationPending,
		Note:        note,
	}
}

// Cancel withdraws a pending or approved reservation.
func (r *Reservation) Cancel() error {
	if r.Status != ReservationPending && r.Status != ReservationApproved {
		return domain.ErrInvalidState
	}
	r.Status = ReservationCancelled
	return nil
}

// Approve marks a pending reservation as vetted. Approval does not guarantee
// stock; it only admits the request to the notification queue.
func (r *Reservation) Approve() error {
	if r.Status != ReservationPending {
		return domain.ErrInvalidState
	}
	r.Status = ReservationApproved
	return nil
}

// Reject cancels a pending reservation, recording the reviewer's remark.
func (r *Reservation) Reject(remark string) error {
	if r.Status != ReservationPending {
		return domain.ErrInvalidState
	}
	r.Status = ReservationCancelled
	if remark != "" {
		r.Note = remark
	}
	return nil
}

// Complete promotes an approved reservation when a copy comes back. Only the
// return-triggered notifier calls this.
func (r *Reservation) Complete() error {
	if r.Status != ReservationApproved {
		return domain.ErrInvalidState
	}
	r.Status = ReservationCompleted
	r.Note = CompletionNote
	return nil
}
