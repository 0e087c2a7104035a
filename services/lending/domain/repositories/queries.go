package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/services/lending/domain/models"
)

// LoanFilter narrows loan listings. Nil fields match everything.
type LoanFilter struct {
	UserID *uuid.UUID
	ItemID *uuid.UUID
	Status *models.LoanStatus
}

// ReservationFilter narrows reservation listings. Nil fields match everything.
type ReservationFilter struct {
	UserID *uuid.UUID
	ItemID *uuid.UUID
	Status *models.ReservationStatus
}

// Stats is the aggregate circulation snapshot.
type Stats struct {
	TotalLoans    int `json:"total_loans"`
	ActiveLoans   int `json:"active_loans"`
	OverdueLoans  int `json:"overdue_loans"`
	ReturnedLoans int `json:"returned_loans"`
	TotalUsers    int `json:"total_users"`
	// ActiveUsers counts users holding at least one open loan.
	ActiveUsers int `json:"active_users"`
}

// Queries is the read-only surface over lending records. Implementations may
// read outside any transaction; listings are point-in-time snapshots.
type Queries interface {
	GetStock(ctx context.Context, itemID uuid.UUID) (*models.ItemStock, error)

	GetLoan(ctx context.Context, id uuid.UUID) (*models.Loan, error)
	ListLoans(ctx context.Context, filter LoanFilter, opts QueryOpts) ([]*models.Loan, int, error)

	GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter, opts QueryOpts) ([]*models.Reservation, int, error)

	Stats(ctx context.Context) (*Stats, error)
}
