package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
)

// reservationRepository implements repositories.ReservationRepository on one
// open transaction.
type reservationRepository struct {
	tx *sql.Tx
}

const reservationColumns = `id, user_id, item_id, requested_at, status, note`

func scanReservation(row *sql.Row) (*models.Reservation, error) {
	var res models.Reservation
	err := row.Scan(&res.ID, &res.UserID, &res.ItemID, &res.RequestedAt, &res.Status, &res.Note)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Get reads a reservation FOR UPDATE.
func (r *reservationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

	res, err := scanReservation(r.tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("query reservation: %w", err)
	}
	return res, nil
}

// Create inserts a new reservation. The partial unique index on live
// reservations maps duplicate (user, item) pairs to ErrDuplicateReservation.
func (r *reservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	const q = `
		INSERT INTO reservations (id, user_id, item_id, requested_at, status, note)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.tx.ExecContext(ctx, q,
		res.ID, res.UserID, res.ItemID, res.RequestedAt, res.Status, res.Note,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateReservation
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// Save writes the reservation back. Callers hold the row lock from Get.
func (r *reservationRepository) Save(ctx context.Context, res *models.Reservation) error {
	const q = `
		UPDATE reservations
		SET status = $2, note = $3, updated_at = now()
		WHERE id = $1`

	result, err := r.tx.ExecContext(ctx, q, res.ID, res.Status, res.Note)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// HasActive reports whether a pending or approved reservation exists for
// (user, item).
func (r *reservationRepository) HasActive(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE user_id = $1 AND item_id = $2 AND status IN ('pending', 'approved')
		)`

	var exists bool
	if err := r.tx.QueryRowContext(ctx, q, userID, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active reservation: %w", err)
	}
	return exists, nil
}

// EarliestApproved returns the longest-waiting approved reservation for the
// item, locked, or (nil, nil) when the queue is empty. RequestedAt order, not
// approval order, decides who is first.
func (r *reservationRepository) EarliestApproved(ctx context.Context, itemID uuid.UUID) (*models.Reservation, error) {
	q := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE item_id = $1 AND status = 'approved'
		ORDER BY requested_at, id
		LIMIT 1
		FOR UPDATE`

	res, err := scanReservation(r.tx.QueryRowContext(ctx, q, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query earliest approved reservation: %w", err)
	}
	return res, nil
}
