package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
)

// loanRepository implements repositories.LoanRepository on one open
// transaction.
type loanRepository struct {
	tx *sql.Tx
}

const loanColumns = `id, user_id, item_id, borrowed_at, due_at, returned_at, renew_count, overdue_days, status`

func scanLoan(row *sql.Row) (*models.Loan, error) {
	var (
		l          models.Loan
		returnedAt sql.NullTime
	)
	err := row.Scan(
		&l.ID, &l.UserID, &l.ItemID,
		&l.BorrowedAt, &l.DueAt, &returnedAt,
		&l.RenewCount, &l.OverdueDays, &l.Status,
	)
	if err != nil {
		return nil, err
	}
	if returnedAt.Valid {
		t := returnedAt.Time
		l.ReturnedAt = &t
	}
	return &l, nil
}

// Get reads a loan FOR UPDATE.
func (r *loanRepository) Get(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	q := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`

	loan, err := scanLoan(r.tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("query loan: %w", err)
	}
	return loan, nil
}

// Create inserts a new loan. The partial unique index on open loans maps
// duplicate (user, item) pairs to ErrDuplicateLoan.
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	const q = `
		INSERT INTO loans (id, user_id, item_id, borrowed_at, due_at, returned_at, renew_count, overdue_days, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.tx.ExecContext(ctx, q,
		loan.ID, loan.UserID, loan.ItemID,
		loan.BorrowedAt, loan.DueAt, nullTime(loan.ReturnedAt),
		loan.RenewCount, loan.OverdueDays, loan.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateLoan
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// Save writes the loan back. Callers hold the row lock from Get.
func (r *loanRepository) Save(ctx context.Context, loan *models.Loan) error {
	const q = `
		UPDATE loans
		SET due_at = $2, returned_at = $3, renew_count = $4, overdue_days = $5, status = $6, updated_at = now()
		WHERE id = $1`

	res, err := r.tx.ExecContext(ctx, q,
		loan.ID, loan.DueAt, nullTime(loan.ReturnedAt),
		loan.RenewCount, loan.OverdueDays, loan.Status,
	)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update loan rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

// CountOpenByUser counts the user's loans in {active, overdue}.
func (r *loanRepository) CountOpenByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	const q = `
		SELECT count(*) FROM loans
		WHERE user_id = $1 AND status IN ('active', 'overdue')`

	var n int
	if err := r.tx.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count open loans: %w", err)
	}
	return n, nil
}

// CountOverdueByUser counts the user's overdue loans.
func (r *loanRepository) CountOverdueByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	const q = `
		SELECT count(*) FROM loans
		WHERE user_id = $1 AND status = 'overdue'`

	var n int
	if err := r.tx.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count overdue loans: %w", err)
	}
	return n, nil
}

// HasOpen reports whether the user already holds an open loan for the item.
func (r *loanRepository) HasOpen(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM loans
			WHERE user_id = $1 AND item_id = $2 AND status IN ('active', 'overdue')
		)`

	var exists bool
	if err := r.tx.QueryRowContext(ctx, q, userID, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check open loan: %w", err)
	}
	return exists, nil
}

// ListExpiredActive returns IDs of active loans due before now. No locks are
// taken; the sweep re-reads each loan under its own lock before marking it.
func (r *loanRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	const q = `
		SELECT id FROM loans
		WHERE status = 'active' AND due_at < $1
		ORDER BY due_at`

	rows, err := r.tx.QueryContext(ctx, q, now)
	if err != nil {
		return nil, fmt.Errorf("query expired loans: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan expired loan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired loans: %w", err)
	}
	return ids, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
