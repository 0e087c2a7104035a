package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/pkg/database"
	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// Queries implements repositories.Queries against PostgreSQL. Reads run
// outside any transaction and take no locks; listings are point-in-time
// snapshots.
type Queries struct {
	db *database.Database
}

// NewQueries returns a Queries backed by the given connection pool.
func NewQueries(db *database.Database) *Queries {
	return &Queries{db: db}
}

func (q *Queries) GetStock(ctx context.Context, itemID uuid.UUID) (*models.ItemStock, error) {
	const query = `SELECT item_id, total, available FROM item_stocks WHERE item_id = $1`

	var s models.ItemStock
	err := q.db.DB().QueryRowContext(ctx, query, itemID).Scan(&s.ItemID, &s.Total, &s.Available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item stock: %w", err)
	}
	return &s, nil
}

func (q *Queries) GetLoan(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan, err := scanLoan(q.db.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("query loan: %w", err)
	}
	return loan, nil
}

// ListLoans returns one page of loans matching filter, newest first, and the
// total match count.
func (q *Queries) ListLoans(ctx context.Context, filter repositories.LoanFilter, opts repositories.QueryOpts) ([]*models.Loan, int, error) {
	where, args := buildWhere([]cond{
		{"user_id", filter.UserID},
		{"item_id", filter.ItemID},
		{"status", filter.Status},
	})

	var total int
	countQuery := `SELECT count(*) FROM loans` + where
	if err := q.db.DB().QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count loans: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT `+loanColumns+` FROM loans%s ORDER BY borrowed_at DESC, id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	rows, err := q.db.DB().QueryContext(ctx, listQuery, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	loans := make([]*models.Loan, 0)
	for rows.Next() {
		var (
			l          models.Loan
			returnedAt sql.NullTime
		)
		err := rows.Scan(
			&l.ID, &l.UserID, &l.ItemID,
			&l.BorrowedAt, &l.DueAt, &returnedAt,
			&l.RenewCount, &l.OverdueDays, &l.Status,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan loan: %w", err)
		}
		if returnedAt.Valid {
			t := returnedAt.Time
			l.ReturnedAt = &t
		}
		loans = append(loans, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, total, nil
}

func (q *Queries) GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(q.db.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("query reservation: %w", err)
	}
	return res, nil
}

// ListReservations returns one page of reservations matching filter, oldest
// request first (queue order), and the total match count.
func (q *Queries) ListReservations(ctx context.Context, filter repositories.ReservationFilter, opts repositories.QueryOpts) ([]*models.Reservation, int, error) {
	where, args := buildWhere([]cond{
		{"user_id", filter.UserID},
		{"item_id", filter.ItemID},
		{"status", filter.Status},
	})

	var total int
	countQuery := `SELECT count(*) FROM reservations` + where
	if err := q.db.DB().QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT `+reservationColumns+` FROM reservations%s ORDER BY requested_at, id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	rows, err := q.db.DB().QueryContext(ctx, listQuery, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	reservations := make([]*models.Reservation, 0)
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.ItemID, &res.RequestedAt, &res.Status, &res.Note); err != nil {
			return nil, 0, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations: %w", err)
	}
	return reservations, total, nil
}

// Stats aggregates the circulation snapshot in one round trip per table.
func (q *Queries) Stats(ctx context.Context) (*repositories.Stats, error) {
	const loanQuery = `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'active'),
			count(*) FILTER (WHERE status = 'overdue'),
			count(*) FILTER (WHERE status = 'returned'),
			count(DISTINCT user_id) FILTER (WHERE status IN ('active', 'overdue'))
		FROM loans`

	var s repositories.Stats
	err := q.db.DB().QueryRowContext(ctx, loanQuery).Scan(
		&s.TotalLoans, &s.ActiveLoans, &s.OverdueLoans, &s.ReturnedLoans, &s.ActiveUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("query loan stats: %w", err)
	}

	const userQuery = `SELECT count(*) FROM users`
	if err := q.db.DB().QueryRowContext(ctx, userQuery).Scan(&s.TotalUsers); err != nil {
		return nil, fmt.Errorf("query user count: %w", err)
	}
	return &s, nil
}

// cond is one optional equality filter. value is a typed pointer; nil means
// the column is unconstrained.
type cond struct {
	column string
	value  any
}

// buildWhere renders the non-nil conditions as a WHERE clause with positional
// placeholders, returning the clause (with leading space) and its args.
func buildWhere(conds []cond) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	for _, c := range conds {
		switch v := c.value.(type) {
		case *uuid.UUID:
			if v == nil {
				continue
			}
			args = append(args, *v)
		case *models.LoanStatus:
			if v == nil {
				continue
			}
			args = append(args, *v)
		case *models.ReservationStatus:
			if v == nil {
				continue
			}
			args = append(args, *v)
		default:
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", c.column, len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
