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

// stockRepository implements repositories.StockRepository on one open
// transaction.
type stockRepository struct {
	tx *sql.Tx
}

// Get reads the counter FOR UPDATE. The lock held here is what serializes
// concurrent borrows, returns and reservations of the same item.
func (r *stockRepository) Get(ctx context.Context, itemID uuid.UUID) (*models.ItemStock, error) {
	const q = `
		SELECT item_id, total, available
		FROM item_stocks
		WHERE item_id = $1
		FOR UPDATE`

	var s models.ItemStock
	err := r.tx.QueryRowContext(ctx, q, itemID).Scan(&s.ItemID, &s.Total, &s.Available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item stock: %w", err)
	}
	return &s, nil
}

// Create inserts a new counter. Returns ErrItemExists when the item is
// already registered.
func (r *stockRepository) Create(ctx context.Context, stock *models.ItemStock) error {
	const q = `
		INSERT INTO item_stocks (item_id, total, available)
		VALUES ($1, $2, $3)`

	if _, err := r.tx.ExecContext(ctx, q, stock.ItemID, stock.Total, stock.Available); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrItemExists
		}
		return fmt.Errorf("insert item stock: %w", err)
	}
	return nil
}

// Save writes the counter back. Callers hold the row lock from Get.
func (r *stockRepository) Save(ctx context.Context, stock *models.ItemStock) error {
	const q = `
		UPDATE item_stocks
		SET total = $2, available = $3, updated_at = now()
		WHERE item_id = $1`

	res, err := r.tx.ExecContext(ctx, q, stock.ItemID, stock.Total, stock.Available)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item stock rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
