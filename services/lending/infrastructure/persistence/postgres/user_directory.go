package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
)

// userDirectory implements repositories.UserDirectory over the users table.
// Reads are plain (no lock): the lending rules only consult the disabled
// flag, they never write user rows.
type userDirectory struct {
	tx *sql.Tx
}

func (d *userDirectory) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const q = `SELECT id, disabled FROM users WHERE id = $1`

	var u models.User
	err := d.tx.QueryRowContext(ctx, q, userID).Scan(&u.ID, &u.Disabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}
