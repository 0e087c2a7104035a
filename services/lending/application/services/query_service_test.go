package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

func newQueryFixture(t *testing.T) (*fixture, *QueryService) {
	t.Helper()
	f := newFixture(t)
	return f, NewQueryService(f.store, nil)
}

func TestQueryService_Availability(t *testing.T) {
	f, q := newQueryFixture(t)
	ctx := context.Background()

	itemID := f.addItem(t, 2)
	_, err := f.engine.Borrow(ctx, f.user, itemID)
	require.NoError(t, err)

	stock, err := q.Availability(ctx, itemID)
	require.NoError(t, err)
	require.Equal(t, 2, stock.Total)
	require.Equal(t, 1, stock.Available)

	_, err = q.Availability(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestQueryService_LoanDetail(t *testing.T) {
	f, q := newQueryFixture(t)
	ctx := context.Background()

	loanID, err := f.engine.Borrow(ctx, f.user, f.addItem(t, 1))
	require.NoError(t, err)

	t.Run("owner sees the loan", func(t *testing.T) {
		loan, err := q.LoanDetail(ctx, loanID, f.identity(f.user))
		require.NoError(t, err)
		require.Equal(t, loanID, loan.ID)
	})

	t.Run("administrator sees the loan", func(t *testing.T) {
		_, err := q.LoanDetail(ctx, loanID, f.admin)
		require.NoError(t, err)
	})

	t.Run("a stranger does not", func(t *testing.T) {
		_, err := q.LoanDetail(ctx, loanID, f.identity(f.addUser(t)))
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown loan", func(t *testing.T) {
		_, err := q.LoanDetail(ctx, uuid.New(), f.admin)
		require.ErrorIs(t, err, domain.ErrLoanNotFound)
	})
}

func TestQueryService_ListLoans(t *testing.T) {
	f, q := newQueryFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.engine.Borrow(ctx, f.user, f.addItem(t, 1))
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}
	_, err := f.engine.Borrow(ctx, f.addUser(t), f.addItem(t, 1))
	require.NoError(t, err)

	t.Run("filters by user", func(t *testing.T) {
		loans, total, err := q.ListLoans(ctx, loanFilterByUser(f.user), repositories.QueryOpts{})
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Len(t, loans, 3)
	})

	t.Run("paginates", func(t *testing.T) {
		loans, total, err := q.ListLoans(ctx, loanFilterByUser(f.user), repositories.QueryOpts{Limit: 2})
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Len(t, loans, 2)

		rest, _, err := q.ListLoans(ctx, loanFilterByUser(f.user), repositories.QueryOpts{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
	})

	t.Run("newest first", func(t *testing.T) {
		loans, _, err := q.ListLoans(ctx, loanFilterByUser(f.user), repositories.QueryOpts{})
		require.NoError(t, err)
		for i := 1; i < len(loans); i++ {
			require.False(t, loans[i-1].BorrowedAt.Before(loans[i].BorrowedAt))
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		status := models.LoanOverdue
		_, total, err := q.ListLoans(ctx, repositories.LoanFilter{Status: &status}, repositories.QueryOpts{})
		require.NoError(t, err)
		require.Zero(t, total)
	})

	t.Run("caps the page size", func(t *testing.T) {
		_, _, err := q.ListLoans(ctx, repositories.LoanFilter{}, repositories.QueryOpts{Limit: 10_000})
		require.NoError(t, err)
	})
}

func TestQueryService_Stats(t *testing.T) {
	f, q := newQueryFixture(t)
	ctx := context.Background()

	loanID, err := f.engine.Borrow(ctx, f.user, f.addItem(t, 1))
	require.NoError(t, err)
	_, err = f.engine.Borrow(ctx, f.user, f.addItem(t, 1))
	require.NoError(t, err)
	require.NoError(t, f.engine.Return(ctx, loanID, f.identity(f.user)))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalLoans)
	require.Equal(t, 1, stats.ActiveLoans)
	require.Zero(t, stats.OverdueLoans)
	require.Equal(t, 1, stats.ReturnedLoans)
	require.Equal(t, 1, stats.ActiveUsers)
	require.Equal(t, 2, stats.TotalUsers)
}
