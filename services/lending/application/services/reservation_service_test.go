package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
)

func TestReservationService_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("queues a user for an out-of-stock item", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		resID, err := f.resSvc.Reserve(ctx, f.addUser(t), itemID, "please notify")
		require.NoError(t, err)

		res, err := f.store.GetReservation(ctx, resID)
		require.NoError(t, err)
		require.Equal(t, models.ReservationPending, res.Status)
		require.Equal(t, "please notify", res.Note)
	})

	t.Run("rejects while copies remain on the shelf", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 2)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		_, err = f.resSvc.Reserve(ctx, f.addUser(t), itemID, "")
		require.ErrorIs(t, err, domain.ErrItemAvailable)
	})

	t.Run("rejects an unknown item", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.resSvc.Reserve(ctx, f.user, uuid.New(), "")
		require.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("rejects a second live reservation for the same item", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		waiter := f.addUser(t)
		first, err := f.resSvc.Reserve(ctx, waiter, itemID, "")
		require.NoError(t, err)

		_, err = f.resSvc.Reserve(ctx, waiter, itemID, "")
		require.ErrorIs(t, err, domain.ErrDuplicateReservation)

		require.NoError(t, f.resSvc.Approve(ctx, first))
		_, err = f.resSvc.Reserve(ctx, waiter, itemID, "")
		require.ErrorIs(t, err, domain.ErrDuplicateReservation)
	})

	t.Run("permits a new reservation after cancellation", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		waiter := f.addUser(t)
		first, err := f.resSvc.Reserve(ctx, waiter, itemID, "")
		require.NoError(t, err)
		require.NoError(t, f.resSvc.Cancel(ctx, first, f.identity(waiter)))

		f.clock.Advance(time.Minute)
		_, err = f.resSvc.Reserve(ctx, waiter, itemID, "")
		require.NoError(t, err)
	})
}

func TestReservationService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner withdraws a pending reservation", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		waiter := f.addUser(t)
		resID, err := f.resSvc.Reserve(ctx, waiter, itemID, "")
		require.NoError(t, err)

		require.NoError(t, f.resSvc.Cancel(ctx, resID, f.identity(waiter)))

		res, err := f.store.GetReservation(ctx, resID)
		require.NoError(t, err)
		require.Equal(t, models.ReservationCancelled, res.Status)
	})

	t.Run("a stranger may not withdraw it", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		resID, err := f.resSvc.Reserve(ctx, f.addUser(t), itemID, "")
		require.NoError(t, err)

		err = f.resSvc.Cancel(ctx, resID, f.identity(f.addUser(t)))
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("completed reservations cannot be withdrawn", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		loanID, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		waiter := f.addUser(t)
		resID, err := f.resSvc.Reserve(ctx, waiter, itemID, "")
		require.NoError(t, err)
		require.NoError(t, f.resSvc.Approve(ctx, resID))
		require.NoError(t, f.engine.Return(ctx, loanID, f.identity(f.user)))

		err = f.resSvc.Cancel(ctx, resID, f.identity(waiter))
		require.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestReservationService_ApproveReject(t *testing.T) {
	ctx := context.Background()

	t.Run("approve admits a pending reservation", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		resID, err := f.resSvc.Reserve(ctx, f.addUser(t), itemID, "")
		require.NoError(t, err)

		require.NoError(t, f.resSvc.Approve(ctx, resID))

		res, err := f.store.GetReservation(ctx, resID)
		require.NoError(t, err)
		require.Equal(t, models.ReservationApproved, res.Status)
	})

	t.Run("reject cancels with the reviewer's remark", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		resID, err := f.resSvc.Reserve(ctx, f.addUser(t), itemID, "original note")
		require.NoError(t, err)

		require.NoError(t, f.resSvc.Reject(ctx, resID, "item damaged"))

		res, err := f.store.GetReservation(ctx, resID)
		require.NoError(t, err)
		require.Equal(t, models.ReservationCancelled, res.Status)
		require.Equal(t, "item damaged", res.Note)
	})

	t.Run("approve rejects a non-pending reservation", func(t *testing.T) {
		f := newFixture(t)
		itemID := f.addItem(t, 1)
		_, err := f.engine.Borrow(ctx, f.user, itemID)
		require.NoError(t, err)

		resID, err := f.resSvc.Reserve(ctx, f.addUser(t), itemID, "")
		require.NoError(t, err)
		require.NoError(t, f.resSvc.Approve(ctx, resID))

		require.ErrorIs(t, f.resSvc.Approve(ctx, resID), domain.ErrInvalidState)
		require.ErrorIs(t, f.resSvc.Reject(ctx, resID, "too late"), domain.ErrInvalidState)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)
		require.ErrorIs(t, f.resSvc.Approve(ctx, uuid.New()), domain.ErrReservationNotFound)
	})
}

// Approval order does not beat request order: the earliest request wins the
// vacancy even when approved last.
func TestReservationQueue_RequestOrderFairness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.addItem(t, 1)

	loanID, err := f.engine.Borrow(ctx, f.user, itemID)
	require.NoError(t, err)

	early := f.addUser(t)
	late := f.addUser(t)

	earlyRes, err := f.resSvc.Reserve(ctx, early, itemID, "")
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	lateRes, err := f.resSvc.Reserve(ctx, late, itemID, "")
	require.NoError(t, err)

	// Approved in reverse order.
	require.NoError(t, f.resSvc.Approve(ctx, lateRes))
	require.NoError(t, f.resSvc.Approve(ctx, earlyRes))

	require.NoError(t, f.engine.Return(ctx, loanID, f.identity(f.user)))

	winner, err := f.store.GetReservation(ctx, earlyRes)
	require.NoError(t, err)
	require.Equal(t, models.ReservationCompleted, winner.Status)

	loser, err := f.store.GetReservation(ctx, lateRes)
	require.NoError(t, err)
	require.Equal(t, models.ReservationApproved, loser.Status)
}
