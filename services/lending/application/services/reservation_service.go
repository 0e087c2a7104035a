package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/logger"
	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// ReservationService manages the reservation queue. Promotion of approved
// reservations on return is the Engine's job; this service covers the
// user-facing and administrative lifecycle.
//
// Approve and Reject require an administrator; that check is a precondition
// supplied by the caller (route middleware), not re-verified here.
type ReservationService struct {
	store repositories.Store
	log   logger.Logger
	now   nowFunc
}

// NewReservationService returns a ReservationService over the given store.
func NewReservationService(store repositories.Store, log logger.Logger) *ReservationService {
	return &ReservationService{store: store, log: log, now: utcNow}
}

// Reserve queues userID for itemID. Reservations are only permitted while the
// item is out of stock — with copies on the shelf, borrowing directly is the
// answer — and a user may hold at most one live reservation per item.
func (s *ReservationService) Reserve(ctx context.Context, userID, itemID uuid.UUID, note string) (uuid.UUID, error) {
	now := s.now()
	var resID uuid.UUID

	err := s.store.Within(ctx, func(tx repositories.Tx) error {
		stock, err := tx.Stock().Get(ctx, itemID)
		if err != nil {
			return err
		}
		if stock.Available > 0 {
			return domain.ErrItemAvailable
		}

		exists, err := tx.Reservations().HasActive(ctx, userID, itemID)
		if err != nil {
			return fmt.Errorf("check reservation: %w", err)
		}
		if exists {
			return domain.ErrDuplicateReservation
		}

		res := models.NewReservation(userID, itemID, note, now)
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		resID = res.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.InfoContext(ctx, "reservation created", "reservation_id", resID, "user_id", userID, "item_id", itemID)
	return resID, nil
}

// Cancel withdraws the actor's own pending or approved reservation.
func (s *ReservationService) Cancel(ctx context.Context, reservationID uuid.UUID, actor auth.Identity) error {
	return s.store.Within(ctx, func(tx repositories.Tx) error {
		res, err := tx.Reservations().Get(ctx, reservationID)
		if err != nil {
			return err
		}
		if res.UserID != actor.UserID {
			return domain.ErrForbidden
		}
		if err := res.Cancel(); err != nil {
			return err
		}
		if err := tx.Reservations().Save(ctx, res); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		return nil
	})
}

// Approve admits a pending reservation to the notification queue. It does not
// guarantee stock.
func (s *ReservationService) Approve(ctx context.Context, reservationID uuid.UUID) error {
	return s.store.Within(ctx, func(tx repositories.Tx) error {
		res, err := tx.Reservations().Get(ctx, reservationID)
		if err != nil {
			return err
		}
		if err := res.Approve(); err != nil {
			return err
		}
		if err := tx.Reservations().Save(ctx, res); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		return nil
	})
}

// Reject cancels a pending reservation, recording the reviewer's remark.
func (s *ReservationService) Reject(ctx context.Context, reservationID uuid.UUID, remark string) error {
	return s.store.Within(ctx, func(tx repositories.Tx) error {
		res, err := tx.Reservations().Get(ctx, reservationID)
		if err != nil {
			return err
		}
		if err := res.Reject(remark); err != nil {
			return err
		}
		if err := tx.Reservations().Save(ctx, res); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		return nil
	})
}
