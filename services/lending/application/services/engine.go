package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/pkg/logger"
	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/events"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// Policy holds the circulation rules the engine enforces.
type Policy struct {
	BorrowPeriod   time.Duration
	RenewPeriod    time.Duration
	MaxActiveLoans int
	MaxRenewals    int
}

// DefaultPolicy mirrors the library's standard circulation rules: 30-day
// loans, one 15-day renewal, five concurrent loans per user.
func DefaultPolicy() Policy {
	return Policy{
		BorrowPeriod:   30 * 24 * time.Hour,
		RenewPeriod:    15 * 24 * time.Hour,
		MaxActiveLoans: 5,
		MaxRenewals:    1,
	}
}

// Engine orchestrates borrow, return, renew, and the overdue sweep. It is the
// sole writer of availability counters and loan records; every mutation runs
// inside one store transaction so the counter and the ledger cannot diverge.
//
// Identity is always an explicit argument. The engine trusts the
// (userID, isAdmin) pair it is handed and does not re-authenticate.
type Engine struct {
	store  repositories.Store
	policy Policy
	log    logger.Logger
	now    nowFunc
}

// NewEngine returns an Engine over the given store.
func NewEngine(store repositories.Store, policy Policy, log logger.Logger) *Engine {
	return &Engine{
		store:  store,
		policy: policy,
		log:    log,
		now:    utcNow,
	}
}

// RegisterItem creates the availability record for a newly catalogued item,
// with all copies on the shelf. Called by the catalog collaborator at item
// creation time.
func (e *Engine) RegisterItem(ctx context.Context, itemID uuid.UUID, total int) error {
	stock, err := models.NewItemStock(itemID, total)
	if err != nil {
		return err
	}
	return e.store.Within(ctx, func(tx repositories.Tx) error {
		if err := tx.Stock().Create(ctx, stock); err != nil {
			return fmt.Errorf("register item %s: %w", itemID, err)
		}
		return nil
	})
}

// Borrow opens a loan of itemID for userID.
//
// Preconditions, checked in order under the item's stock lock: the user
// exists and is not disabled; the user has no overdue loans; the user holds
// fewer than MaxActiveLoans open loans; the user has no open loan for this
// item; a copy is available. The counter decrement and the loan insert commit
// together or not at all.
func (e *Engine) Borrow(ctx context.Context, userID, itemID uuid.UUID) (uuid.UUID, error) {
	now := e.now()
	var loanID uuid.UUID

	err := e.store.Within(ctx, func(tx repositories.Tx) error {
		stock, err := tx.Stock().Get(ctx, itemID)
		if err != nil {
			return err
		}

		user, err := tx.Users().Get(ctx, userID)
		if err != nil {
			return err
		}
		if user.Disabled {
			return domain.ErrUserDisabled
		}

		overdue, err := tx.Loans().CountOverdueByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("count overdue loans: %w", err)
		}
		if overdue > 0 {
			return domain.ErrOverdueLoanExists
		}

		open, err := tx.Loans().CountOpenByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("count open loans: %w", err)
		}
		if open >= e.policy.MaxActiveLoans {
			return domain.ErrLoanLimitReached
		}

		held, err := tx.Loans().HasOpen(ctx, userID, itemID)
		if err != nil {
			return fmt.Errorf("check open loan: %w", err)
		}
		if held {
			return domain.ErrDuplicateLoan
		}

		if err := stock.Decrement(); err != nil {
			return err
		}
		if err := tx.Stock().Save(ctx, stock); err != nil {
			return fmt.Errorf("save stock: %w", err)
		}

		loan := models.NewLoan(userID, itemID, now, e.policy.BorrowPeriod)
		if err := tx.Loans().Create(ctx, loan); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}
		loanID = loan.ID

		return tx.Publish(ctx, events.LoanCreatedEvent{
			EventID:    uuid.New(),
			Version:    1,
			LoanID:     loan.ID,
			UserID:     userID,
			ItemID:     itemID,
			DueAt:      loan.DueAt,
			OccurredAt: now,
		})
	})
	if err != nil {
		return uuid.Nil, err
	}

	e.log.InfoContext(ctx, "loan opened", "loan_id", loanID, "user_id", userID, "item_id", itemID)
	return loanID, nil
}

// Return closes a loan. The actor must be the loan owner or an administrator.
// Overdue loans are returnable; overdue days are recomputed here from the due
// date, not taken from the sweep's snapshot. Closing the loan, incrementing
// the counter, and promoting the earliest approved reservation happen in one
// transaction, in that order.
func (e *Engine) Return(ctx context.Context, loanID uuid.UUID, actor auth.Identity) error {
	now := e.now()

	err := e.store.Within(ctx, func(tx repositories.Tx) error {
		loan, err := tx.Loans().Get(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status == models.LoanReturned {
			return domain.ErrAlreadyReturned
		}
		if loan.UserID != actor.UserID && !actor.IsAdmin {
			return domain.ErrForbidden
		}

		if err := loan.Close(now); err != nil {
			return err
		}
		if err := tx.Loans().Save(ctx, loan); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}

		stock, err := tx.Stock().Get(ctx, loan.ItemID)
		if err != nil {
			return err
		}
		if err := stock.Increment(); err != nil {
			return err
		}
		if err := tx.Stock().Save(ctx, stock); err != nil {
			return fmt.Errorf("save stock: %w", err)
		}

		// One promotion per vacancy. The freed copy is not held for the
		// promoted reservation; anyone may borrow it first.
		res, err := tx.Reservations().EarliestApproved(ctx, loan.ItemID)
		if err != nil {
			return fmt.Errorf("find approved reservation: %w", err)
		}
		if res != nil {
			if err := res.Complete(); err != nil {
				return err
			}
			if err := tx.Reservations().Save(ctx, res); err != nil {
				return fmt.Errorf("save reservation: %w", err)
			}
			if err := tx.Publish(ctx, events.ReservationCompletedEvent{
				EventID:       uuid.New(),
				Version:       1,
				ReservationID: res.ID,
				UserID:        res.UserID,
				ItemID:        res.ItemID,
				OccurredAt:    now,
			}); err != nil {
				return err
			}
		}

		return tx.Publish(ctx, events.LoanReturnedEvent{
			EventID:     uuid.New(),
			Version:     1,
			LoanID:      loan.ID,
			UserID:      loan.UserID,
			ItemID:      loan.ItemID,
			OverdueDays: loan.OverdueDays,
			OccurredAt:  now,
		})
	})
	if err != nil {
		return err
	}

	e.log.InfoContext(ctx, "loan returned", "loan_id", loanID, "actor_id", actor.UserID)
	return nil
}

// Renew extends a loan's due date by the renewal period. Only the owner may
// renew — not administrators on their behalf. Overdue loans must be returned
// first. The counter is untouched.
func (e *Engine) Renew(ctx context.Context, loanID uuid.UUID, actor auth.Identity) error {
	err := e.store.Within(ctx, func(tx repositories.Tx) error {
		loan, err := tx.Loans().Get(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.UserID != actor.UserID {
			return domain.ErrForbidden
		}
		if err := loan.Renew(e.policy.RenewPeriod, e.policy.MaxRenewals); err != nil {
			return err
		}
		if err := tx.Loans().Save(ctx, loan); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.log.InfoContext(ctx, "loan renewed", "loan_id", loanID, "user_id", actor.UserID)
	return nil
}

// RunOverdueSweep transitions expired active loans to overdue and returns how
// many it transitioned. Each loan is processed in its own transaction: a
// failure is logged and skipped, never aborting the rest of the sweep, and a
// loan returned between the scan and its re-read is left alone.
//
// The sweep is idempotent. Overdue days are recomputed from the due date on
// every run, and loans already overdue are not re-selected, so running twice
// in the same window yields the same end state.
func (e *Engine) RunOverdueSweep(ctx context.Context) (int, error) {
	now := e.now()

	var ids []uuid.UUID
	err := e.store.Within(ctx, func(tx repositories.Tx) error {
		var err error
		ids, err = tx.Loans().ListExpiredActive(ctx, now)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("list expired loans: %w", err)
	}

	count := 0
	for _, id := range ids {
		marked := false
		err := e.store.Within(ctx, func(tx repositories.Tx) error {
			loan, err := tx.Loans().Get(ctx, id)
			if err != nil {
				return err
			}
			if !loan.MarkOverdue(now) {
				return nil // returned (or renewed past due) since the scan
			}
			if err := tx.Loans().Save(ctx, loan); err != nil {
				return fmt.Errorf("save loan: %w", err)
			}
			marked = true
			return tx.Publish(ctx, events.LoanOverdueEvent{
				EventID:     uuid.New(),
				Version:     1,
				LoanID:      loan.ID,
				UserID:      loan.UserID,
				ItemID:      loan.ItemID,
				OverdueDays: loan.OverdueDays,
				OccurredAt:  now,
			})
		})
		if err != nil {
			e.log.ErrorContext(ctx, "overdue sweep: loan skipped", "loan_id", id, "error", err)
			continue
		}
		if marked {
			count++
		}
	}

	e.log.InfoContext(ctx, "overdue sweep complete", "scanned", len(ids), "transitioned", count)
	return count, nil
}
