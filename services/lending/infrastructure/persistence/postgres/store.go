// Package postgres implements the lending repository ports against
// PostgreSQL. Row locks on the item_stocks table are the per-item
// serialization boundary; loan and reservation rows are locked individually.
// Partial unique indexes backstop the one-open-loan and one-live-reservation
// invariants that the services also pre-check.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/circulation/pkg/database"
	pkgevents "github.com/ghuser/circulation/pkg/events"
	"github.com/ghuser/circulation/services/lending/domain/events"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// Store implements repositories.Store against PostgreSQL. Domain events
// staged with Tx.Publish are written through the event bus's transactional
// publisher, so they commit and roll back with the business rows (outbox).
type Store struct {
	db  *database.Database
	bus *pkgevents.EventBus
}

// NewStore returns a Store backed by the given connection pool and event bus.
// bus may be nil (tests, migrations); Publish is then a no-op.
func NewStore(db *database.Database, bus *pkgevents.EventBus) *Store {
	return &Store{db: db, bus: bus}
}

// Within runs fn in one transaction.
func (s *Store) Within(ctx context.Context, fn func(tx repositories.Tx) error) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(&lendingTx{tx: tx, bus: s.bus})
	})
}

// lendingTx binds the repository views and the event publisher to one open
// transaction.
type lendingTx struct {
	tx  *sql.Tx
	bus *pkgevents.EventBus
}

func (t *lendingTx) Stock() repositories.StockRepository {
	return &stockRepository{tx: t.tx}
}

func (t *lendingTx) Loans() repositories.LoanRepository {
	return &loanRepository{tx: t.tx}
}

func (t *lendingTx) Reservations() repositories.ReservationRepository {
	return &reservationRepository{tx: t.tx}
}

func (t *lendingTx) Users() repositories.UserDirectory {
	return &userDirectory{tx: t.tx}
}

// Publish stages evt on its topic within this transaction.
func (t *lendingTx) Publish(ctx context.Context, evt events.Event) error {
	if t.bus == nil {
		return nil
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_version", "1")

	pub, err := t.bus.NewTxPublisher(t.tx)
	if err != nil {
		return fmt.Errorf("create tx publisher: %w", err)
	}
	if err := pub.Publish(evt.Topic(), msg); err != nil {
		return fmt.Errorf("publish %s: %w", evt.Topic(), err)
	}
	return nil
}
