// Package memory holds an in-memory implementation of the lending
// repository ports. It backs service-level tests and local development
// without PostgreSQL.
//
// Within serializes all transactions behind one mutex and mutates a deep
// copy of the state, swapping it in only on success, so callers see the
// same all-or-nothing and per-item serialization guarantees the SQL store
// provides.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/events"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// Store implements repositories.Store and repositories.Queries in memory.
type Store struct {
	mu sync.Mutex

	stocks       map[uuid.UUID]*models.ItemStock
	loans        map[uuid.UUID]*models.Loan
	reservations map[uuid.UUID]*models.Reservation
	users        map[uuid.UUID]*models.User

	// Published holds events from committed transactions, in commit order.
	Published []events.Event
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		stocks:       make(map[uuid.UUID]*models.ItemStock),
		loans:        make(map[uuid.UUID]*models.Loan),
		reservations: make(map[uuid.UUID]*models.Reservation),
		users:        make(map[uuid.UUID]*models.User),
	}
}

// AddUser seeds a directory entry.
func (s *Store) AddUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

// Within runs fn against a copy of the state and commits the copy on success.
func (s *Store) Within(ctx context.Context, fn func(tx repositories.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		stocks:       cloneMap(s.stocks),
		loans:        cloneMap(s.loans),
		reservations: cloneMap(s.reservations),
		users:        s.users,
	}
	if err := fn(tx); err != nil {
		return err
	}

	s.stocks = tx.stocks
	s.loans = tx.loans
	s.reservations = tx.reservations
	s.Published = append(s.Published, tx.staged...)
	return nil
}

type cloneable interface {
	models.ItemStock | models.Loan | models.Reservation
}

func cloneMap[T cloneable](src map[uuid.UUID]*T) map[uuid.UUID]*T {
	dst := make(map[uuid.UUID]*T, len(src))
	for k, v := range src {
		cp := *v
		dst[k] = &cp
	}
	return dst
}

// memTx is one open transaction over copied state.
type memTx struct {
	stocks       map[uuid.UUID]*models.ItemStock
	loans        map[uuid.UUID]*models.Loan
	reservations map[uuid.UUID]*models.Reservation
	users        map[uuid.UUID]*models.User
	staged       []events.Event
}

func (t *memTx) Stock() repositories.StockRepository              { return (*stockView)(t) }
func (t *memTx) Loans() repositories.LoanRepository               { return (*loanView)(t) }
func (t *memTx) Reservations() repositories.ReservationRepository { return (*reservationView)(t) }
func (t *memTx) Users() repositories.UserDirectory                { return (*userView)(t) }

func (t *memTx) Publish(_ context.Context, evt events.Event) error {
	t.staged = append(t.staged, evt)
	return nil
}

type stockView memTx

func (v *stockView) Get(_ context.Context, itemID uuid.UUID) (*models.ItemStock, error) {
	s, ok := v.stocks[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *s
	return &cp, nil
}

func (v *stockView) Create(_ context.Context, stock *models.ItemStock) error {
	if _, ok := v.stocks[stock.ItemID]; ok {
		return domain.ErrItemExists
	}
	cp := *stock
	v.stocks[stock.ItemID] = &cp
	return nil
}

func (v *stockView) Save(_ context.Context, stock *models.ItemStock) error {
	if _, ok := v.stocks[stock.ItemID]; !ok {
		return domain.ErrItemNotFound
	}
	cp := *stock
	v.stocks[stock.ItemID] = &cp
	return nil
}

type loanView memTx

func (v *loanView) Get(_ context.Context, id uuid.UUID) (*models.Loan, error) {
	l, ok := v.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	cp := *l
	return &cp, nil
}

func (v *loanView) Create(_ context.Context, loan *models.Loan) error {
	for _, l := range v.loans {
		if l.UserID == loan.UserID && l.ItemID == loan.ItemID && l.Open() {
			return domain.ErrDuplicateLoan
		}
	}
	cp := *loan
	v.loans[loan.ID] = &cp
	return nil
}

func (v *loanView) Save(_ context.Context, loan *models.Loan) error {
	if _, ok := v.loans[loan.ID]; !ok {
		return domain.ErrLoanNotFound
	}
	cp := *loan
	v.loans[loan.ID] = &cp
	return nil
}

func (v *loanView) CountOpenByUser(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, l := range v.loans {
		if l.UserID == userID && l.Open() {
			n++
		}
	}
	return n, nil
}

func (v *loanView) CountOverdueByUser(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, l := range v.loans {
		if l.UserID == userID && l.Status == models.LoanOverdue {
			n++
		}
	}
	return n, nil
}

func (v *loanView) HasOpen(_ context.Context, userID, itemID uuid.UUID) (bool, error) {
	for _, l := range v.loans {
		if l.UserID == userID && l.ItemID == itemID && l.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (v *loanView) ListExpiredActive(_ context.Context, now time.Time) ([]uuid.UUID, error) {
	type expired struct {
		id    uuid.UUID
		dueAt time.Time
	}
	var found []expired
	for _, l := range v.loans {
		if l.Status == models.LoanActive && l.DueAt.Before(now) {
			found = append(found, expired{l.ID, l.DueAt})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].dueAt.Before(found[j].dueAt) })

	ids := make([]uuid.UUID, len(found))
	for i, f := range found {
		ids[i] = f.id
	}
	return ids, nil
}

type reservationView memTx

func (v *reservationView) Get(_ context.Context, id uuid.UUID) (*models.Reservation, error) {
	r, ok := v.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (v *reservationView) Create(_ context.Context, res *models.Reservation) error {
	for _, r := range v.reservations {
		if r.UserID == res.UserID && r.ItemID == res.ItemID && live(r.Status) {
			return domain.ErrDuplicateReservation
		}
	}
	cp := *res
	v.reservations[res.ID] = &cp
	return nil
}

func (v *reservationView) Save(_ context.Context, res *models.Reservation) error {
	if _, ok := v.reservations[res.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	cp := *res
	v.reservations[res.ID] = &cp
	return nil
}

func (v *reservationView) HasActive(_ context.Context, userID, itemID uuid.UUID) (bool, error) {
	for _, r := range v.reservations {
		if r.UserID == userID && r.ItemID == itemID && live(r.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (v *reservationView) EarliestApproved(_ context.Context, itemID uuid.UUID) (*models.Reservation, error) {
	var earliest *models.Reservation
	for _, r := range v.reservations {
		if r.ItemID != itemID || r.Status != models.ReservationApproved {
			continue
		}
		if earliest == nil || r.RequestedAt.Before(earliest.RequestedAt) {
			earliest = r
		}
	}
	if earliest == nil {
		return nil, nil
	}
	cp := *earliest
	return &cp, nil
}

func live(s models.ReservationStatus) bool {
	return s == models.ReservationPending || s == models.ReservationApproved
}

type userView memTx

func (v *userView) Get(_ context.Context, userID uuid.UUID) (*models.User, error) {
	u, ok := v.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
