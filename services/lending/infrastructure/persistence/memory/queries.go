package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// The Store doubles as the read-only query surface.
var _ repositories.Queries = (*Store)(nil)

func (s *Store) GetStock(_ context.Context, itemID uuid.UUID) (*models.ItemStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stocks[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *Store) GetLoan(_ context.Context, id uuid.UUID) (*models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *Store) ListLoans(_ context.Context, filter repositories.LoanFilter, opts repositories.QueryOpts) ([]*models.Loan, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*models.Loan, 0)
	for _, l := range s.loans {
		if filter.UserID != nil && l.UserID != *filter.UserID {
			continue
		}
		if filter.ItemID != nil && l.ItemID != *filter.ItemID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		cp := *l
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].BorrowedAt.Equal(matched[j].BorrowedAt) {
			return matched[i].BorrowedAt.After(matched[j].BorrowedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return page(matched, opts), len(matched), nil
}

func (s *Store) GetReservation(_ context.Context, id uuid.UUID) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Store) ListReservations(_ context.Context, filter repositories.ReservationFilter, opts repositories.QueryOpts) ([]*models.Reservation, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*models.Reservation, 0)
	for _, r := range s.reservations {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.ItemID != nil && r.ItemID != *filter.ItemID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		cp := *r
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].RequestedAt.Equal(matched[j].RequestedAt) {
			return matched[i].RequestedAt.Before(matched[j].RequestedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return page(matched, opts), len(matched), nil
}

func (s *Store) Stats(_ context.Context) (*repositories.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &repositories.Stats{TotalUsers: len(s.users)}
	activeUsers := make(map[uuid.UUID]struct{})
	for _, l := range s.loans {
		stats.TotalLoans++
		switch l.Status {
		case models.LoanActive:
			stats.ActiveLoans++
		case models.LoanOverdue:
			stats.OverdueLoans++
		case models.LoanReturned:
			stats.ReturnedLoans++
		}
		if l.Open() {
			activeUsers[l.UserID] = struct{}{}
		}
	}
	stats.ActiveUsers = len(activeUsers)
	return stats, nil
}

func page[T any](all []*T, opts repositories.QueryOpts) []*T {
	if opts.Offset >= len(all) {
		return []*T{}
	}
	end := len(all)
	if opts.Limit > 0 && opts.Offset+opts.Limit < end {
		end = opts.Offset + opts.Limit
	}
	return all[opts.Offset:end]
}
