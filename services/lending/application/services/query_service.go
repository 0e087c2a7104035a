package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/circulation/pkg/auth"
	pkgcache "github.com/ghuser/circulation/pkg/cache"
	domain "github.com/ghuser/circulation/services/lending/domain"
	"github.com/ghuser/circulation/services/lending/domain/models"
	"github.com/ghuser/circulation/services/lending/domain/repositories"
)

// QueryService serves the read-only surfaces: paginated loan and reservation
// listings, record details, availability, and the aggregate statistics.
// Item availability is read through the Redis cache the worker maintains,
// falling back to Postgres on a miss.
type QueryService struct {
	queries repositories.Queries
	cache   *pkgcache.AvailabilityCache
}

// NewQueryService returns a QueryService over the given read surface and cache.
// cache may be nil; all reads then go straight to the repository.
func NewQueryService(queries repositories.Queries, cache *pkgcache.AvailabilityCache) *QueryService {
	return &QueryService{queries: queries, cache: cache}
}

// Availability returns an item's counter using a read-through cache pattern:
// Redis first, Postgres on miss, then asynchronously warm the cache.
func (s *QueryService) Availability(ctx context.Context, itemID uuid.UUID) (*models.ItemStock, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, itemID); err == nil {
			return &models.ItemStock{
				ItemID:    cached.ItemID,
				Total:     cached.Total,
				Available: cached.Available,
			}, nil
		} else if !errors.Is(err, redis.Nil) {
			// Cache error; fall through to Postgres.
			_ = err
		}
	}

	stock, err := s.queries.GetStock(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), &pkgcache.CachedAvailability{
				ItemID:    stock.ItemID,
				Total:     stock.Total,
				Available: stock.Available,
			})
		}()
	}

	return stock, nil
}

// LoanDetail returns one loan. Only the loan owner or an administrator may
// see it.
func (s *QueryService) LoanDetail(ctx context.Context, loanID uuid.UUID, actor auth.Identity) (*models.Loan, error) {
	loan, err := s.queries.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != actor.UserID && !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return loan, nil
}

// ListLoans returns a page of loans matching filter plus the total count.
func (s *QueryService) ListLoans(ctx context.Context, filter repositories.LoanFilter, opts repositories.QueryOpts) ([]*models.Loan, int, error) {
	loans, total, err := s.queries.ListLoans(ctx, filter, normalize(opts))
	if err != nil {
		return nil, 0, fmt.Errorf("list loans: %w", err)
	}
	return loans, total, nil
}

// ReservationDetail returns one reservation.
func (s *QueryService) ReservationDetail(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.queries.GetReservation(ctx, reservationID)
}

// ListReservations returns a page of reservations matching filter plus the
// total count.
func (s *QueryService) ListReservations(ctx context.Context, filter repositories.ReservationFilter, opts repositories.QueryOpts) ([]*models.Reservation, int, error) {
	reservations, total, err := s.queries.ListReservations(ctx, filter, normalize(opts))
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, total, nil
}

// Stats returns the aggregate circulation snapshot.
func (s *QueryService) Stats(ctx context.Context) (*repositories.Stats, error) {
	stats, err := s.queries.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalize(opts repositories.QueryOpts) repositories.QueryOpts {
	if opts.Limit <= 0 {
		opts.Limit = defaultPageSize
	}
	if opts.Limit > maxPageSize {
		opts.Limit = maxPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
