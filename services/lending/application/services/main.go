package services

import (
	"time"

	"github.com/ghuser/circulation/pkg/app"
	"github.com/ghuser/circulation/pkg/cache"
	"github.com/ghuser/circulation/services/lending/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the lending
// bounded context. It wires domain services with their infrastructure
// implementations.
type Services struct {
	Engine       *Engine
	Reservations *ReservationService
	Query        *QueryService
}

// New wires all lending application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	store := postgres.NewStore(a.Db, a.EventBus)
	queries := postgres.NewQueries(a.Db)

	var availability *cache.AvailabilityCache
	if a.Redis != nil {
		availability = cache.NewAvailabilityCache(a.Redis)
	}

	policy := DefaultPolicy()
	if a.Cfg != nil {
		policy = Policy{
			BorrowPeriod:   time.Duration(a.Cfg.BorrowPeriodDays) * 24 * time.Hour,
			RenewPeriod:    time.Duration(a.Cfg.RenewPeriodDays) * 24 * time.Hour,
			MaxActiveLoans: a.Cfg.MaxActiveLoans,
			MaxRenewals:    a.Cfg.MaxRenewals,
		}
	}

	return &Services{
		Engine:       NewEngine(store, policy, a.Logger),
		Reservations: NewReservationService(store, a.Logger),
		Query:        NewQueryService(queries, availability),
	}
}

// nowFunc lets tests pin the clock.
type nowFunc func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
