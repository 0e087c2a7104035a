// Package api registers the lending HTTP routes.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/circulation/pkg/app"
	"github.com/ghuser/circulation/pkg/auth"
	"github.com/ghuser/circulation/services/lending/application/handlers"
	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

// LendingRoutes registers lending endpoints on the provided chi router.
// Every route requires a session; approve, reject, stock registration, and
// statistics additionally require the administrator role.
func LendingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		r.Route("/items", func(r chi.Router) {
			r.With(auth.RequireAdmin(a.Logger)).
				Post("/", handlers.NewPostItemStockHandler(svcs).Execute)
			r.Get("/{itemID}/availability", handlers.NewGetItemAvailabilityHandler(svcs).Execute)
		})

		r.Route("/loans", func(r chi.Router) {
			r.Post("/", handlers.NewPostLoanHandler(svcs).Execute)
			r.Get("/", handlers.NewGetLoansHandler(svcs).Execute)
			r.Get("/{loanID}", handlers.NewGetLoanHandler(svcs).Execute)
			r.Post("/{loanID}/return", handlers.NewPostLoanReturnHandler(svcs).Execute)
			r.Post("/{loanID}/renew", handlers.NewPostLoanRenewHandler(svcs).Execute)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", handlers.NewPostReservationHandler(svcs).Execute)
			r.Get("/", handlers.NewGetReservationsHandler(svcs).Execute)
			r.Get("/{reservationID}", handlers.NewGetReservationHandler(svcs).Execute)
			r.Post("/{reservationID}/cancel", handlers.NewPostReservationCancelHandler(svcs).Execute)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin(a.Logger))
				r.Post("/{reservationID}/approve", handlers.NewPostReservationApproveHandler(svcs).Execute)
				r.Post("/{reservationID}/reject", handlers.NewPostReservationRejectHandler(svcs).Execute)
			})
		})

		r.With(auth.RequireAdmin(a.Logger)).
			Get("/stats", handlers.NewGetStatsHandler(svcs).Execute)
	})
}
