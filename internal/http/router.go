package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/auth"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/middleware"
)

// Authorizer decides whether the caller may perform an action.
type Authorizer interface {
	Authorize(ctx context.Context, id auth.Identity, a auth.Action) error
}

type Deps struct {
	Logger *log.Logger

	Catalog  Catalog
	Bookings Bookings
	Policy   Authorizer

	RequestTimeout   time.Duration
	CORSAllowOrigins []string
}

func NewRouter(d Deps) http.Handler {
	catalog := NewCatalogHandler(d.Catalog, d.Logger)
	orders := NewOrderHandler(d.Bookings, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.CORS(d.CORSAllowOrigins))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(chimw.StripSlashes)
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}
	r.Use(middleware.Identity)

	r.Get("/health", healthHandler)

	r.Route("/api/station", func(r chi.Router) {
		resource(r, d, "train-types", catalog.ListTrainTypes, catalog.CreateTrainType,
			catalog.GetTrainType, catalog.UpdateTrainType, catalog.DeleteTrainType)
		resource(r, d, "trains", catalog.ListTrains, catalog.CreateTrain,
			catalog.GetTrain, catalog.UpdateTrain, catalog.DeleteTrain)
		resource(r, d, "stations", catalog.ListStations, catalog.CreateStation,
			catalog.GetStation, catalog.UpdateStation, catalog.DeleteStation)
		resource(r, d, "routes", catalog.ListRoutes, catalog.CreateRoute,
			catalog.GetRoute, catalog.UpdateRoute, catalog.DeleteRoute)
		resource(r, d, "crews", catalog.ListCrews, catalog.CreateCrew,
			catalog.GetCrew, catalog.UpdateCrew, catalog.DeleteCrew)
		resource(r, d, "journeys", catalog.ListJourneys, catalog.CreateJourney,
			catalog.GetJourney, catalog.UpdateJourney, catalog.DeleteJourney)

		// orders are immutable once created
		r.Route("/orders", func(r chi.Router) {
			r.Use(requirePermission(d, "orders"))
			r.Get("/", orders.ListOrders)
			r.Post("/", orders.CreateOrder)
			r.Get("/{id}", orders.GetOrder)
		})
	})

	return r
}

func resource(r chi.Router, d Deps, name string, list, create, get, update, del http.HandlerFunc) {
	r.Route("/"+name, func(r chi.Router) {
		r.Use(requirePermission(d, name))
		r.Get("/", list)
		r.Post("/", create)
		r.Get("/{id}", get)
		r.Put("/{id}", update)
		r.Patch("/{id}", update)
		r.Delete("/{id}", del)
	})
}

// requirePermission checks the caller against the permission class of the
// resource before the handler runs.
func requirePermission(d Deps, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.FromContext(r.Context())
			if err := d.Policy.Authorize(r.Context(), id, auth.Action{Resource: resource, Method: r.Method}); err != nil {
				writeDomainError(w, d.Logger, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "booking-service",
	})
}
