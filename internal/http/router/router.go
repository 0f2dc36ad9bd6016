package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swiftship/internal/http/handlers"
	"swiftship/internal/http/middleware"
	"swiftship/internal/logx"
)

// Deps collects everything the router mounts.
type Deps struct {
	Base      *handlers.Handlers
	Bookings  *handlers.BookingHandler
	Drivers   *handlers.DriverHandler
	JWTSecret string
	Logger    logx.Logger
	RateLimit func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(middleware.Observability(d.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit)
	}

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	// public booking lookup and pre-booking driver probe
	r.Get("/bookings/{bookingId}", d.Bookings.GetByID)
	r.Post("/driver/find-available", d.Drivers.FindAvailable)

	auth := middleware.Auth(d.JWTSecret, d.Logger)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(middleware.RoleCustomer))

		r.Post("/bookings", d.Bookings.Create)
		r.Get("/bookings", d.Bookings.List)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(middleware.RoleDriver))

		r.Get("/driver/tasks", d.Drivers.Tasks)
		r.Put("/driver/tasks/{bookingId}/status", d.Drivers.UpdateStatus)
		r.Put("/driver/availability", d.Drivers.SetAvailability)
		r.Put("/driver/profile", d.Drivers.UpdateProfile)
		r.Get("/driver/stats", d.Drivers.Stats)
		r.Get("/driver/history", d.Drivers.History)
		r.Delete("/driver/history", d.Drivers.ClearHistory)
	})

	return r
}
