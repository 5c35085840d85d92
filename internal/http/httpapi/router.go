package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pawhaven/internal/http/handlers"
	"pawhaven/internal/infra"
	"pawhaven/internal/middleware"
)

// NewRouter builds the HTTP surface. The payment routes sit behind the
// rate limiter; profile requires a Bearer token.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, country middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.I18N("en", country),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
		r.With(middleware.AuthJWT(cfg.JWTSecret)).Get("/profile", app.AuthProfile)
	})

	r.Route("/api/pets", func(r chi.Router) {
		r.Get("/", app.PetsList)
		r.Get("/{id}", app.PetGet)
		r.Post("/", app.PetsCreate)
	})

	r.Route("/api/payments", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
		r.Post("/createOrder", app.PaymentsCreateOrder)
		r.Post("/verifyPayment", app.PaymentsVerify)
		r.Get("/donations", app.PaymentsDonations)
		r.Get("/stats", app.DonationStats)
	})

	return r
}
