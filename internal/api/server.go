package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/printee/printee/internal/config"
	"github.com/printee/printee/internal/logging"
	"github.com/printee/printee/internal/services"
)

// Server bundles the handlers of the REST surface with their dependencies.
type Server struct {
	logger    logging.Logger
	jwtSecret []byte

	identity  *services.IdentityService
	documents *services.DocumentService
	printer   *services.PrintService
	payments  *services.PaymentService
}

// NewServer constructs the API server.
func NewServer(cfg *config.Config, logger logging.Logger,
	identity *services.IdentityService, documents *services.DocumentService,
	printer *services.PrintService, payments *services.PaymentService) *Server {
	return &Server{
		logger:    logger,
		jwtSecret: []byte(cfg.SecretKey),
		identity:  identity,
		documents: documents,
		printer:   printer,
		payments:  payments,
	}
}

// Routes assembles the router. POST /user is the identity bootstrap and the
// only business route reachable without a session token.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(Metrics)
	r.Use(RateLimit(50, 100))

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/user", func(r chi.Router) {
		r.Post("/", s.CreateUser)

		r.Group(func(r chi.Router) {
			r.Use(s.Authenticate)
			r.Get("/", s.CurrentUser)
			r.Post("/create-payment-intent", s.CreatePaymentIntent)
			r.Post("/confirm-payment", s.ConfirmPayment)
		})
	})

	r.Route("/documents", func(r chi.Router) {
		r.Use(s.Authenticate)
		r.Post("/upload", s.UploadDocument)
		r.Get("/queue", s.Queue)
		r.Get("/download/{id}", s.DownloadDocument)
		r.Post("/print/{id}", s.PrintDocument)
		r.Delete("/{id}", s.DeleteDocument)
	})

	return r
}
