package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"eligue-assistance/internal/config"
	"eligue-assistance/internal/handlers"
	"eligue-assistance/internal/middleware"
	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository/memory"
	"eligue-assistance/internal/service"
)

func New(log zerolog.Logger, store *memory.Store, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	// Health
	r.Get("/healthz", handlers.Health())

	// Repos
	userRepo := memory.NewUserRepo(store)
	ticketRepo := memory.NewTicketRepo(store)
	invoiceRepo := memory.NewInvoiceRepo(store)
	appRepo := memory.NewApplicationRepo(store)

	// Services + handlers
	authSvc := service.NewAuthService(userRepo, cfg.SessionSecret)
	ticketSvc := service.NewTicketService(ticketRepo, userRepo, appRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, ticketRepo)
	reportSvc := service.NewReportService(userRepo, ticketRepo)

	ah := handlers.NewAuthHTTP(authSvc, userRepo)
	th := handlers.NewTicketHTTP(ticketSvc, invoiceSvc)
	ih := handlers.NewInvoiceHTTP(invoiceSvc)
	uh := handlers.NewUserHTTP(userRepo, appRepo)
	ch := handlers.NewApplicationHTTP(appRepo)
	rh := handlers.NewReportsHTTP(reportSvc)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
	})

	r.Route("/api/tickets", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", th.List())
		r.Post("/", th.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", th.Get())
			r.With(middleware.RequireRoles(models.RoleAdmin)).Post("/assign", th.Assign())
			r.With(middleware.RequireRoles(models.RoleTechnician)).Post("/close", th.Close())
			r.With(middleware.RequireRoles(models.RoleAdmin)).Post("/validate", th.Validate())
		})
	})

	r.Route("/api/invoices", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRoles(models.RoleAdmin))
		r.Get("/", ih.List())
		r.Patch("/{id}/amount", ih.UpdateAmount())
		r.Get("/{id}/document", ih.Document())
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRoles(models.RoleAdmin))
		r.Get("/", uh.List())
		r.Post("/", uh.Create())
		r.Put("/{id}", uh.Update())
		r.Delete("/{id}", uh.Delete())
	})

	r.Route("/api/applications", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", ch.List())
		r.With(middleware.RequireRoles(models.RoleAdmin)).Post("/", ch.Add())
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRoles(models.RoleAdmin))
		r.Get("/technicians", rh.Technicians())
	})

	return r
}
