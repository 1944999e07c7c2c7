package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/roamstack/tourism-api/internal/config"
	"github.com/roamstack/tourism-api/internal/database"
	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/handlers"
	mw "github.com/roamstack/tourism-api/internal/http/middleware"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/platform/cache"
	"github.com/roamstack/tourism-api/internal/platform/events"
	"github.com/roamstack/tourism-api/internal/platform/mailer"
	"github.com/roamstack/tourism-api/internal/platform/payments"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
	"github.com/roamstack/tourism-api/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Auth.JWTSecret == "" {
		logger.Error("ACCESS_TOKEN_SECRET is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var bus events.Publisher
	if natsBus, err := events.NewNATSEventBus(cfg.NATS.URL); err != nil {
		logger.Warn("NATS unavailable, events disabled", "error", err)
		bus = events.NoopBus{}
	} else {
		bus = natsBus
	}
	defer bus.Close()

	var mailSvc mailer.Service
	if cfg.Email.DevMode {
		mailSvc = mailer.NewDevMailer()
	} else {
		mailSvc = mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	gateway := payments.NewStripeGateway(cfg.Stripe.SecretKey)

	// Repositories
	usersRepo := postgres.NewUsersRepo(pool)
	bookingsRepo := postgres.NewBookingsRepo(pool)
	guidesRepo := postgres.NewGuidesRepo(pool)
	packagesRepo := postgres.NewPackagesRepo(pool)
	storiesRepo := postgres.NewStoriesRepo(pool)
	applicationsRepo := postgres.NewApplicationsRepo(pool)
	paymentsRepo := postgres.NewPaymentsRepo(pool)
	registrationsRepo := postgres.NewRegistrationsRepo(pool)
	statsRepo := postgres.NewStatsRepo(pool)

	// Services
	bookingSvc := service.NewBookingService(bookingsRepo, bus, mailSvc)

	// Handlers
	authH := handlers.NewAuthHandler(usersRepo, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	usersH := handlers.NewUsersHandler(usersRepo)
	guidesH := handlers.NewGuidesHandler(guidesRepo, storiesRepo)
	packagesH := handlers.NewPackagesHandler(packagesRepo)
	storiesH := handlers.NewStoriesHandler(storiesRepo)
	bookingsH := handlers.NewBookingsHandler(bookingSvc)
	applicationsH := handlers.NewApplicationsHandler(applicationsRepo, bus)
	registrationsH := handlers.NewRegistrationsHandler(registrationsRepo, bus, mailSvc)
	paymentsH := handlers.NewPaymentsHandler(paymentsRepo, gateway, bus, cfg.Stripe.Currency)
	statsH := handlers.NewStatsHandler(statsRepo)

	requireAuth := mw.RequireAuth(cfg.Auth.JWTSecret)
	requireAdmin := mw.RequireRole(usersRepo, domain.RoleAdmin)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	if store, err := cache.NewRedisStore(cfg.Redis.URL); err != nil {
		logger.Warn("Redis unavailable, idempotency disabled", "error", err)
	} else {
		r.Use(mw.Idempotency(store))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tourism management is running"))
	})

	// Credential issuance
	r.Post("/jwt", authH.IssueToken)

	// Users
	r.With(requireAuth).Get("/users", usersH.List)
	r.Post("/users", usersH.Register)
	r.With(requireAuth).Delete("/users/{id}", usersH.Delete)
	r.Put("/update-profile/{email}", usersH.UpdateProfile)
	r.With(requireAuth, requireAdmin).Patch("/users/admin/{id}", usersH.PromoteAdmin)
	r.Patch("/users/role", usersH.SetRole)
	r.With(requireAuth).Get("/users/admin/{email}", authH.AdminCheck)
	r.With(requireAuth).Get("/users/guide/{email}", authH.GuideCheck)

	// Admin dashboard
	r.With(requireAuth, requireAdmin).Get("/admin/stats", statsH.AdminStats)

	// Tour guides
	r.Get("/tour-guides", guidesH.List)
	r.Post("/tour-guides", guidesH.Create)
	r.Get("/tourGuide/{id}", guidesH.Profile)
	r.Get("/random-guides", guidesH.Random)

	// Packages
	r.Get("/packages", packagesH.List)
	r.Post("/packages", packagesH.Create)
	r.Get("/packages/{id}", packagesH.Get)
	r.Get("/random-packages", packagesH.Random)

	// Stories
	r.Get("/stories", storiesH.ListByEmail)
	r.Get("/stories/random", storiesH.Random)
	r.Get("/stories/{id}", storiesH.Get)
	r.Get("/allStories", storiesH.ListAll)
	r.Post("/stories", storiesH.Create)
	r.Put("/stories/{id}", storiesH.Update)
	r.Patch("/stories/{id}/remove-image", storiesH.RemoveImage)
	r.Delete("/stories/{id}", storiesH.Delete)

	// Bookings
	r.Get("/bookings", bookingsH.List)
	r.Post("/bookings", bookingsH.Create)
	r.Patch("/bookings/{id}", bookingsH.UpdateStatus)
	r.Delete("/bookings/{id}", bookingsH.Delete)
	r.Get("/assignedTours/{guideName}", bookingsH.AssignedTours)
	r.With(requireAuth).Patch("/updateTourStatus/{id}", bookingsH.UpdateTourStatus)

	// Guide applications
	r.Get("/guideApplication", applicationsH.List)
	r.Post("/guideApplication", applicationsH.Submit)
	r.Delete("/guideApplication", applicationsH.Withdraw)

	// Event registrations
	r.Post("/event-registrations", registrationsH.Register)

	// Payments
	r.Post("/create-payment-intent", paymentsH.CreateIntent)
	r.Post("/payments", paymentsH.Record)
	r.With(requireAuth).Get("/payments", paymentsH.History)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down tourism api...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting tourism api", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
