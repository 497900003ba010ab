package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/eventhub/backend/internal/auth"
	"github.com/eventhub/backend/internal/config"
	"github.com/eventhub/backend/internal/events"
	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/registrations"
	"github.com/eventhub/backend/internal/reviews"
	"github.com/eventhub/backend/internal/store"
	"github.com/eventhub/backend/internal/users"
	"github.com/eventhub/backend/internal/validation"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongo connect")
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("mongo indexes")
	}

	userStore := store.NewUserStore(db)
	eventStore := store.NewEventStore(db)
	registrationStore := store.NewRegistrationStore(db)
	reviewStore := store.NewReviewStore(db)

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()
	states := auth.NewStateStore(rdb)

	// ── Auth ─────────────────────────────────────────────────
	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is required")
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	google := auth.NewGoogleClient(auth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		CallbackURL:  cfg.GoogleCallbackURL,
	})

	// ── Handlers ─────────────────────────────────────────────
	userHandler := users.NewHandler(userStore, tokens, google, states, logger)
	eventHandler := events.NewHandler(eventStore, logger)
	registrationHandler := registrations.NewHandler(registrationStore, logger)
	reviewHandler := reviews.NewHandler(reviewStore, logger)

	requireAuth := middleware.RequireAuth(tokens)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server is running!"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Get("/{id}", eventHandler.Get)
			r.With(requireAuth, validation.Require(validation.CreateEvent)).Post("/", eventHandler.Create)
			r.With(validation.Require(validation.UpdateEvent)).Put("/{id}", eventHandler.Update)
			r.With(requireAuth).Delete("/{id}", eventHandler.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.With(validation.Require(validation.CreateUser)).Post("/", userHandler.Create)
			r.With(validation.Require(validation.Login)).Post("/login", userHandler.Login)
			r.With(validation.Require(validation.UpdateUser)).Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
			r.Get("/google", userHandler.GoogleLogin)
			r.Get("/google/redirect", userHandler.GoogleCallback)
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Get("/{eventId}", registrationHandler.ListByEvent)
			r.With(validation.Require(validation.CreateRegistration)).Post("/", registrationHandler.Create)
			r.With(validation.Require(validation.UpdateRegistration)).Put("/{id}", registrationHandler.Update)
			r.Delete("/{id}", registrationHandler.Delete)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/{eventId}", reviewHandler.ListByEvent)
			r.With(requireAuth, validation.Require(validation.CreateReview)).Post("/", reviewHandler.Create)
			r.With(requireAuth, validation.Require(validation.UpdateReview)).Put("/{id}", reviewHandler.Update)
			r.With(requireAuth).Delete("/{id}", reviewHandler.Delete)
		})
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
