package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Votocon/internal/api/middleware"
	"Votocon/internal/api/routes"
	"Votocon/internal/auth"
	"Votocon/internal/config"
	"Votocon/internal/core/posts"
	"Votocon/internal/core/users"
	"Votocon/internal/core/votes"
	"Votocon/internal/db/migrations"
	postgresRepo "Votocon/internal/db/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgresRepo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	slog.Info("connected to database")

	// Run migrations
	if err := migrations.Up(db.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	slog.Info("migrations completed successfully")

	issuer, err := newTokenIssuer(cfg)
	if err != nil {
		log.Fatal("Failed to configure token signing:", err)
	}
	slog.Info("token signing configured", "alg", issuer.Algorithm(), "ttl", cfg.TokenTTL)

	// Initialize repositories and services
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	voteRepo := postgresRepo.NewVoteRepository(db)

	userService := users.NewUserService(userRepo, issuer)
	postService := posts.NewPostService(postRepo)
	voteService := votes.NewVoteService(voteRepo, postgresRepo.NewPostChecker(db))

	authMiddleware := middleware.NewAuthMiddleware(issuer)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestSize(cfg.MaxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limiting per client IP
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Stop()
	r.Use(rateLimiter.Middleware)

	routes.RegisterUserRoutes(r, userService)
	routes.RegisterPostRoutes(r, postService, authMiddleware)
	routes.RegisterVoteRoutes(r, voteService, authMiddleware)
	routes.RegisterWellKnownRoutes(r, issuer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("Failed to write health response: %v", err)
		}
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Votocon API starting", "port", cfg.Port, "dev", cfg.IsDevEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// newTokenIssuer signs with ES256 when a private JWK is configured, HS256 otherwise
func newTokenIssuer(cfg *config.Config) (*auth.TokenIssuer, error) {
	opts := []auth.Option{auth.WithTTL(cfg.TokenTTL)}

	if cfg.JWTPrivateJWK != "" {
		key, keyID, err := auth.ParseES256PrivateJWK([]byte(cfg.JWTPrivateJWK))
		if err != nil {
			return nil, err
		}
		opts = append(opts, auth.WithES256Key(key, keyID))
	}

	return auth.NewTokenIssuer([]byte(cfg.JWTSecret), opts...)
}
