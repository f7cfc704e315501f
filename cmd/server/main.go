package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ani232003/IRCTC/config"
	"github.com/ani232003/IRCTC/internal/dataset"
	"github.com/ani232003/IRCTC/internal/handler"
	"github.com/ani232003/IRCTC/internal/identity"
	"github.com/ani232003/IRCTC/internal/middleware"
	"github.com/ani232003/IRCTC/internal/repository"
	"github.com/ani232003/IRCTC/internal/service"
	"github.com/ani232003/IRCTC/pkg/cache"
	"github.com/ani232003/IRCTC/pkg/db"
	"github.com/ani232003/IRCTC/pkg/pnr"
)

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// ── Load the station/train dataset ──────────────────
	ds, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	log.Printf("✓ Dataset loaded: %d stations, %d trains", len(ds.Stations), len(ds.Trains))

	// ── Connect to PostgreSQL ───────────────────────────
	pgPool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer pgPool.Close()
	log.Println("✓ PostgreSQL connected")

	if err := repository.EnsureSchema(ctx, pgPool); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	// ── Connect to Redis ────────────────────────────────
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ── Initialize layers ───────────────────────────────
	ticketRepo := repository.NewTicketRepository(pgPool)
	userRepo := repository.NewUserRepository(pgPool)

	bookingSvc := service.NewBookingService(ds, ticketRepo, pnr.New())
	identitySvc := identity.NewService(userRepo, redisClient, cfg.Session.TTL)

	searchHandler := handler.NewSearchHandler(ds)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	authHandler := handler.NewAuthHandler(identitySvc)

	// ── Setup router ────────────────────────────────────
	router := mux.NewRouter()

	// Health check endpoint.
	router.HandleFunc("/health", healthHandler(pgPool, redisClient)).Methods(http.MethodGet)

	// API v1 routes.
	api := router.PathPrefix("/api/v1").Subrouter()
	// Search and reference data (no sign-in required)
	api.HandleFunc("/search", searchHandler.Search).Methods(http.MethodPost)
	api.HandleFunc("/stations", searchHandler.Stations).Methods(http.MethodGet)
	api.HandleFunc("/trains/{number}", searchHandler.TrainDetails).Methods(http.MethodGet)
	// Accounts and sessions
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	// Booking and tickets (sign-in required)
	booked := api.NewRoute().Subrouter()
	booked.Use(middleware.RequireAuth(identitySvc))
	booked.HandleFunc("/bookings/quote", bookingHandler.Quote).Methods(http.MethodPost)
	booked.HandleFunc("/payments", bookingHandler.Confirm).Methods(http.MethodPost)
	booked.HandleFunc("/tickets", bookingHandler.Tickets).Methods(http.MethodGet)
	booked.HandleFunc("/tickets/{pnr}", bookingHandler.Ticket).Methods(http.MethodGet)
	booked.HandleFunc("/tickets/{pnr}", bookingHandler.Cancel).Methods(http.MethodDelete)

	// Wrap with logging, panic recovery, and CORS for browser clients.
	wrapped := middleware.CORS(middleware.RequestLogger(middleware.Recoverer(router)))

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in a goroutine so we can listen for shutdown signals.
	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Server.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}

// HealthResponse represents the /health endpoint response.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// healthHandler returns an HTTP handler that checks PG and Redis connectivity.
func healthHandler(pgPool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Services: make(map[string]string),
		}

		if err := db.HealthCheck(r.Context(), pgPool); err != nil {
			resp.Status = "degraded"
			resp.Services["postgres"] = "unhealthy: " + err.Error()
		} else {
			resp.Services["postgres"] = "healthy"
		}

		if err := cache.HealthCheck(r.Context(), redisClient); err != nil {
			resp.Status = "degraded"
			resp.Services["redis"] = "unhealthy: " + err.Error()
		} else {
			resp.Services["redis"] = "healthy"
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
