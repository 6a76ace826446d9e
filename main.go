// resourcebox is a small HTTP service exposing user registration, token-based
// login and CRUD over soft-deleting resources backed by PostgreSQL.
//
// @title Resourcebox API
// @version 1.0
// @description Registration, token-based login and resource storage.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/resourcebox-go/apperror"
	"github.com/user/resourcebox-go/auth"
	"github.com/user/resourcebox-go/config"
	"github.com/user/resourcebox-go/db"
	"github.com/user/resourcebox-go/logger"
	"github.com/user/resourcebox-go/resources"
	"github.com/user/resourcebox-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading it: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Getenv("APP_ENV"))
	slog.SetDefault(log)

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Error("Failed to create database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.EnableExtensions(pool); err != nil {
		log.Error("Failed to enable extensions", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Server.MigrationsPath != "" {
		if err := db.RunMigrations(cfg.DB, cfg.Server.MigrationsPath); err != nil {
			log.Error("Failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Dependency wiring: stores, services, handlers.
	tokens := auth.NewTokenService(*cfg.Auth)
	authService := auth.NewService(users.NewPostgresStore(pool), tokens)
	authHandlers := auth.NewHandlers(authService)

	resourceService := resources.NewService(resources.NewPostgresStore(pool), *cfg.Resource)
	resourceHandler := resources.NewHandler(resourceService)

	r := newRouter(log, tokens, authHandlers, resourceHandler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("Server stopped gracefully")
}

// newRouter assembles the chi router: the global middleware chain, the public
// auth routes, the token-gated resource routes and the JSON 404 fallback.
// Extracted from main so the end-to-end tests can drive the full stack.
func newRouter(log *slog.Logger, tokens *auth.TokenService, authHandlers *auth.Handlers, resourceHandler *resources.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.StructuredLogger(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic-to-JSON middleware so even panics answer in the API's error shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("Panic while handling request", slog.Any("panic", rvr))
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	// Swagger UI; /swagger/doc.json is produced by `swag init`.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public routes
	r.Post("/users", authHandlers.HandleRegister())
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandlers.HandleLogin())
	})

	// Protected routes: the gate annotates every request, the guard inside
	// each handler rejects unauthenticated ones.
	r.Group(func(r chi.Router) {
		r.Use(auth.Annotate(tokens))
		resourceHandler.RegisterRoutes(r)
	})

	// Anything unmatched, any method, answers the same JSON 404.
	notFound := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(apperror.ErrorResponse{Error: "Unknown page!"})
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

// writeError is a local helper for the panic recovery middleware; it keeps
// the recovery path free of handler-level dependencies.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
