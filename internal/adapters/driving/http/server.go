package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/accountd/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	refreshTTL time.Duration

	// Services
	authService driving.AuthService
	userService driving.UserService

	// Infrastructure
	db    Pinger // PostgreSQL health check
	redis Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host       string
	Port       int
	Version    string
	RefreshTTL time.Duration
	CORSOrigin string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:       "0.0.0.0",
		Port:       8080,
		Version:    "dev",
		RefreshTTL: 24 * time.Hour,
		CORSOrigin: "*",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	db Pinger,
	redis Pinger, // can be nil
) *Server {
	s := &Server{
		router:      http.NewServeMux(),
		version:     cfg.Version,
		refreshTTL:  cfg.RefreshTTL,
		authService: authService,
		userService: userService,
		db:          db,
		redis:       redis,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.buildHandler(cfg.CORSOrigin),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// buildHandler wires routes and the outer middleware chain
func (s *Server) buildHandler(corsOrigin string) http.Handler {
	s.setupRoutes()

	var handler http.Handler = s.router
	handler = NewCORSMiddleware([]string{corsOrigin}).Handler(handler)
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)
	return handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Registration (public)
	s.router.HandleFunc("POST /users", s.handleRegister)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /auth/login", s.handleLogin)
	s.router.HandleFunc("GET /auth/refresh", s.handleRefresh)

	// Auth endpoints (authenticated)
	s.router.Handle("GET /auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))

	// User endpoints
	s.router.Handle("GET /users/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
