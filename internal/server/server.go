// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/db"
	"github.com/jcabanilla/internhub/internal/form"
	"github.com/jcabanilla/internhub/internal/server/middleware"
	"github.com/jcabanilla/internhub/internal/server/ratelimit"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it.
type Store interface {
	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*db.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, input *db.JobUpdateInput) (*db.Job, error)
	ListJobs(ctx context.Context, opts db.ListJobsOptions) ([]db.Job, int, error)
	SetJobSkills(ctx context.Context, id uuid.UUID, skills []string) error
	ReplaceQuestions(ctx context.Context, jobID uuid.UUID, questions []form.Question) error
	ListQuestions(ctx context.Context, jobID uuid.UUID) ([]db.JobQuestion, error)
	SaveDraft(ctx context.Context, employerID uuid.UUID, id *uuid.UUID, data any) (*db.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*db.Draft, error)
	ListDraftsByEmployer(ctx context.Context, employerID uuid.UUID) ([]db.Draft, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
}

// Enricher runs the post-publish enrichment: skill extraction and match
// rescoring. A nil Enricher disables enrichment.
type Enricher interface {
	ExtractSkills(ctx context.Context, title, description string) ([]string, error)
	RescoreJob(ctx context.Context, jobID uuid.UUID) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	database    *db.DB
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	enricher    Enricher
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	JWTSecret   string
}

// New creates a new server instance
func New(cfg Config, enricher Enricher) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	s := &Server{
		store:    database,
		database: database,
		enricher: enricher,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	s.jwtService = NewJWTService(cfg.JWTSecret)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() http.Handler {
	authRequired := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Employer endpoints (JWT required; tokens come from the identity service)
	mux.Handle("POST /api/employers/post-a-job", authRequired(http.HandlerFunc(s.handlePostJob)))
	mux.Handle("GET /api/employers/drafts", authRequired(http.HandlerFunc(s.handleListDrafts)))
	mux.Handle("PUT /api/job-listings/job-cards/{id}/update", authRequired(http.HandlerFunc(s.handleUpdateJob)))
	mux.Handle("GET /api/job-listings/actionsDraft", authRequired(http.HandlerFunc(s.handleGetDraft)))
	mux.Handle("DELETE /api/job-listings/actionsDraft", authRequired(http.HandlerFunc(s.handleDeleteDraft)))

	// Public browsing endpoints
	mux.HandleFunc("GET /api/job-listings/job-cards", s.handleListJobCards)
	mux.HandleFunc("GET /api/job-listings/job-cards/{id}", s.handleGetJobCard)
	mux.HandleFunc("GET /api/job-listings/job-cards/{id}/questions", s.handleGetJobQuestions)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	})
}
