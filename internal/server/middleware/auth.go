// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// employerIDKey is the context key for storing the authenticated employer ID.
const employerIDKey ContextKey = "employerID"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (EmployerIDGetter, error)
}

// EmployerIDGetter is an interface for extracting the employer ID from token claims.
type EmployerIDGetter interface {
	GetEmployerID() uuid.UUID
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the
// employer ID to the request context. Tokens are issued by the identity
// service; this middleware only verifies them.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), employerIDKey, claims.GetEmployerID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetEmployerID extracts the authenticated employer ID from the request context.
func GetEmployerID(r *http.Request) (uuid.UUID, error) {
	employerID, ok := r.Context().Value(employerIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("employer ID not found in request context")
	}
	return employerID, nil
}

// EmployerIDKey returns the context key for the employer ID (for testing purposes).
func EmployerIDKey() ContextKey {
	return employerIDKey
}
