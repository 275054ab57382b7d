// Package server provides the HTTP REST API for the job board.
package server

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/server/middleware"
)

// Claims represents JWT claims carrying the employer ID.
type Claims struct {
	EmployerID uuid.UUID `json:"employer_id"`
	jwt.RegisteredClaims
}

// GetEmployerID returns the employer ID from the claims.
// This implements the middleware.EmployerIDGetter interface.
func (c *Claims) GetEmployerID() uuid.UUID {
	return c.EmployerID
}

// JWTService verifies tokens issued by the identity service. This server
// never issues tokens; it shares a signing secret with the issuer.
type JWTService struct {
	secret string
}

// NewJWTService creates a JWT service with the given shared secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: secret}
}

// AsTokenValidator returns a TokenValidator adapter for this JWTService.
// This allows the JWTService to be used with middleware without creating import cycles.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return &jwtServiceValidator{service: s}
}

type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.EmployerIDGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})

	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, fmt.Errorf("invalid token signature: %w", err)
		}
		if err == jwt.ErrTokenExpired {
			return nil, fmt.Errorf("token expired: %w", err)
		}
		if err == jwt.ErrTokenMalformed {
			return nil, fmt.Errorf("malformed token: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.EmployerID == uuid.Nil {
		return nil, fmt.Errorf("token has no employer_id claim")
	}

	return claims, nil
}
