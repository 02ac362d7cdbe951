// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"flock/config"
	"flock/internal/domain/service"
)

// sessionTTL is the absolute lifetime of a session token. Tokens are never
// revoked before expiry; logout only clears the client-side cookie.
const sessionTTL = 30 * 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface
// using HS256-signed JWTs.
type jwtService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService. The signing secret is
// process-wide configuration, read once here.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return newJWTService(cfg.SecretKey.Token, time.Now), nil
}

// newJWTService allows injecting a clock so issuance and expiry are
// deterministic in tests.
func newJWTService(secret string, now func() time.Time) *jwtService {
	return &jwtService{
		secret: secret,
		ttl:    sessionTTL,
		now:    now,
	}
}

// Issue creates a signed token carrying the subject id, issued-at, and an
// absolute expiry 30 days out.
func (s *jwtService) Issue(subjectID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Validate verifies signature and expiry and returns the embedded subject id.
func (s *jwtService) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return []byte(s.secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid session token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, errors.New("session token missing subject")
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid subject id in session token")
	}

	return subjectID, nil
}
