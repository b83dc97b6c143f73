// Package jwt issues and verifies HMAC-signed tokens for a caller-defined
// claims type.
//
//	type Claims struct {
//	    jwt.RegisteredClaims
//	    Role string `json:"role"`
//	}
//
//	func (c *Claims) Registered() *jwt.RegisteredClaims { return &c.RegisteredClaims }
//
//	svc, err := jwt.NewService(cfg, func() *Claims { return &Claims{} })
//	token, err := svc.Issue(&Claims{Role: "admin"}, "user-123")
//	claims, err := svc.Parse(token) // UnauthorizedError on any failure
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/kbukum/errguard/errors"
)

// RegisteredClaims is re-exported so callers embed it without importing
// golang-jwt directly.
type RegisteredClaims = gojwt.RegisteredClaims

// Claims is what the service signs. Registered returns the embedded
// standard claims so Issue can stamp them.
type Claims interface {
	gojwt.Claims
	Registered() *RegisteredClaims
}

// Messages for rejected tokens.
const (
	MessageExpired   = "Your session has expired. Please log in again."
	MessageMalformed = "The access token is malformed."
	MessageInvalid   = "The access token is invalid."
)

// Service signs and verifies tokens with claims type T.
type Service[T Claims] struct {
	cfg      Config
	newEmpty func() T
	now      func() time.Time
}

// NewService validates cfg and builds a service. newEmpty returns a fresh
// T for parsing.
func NewService[T Claims](cfg *Config, newEmpty func() T) (*Service[T], error) {
	c := *cfg
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	return &Service[T]{cfg: c, newEmpty: newEmpty, now: time.Now}, nil
}

// Issue stamps subject, issuer, audience and time claims onto claims and
// signs them.
func (s *Service[T]) Issue(claims T, subject string) (string, error) {
	now := s.now()
	rc := claims.Registered()
	rc.Subject = subject
	rc.IssuedAt = gojwt.NewNumericDate(now)
	rc.NotBefore = gojwt.NewNumericDate(now)
	rc.ExpiresAt = gojwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL))
	if s.cfg.Issuer != "" {
		rc.Issuer = s.cfg.Issuer
	}
	if s.cfg.Audience != "" {
		rc.Audience = gojwt.ClaimStrings{s.cfg.Audience}
	}
	return s.Sign(claims)
}

// Sign signs claims as given.
func (s *Service[T]) Sign(claims T) (string, error) {
	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and returns its claims. Every failure is an
// UnauthorizedError whose cause is the underlying parse error.
func (s *Service[T]) Parse(tokenString string) (T, error) {
	var zero T
	claims := s.newEmpty()
	_, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return zero, unauthorized(err)
	}
	return claims, nil
}

// Validator adapts the service to auth.TokenValidator's method set.
func (s *Service[T]) Validator() func(string) (any, error) {
	return func(token string) (any, error) {
		return s.Parse(token)
	}
}

func (s *Service[T]) keyFunc(*gojwt.Token) (any, error) {
	return []byte(s.cfg.Secret), nil
}

func (s *Service[T]) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{string(s.cfg.Method)}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	}
	if s.cfg.Leeway > 0 {
		opts = append(opts, gojwt.WithLeeway(s.cfg.Leeway))
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, gojwt.WithAudience(s.cfg.Audience))
	}
	return opts
}

func unauthorized(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return apperrors.Unauthorized(MessageExpired).WithCause(err)
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return apperrors.Unauthorized(MessageMalformed).WithCause(err)
	default:
		return apperrors.Unauthorized(MessageInvalid).WithCause(err)
	}
}
