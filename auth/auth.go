// Package auth issues and verifies the admin bearer tokens. There is a
// single admin identity guarded by one configured password.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTTL = 24 * time.Hour

var ErrNotConfigured = errors.New("auth: JWT secret and an admin password (or bcrypt hash) are required")

type Config struct {
	AdminPassword string
	// AdminPasswordHash is a bcrypt hash; when set it is used instead of AdminPassword.
	AdminPasswordHash string
	JWTSecret         string
	TTL               time.Duration
	Now               func() time.Time
}

// Claims are the token payload: a static role plus the issue time in epoch milliseconds.
type Claims struct {
	Role      string `json:"role"`
	Timestamp int64  `json:"timestamp"`
	jwt.RegisteredClaims
}

// IsAdmin is the authorization check callers must make; verification alone only proves authenticity.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == string(models.RoleAdmin)
}

type Authenticator struct {
	cfg    Config
	logger zerolog.Logger
}

func New(cfg Config) (*Authenticator, error) {
	if cfg.JWTSecret == "" || (cfg.AdminPassword == "" && cfg.AdminPasswordHash == "") {
		return nil, ErrNotConfigured
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Authenticator{
		cfg:    cfg,
		logger: log.With().Str("component", "auth").Logger(),
	}, nil
}

// IssueToken signs an admin token when password matches the configured secret.
func (a *Authenticator) IssueToken(password string) (string, error) {
	if !a.passwordMatches(password) {
		return "", errs.NewInvalidPasswordError()
	}

	now := a.cfg.Now()
	claims := Claims{
		Role:      string(models.RoleAdmin),
		Timestamp: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (a *Authenticator) passwordMatches(password string) bool {
	if password == "" {
		return false
	}
	if a.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.AdminPassword)) == 1
}

// VerifyToken returns the claims of the request's bearer token, or nil when
// the header is absent or malformed, or the token is expired, tampered with
// or signed with another secret. The caller still has to check the role.
func (a *Authenticator) VerifyToken(r *http.Request) *Claims {
	token, ok := BearerToken(r)
	if !ok {
		return nil
	}
	claims, err := a.ParseToken(token)
	if err != nil {
		a.logger.Debug().Err(err).Msg("Token verification failed")
		return nil
	}
	return claims
}

func (a *Authenticator) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte(a.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.cfg.Now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
