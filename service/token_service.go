// file: service/token_service.go

package service

import (
	"errors"
	"fmt"
	"go-blog-api/config"
	"go-blog-api/logger"
	"go-blog-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret means the process has no signing key. This is a fatal
// configuration problem surfaced at startup, never per request.
var ErrMissingSecret = errors.New("jwt secret key is not configured")

const defaultTokenLifetime = 168 * time.Hour // 7 days

// TokenService issues and verifies the stateless HS256 session tokens.
// There is no server-side session store: a token is invalidated only by
// its expiry.
type TokenService struct {
	secretKey []byte
	expiry    time.Duration
}

// NewTokenService builds a TokenService from the loaded configuration.
// The secret is checked here so misconfiguration fails the process at
// startup instead of turning into per-request 500s.
func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}

	expiry := cfg.Expires
	if expiry <= 0 {
		expiry = defaultTokenLifetime
	}

	return &TokenService{
		secretKey: []byte(cfg.SecretKey),
		expiry:    expiry,
	}, nil
}

// Sign creates a session token carrying the user's id and role.
func (s *TokenService) Sign(userID int, role string) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature and expiry and returns the claims. Any
// failure comes back as an ordinary error for the caller to map to a 401.
func (s *TokenService) Verify(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
