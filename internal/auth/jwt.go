package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"book-talk-api/internal/config"
)

var (
	// ErrTokenExpired is returned when a token's exp claim has passed
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for malformed or badly signed tokens
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenManager issues and verifies access and refresh tokens
type TokenManager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewTokenManager creates a TokenManager from the JWT config
func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret:          []byte(cfg.Secret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// RefreshTokenTTL returns the configured refresh token lifetime
func (m *TokenManager) RefreshTokenTTL() time.Duration {
	return m.refreshTokenTTL
}

// GenerateAccessToken issues a signed access token for the user
func (m *TokenManager) GenerateAccessToken(userID uint) (string, error) {
	return m.generate(userID, m.accessTokenTTL)
}

// GenerateRefreshToken issues a signed refresh token for the user. Each
// token carries a unique jti so concurrent logins do not collide.
func (m *TokenManager) GenerateRefreshToken(userID uint) (string, error) {
	return m.generate(userID, m.refreshTokenTTL)
}

func (m *TokenManager) generate(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseUserID verifies the token signature and expiry and returns the
// user id embedded in the subject claim
func (m *TokenManager) ParseUserID(tokenStr string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return uint(userID), nil
}
