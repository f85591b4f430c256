package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// TokenManager handles issuing and validating access JWTs.
type TokenManager struct {
	secret       []byte
	ttl          time.Duration
	refreshAhead time.Duration
}

// NewTokenManager builds a new manager. refreshAheadMinutes is the window
// before expiry in which clients are told to refresh.
func NewTokenManager(secret string, ttlMinutes, refreshAheadMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	if refreshAheadMinutes <= 0 {
		refreshAheadMinutes = 5
	}
	return &TokenManager{
		secret:       []byte(secret),
		ttl:          time.Duration(ttlMinutes) * time.Minute,
		refreshAhead: time.Duration(refreshAheadMinutes) * time.Minute,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID    string      `json:"sub"`
	Role      domain.Role `json:"role"`
	CompanyID string      `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ShouldRefresh reports whether a valid token is close enough to expiry that
// the client should exchange its refresh token. This is the only place the
// expiry buffer is defined.
func (tm *TokenManager) ShouldRefresh(claims *Claims, now time.Time) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Sub(now) <= tm.refreshAhead
}
