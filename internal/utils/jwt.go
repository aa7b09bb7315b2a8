package utils

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const tokenTTL = 24 * time.Hour

var ErrNoSecret = errors.New("JWT secret is not configured")

var (
	secretMu  sync.RWMutex
	jwtSecret []byte
)

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	TeamID string `json:"teamId"`
	jwt.RegisteredClaims
}

// SetJWTSecret installs the HMAC key used to sign and validate tokens.
func SetJWTSecret(secret string) {
	secretMu.Lock()
	jwtSecret = []byte(secret)
	secretMu.Unlock()
}

func secret() []byte {
	secretMu.RLock()
	defer secretMu.RUnlock()
	return jwtSecret
}

// GenerateJWT creates a new JWT token for a given user and the team whose
// schedule they work on.
func GenerateJWT(userID, role, teamID string) (string, error) {
	key := secret()
	if len(key) == 0 {
		log.Error().Msg("JWT secret is not configured, cannot generate token")
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		TeamID: teamID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateJWT validates a given token string.
func ValidateJWT(tokenStr string) (*Claims, error) {
	key := secret()
	if len(key) == 0 {
		log.Error().Msg("JWT secret is not configured, cannot validate token")
		return nil, ErrNoSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.TeamID == "" {
		claims.TeamID = claims.UserID
	}
	return claims, nil
}
