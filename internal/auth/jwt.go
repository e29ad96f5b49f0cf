package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is stamped into every service key.
const Issuer = "partstock"

// Claims represents the service key claims.
type Claims struct {
	Label string `json:"label,omitempty"`
	jwt.RegisteredClaims
}

// DefaultKeyExpiry is the lifetime of keys issued without an explicit one.
const DefaultKeyExpiry = 365 * 24 * time.Hour

// GenerateKey signs a service key for table clients. A zero ttl uses
// DefaultKeyExpiry.
func GenerateKey(secret, label string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultKeyExpiry
	}

	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("generating JTI: %w", err)
	}

	now := time.Now()
	claims := Claims{
		Label: label,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing key: %w", err)
	}
	return signed, nil
}

// ValidateKey parses and validates a service key, returning the claims.
func ValidateKey(secret, key string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(key, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing key: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid key")
	}

	return claims, nil
}

// generateJTI creates a random key ID.
func generateJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
