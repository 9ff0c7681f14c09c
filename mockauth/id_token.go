package mockauth

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const idTokenTTL = time.Hour

// IDClaims are the claims carried by the mock ID token.
type IDClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs mock ID tokens with a per-process HMAC key, so a token only verifies against
// the issuer that minted it.
type TokenIssuer struct {
	issuer   string
	audience string
	key      []byte
	now      func() time.Time
}

func NewTokenIssuer(issuer, audience string, now func() time.Time) (*TokenIssuer, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("[mockauth NewTokenIssuer] key generation: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{issuer: issuer, audience: audience, key: key, now: now}, nil
}

// Issue returns a signed ID token for p.
func (t *TokenIssuer) Issue(p Profile) (string, error) {
	issuedAt := t.now()
	claims := IDClaims{
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   p.Subject,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(idTokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("[mockauth Issue] sign: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns its claims.
func (t *TokenIssuer) Parse(raw string) (*IDClaims, error) {
	claims := &IDClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("[mockauth Parse] %w", err)
	}
	return claims, nil
}
