// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"trimmers-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "trimmers-api"

var signingMethod = jwt.SigningMethodHS256

// Claims is the JWT payload carried in the token cookie.
type Claims struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager mints and parses HS256 tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager signing with secret.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns how long minted tokens stay valid.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Mint issues a signed token for actor.
func (m *TokenManager) Mint(actor model.Actor) (string, error) {
	now := m.now()
	claims := Claims{
		Name:   actor.Name,
		UserID: actor.UserID,
		Role:   actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the actor it names.
func (m *TokenManager) Parse(token string) (model.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return model.Actor{}, err
	}

	if claims.UserID == "" {
		return model.Actor{}, errors.New("token has no user id")
	}

	return model.Actor{UserID: claims.UserID, Name: claims.Name, Role: claims.Role}, nil
}
