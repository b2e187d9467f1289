// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Issuer   = "recshelf-api"
	Audience = "recshelf-client"
)

// ErrInvalidToken covers every reason a presented token is rejected.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the registered claims carried by an access token. Subject holds
// the user id in decimal.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID decodes the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}
	return uint(id), nil
}

// Issued is a freshly signed access token.
type Issued struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue creates a token for userID with a random jti.
func (m *TokenManager) Issue(userID uint) (Issued, error) {
	if len(m.secret) == 0 {
		return Issued{}, errors.New("JWT secret not configured")
	}

	now := m.now()
	exp := now.Add(m.ttl)
	jti := uuid.NewString()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Issued{}, fmt.Errorf("sign token: %w", err)
	}
	return Issued{Token: signed, JTI: jti, ExpiresAt: exp}, nil
}

// Parse verifies signature, algorithm, issuer, audience and expiry.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
