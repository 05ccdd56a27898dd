package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/election-service/internal/domain"
)

// ErrInvalidToken is the single failure returned by VerifyToken. Signature
// failure, expiry, and malformed payloads deliberately collapse into one
// undifferentiated error: exposing which check failed would give a client
// probing the boundary an oracle. Do not split this into distinct errors.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager issues and verifies signed identity tokens. The secret is
// fixed at construction and read-only afterwards; instances are safe for
// concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager around a provisioned secret. ttl is the
// default token lifetime; non-positive values fall back to 24 hours.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims describes the JWT payload.
type Claims struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token embedding the identity, expiring ttl from now.
// Pass ttl <= 0 to use the manager's default lifetime.
func (tm *TokenManager) IssueToken(identity domain.Identity, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = tm.ttl
	}
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyToken checks signature and expiry and returns the embedded identity.
// A token is valid only while its signature matches the current secret and
// its expiry has not passed; the payload must carry a subject and a role
// from the closed enumeration.
func (tm *TokenManager) VerifyToken(tokenStr string) (*domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || !domain.ValidRole(claims.Role) {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
