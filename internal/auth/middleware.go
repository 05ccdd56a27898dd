package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/election-service/internal/domain"
	apperrors "github.com/spec-kit/election-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// bearerPrefix is matched case-sensitively, trailing space included.
const bearerPrefix = "Bearer "

// Middleware gates protected routes on a valid bearer token. It is a pure
// gate: every request re-verifies its token and nothing is cached between
// requests.
type Middleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewMiddleware constructs the identity guard.
func NewMiddleware(tokens *TokenManager, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, logger: logger}
}

// Handle rejects requests without a valid bearer token and attaches the
// verified identity to the request context for downstream handlers.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	identity, err := m.tokens.VerifyToken(authHeader[len(bearerPrefix):])
	if err != nil {
		m.logger.Warn("token verification failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the identity attached by Handle.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
