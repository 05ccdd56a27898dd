package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/domain"
	apperrors "github.com/spec-kit/election-service/pkg/util/errorutil"
)

// Require returns middleware allowing only identities whose role is in the
// given set. Membership is exact: listing admin does not imply editor.
// A request with no attached identity is rejected as unauthenticated, which
// only happens if the identity guard was not chained before this gate.
func Require(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}

// RequireAuthenticated allows any identity regardless of role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
