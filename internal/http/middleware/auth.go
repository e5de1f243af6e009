package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Aasthak07/QuillStack-AI/internal/auth"
)

// UserClaimsLocalKey is the context locals key holding the verified claims.
const UserClaimsLocalKey = "user_claims"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AdminChecker reports whether a user currently holds the admin flag.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAuth verifies the Authorization bearer token and stores the claims
// in context locals for downstream handlers.
func RequireAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "malformed authorization header")
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(UserClaimsLocalKey, claims)
		return c.Next()
	}
}

// RequireAdmin gates admin routes. The admin flag is resolved against the
// database on every request so revoking it takes effect immediately, not at
// token expiry.
func RequireAdmin(checker AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(UserClaimsLocalKey).(*auth.Claims)
		if !ok || claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		isAdmin, err := checker.IsAdmin(c.UserContext(), claims.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "admin privileges required")
		}
		if !isAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin privileges required")
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the verified claims stored by RequireAuth, or nil.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(UserClaimsLocalKey).(*auth.Claims)
	return claims
}
