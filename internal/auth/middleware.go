package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/ecfilm/catalog-api/internal/model"
)

// ContextKey is the fiber locals key the validated session claims are
// stored under.
const ContextKey = "session_claims"

const authScheme = "bearer"

// IdentityStore is the slice of the credential store the authorization gate
// needs: re-fetching the caller's record so role checks never trust a claim
// minted before a role change.
type IdentityStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// TokenFromHeader extracts the raw bearer token from an Authorization header
// value. The scheme match is case-insensitive.
func TokenFromHeader(header string) (string, error) {
	l := len(authScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		raw := strings.TrimSpace(header[l:])
		if raw != "" {
			return raw, nil
		}
	}
	return "", ErrNoCredentials
}

// RequireAuth validates the bearer session token and attaches its claims to
// the request context. Requests without a valid token never reach the
// handler.
func RequireAuth(ts *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := TokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := ts.ValidateSession(raw)
		if err != nil {
			return err
		}

		c.Locals(ContextKey, claims)
		return c.Next()
	}
}

// RequireAdmin guards admin-only routes. It runs after RequireAuth and
// re-fetches the caller's record: the stored role decides, not the token.
func RequireAdmin(store IdentityStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return ErrNoCredentials
		}

		user, err := store.FindByID(c.UserContext(), claims.UserID())
		if err != nil {
			if errors.IsNotFound(err) {
				return ErrForbidden
			}
			return errors.Wrap(err, errors.CategoryInternal, "failed to load user for role check")
		}

		if user == nil || user.Role != model.RoleAdmin {
			return ErrForbidden
		}

		return c.Next()
	}
}
