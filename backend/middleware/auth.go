package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"examprep/backend/auth"
	"examprep/backend/models"
	"examprep/backend/repository"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const identityKey = "identity"

// IdentityLoader resolves the account named by a verified token.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, role models.Role, id uuid.UUID) (*repository.Identity, error)
}

// RequireRole admits only bearers of a valid token for an existing account
// of the given role.
func RequireRole(role models.Role, issuer *auth.TokenIssuer, loader IdentityLoader, logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return utils.Unauthorized(c, "Authorization token required")
		}

		claims, err := issuer.Parse(token)
		if err != nil || claims.Role != role {
			return utils.Unauthorized(c, "Not authorized")
		}

		id, err := claims.UserID()
		if err != nil {
			return utils.Unauthorized(c, "Not authorized")
		}

		identity, err := loader.LoadIdentity(c.UserContext(), role, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Not authorized")
		}
		if err != nil {
			return utils.InternalServerError(c, logger, "Internal server error", err)
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// CurrentIdentity returns the account stored by RequireRole, or nil on
// routes that are not behind it.
func CurrentIdentity(c *fiber.Ctx) *repository.Identity {
	identity, _ := c.Locals(identityKey).(*repository.Identity)
	return identity
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
