package handler

import (
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/hadinata/identity-service/internal/errors"
	"github.com/hadinata/identity-service/internal/identity/domain"
	"github.com/hadinata/identity-service/pkg/constant"
)

// Protect is the session guard: it extracts a bearer token from the
// Authorization header or the token cookie, validates it, resolves the
// subject to a live account, and attaches the account to the request.
func (h *AuthHandler) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(constant.TokenCookieName)
		}
		if token == "" {
			return h.fail(c, apperrors.New(apperrors.KindUnauthorized, "not authorized, no token provided"))
		}

		userID, err := h.tokenService.Validate(token)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				h.logger.Warn("expired token rejected", "path", c.Path())
				return h.fail(c, apperrors.New(apperrors.KindUnauthorized, "not authorized, token expired"))
			}
			h.logger.Warn("token validation failed", "path", c.Path(), "error", err)
			return h.fail(c, apperrors.New(apperrors.KindUnauthorized, "not authorized, invalid token"))
		}

		user, err := h.userService.CurrentUser(c.UserContext(), userID)
		if err != nil {
			return h.fail(c, err)
		}

		c.Locals(constant.ContextUserKey, user)

		return c.Next()
	}
}

// RequireRole gates a route to the given roles. It must run after Protect.
func (h *AuthHandler) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(constant.ContextUserKey).(*domain.User)
		if !ok {
			return h.fail(c, apperrors.New(apperrors.KindUnauthorized, "not authorized"))
		}
		if !slices.Contains(roles, user.Role) {
			return h.fail(c, apperrors.New(apperrors.KindForbidden, "you do not have permission to perform this action"))
		}

		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
