package middleware

import (
	"errors"

	"olympia-api/internal/core/domain"
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token and stores the principal
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := services.BearerToken(c.Get(fiber.HeaderAuthorization))

		principal, decision, err := auth.Authenticate(c.UserContext(), token)
		if decision != services.AccessGranted {
			switch {
			case token == "":
				return response.Unauthorized(c, "인증이 필요합니다.")
			case errors.Is(err, domain.ErrTokenExpired):
				return response.Unauthorized(c, "토큰이 만료되었습니다. 로그아웃 후 다시 로그인하세요.")
			default:
				return response.Unauthorized(c, "토큰이 올바르지 않습니다.")
			}
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// AdminOnly requires an authenticated principal with the admin claim
func AdminOnly(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch auth.AuthorizeAdmin(c.UserContext(), Principal(c)) {
		case services.AccessGranted:
			return c.Next()
		case services.AccessUnauthenticated:
			return response.Unauthorized(c, "인증이 필요합니다.")
		default:
			return response.Forbidden(c, "관리자 권한이 필요합니다.")
		}
	}
}

// Principal returns the principal stored by AuthMiddleware, nil if absent
func Principal(c *fiber.Ctx) *domain.Principal {
	p, _ := c.Locals(principalKey).(*domain.Principal)
	return p
}
