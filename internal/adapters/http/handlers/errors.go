package handlers

import (
	"errors"
	"log"

	"olympia-api/internal/core/domain"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the response envelope. Unexpected
// errors are logged and answered with fallback.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.BadRequest(c, verr.Reason)
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "잘못된 요청입니다.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "이메일 또는 비밀번호가 올바르지 않습니다.")
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return response.Unauthorized(c, "인증이 필요합니다.")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Forbidden(c, "권한이 없습니다.")
	case errors.Is(err, domain.ErrApplicationNotFound):
		return response.NotFound(c, "신청서를 찾을 수 없습니다.")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "사용자를 찾을 수 없습니다.")
	case errors.Is(err, domain.ErrAnnouncementNotFound):
		return response.NotFound(c, "공지사항을 찾을 수 없습니다.")
	case errors.Is(err, domain.ErrCommonCodeNotFound):
		return response.NotFound(c, "공통코드를 찾을 수 없습니다.")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "데이터를 찾을 수 없습니다.")
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "이미 가입된 이메일입니다.")
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, fallback)
}
