package handlers

import (
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles admin user management endpoints
type UserHandler struct {
	userService  *services.UserService
	resetService *services.ResetService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, resetService *services.ResetService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		resetService: resetService,
	}
}

// List returns users ordered by name
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains"
// @Param phone query string false "Phone contains"
// @Param userType query string false "User type code, 전체 for all"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var filter services.UserFilter
	if err := c.QueryParser(&filter); err != nil {
		return response.BadRequest(c, "검색 조건이 올바르지 않습니다.")
	}

	items, err := h.userService.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "사용자 목록을 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": items})
}

// Update edits a user profile
// @Summary Update user
// @Description Phone must contain a digit; changing userType syncs the admin claim
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Changed fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	user, err := h.userService.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "사용자 정보 저장에 실패했습니다.")
	}
	return response.Success(c, "저장되었습니다.", user)
}

// Reset deletes all applications, applicants and non-admin users
// @Summary Reset registrations
// @Description Deletes applications, applicants, every non-admin user and their accounts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/users/reset [post]
func (h *UserHandler) Reset(c *fiber.Ctx) error {
	result, err := h.resetService.Reset(c.UserContext())
	if err != nil {
		return respondError(c, err, "초기화에 실패했습니다.")
	}
	return response.Success(c, result.Message, result)
}
