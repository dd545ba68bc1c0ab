package handlers

import (
	"olympia-api/internal/adapters/http/middleware"
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp handles applicant registration
// @Summary Sign up
// @Description Create an account and applicant profile, returns an ID token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignUpInput true "Sign-up data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req services.SignUpInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	result, err := h.authService.SignUp(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "회원가입에 실패했습니다.")
	}

	return response.Created(c, "회원가입이 완료되었습니다.", result)
}

// Login handles email/password login
// @Summary Login
// @Description Authenticate and return an ID token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "이메일과 비밀번호를 입력하세요.")
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "로그인에 실패했습니다.")
	}

	return response.Success(c, "로그인되었습니다.", result)
}

// Me returns the caller's profile
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err, "사용자 정보를 불러오지 못했습니다.")
	}
	return response.Success(c, "", user)
}

// AdminCheck explains the caller's admin decision
// @Summary Admin check
// @Description Reports the admin claim from the token and from the identity provider
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/check [get]
func (h *AuthHandler) AdminCheck(c *fiber.Ctx) error {
	return response.Success(c, "", h.authService.CheckAdmin(c.UserContext(), middleware.Principal(c)))
}
