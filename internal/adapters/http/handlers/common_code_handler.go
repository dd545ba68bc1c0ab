package handlers

import (
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CommonCodeHandler handles common code endpoints
type CommonCodeHandler struct {
	commonCodeService *services.CommonCodeService
}

// NewCommonCodeHandler creates a new common code handler
func NewCommonCodeHandler(commonCodeService *services.CommonCodeService) *CommonCodeHandler {
	return &CommonCodeHandler{commonCodeService: commonCodeService}
}

// ListPublic returns the codes of one group
// @Summary Common codes
// @Tags CommonCodes
// @Produce json
// @Param group query string false "Code group"
// @Success 200 {object} response.Response
// @Router /common-codes [get]
func (h *CommonCodeHandler) ListPublic(c *fiber.Ctx) error {
	items, err := h.commonCodeService.ListPublic(c.UserContext(), c.Query("group"))
	if err != nil {
		return respondError(c, err, "공통코드를 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": items})
}

// ListAll returns every code
// @Summary All common codes
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/common-codes [get]
func (h *CommonCodeHandler) ListAll(c *fiber.Ctx) error {
	items, err := h.commonCodeService.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err, "공통코드를 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": items})
}

// Create adds a code
// @Summary Create common code
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CommonCodeInput true "Common code"
// @Success 201 {object} response.Response
// @Router /admin/common-codes [post]
func (h *CommonCodeHandler) Create(c *fiber.Ctx) error {
	var req services.CommonCodeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	code, err := h.commonCodeService.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "공통코드 저장에 실패했습니다.")
	}
	return response.Created(c, "등록되었습니다.", code)
}

// Update edits a code
// @Summary Update common code
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Common code ID"
// @Param body body services.CommonCodeInput true "Changed fields"
// @Success 200 {object} response.Response
// @Router /admin/common-codes/{id} [put]
func (h *CommonCodeHandler) Update(c *fiber.Ctx) error {
	var req services.CommonCodeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	code, err := h.commonCodeService.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, err, "공통코드 저장에 실패했습니다.")
	}
	return response.Success(c, "저장되었습니다.", code)
}

// Delete removes a code
// @Summary Delete common code
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Common code ID"
// @Success 200 {object} response.Response
// @Router /admin/common-codes/{id} [delete]
func (h *CommonCodeHandler) Delete(c *fiber.Ctx) error {
	if err := h.commonCodeService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "공통코드 삭제에 실패했습니다.")
	}
	return response.OK(c, "삭제되었습니다.")
}
