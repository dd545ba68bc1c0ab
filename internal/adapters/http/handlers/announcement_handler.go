package handlers

import (
	"olympia-api/internal/adapters/http/middleware"
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnnouncementHandler handles announcement endpoints
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// ListPublic returns the latest announcements
// @Summary Announcements
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Response
// @Router /announcements [get]
func (h *AnnouncementHandler) ListPublic(c *fiber.Ctx) error {
	items, err := h.announcementService.ListPublic(c.UserContext())
	if err != nil {
		return respondError(c, err, "공지사항을 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": items})
}

// ListAll returns every announcement
// @Summary All announcements
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) ListAll(c *fiber.Ctx) error {
	items, err := h.announcementService.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err, "공지사항을 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": items})
}

// Create adds an announcement
// @Summary Create announcement
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AnnouncementInput true "Announcement"
// @Success 201 {object} response.Response
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req services.AnnouncementInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	uid := ""
	if p := middleware.Principal(c); p != nil {
		uid = p.UID
	}
	a, err := h.announcementService.Create(c.UserContext(), uid, &req)
	if err != nil {
		return respondError(c, err, "공지사항 저장에 실패했습니다.")
	}
	return response.Created(c, "등록되었습니다.", a)
}

// Update edits an announcement
// @Summary Update announcement
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Param body body services.AnnouncementInput true "Changed fields"
// @Success 200 {object} response.Response
// @Router /admin/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	var req services.AnnouncementInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	a, err := h.announcementService.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, err, "공지사항 저장에 실패했습니다.")
	}
	return response.Success(c, "저장되었습니다.", a)
}

// Delete removes an announcement
// @Summary Delete announcement
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Response
// @Router /admin/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	if err := h.announcementService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "공지사항 삭제에 실패했습니다.")
	}
	return response.OK(c, "삭제되었습니다.")
}
