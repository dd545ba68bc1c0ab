package handlers

import (
	"olympia-api/internal/adapters/http/middleware"
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles applicant-facing application endpoints
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// SavePersonsRequest replaces the applicants of an application
type SavePersonsRequest struct {
	Applicants []services.ApplicantInput `json:"applicants"`
}

// List returns the caller's own applications
// @Summary My applications (raw)
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	apps, err := h.applicationService.ListOwn(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err, "신청서 목록을 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": apps})
}

// Create submits a new application
// @Summary Submit application
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ApplicationInput true "Application form"
// @Success 201 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req services.ApplicationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	detail, err := h.applicationService.Create(c.UserContext(), middleware.Principal(c), &req)
	if err != nil {
		return respondError(c, err, "신청서 저장에 실패했습니다.")
	}
	return response.Created(c, "신청서가 제출되었습니다.", detail)
}

// Get returns one application to its owner or an admin
// @Summary Get application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	detail, err := h.applicationService.Get(c.UserContext(), middleware.Principal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "신청서를 불러오지 못했습니다.")
	}
	return response.Success(c, "", detail)
}

// SavePersons replaces the caller's applicants of an application
// @Summary Save applicants
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param body body SavePersonsRequest true "Applicants"
// @Success 200 {object} response.Response
// @Router /applications/{id}/persons [put]
func (h *ApplicationHandler) SavePersons(c *fiber.Ctx) error {
	var req SavePersonsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	persons, err := h.applicationService.SavePersons(c.UserContext(), middleware.Principal(c), c.Params("id"), req.Applicants)
	if err != nil {
		return respondError(c, err, "신청자 저장에 실패했습니다.")
	}
	return response.Success(c, "저장되었습니다.", fiber.Map{"items": persons})
}

// MyApplications returns the caller's report rows
// @Summary My applications (report rows)
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /my-applications [get]
func (h *ApplicationHandler) MyApplications(c *fiber.Ctx) error {
	rows, err := h.applicationService.MyReport(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err, "신청 내역을 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": rows})
}
