package handlers

import (
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves the admin application grid and contact list
type ReportHandler struct {
	reportService *services.ReportService
	bulkService   *services.BulkUpdateService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, bulkService *services.BulkUpdateService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		bulkService:   bulkService,
	}
}

// PatchRequest carries edited grid rows
type PatchRequest struct {
	Updates []services.RowUpdate `json:"updates"`
}

// ExamineNumberRequest carries an uploaded examine number sheet
type ExamineNumberRequest struct {
	Updates []services.ExamineNumberUpdate `json:"updates"`
}

// ListApplications returns the filtered admin report
// @Summary Admin application report
// @Description Applications joined with applicants and owners, filtered and numbered
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param churchName query string false "Church name contains"
// @Param contactName query string false "Contact name contains"
// @Param applicant query string false "Applicant name contains"
// @Param examType query string false "Exam type code"
// @Param participationStatus query string false "Participation code"
// @Param feeConfirmed query string false "Fee confirmed code"
// @Param contactConfirmed query string false "Contact confirmed code"
// @Param refundRequest query string false "Refund request code"
// @Param refundConfirmed query string false "Refund confirmed code"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/applications [get]
func (h *ReportHandler) ListApplications(c *fiber.Ctx) error {
	var filter services.ReportFilter
	if err := c.QueryParser(&filter); err != nil {
		return response.BadRequest(c, "검색 조건이 올바르지 않습니다.")
	}

	rows, err := h.reportService.List(c.UserContext(), services.AdminScope(), filter)
	if err != nil {
		return respondError(c, err, "신청 목록을 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": rows})
}

// PatchApplications saves edited grid rows
// @Summary Save admin grid edits
// @Description Applies allow-listed application and applicant fields; unknown fields are ignored
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PatchRequest true "Edited rows"
// @Success 200 {object} response.Response
// @Router /admin/applications [patch]
func (h *ReportHandler) PatchApplications(c *fiber.Ctx) error {
	var req PatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	n, err := h.bulkService.PatchRows(c.UserContext(), req.Updates)
	if err != nil {
		return respondError(c, err, "저장에 실패했습니다.")
	}
	return response.Success(c, "저장되었습니다.", fiber.Map{"ok": true, "updated": n})
}

// BulkUpdateExamineNumber corrects examine numbers by registration number
// @Summary Bulk examine number upload
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ExamineNumberRequest true "applicationNo / examineNumber pairs"
// @Success 200 {object} response.Response
// @Router /admin/bulk-update-examine-number [post]
func (h *ReportHandler) BulkUpdateExamineNumber(c *fiber.Ctx) error {
	var req ExamineNumberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	result, err := h.bulkService.BulkUpdateExamineNumbers(c.UserContext(), req.Updates)
	if err != nil {
		return respondError(c, err, "수험번호 반영에 실패했습니다.")
	}
	return response.Success(c, result.Message, result)
}

// ContactList returns one row per application with contact fields
// @Summary Contact list
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param churchName query string false "Church name contains"
// @Param contactName query string false "Contact name contains"
// @Param contactPhone query string false "Contact phone contains (digits)"
// @Success 200 {object} response.Response
// @Router /admin/contact-list [get]
func (h *ReportHandler) ContactList(c *fiber.Ctx) error {
	var filter services.ContactFilter
	if err := c.QueryParser(&filter); err != nil {
		return response.BadRequest(c, "검색 조건이 올바르지 않습니다.")
	}

	rows, err := h.reportService.ListContacts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "연락처 목록을 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"items": rows})
}

// PatchContactList saves edited contact rows
// @Summary Save contact list edits
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PatchRequest true "Edited rows"
// @Success 200 {object} response.Response
// @Router /admin/contact-list [patch]
func (h *ReportHandler) PatchContactList(c *fiber.Ctx) error {
	var req PatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	n, err := h.bulkService.PatchContacts(c.UserContext(), req.Updates)
	if err != nil {
		return respondError(c, err, "저장에 실패했습니다.")
	}
	return response.Success(c, "저장되었습니다.", fiber.Map{"ok": true, "updated": n})
}
