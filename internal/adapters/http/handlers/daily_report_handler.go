package handlers

import (
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DailyReportHandler lets admins preview or resend the daily report
type DailyReportHandler struct {
	reportService *services.DailyReportService
}

// NewDailyReportHandler creates a new daily report handler
func NewDailyReportHandler(reportService *services.DailyReportService) *DailyReportHandler {
	return &DailyReportHandler{reportService: reportService}
}

// Preview renders today's report without sending it
// @Summary Preview daily report
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/daily-report [get]
func (h *DailyReportHandler) Preview(c *fiber.Ctx) error {
	report, err := h.reportService.Build(c.UserContext())
	if err != nil {
		return respondError(c, err, "일일 보고서를 만들지 못했습니다.")
	}
	return response.Success(c, "", report)
}

// Run sends today's report now. Delivery failures are only logged.
// @Summary Send daily report
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/daily-report/run [post]
func (h *DailyReportHandler) Run(c *fiber.Ctx) error {
	h.reportService.Run(c.UserContext())
	return response.OK(c, "일일 보고서 발송을 요청했습니다.")
}
