package handlers

import (
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LookupHandler serves currently valid lookup options
type LookupHandler struct {
	lookupService *services.LookupService
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(lookupService *services.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

// Options returns the options of one category valid today
// @Summary Lookup options
// @Description Options of type_cd whose validity window contains today, sorted by name then code
// @Tags Lookup
// @Produce json
// @Security BearerAuth
// @Param type_cd query string true "Category code (100, 110, 120, 130, 140)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /lookup-options [get]
func (h *LookupHandler) Options(c *fiber.Ctx) error {
	options, err := h.lookupService.CurrentOptions(c.UserContext(), c.Query("type_cd"))
	if err != nil {
		return respondError(c, err, "코드 목록을 불러오지 못했습니다.")
	}
	return response.Success(c, "", fiber.Map{"options": options})
}
