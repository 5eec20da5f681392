package handlers

import (
	"corep-assist/internal/dto"
	"corep-assist/pkg/config"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	llm *config.LLMConfig
}

func NewHealthHandler(llm *config.LLMConfig) *HealthHandler {
	return &HealthHandler{llm: llm}
}

// Health godoc
// @Summary Service health
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:   "ok",
		Provider: h.llm.Provider,
		Model:    h.llm.Model(),
	})
}
