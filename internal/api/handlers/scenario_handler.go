package handlers

import (
	"errors"
	"strings"

	"corep-assist/internal/dto"
	"corep-assist/internal/providers"
	"corep-assist/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ScenarioHandler struct {
	analysis *service.AnalysisService
	logger   *zap.Logger
}

func NewScenarioHandler(analysis *service.AnalysisService, logger *zap.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		analysis: analysis,
		logger:   logger,
	}
}

// AnalyzeScenario godoc
// @Summary Analyze a banking scenario
// @Description Retrieve regulatory context, extract structured Own Funds figures, validate them deterministically and return the audit record
// @Tags scenarios
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeScenarioRequest true "Scenario to analyze"
// @Success 200 {object} models.AuditRecord
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/scenarios/analyze [post]
func (h *ScenarioHandler) AnalyzeScenario(c *fiber.Ctx) error {
	var req dto.AnalyzeScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if len(strings.TrimSpace(req.Scenario)) < 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Scenario must be at least 5 characters",
		})
	}

	record, err := h.analysis.AnalyzeScenario(c.Context(), req.Scenario, req.TopK)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrEmbeddingUnavailable):
			h.logger.Error("Embedding service unavailable", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Embedding service is unavailable, please retry",
			})
		case errors.Is(err, service.ErrSchemaViolation):
			h.logger.Error("Extraction schema violation", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Model output could not be parsed, please retry",
			})
		default:
			h.logger.Error("Scenario analysis failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to analyze scenario",
			})
		}
	}

	return c.JSON(record)
}
