package handlers

import (
	"errors"

	"corep-assist/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuditHandler struct {
	auditRepo *repository.AuditRepository
	logger    *zap.Logger
}

func NewAuditHandler(auditRepo *repository.AuditRepository, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// ListAudits godoc
// @Summary List stored audit records
// @Tags audits
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} repository.AuditSummary
// @Router /api/v1/audits [get]
func (h *AuditHandler) ListAudits(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	summaries, err := h.auditRepo.List(c.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list audit records", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list audit records",
		})
	}
	if summaries == nil {
		summaries = []repository.AuditSummary{}
	}

	return c.JSON(summaries)
}

// GetAudit godoc
// @Summary Fetch one audit record
// @Tags audits
// @Produce json
// @Param id path string true "Audit record ID"
// @Success 200 {object} models.AuditRecord
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/audits/{id} [get]
func (h *AuditHandler) GetAudit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid audit record ID",
		})
	}

	record, err := h.auditRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Audit record not found",
			})
		}
		h.logger.Error("Failed to fetch audit record", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch audit record",
		})
	}

	return c.JSON(record)
}
