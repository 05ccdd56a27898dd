package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/repository"
	apperrors "github.com/spec-kit/election-service/pkg/util/errorutil"
)

// AuditHandler exposes recent audit entries to admins.
type AuditHandler struct {
	audits repository.AuditRepository
}

// NewAuditHandler constructs handler.
func NewAuditHandler(audits repository.AuditRepository) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// ListRecent handles GET /audit (admin only).
func (h *AuditHandler) ListRecent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	entries, err := h.audits.ListRecent(c.Context(), limit)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": entries})
}
