package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/api/dto"
	"github.com/spec-kit/election-service/internal/auth"
	"github.com/spec-kit/election-service/internal/service"
	apperrors "github.com/spec-kit/election-service/pkg/util/errorutil"
)

// WatchlistHandler exposes the caller-scoped watchlist endpoints. The user
// id always comes from the verified identity on the request context, never
// from the payload.
type WatchlistHandler struct {
	watchlists *service.WatchlistService
}

// NewWatchlistHandler constructs handler.
func NewWatchlistHandler(watchlistService *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlists: watchlistService}
}

// List handles GET /watchlist.
func (h *WatchlistHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	items, err := h.watchlists.List(c.Context(), identity.UserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": items})
}

// Add handles POST /watchlist.
func (h *WatchlistHandler) Add(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.WatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.ElectionID == "" {
		return apperrors.NewValidationError("election_id required")
	}

	item, err := h.watchlists.Add(c.Context(), identity.UserID, req.ElectionID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": item})
}

// Remove handles DELETE /watchlist/:id.
func (h *WatchlistHandler) Remove(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.watchlists.Remove(c.Context(), identity.UserID, c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
