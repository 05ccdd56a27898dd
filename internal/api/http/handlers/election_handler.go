package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/api/dto"
	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/service"
	apperrors "github.com/spec-kit/election-service/pkg/util/errorutil"
)

// ElectionHandler exposes reference-data endpoints for states, elections,
// and candidates.
type ElectionHandler struct {
	elections *service.ElectionService
}

// NewElectionHandler constructs handler.
func NewElectionHandler(electionService *service.ElectionService) *ElectionHandler {
	return &ElectionHandler{elections: electionService}
}

// ListStates handles GET /states.
func (h *ElectionHandler) ListStates(c *fiber.Ctx) error {
	states, err := h.elections.ListStates(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": states})
}

// GetState handles GET /states/:id.
func (h *ElectionHandler) GetState(c *fiber.Ctx) error {
	state, err := h.elections.GetState(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": state})
}

// ListElections handles GET /elections.
func (h *ElectionHandler) ListElections(c *fiber.Ctx) error {
	elections, err := h.elections.ListElections(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": elections})
}

// GetElection handles GET /elections/:id.
func (h *ElectionHandler) GetElection(c *fiber.Ctx) error {
	election, err := h.elections.GetElection(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": election})
}

// CreateElection handles POST /elections (admin, editor).
func (h *ElectionHandler) CreateElection(c *fiber.Ctx) error {
	var req dto.ElectionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Title == "" || req.Office == "" || req.ElectionDay.IsZero() {
		return apperrors.NewValidationError("title, office, election_day required")
	}

	election := &domain.Election{
		StateID:     req.StateID,
		Title:       req.Title,
		Office:      req.Office,
		Status:      domain.ElectionStatus(req.Status),
		ElectionDay: req.ElectionDay,
	}
	if err := h.elections.CreateElection(c.Context(), election); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": election})
}

// UpdateElection handles PUT /elections/:id (admin, editor).
func (h *ElectionHandler) UpdateElection(c *fiber.Ctx) error {
	var req dto.ElectionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	election := &domain.Election{
		ID:          c.Params("id"),
		StateID:     req.StateID,
		Title:       req.Title,
		Office:      req.Office,
		Status:      domain.ElectionStatus(req.Status),
		ElectionDay: req.ElectionDay,
	}
	if err := h.elections.UpdateElection(c.Context(), election); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": election})
}

// DeleteElection handles DELETE /elections/:id (admin, editor).
func (h *ElectionHandler) DeleteElection(c *fiber.Ctx) error {
	if err := h.elections.DeleteElection(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListCandidates handles GET /elections/:id/candidates.
func (h *ElectionHandler) ListCandidates(c *fiber.Ctx) error {
	candidates, err := h.elections.ListCandidates(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": candidates})
}

// GetCandidate handles GET /candidates/:id.
func (h *ElectionHandler) GetCandidate(c *fiber.Ctx) error {
	candidate, err := h.elections.GetCandidate(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": candidate})
}

// CreateCandidate handles POST /candidates (admin, editor).
func (h *ElectionHandler) CreateCandidate(c *fiber.Ctx) error {
	var req dto.CandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.ElectionID == "" || req.Name == "" {
		return apperrors.NewValidationError("election_id and name required")
	}

	candidate := &domain.Candidate{
		ElectionID: req.ElectionID,
		Name:       req.Name,
		Party:      req.Party,
		Incumbent:  req.Incumbent,
	}
	if err := h.elections.CreateCandidate(c.Context(), candidate); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": candidate})
}
