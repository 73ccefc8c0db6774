package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/middleware"
	"github.com/matchday-hq/matchday/internal/models"
	"github.com/matchday-hq/matchday/internal/services"
)

// ParticipationHandler is the player-facing surface: their own fixture
// list and the opt-in toggle. All routes behind PlayerOnly.
type ParticipationHandler struct {
	participationService *services.ParticipationService
	playerService        *services.PlayerService
	matchService         *services.MatchService
}

func NewParticipationHandler(participationService *services.ParticipationService, playerService *services.PlayerService, matchService *services.MatchService) *ParticipationHandler {
	return &ParticipationHandler{
		participationService: participationService,
		playerService:        playerService,
		matchService:         matchService,
	}
}

func (h *ParticipationHandler) MyMatches(c *fiber.Ctx) error {
	player, err := h.profile(c)
	if player == nil {
		return err
	}

	rows, err := h.participationService.MatchesForPlayer(player)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(rows)
}

// ParticipationStatus is the confirmation read for one fixture: the
// current opt-in state, lazily ensured. It stays readable after kickoff;
// only writes are locked by the match date.
func (h *ParticipationHandler) ParticipationStatus(c *fiber.Ctx) error {
	player, err := h.profile(c)
	if player == nil {
		return err
	}
	match, err := h.loadMatch(c)
	if match == nil {
		return err
	}

	p, err := h.participationService.Status(player, match)
	if err != nil {
		if errors.Is(err, services.ErrWrongTeam) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}
	return c.JSON(p)
}

// Participate flips the opt-in flag for one fixture. The body value is
// the original form field: the literal string "true" opts in, anything
// else opts out.
func (h *ParticipationHandler) Participate(c *fiber.Ctx) error {
	player, err := h.profile(c)
	if player == nil {
		return err
	}
	match, err := h.loadMatch(c)
	if match == nil {
		return err
	}

	var req dto.ParticipateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	p, err := h.participationService.Toggle(player, match, parseParticipating(req.IsParticipating))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongTeam):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrMatchExpired):
			return conflict(c, err.Error())
		default:
			return internalError(c)
		}
	}
	return c.JSON(p)
}

// profile resolves the caller's player record, writing the response
// itself on failure.
func (h *ParticipationHandler) profile(c *fiber.Ctx) (*models.Player, error) {
	actor := middleware.CurrentUser(c)
	player, err := h.playerService.ProfileOf(actor.ID)
	if err != nil {
		if errors.Is(err, services.ErrNoPlayerProfile) {
			return nil, notFound(c, err.Error())
		}
		return nil, internalError(c)
	}
	return player, nil
}

// loadMatch writes its own error response; a nil match means the
// response has already been sent.
func (h *ParticipationHandler) loadMatch(c *fiber.Ctx) (*models.Match, error) {
	matchID, err := pathID(c, "id")
	if err != nil {
		return nil, badRequest(c, "Invalid match id")
	}
	match, err := h.matchService.Get(matchID)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			return nil, notFound(c, err.Error())
		}
		return nil, internalError(c)
	}
	return match, nil
}

// parseParticipating mirrors the form field contract: only the literal
// "true" opts in.
func parseParticipating(raw string) bool {
	return raw == "true"
}
