package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/matchday-hq/matchday/internal/authz"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/middleware"
	"github.com/matchday-hq/matchday/internal/models"
	"github.com/matchday-hq/matchday/internal/services"
)

type StatsHandler struct {
	statsService  *services.StatsService
	playerService *services.PlayerService
	matchService  *services.MatchService
}

func NewStatsHandler(statsService *services.StatsService, playerService *services.PlayerService, matchService *services.MatchService) *StatsHandler {
	return &StatsHandler{
		statsService:  statsService,
		playerService: playerService,
		matchService:  matchService,
	}
}

func (h *StatsHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	rows, err := h.statsService.ListRows(actor)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(rows)
}

func (h *StatsHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	row, err := h.loadRow(c)
	if row == nil {
		return err
	}
	if d := authz.ManageStats(actor, row.Player, row.Match); !d.Allowed {
		return denied(c, d)
	}
	return c.JSON(row)
}

// Create records a standalone stat line; a second line for the same
// player and match is rejected rather than merged.
func (h *StatsHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var req dto.StatsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	player, err := h.playerService.Get(req.PlayerID)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	match, err := h.matchService.Get(req.MatchID)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManageStats(actor, player, match); !d.Allowed {
		return denied(c, d)
	}

	row, err := h.statsService.CreateRow(player.ID, match.ID, req.Goals, req.Assists, req.MinutesPlayed)
	if err != nil {
		if errors.Is(err, services.ErrStatsExist) {
			return conflict(c, err.Error())
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

func (h *StatsHandler) Update(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	row, err := h.loadRow(c)
	if row == nil {
		return err
	}
	if d := authz.ManageStats(actor, row.Player, row.Match); !d.Allowed {
		return denied(c, d)
	}

	var req dto.StatsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.statsService.UpdateRow(row, req.Goals, req.Assists, req.MinutesPlayed); err != nil {
		return internalError(c)
	}
	return c.JSON(row)
}

func (h *StatsHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	row, err := h.loadRow(c)
	if row == nil {
		return err
	}
	if d := authz.ManageStats(actor, row.Player, row.Match); !d.Allowed {
		return denied(c, d)
	}

	if err := h.statsService.DeleteRow(row.ID); err != nil {
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Message: "Stats deleted"})
}

// Statistics is the role-scoped aggregate page.
func (h *StatsHandler) Statistics(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	resp, err := h.statsService.Overview(actor, h.optionalProfile(actor))
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

// Summary backs the dashboard landing page.
func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	resp, err := h.statsService.Summary(actor, h.optionalProfile(actor))
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

// optionalProfile resolves the player record for player accounts; an
// account without one just gets empty sections.
func (h *StatsHandler) optionalProfile(actor *models.User) *models.Player {
	if actor.Role != models.RolePlayer {
		return nil
	}
	player, err := h.playerService.ProfileOf(actor.ID)
	if err != nil {
		return nil
	}
	return player
}

// loadRow writes its own error response; a nil row means the response
// has already been sent.
func (h *StatsHandler) loadRow(c *fiber.Ctx) (*models.PlayerStats, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, badRequest(c, "Invalid stats id")
	}
	row, err := h.statsService.GetRow(id)
	if err != nil {
		if errors.Is(err, services.ErrStatsNotFound) {
			return nil, notFound(c, err.Error())
		}
		return nil, internalError(c)
	}
	return row, nil
}
