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

type PlayerHandler struct {
	playerService *services.PlayerService
	teamService   *services.TeamService
}

func NewPlayerHandler(playerService *services.PlayerService, teamService *services.TeamService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService, teamService: teamService}
}

func (h *PlayerHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	players, err := h.playerService.List(actor)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(players)
}

func (h *PlayerHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid player id")
	}

	player, err := h.playerService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManagePlayer(actor, player); !d.Allowed {
		return denied(c, d)
	}
	return c.JSON(player)
}

func (h *PlayerHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var req dto.PlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	positions, err := models.ParsePositions(req.Positions)
	if err != nil {
		return unprocessable(c, err.Error())
	}

	team, err := h.teamService.Get(req.TeamID)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.AssignPlayerToTeam(actor, team); !d.Allowed {
		return denied(c, d)
	}

	player, err := h.playerService.Create(&req, positions)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJerseyTaken), errors.Is(err, services.ErrAlreadyLinked):
			return conflict(c, err.Error())
		case errors.Is(err, services.ErrNotPlayerAccount), errors.Is(err, services.ErrInvalidAbility):
			return unprocessable(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}
	return c.Status(fiber.StatusCreated).JSON(player)
}

// Update checks two ownerships: the player's current team and, when the
// player is being moved, the destination team.
func (h *PlayerHandler) Update(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid player id")
	}

	player, err := h.playerService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManagePlayer(actor, player); !d.Allowed {
		return denied(c, d)
	}

	var req dto.PlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	positions, err := models.ParsePositions(req.Positions)
	if err != nil {
		return unprocessable(c, err.Error())
	}

	if req.TeamID != player.TeamID {
		team, err := h.teamService.Get(req.TeamID)
		if err != nil {
			if errors.Is(err, services.ErrTeamNotFound) {
				return notFound(c, err.Error())
			}
			return internalError(c)
		}
		if d := authz.AssignPlayerToTeam(actor, team); !d.Allowed {
			return denied(c, d)
		}
	}

	player, err = h.playerService.Update(player, &req, positions)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJerseyTaken):
			return conflict(c, err.Error())
		case errors.Is(err, services.ErrInvalidAbility):
			return unprocessable(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}
	return c.JSON(player)
}

func (h *PlayerHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid player id")
	}

	player, err := h.playerService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManagePlayer(actor, player); !d.Allowed {
		return denied(c, d)
	}

	if err := h.playerService.Delete(player.ID); err != nil {
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Message: "Player deleted"})
}
