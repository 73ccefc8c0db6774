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

type TeamHandler struct {
	teamService *services.TeamService
	userService *services.UserService
}

func NewTeamHandler(teamService *services.TeamService, userService *services.UserService) *TeamHandler {
	return &TeamHandler{teamService: teamService, userService: userService}
}

func (h *TeamHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	teams, err := h.teamService.List(actor)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(teams)
}

func (h *TeamHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team id")
	}

	team, err := h.teamService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManageTeam(actor, team); !d.Allowed {
		return denied(c, d)
	}
	return c.JSON(team)
}

// Create assigns ownership: a coach always owns the teams they create,
// an admin must name an approved coach.
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	coachID := actor.ID
	if actor.Role == models.RoleAdmin {
		if req.CoachID == nil {
			return unprocessable(c, "coach_id is required")
		}
		coach, err := h.userService.ApprovedCoach(*req.CoachID)
		if err != nil {
			return unprocessable(c, "coach_id must reference an approved coach")
		}
		coachID = coach.ID
	}

	team, err := h.teamService.Create(coachID, req.Name, models.AgeGroup(req.AgeGroup), req.Description, req.LeagueIDs)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAgeGroup) {
			return unprocessable(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

func (h *TeamHandler) Update(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team id")
	}

	team, err := h.teamService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManageTeam(actor, team); !d.Allowed {
		return denied(c, d)
	}

	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Only an admin may move a team to another coach.
	if actor.Role == models.RoleAdmin && req.CoachID != nil && *req.CoachID != team.CoachID {
		coach, err := h.userService.ApprovedCoach(*req.CoachID)
		if err != nil {
			return unprocessable(c, "coach_id must reference an approved coach")
		}
		if err := h.teamService.ReassignCoach(team, coach.ID); err != nil {
			return internalError(c)
		}
	}

	team, err = h.teamService.Update(team, req.Name, models.AgeGroup(req.AgeGroup), req.Description, req.LeagueIDs)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAgeGroup) {
			return unprocessable(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.JSON(team)
}

func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team id")
	}

	team, err := h.teamService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManageTeam(actor, team); !d.Allowed {
		return denied(c, d)
	}

	if err := h.teamService.Delete(team.ID); err != nil {
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Message: "Team deleted"})
}
