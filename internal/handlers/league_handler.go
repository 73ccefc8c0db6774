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

type LeagueHandler struct {
	leagueService *services.LeagueService
	userService   *services.UserService
}

func NewLeagueHandler(leagueService *services.LeagueService, userService *services.UserService) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService, userService: userService}
}

func (h *LeagueHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	leagues, err := h.leagueService.List(actor)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(leagues)
}

func (h *LeagueHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid league id")
	}

	league, err := h.leagueService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrLeagueNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManageLeague(actor, league); !d.Allowed {
		return denied(c, d)
	}
	return c.JSON(league)
}

// Create mirrors team creation: coaches own what they create, admins may
// leave a league unowned or assign an approved coach.
func (h *LeagueHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var req dto.LeagueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return unprocessable(c, "start_date must be a date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return unprocessable(c, "end_date must be a date")
	}

	coachID := &actor.ID
	if actor.Role == models.RoleAdmin {
		coachID = nil
		if req.CoachID != nil {
			coach, err := h.userService.ApprovedCoach(*req.CoachID)
			if err != nil {
				return unprocessable(c, "coach_id must reference an approved coach")
			}
			coachID = &coach.ID
		}
	}

	league, err := h.leagueService.Create(req.Name, req.Season, models.AgeGroup(req.AgeGroup), start, end, req.Description, coachID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAgeGroup) {
			return unprocessable(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(league)
}

func (h *LeagueHandler) Update(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid league id")
	}

	league, err := h.leagueService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrLeagueNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManageLeague(actor, league); !d.Allowed {
		return denied(c, d)
	}

	var req dto.LeagueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return unprocessable(c, "start_date must be a date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return unprocessable(c, "end_date must be a date")
	}

	if actor.Role == models.RoleAdmin && req.CoachID != nil {
		coach, err := h.userService.ApprovedCoach(*req.CoachID)
		if err != nil {
			return unprocessable(c, "coach_id must reference an approved coach")
		}
		if err := h.leagueService.ReassignCoach(league, &coach.ID); err != nil {
			return internalError(c)
		}
	}

	league, err = h.leagueService.Update(league, req.Name, req.Season, models.AgeGroup(req.AgeGroup), start, end, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAgeGroup) {
			return unprocessable(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.JSON(league)
}

func (h *LeagueHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid league id")
	}

	league, err := h.leagueService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrLeagueNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.ManageLeague(actor, league); !d.Allowed {
		return denied(c, d)
	}

	if err := h.leagueService.Delete(league.ID); err != nil {
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Message: "League deleted"})
}
