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

type MatchHandler struct {
	matchService  *services.MatchService
	leagueService *services.LeagueService
	teamService   *services.TeamService
	statsService  *services.StatsService
}

func NewMatchHandler(matchService *services.MatchService, leagueService *services.LeagueService, teamService *services.TeamService, statsService *services.StatsService) *MatchHandler {
	return &MatchHandler{
		matchService:  matchService,
		leagueService: leagueService,
		teamService:   teamService,
		statsService:  statsService,
	}
}

func (h *MatchHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	matches, err := h.matchService.List(actor)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(matches)
}

// Get is open to either side of the ownership link: the league owner or
// the fielding team's coach, matching list visibility.
func (h *MatchHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	match, err := h.loadMatch(c)
	if match == nil {
		return err
	}

	if d := authz.EditMatch(actor, match); !d.Allowed {
		if d = authz.ViewMatchRoster(actor, match); !d.Allowed {
			return denied(c, d)
		}
	}
	return c.JSON(match)
}

func (h *MatchHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var req dto.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	matchDate, err := parseDate(req.MatchDate)
	if err != nil {
		return unprocessable(c, "match_date must be a date")
	}

	league, err := h.leagueService.Get(req.LeagueID)
	if err != nil {
		if errors.Is(err, services.ErrLeagueNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	team, err := h.teamService.Get(req.TeamID)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	if d := authz.CreateMatch(actor, league, team); !d.Allowed {
		return denied(c, d)
	}

	match, err := h.matchService.Create(league.ID, team.ID, req.OpponentName, matchDate,
		req.Venue, req.OurScore, req.OpponentScore, models.MatchStatus(req.Status), req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return unprocessable(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(match)
}

func (h *MatchHandler) Update(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	match, err := h.loadMatch(c)
	if match == nil {
		return err
	}
	if d := authz.EditMatch(actor, match); !d.Allowed {
		return denied(c, d)
	}

	var req dto.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	matchDate, err := parseDate(req.MatchDate)
	if err != nil {
		return unprocessable(c, "match_date must be a date")
	}

	// Relinking the match is gated like creating it there.
	if req.LeagueID != match.LeagueID || req.TeamID != match.TeamID {
		league, err := h.leagueService.Get(req.LeagueID)
		if err != nil {
			if errors.Is(err, services.ErrLeagueNotFound) {
				return notFound(c, err.Error())
			}
			return internalError(c)
		}
		team, err := h.teamService.Get(req.TeamID)
		if err != nil {
			if errors.Is(err, services.ErrTeamNotFound) {
				return notFound(c, err.Error())
			}
			return internalError(c)
		}
		if d := authz.CreateMatch(actor, league, team); !d.Allowed {
			return denied(c, d)
		}
	}

	match, err = h.matchService.Update(match, req.LeagueID, req.TeamID, req.OpponentName,
		matchDate, req.Venue, req.OurScore, req.OpponentScore, models.MatchStatus(req.Status), req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return unprocessable(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.JSON(match)
}

func (h *MatchHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	match, err := h.loadMatch(c)
	if match == nil {
		return err
	}
	if d := authz.EditMatch(actor, match); !d.Allowed {
		return denied(c, d)
	}

	if err := h.matchService.Delete(match.ID); err != nil {
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Message: "Match deleted"})
}

// Participants lists the fielding team's roster with opt-in state and
// stat lines.
func (h *MatchHandler) Participants(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	match, err := h.loadMatch(c)
	if match == nil {
		return err
	}
	if d := authz.ViewMatchRoster(actor, match); !d.Allowed {
		return denied(c, d)
	}

	rows, err := h.statsService.Roster(match)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(rows)
}

// RecordStats applies the bulk stat sheet for one match. Invalid entries
// are skipped, not rejected.
func (h *MatchHandler) RecordStats(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	match, err := h.loadMatch(c)
	if match == nil {
		return err
	}
	if d := authz.ViewMatchRoster(actor, match); !d.Allowed {
		return denied(c, d)
	}

	var req dto.BulkStatsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	applied, err := h.statsService.BulkUpdate(match, req.Updates)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"message": "Statistics saved",
		"applied": applied,
	})
}

// loadMatch writes its own error response; a nil match means the
// response has already been sent and the handler returns the error as-is.
func (h *MatchHandler) loadMatch(c *fiber.Ctx) (*models.Match, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, badRequest(c, "Invalid match id")
	}
	match, err := h.matchService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			return nil, notFound(c, err.Error())
		}
		return nil, internalError(c)
	}
	return match, nil
}
