// Package authz holds the role and ownership rules for every mutable
// entity. A Deny is a normal control-flow outcome the caller branches on
// (it maps to a redirect-style 403, never a server error).
package authz

import (
	"github.com/matchday-hq/matchday/internal/models"
)

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Reason: reason} }

// Staff reports whether the actor may enter the management views at all.
func Staff(actor *models.User) Decision {
	if actor.Role == models.RoleAdmin || actor.Role == models.RoleCoach {
		return Allow()
	}
	return Deny("you do not have permission to perform this action")
}

// ManageTeam allows admins everywhere and coaches on their own teams.
func ManageTeam(actor *models.User, team *models.Team) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	if actor.Role == models.RoleCoach && team.CoachID == actor.ID {
		return Allow()
	}
	return Deny("you can only manage your own teams")
}

func ManageLeague(actor *models.User, league *models.League) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	if actor.Role == models.RoleCoach && league.CoachID != nil && *league.CoachID == actor.ID {
		return Allow()
	}
	return Deny("you can only manage leagues you are responsible for")
}

// CreateMatch requires the coach to own both sides of the link: the
// league the match is played in and the team fielding it.
func CreateMatch(actor *models.User, league *models.League, team *models.Team) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	if actor.Role != models.RoleCoach {
		return Deny("you do not have permission to perform this action")
	}
	if league.CoachID == nil || *league.CoachID != actor.ID {
		return Deny("you can only schedule matches in your own leagues")
	}
	if team.CoachID != actor.ID {
		return Deny("you can only schedule matches for your own teams")
	}
	return Allow()
}

// EditMatch gates edit and delete: league ownership decides, matching the
// narrower rule used for mutations (team-owned matches are list-visible
// but not editable).
func EditMatch(actor *models.User, match *models.Match) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	if actor.Role == models.RoleCoach && match.League != nil &&
		match.League.CoachID != nil && *match.League.CoachID == actor.ID {
		return Allow()
	}
	return Deny("you can only manage matches in leagues you are responsible for")
}

// ViewMatchRoster gates the participants/bulk-stats view: the coach of
// the fielding team.
func ViewMatchRoster(actor *models.User, match *models.Match) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	if actor.Role == models.RoleCoach && match.Team != nil && match.Team.CoachID == actor.ID {
		return Allow()
	}
	return Deny("you can only view participation for your own team's matches")
}

// ManagePlayer requires the actor to coach the player's current team.
func ManagePlayer(actor *models.User, player *models.Player) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	if actor.Role == models.RoleCoach && player.Team != nil && player.Team.CoachID == actor.ID {
		return Allow()
	}
	return Deny("you can only manage players on your own teams")
}

// AssignPlayerToTeam blocks a coach from moving a player onto a team they
// do not own.
func AssignPlayerToTeam(actor *models.User, team *models.Team) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	if actor.Role == models.RoleCoach && team.CoachID == actor.ID {
		return Allow()
	}
	return Deny("you can only assign players to your own teams")
}

// ManageStats is the strictest rule: a coach needs ownership of both the
// player's team and the match's league.
func ManageStats(actor *models.User, player *models.Player, match *models.Match) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	if actor.Role != models.RoleCoach {
		return Deny("you do not have permission to perform this action")
	}
	if player.Team == nil || player.Team.CoachID != actor.ID {
		return Deny("you can only record stats for players on your own teams")
	}
	if match.League == nil || match.League.CoachID == nil || *match.League.CoachID != actor.ID {
		return Deny("you can only record stats for matches in your own leagues")
	}
	return Allow()
}
