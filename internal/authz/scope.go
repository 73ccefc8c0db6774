package authz

import (
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/gorm"
)

// List scopes narrow queries to what the actor owns. Admins see
// everything; the scopes are identity for them.

func TeamsOwnedBy(actor *models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.Role == models.RoleAdmin {
			return db
		}
		return db.Where("teams.coach_id = ?", actor.ID)
	}
}

func LeaguesOwnedBy(actor *models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.Role == models.RoleAdmin {
			return db
		}
		return db.Where("leagues.coach_id = ?", actor.ID)
	}
}

// MatchesVisibleTo includes matches in the coach's leagues plus matches
// fielded by the coach's teams, deduplicated.
func MatchesVisibleTo(actor *models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.Role == models.RoleAdmin {
			return db
		}
		return db.
			Joins("JOIN leagues ON leagues.id = matches.league_id").
			Joins("JOIN teams ON teams.id = matches.team_id").
			Where("leagues.coach_id = ? OR teams.coach_id = ?", actor.ID, actor.ID).
			Distinct("matches.*")
	}
}

func PlayersCoachedBy(actor *models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.Role == models.RoleAdmin {
			return db
		}
		return db.
			Joins("JOIN teams ON teams.id = players.team_id").
			Where("teams.coach_id = ?", actor.ID)
	}
}

// StatsVisibleTo narrows explicit stats rows to players coached by the
// actor.
func StatsVisibleTo(actor *models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.Role == models.RoleAdmin {
			return db
		}
		return db.
			Joins("JOIN players ON players.id = player_stats.player_id").
			Joins("JOIN teams ON teams.id = players.team_id").
			Where("teams.coach_id = ?", actor.ID)
	}
}
