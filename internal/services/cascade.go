package services

import (
	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/gorm"
)

// Cascade helpers run inside the caller's transaction. The production
// schema carries ON DELETE constraints too; deleting explicitly keeps
// the behavior identical on test databases without FK enforcement.

func deleteMatchCascade(tx *gorm.DB, matchIDs []uuid.UUID) error {
	if len(matchIDs) == 0 {
		return nil
	}
	if err := tx.Where("match_id IN ?", matchIDs).Delete(&models.MatchParticipation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("match_id IN ?", matchIDs).Delete(&models.PlayerStats{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", matchIDs).Delete(&models.Match{}).Error
}

func deletePlayerCascade(tx *gorm.DB, playerIDs []uuid.UUID) error {
	if len(playerIDs) == 0 {
		return nil
	}
	if err := tx.Where("player_id IN ?", playerIDs).Delete(&models.MatchParticipation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("player_id IN ?", playerIDs).Delete(&models.PlayerStats{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", playerIDs).Delete(&models.Player{}).Error
}

func deleteTeamCascade(tx *gorm.DB, teamID uuid.UUID) error {
	var matchIDs []uuid.UUID
	if err := tx.Model(&models.Match{}).Where("team_id = ?", teamID).Pluck("id", &matchIDs).Error; err != nil {
		return err
	}
	if err := deleteMatchCascade(tx, matchIDs); err != nil {
		return err
	}

	var playerIDs []uuid.UUID
	if err := tx.Model(&models.Player{}).Where("team_id = ?", teamID).Pluck("id", &playerIDs).Error; err != nil {
		return err
	}
	if err := deletePlayerCascade(tx, playerIDs); err != nil {
		return err
	}

	if err := tx.Exec("DELETE FROM team_leagues WHERE team_id = ?", teamID).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", teamID).Delete(&models.Team{}).Error
}

func deleteLeagueCascade(tx *gorm.DB, leagueID uuid.UUID) error {
	var matchIDs []uuid.UUID
	if err := tx.Model(&models.Match{}).Where("league_id = ?", leagueID).Pluck("id", &matchIDs).Error; err != nil {
		return err
	}
	if err := deleteMatchCascade(tx, matchIDs); err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM team_leagues WHERE league_id = ?", leagueID).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", leagueID).Delete(&models.League{}).Error
}
