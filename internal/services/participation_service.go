package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/gorm"
)

var (
	ErrMatchExpired = errors.New("the match has already started, participation can no longer be changed")
	ErrWrongTeam    = errors.New("you cannot join a match of another team")
)

// ParticipationService owns the per (player, match) opt-in ledger. Its
// core guarantee: a row eventually exists for every team-aligned pair,
// defaulting to participating.
type ParticipationService struct {
	db *gorm.DB
}

func NewParticipationService(db *gorm.DB) *ParticipationService {
	return &ParticipationService{db: db}
}

// Ensure is the idempotent get-or-create. A concurrent creator winning
// the race surfaces as a duplicate-key error; the row is fetched and
// returned instead of failing.
func (s *ParticipationService) Ensure(db *gorm.DB, playerID, matchID uuid.UUID) (*models.MatchParticipation, error) {
	var p models.MatchParticipation
	err := db.Where("player_id = ? AND match_id = ?", playerID, matchID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = models.MatchParticipation{
		ID:              uuid.New(),
		PlayerID:        playerID,
		MatchID:         matchID,
		IsParticipating: true,
	}
	if err := db.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.MatchParticipation
			if ferr := db.Where("player_id = ? AND match_id = ?", playerID, matchID).
				First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create participation: %w", err)
	}
	return &p, nil
}

// EnsureForMatch fans out rows for every current player of the match's
// team. Runs in the match-creation transaction.
func (s *ParticipationService) EnsureForMatch(tx *gorm.DB, match *models.Match) error {
	var playerIDs []uuid.UUID
	if err := tx.Model(&models.Player{}).Where("team_id = ?", match.TeamID).
		Pluck("id", &playerIDs).Error; err != nil {
		return err
	}
	for _, playerID := range playerIDs {
		if _, err := s.Ensure(tx, playerID, match.ID); err != nil {
			return err
		}
	}
	return nil
}

// EnsureForPlayer back-fills rows for every existing match of the
// player's own team, never for other teams. Runs in the player-creation
// transaction.
func (s *ParticipationService) EnsureForPlayer(tx *gorm.DB, player *models.Player) error {
	var matchIDs []uuid.UUID
	if err := tx.Model(&models.Match{}).Where("team_id = ?", player.TeamID).
		Pluck("id", &matchIDs).Error; err != nil {
		return err
	}
	for _, matchID := range matchIDs {
		if _, err := s.Ensure(tx, player.ID, matchID); err != nil {
			return err
		}
	}
	return nil
}

// Toggle upserts the opt-in flag. Writes are blocked once the match has
// started and for matches of another team; reads stay open.
func (s *ParticipationService) Toggle(player *models.Player, match *models.Match, value bool) (*models.MatchParticipation, error) {
	if match.TeamID != player.TeamID {
		return nil, ErrWrongTeam
	}
	if !match.MatchDate.After(time.Now()) {
		return nil, ErrMatchExpired
	}

	p, err := s.Ensure(s.db, player.ID, match.ID)
	if err != nil {
		return nil, err
	}
	if p.IsParticipating != value {
		if err := s.db.Model(p).Update("is_participating", value).Error; err != nil {
			return nil, err
		}
		p.IsParticipating = value
	}
	return p, nil
}

// Status is the confirmation read: the current opt-in state for one
// fixture, lazily ensured. Unlike Toggle it stays open after kickoff;
// only the team check applies.
func (s *ParticipationService) Status(player *models.Player, match *models.Match) (*models.MatchParticipation, error) {
	if match.TeamID != player.TeamID {
		return nil, ErrWrongTeam
	}
	return s.Ensure(s.db, player.ID, match.ID)
}

// MatchesForPlayer lists the player's team fixtures with the
// lazily-ensured opt-in state and an edit window flag.
func (s *ParticipationService) MatchesForPlayer(player *models.Player) ([]dto.MyMatchRow, error) {
	var matches []models.Match
	if err := s.db.Where("team_id = ?", player.TeamID).
		Order("match_date").Find(&matches).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]dto.MyMatchRow, 0, len(matches))
	for i := range matches {
		match := &matches[i]
		p, err := s.Ensure(s.db, player.ID, match.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, dto.MyMatchRow{
			MatchID:         match.ID,
			OpponentName:    match.OpponentName,
			MatchDate:       match.MatchDate,
			Venue:           match.Venue,
			Status:          string(match.Status),
			IsParticipating: p.IsParticipating,
			CanEdit:         match.MatchDate.After(now),
		})
	}
	return rows, nil
}
