package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/authz"
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/gorm"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrInvalidStatus = errors.New("unknown match status")
)

type MatchService struct {
	db            *gorm.DB
	participation *ParticipationService
}

func NewMatchService(db *gorm.DB, participation *ParticipationService) *MatchService {
	return &MatchService{db: db, participation: participation}
}

func (s *MatchService) List(actor *models.User) ([]models.Match, error) {
	var matches []models.Match
	err := s.db.Scopes(authz.MatchesVisibleTo(actor)).
		Preload("League").Preload("Team").
		Order("matches.match_date").Find(&matches).Error
	return matches, err
}

func (s *MatchService) Get(id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := s.db.Preload("League").Preload("Team").First(&match, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

// Create persists the fixture and, in the same transaction, fans out a
// default-participating row for every current player of the team.
func (s *MatchService) Create(leagueID, teamID uuid.UUID, opponent string, matchDate time.Time, venue string, ourScore, opponentScore *int, status models.MatchStatus, notes string) (*models.Match, error) {
	if status == "" {
		status = models.MatchScheduled
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	match := models.Match{
		ID:            uuid.New(),
		LeagueID:      leagueID,
		TeamID:        teamID,
		OpponentName:  opponent,
		MatchDate:     matchDate,
		Venue:         venue,
		OurScore:      ourScore,
		OpponentScore: opponentScore,
		Status:        status,
		Notes:         notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&match).Error; err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}
		return s.participation.EnsureForMatch(tx, &match)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(match.ID)
}

func (s *MatchService) Update(match *models.Match, leagueID, teamID uuid.UUID, opponent string, matchDate time.Time, venue string, ourScore, opponentScore *int, status models.MatchStatus, notes string) (*models.Match, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	updates := map[string]interface{}{
		"league_id":      leagueID,
		"team_id":        teamID,
		"opponent_name":  opponent,
		"match_date":     matchDate,
		"venue":          venue,
		"our_score":      ourScore,
		"opponent_score": opponentScore,
		"status":         status,
		"notes":          notes,
	}
	if err := s.db.Model(match).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(match.ID)
}

func (s *MatchService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteMatchCascade(tx, []uuid.UUID{id})
	})
}
