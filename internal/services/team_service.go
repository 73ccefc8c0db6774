package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/authz"
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrInvalidAgeGroup = errors.New("unknown age group")
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

func (s *TeamService) List(actor *models.User) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.Scopes(authz.TeamsOwnedBy(actor)).
		Preload("Coach").Preload("Leagues").
		Order("created_at").Find(&teams).Error
	return teams, err
}

func (s *TeamService) Get(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.Preload("Coach").Preload("Leagues").First(&team, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) Create(coachID uuid.UUID, name string, ageGroup models.AgeGroup, description string, leagueIDs []uuid.UUID) (*models.Team, error) {
	if !ageGroup.Valid() {
		return nil, ErrInvalidAgeGroup
	}

	team := models.Team{
		ID:          uuid.New(),
		Name:        name,
		CoachID:     coachID,
		AgeGroup:    ageGroup,
		Description: description,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}
		return s.setLeagues(tx, &team, leagueIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(team.ID)
}

// Update never touches the coach field; admin reassignment goes through
// ReassignCoach so the ownership rule stays in one place.
func (s *TeamService) Update(team *models.Team, name string, ageGroup models.AgeGroup, description string, leagueIDs []uuid.UUID) (*models.Team, error) {
	if !ageGroup.Valid() {
		return nil, ErrInvalidAgeGroup
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		team.Name = name
		team.AgeGroup = ageGroup
		team.Description = description
		if err := tx.Model(team).Updates(map[string]interface{}{
			"name": name, "age_group": ageGroup, "description": description,
		}).Error; err != nil {
			return err
		}
		return s.setLeagues(tx, team, leagueIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(team.ID)
}

func (s *TeamService) ReassignCoach(team *models.Team, coachID uuid.UUID) error {
	return s.db.Model(team).Update("coach_id", coachID).Error
}

func (s *TeamService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteTeamCascade(tx, id)
	})
}

// setLeagues replaces the participating-league set; an empty list clears
// it.
func (s *TeamService) setLeagues(tx *gorm.DB, team *models.Team, leagueIDs []uuid.UUID) error {
	var leagues []models.League
	if len(leagueIDs) > 0 {
		if err := tx.Where("id IN ?", leagueIDs).Find(&leagues).Error; err != nil {
			return err
		}
	}
	return tx.Model(team).Association("Leagues").Replace(leagues)
}
