package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/authz"
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrLeagueNotFound = errors.New("league not found")

type LeagueService struct {
	db *gorm.DB
}

func NewLeagueService(db *gorm.DB) *LeagueService {
	return &LeagueService{db: db}
}

func (s *LeagueService) List(actor *models.User) ([]models.League, error) {
	var leagues []models.League
	err := s.db.Scopes(authz.LeaguesOwnedBy(actor)).
		Preload("Coach").Order("created_at").Find(&leagues).Error
	return leagues, err
}

func (s *LeagueService) Get(id uuid.UUID) (*models.League, error) {
	var league models.League
	err := s.db.Preload("Coach").First(&league, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	return &league, nil
}

// Create stores the dates as given; start/end ordering is deliberately
// not validated.
func (s *LeagueService) Create(name, season string, ageGroup models.AgeGroup, start, end time.Time, description string, coachID *uuid.UUID) (*models.League, error) {
	if !ageGroup.Valid() {
		return nil, ErrInvalidAgeGroup
	}

	league := models.League{
		ID:          uuid.New(),
		Name:        name,
		Season:      season,
		AgeGroup:    ageGroup,
		StartDate:   datatypes.Date(start),
		EndDate:     datatypes.Date(end),
		Description: description,
		CoachID:     coachID,
	}
	if err := s.db.Create(&league).Error; err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return s.Get(league.ID)
}

func (s *LeagueService) Update(league *models.League, name, season string, ageGroup models.AgeGroup, start, end time.Time, description string) (*models.League, error) {
	if !ageGroup.Valid() {
		return nil, ErrInvalidAgeGroup
	}

	updates := map[string]interface{}{
		"name":        name,
		"season":      season,
		"age_group":   ageGroup,
		"start_date":  datatypes.Date(start),
		"end_date":    datatypes.Date(end),
		"description": description,
	}
	if err := s.db.Model(league).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(league.ID)
}

func (s *LeagueService) ReassignCoach(league *models.League, coachID *uuid.UUID) error {
	return s.db.Model(league).Update("coach_id", coachID).Error
}

func (s *LeagueService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteLeagueCascade(tx, id)
	})
}
