package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/authz"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNoPlayerProfile  = errors.New("no player profile for this account")
	ErrJerseyTaken      = errors.New("jersey number already used in this team")
	ErrNotPlayerAccount = errors.New("linked user must be an approved player account")
	ErrAlreadyLinked    = errors.New("user already has a player profile")
	ErrInvalidAbility   = errors.New("unknown ability grade")
)

type PlayerService struct {
	db            *gorm.DB
	participation *ParticipationService
}

func NewPlayerService(db *gorm.DB, participation *ParticipationService) *PlayerService {
	return &PlayerService{db: db, participation: participation}
}

func (s *PlayerService) List(actor *models.User) ([]models.Player, error) {
	var players []models.Player
	err := s.db.Scopes(authz.PlayersCoachedBy(actor)).
		Preload("User").Preload("Team").
		Order("players.created_at").Find(&players).Error
	return players, err
}

func (s *PlayerService) Get(id uuid.UUID) (*models.Player, error) {
	var player models.Player
	err := s.db.Preload("User").Preload("Team").First(&player, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

// ProfileOf resolves the player profile owned by a user account.
func (s *PlayerService) ProfileOf(userID uuid.UUID) (*models.Player, error) {
	var player models.Player
	err := s.db.Preload("Team").First(&player, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPlayerProfile
		}
		return nil, err
	}
	return &player, nil
}

// Create validates the roster rules and back-fills participation for
// every existing match of the team in the same transaction.
func (s *PlayerService) Create(req *dto.PlayerRequest, positions models.PositionList) (*models.Player, error) {
	var user models.User
	if err := s.db.Where("id = ? AND role = ? AND approved = ?",
		req.UserID, models.RolePlayer, true).First(&user).Error; err != nil {
		return nil, ErrNotPlayerAccount
	}

	var existing models.Player
	if err := s.db.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyLinked
	}

	if err := s.checkJersey(req.TeamID, req.JerseyNumber, uuid.Nil); err != nil {
		return nil, err
	}

	stamina, speed, technique := models.Ability(req.Stamina), models.Ability(req.Speed), models.Ability(req.Technique)
	if !stamina.Valid() || !speed.Valid() || !technique.Valid() {
		return nil, ErrInvalidAbility
	}

	player := models.Player{
		ID:           uuid.New(),
		UserID:       req.UserID,
		Nickname:     req.Nickname,
		TeamID:       req.TeamID,
		JerseyNumber: req.JerseyNumber,
		Positions:    positions,
		Height:       req.Height,
		Weight:       req.Weight,
		Age:          req.Age,
		Stamina:      stamina,
		Speed:        speed,
		Technique:    technique,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&player).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrJerseyTaken
			}
			return fmt.Errorf("failed to create player: %w", err)
		}
		return s.participation.EnsureForPlayer(tx, &player)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(player.ID)
}

func (s *PlayerService) Update(player *models.Player, req *dto.PlayerRequest, positions models.PositionList) (*models.Player, error) {
	if err := s.checkJersey(req.TeamID, req.JerseyNumber, player.ID); err != nil {
		return nil, err
	}

	stamina, speed, technique := models.Ability(req.Stamina), models.Ability(req.Speed), models.Ability(req.Technique)
	if !stamina.Valid() || !speed.Valid() || !technique.Valid() {
		return nil, ErrInvalidAbility
	}

	updates := map[string]interface{}{
		"nickname":      req.Nickname,
		"team_id":       req.TeamID,
		"jersey_number": req.JerseyNumber,
		"positions":     positions,
		"height":        req.Height,
		"weight":        req.Weight,
		"age":           req.Age,
		"stamina":       stamina,
		"speed":         speed,
		"technique":     technique,
	}
	if err := s.db.Model(player).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrJerseyTaken
		}
		return nil, err
	}
	return s.Get(player.ID)
}

func (s *PlayerService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deletePlayerCascade(tx, []uuid.UUID{id})
	})
}

// checkJersey enforces per-team uniqueness only when a number is set.
// The composite unique index is the race backstop.
func (s *PlayerService) checkJersey(teamID uuid.UUID, jersey *int, excludeID uuid.UUID) error {
	if jersey == nil {
		return nil
	}
	var count int64
	q := s.db.Model(&models.Player{}).
		Where("team_id = ? AND jersey_number = ?", teamID, *jersey)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrJerseyTaken
	}
	return nil
}
