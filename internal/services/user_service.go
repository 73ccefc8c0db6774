package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/config"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserService is the admin-only account management surface: listing,
// approval, rejection (delete with cascade) and edits.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Approve(id uuid.UUID) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("approved", true).Error; err != nil {
		return nil, err
	}
	user.Approved = true
	return user, nil
}

// Reject deletes the account. Owned teams go away entirely (matches,
// players, participation, stats included); owned leagues are reassigned
// to no coach; a player profile takes its participation and stats rows
// with it.
func (s *UserService) Reject(id uuid.UUID) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if user.Role == models.RoleCoach {
			if err := tx.Model(&models.League{}).Where("coach_id = ?", user.ID).
				Update("coach_id", nil).Error; err != nil {
				return err
			}
			var teamIDs []uuid.UUID
			if err := tx.Model(&models.Team{}).Where("coach_id = ?", user.ID).
				Pluck("id", &teamIDs).Error; err != nil {
				return err
			}
			for _, teamID := range teamIDs {
				if err := deleteTeamCascade(tx, teamID); err != nil {
					return err
				}
			}
		}

		var playerIDs []uuid.UUID
		if err := tx.Model(&models.Player{}).Where("user_id = ?", user.ID).
			Pluck("id", &playerIDs).Error; err != nil {
			return err
		}
		if err := deletePlayerCascade(tx, playerIDs); err != nil {
			return err
		}

		return tx.Delete(user).Error
	})
}

func (s *UserService) Update(id uuid.UUID, req *dto.UserUpdateRequest) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}

	var existing models.User
	if err := s.db.Where("username = ? AND id <> ?", req.Username, id).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if err := s.db.Where("email = ? AND id <> ?", req.Email, id).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Role = role
	user.Approved = req.Approved
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ApprovedCoach resolves a coach id for ownership assignment.
func (s *UserService) ApprovedCoach(id uuid.UUID) (*models.User, error) {
	var coach models.User
	err := s.db.Where("id = ? AND role = ? AND approved = ?", id, models.RoleCoach, true).
		First(&coach).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &coach, nil
}

// SeedAdmin creates the bootstrap admin account when it does not exist.
// Seeded admins are approved from the start.
func (s *UserService) SeedAdmin(cfg *config.Config) error {
	if cfg.SeedAdminPassword == "" {
		return nil
	}

	var existing models.User
	if err := s.db.Where("username = ?", cfg.SeedAdminUsername).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := models.User{
		ID:           uuid.New(),
		Username:     cfg.SeedAdminUsername,
		Email:        cfg.SeedAdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Approved:     true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	slog.Info("seeded admin account", "username", admin.Username)
	return nil
}
