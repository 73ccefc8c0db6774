package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/config"
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.League{},
		&models.Player{},
		&models.Match{},
		&models.MatchParticipation{},
		&models.PlayerStats{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role, approved bool) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Approved:     approved,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTeam(t *testing.T, db *gorm.DB, name string, coachID uuid.UUID) *models.Team {
	t.Helper()
	team := &models.Team{
		ID:       uuid.New(),
		Name:     name,
		CoachID:  coachID,
		AgeGroup: models.AgeGroupU18,
	}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	return team
}

func createLeague(t *testing.T, db *gorm.DB, name string, coachID *uuid.UUID) *models.League {
	t.Helper()
	league := &models.League{
		ID:       uuid.New(),
		Name:     name,
		Season:   "2026",
		AgeGroup: models.AgeGroupU18,
		CoachID:  coachID,
	}
	if err := db.Create(league).Error; err != nil {
		t.Fatalf("create league %s: %v", name, err)
	}
	return league
}

func createPlayer(t *testing.T, db *gorm.DB, userID, teamID uuid.UUID, nickname string) *models.Player {
	t.Helper()
	player := &models.Player{
		ID:        uuid.New(),
		UserID:    userID,
		Nickname:  nickname,
		TeamID:    teamID,
		Positions: models.PositionList{models.PositionMF},
		Age:       16,
		Stamina:   models.AbilityGood,
		Speed:     models.AbilityGood,
		Technique: models.AbilityGood,
	}
	if err := db.Create(player).Error; err != nil {
		t.Fatalf("create player %s: %v", nickname, err)
	}
	return player
}

func createMatch(t *testing.T, db *gorm.DB, leagueID, teamID uuid.UUID, date time.Time, status models.MatchStatus) *models.Match {
	t.Helper()
	match := &models.Match{
		ID:           uuid.New(),
		LeagueID:     leagueID,
		TeamID:       teamID,
		OpponentName: "Rovers",
		MatchDate:    date,
		Venue:        "Home ground",
		Status:       status,
	}
	if err := db.Create(match).Error; err != nil {
		t.Fatalf("create match: %v", err)
	}
	return match
}
