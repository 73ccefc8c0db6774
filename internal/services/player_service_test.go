package services

import (
	"errors"
	"testing"
	"time"

	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/models"
)

func playerRequest(user *models.User, team *models.Team, jersey *int) *dto.PlayerRequest {
	return &dto.PlayerRequest{
		UserID:       user.ID,
		Nickname:     user.Username,
		TeamID:       team.ID,
		JerseyNumber: jersey,
		Positions:    []string{"MF"},
		Age:          16,
		Stamina:      "good",
		Speed:        "good",
		Technique:    "average",
	}
}

func intPtr(v int) *int { return &v }

func TestCreatePlayerRequiresApprovedPlayerAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db, NewParticipationService(db))

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)

	pending := createUser(t, db, "pending", models.RolePlayer, false)
	if _, err := svc.Create(playerRequest(pending, team, nil), models.PositionList{models.PositionMF}); !errors.Is(err, ErrNotPlayerAccount) {
		t.Fatalf("err = %v, want ErrNotPlayerAccount", err)
	}

	wrongRole := createUser(t, db, "acoach", models.RoleCoach, true)
	if _, err := svc.Create(playerRequest(wrongRole, team, nil), models.PositionList{models.PositionMF}); !errors.Is(err, ErrNotPlayerAccount) {
		t.Fatalf("err = %v, want ErrNotPlayerAccount", err)
	}
}

func TestCreatePlayerRejectsSecondProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db, NewParticipationService(db))

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	user := createUser(t, db, "p1", models.RolePlayer, true)

	if _, err := svc.Create(playerRequest(user, team, nil), models.PositionList{models.PositionMF}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(playerRequest(user, team, nil), models.PositionList{models.PositionMF}); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("err = %v, want ErrAlreadyLinked", err)
	}
}

func TestJerseyNumberUniquePerTeam(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db, NewParticipationService(db))

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	teamA := createTeam(t, db, "U18 A", coach.ID)
	teamB := createTeam(t, db, "U18 B", coach.ID)

	u1 := createUser(t, db, "p1", models.RolePlayer, true)
	u2 := createUser(t, db, "p2", models.RolePlayer, true)
	u3 := createUser(t, db, "p3", models.RolePlayer, true)

	if _, err := svc.Create(playerRequest(u1, teamA, intPtr(10)), models.PositionList{models.PositionMF}); err != nil {
		t.Fatalf("first ten: %v", err)
	}
	if _, err := svc.Create(playerRequest(u2, teamA, intPtr(10)), models.PositionList{models.PositionMF}); !errors.Is(err, ErrJerseyTaken) {
		t.Fatalf("err = %v, want ErrJerseyTaken", err)
	}
	// The same number on another team is fine.
	if _, err := svc.Create(playerRequest(u3, teamB, intPtr(10)), models.PositionList{models.PositionMF}); err != nil {
		t.Fatalf("other team ten: %v", err)
	}
}

func TestJerseyNumberOptional(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db, NewParticipationService(db))

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)

	// Several players without a number may coexist.
	for _, name := range []string{"p1", "p2"} {
		user := createUser(t, db, name, models.RolePlayer, true)
		if _, err := svc.Create(playerRequest(user, team, nil), models.PositionList{models.PositionMF}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
}

func TestParsePositions(t *testing.T) {
	list, err := models.ParsePositions([]string{"GK", "MF", "GK", " FW "})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("positions = %v, want 3 entries", list)
	}
	if list[0] != models.PositionGK || list[1] != models.PositionMF || list[2] != models.PositionFW {
		t.Fatalf("order not preserved: %v", list)
	}

	if _, err := models.ParsePositions([]string{"XX"}); err == nil {
		t.Fatal("unknown position accepted")
	}
	if _, err := models.ParsePositions(nil); err == nil {
		t.Fatal("empty position list accepted")
	}
}

func TestPositionsSurviveStorage(t *testing.T) {
	db := newTestDB(t)

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	user := createUser(t, db, "p1", models.RolePlayer, true)
	player := createPlayer(t, db, user.ID, team.ID, "p1")

	if err := db.Model(player).Update("positions",
		models.PositionList{models.PositionDF, models.PositionMF}).Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	var loaded models.Player
	if err := db.First(&loaded, "id = ?", player.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(loaded.Positions) != 2 || loaded.Positions[0] != models.PositionDF {
		t.Fatalf("positions = %v", loaded.Positions)
	}
}

func TestDeletePlayerRemovesLedgerRows(t *testing.T) {
	db := newTestDB(t)
	participation := NewParticipationService(db)
	svc := NewPlayerService(db, participation)
	matches := NewMatchService(db, participation)

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	league := createLeague(t, db, "Regional", &coach.ID)
	user := createUser(t, db, "p1", models.RolePlayer, true)

	player, err := svc.Create(playerRequest(user, team, nil), models.PositionList{models.PositionMF})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if _, err := matches.Create(league.ID, team.ID, "Rovers",
		time.Now().Add(24*time.Hour), "Home", nil, nil, "", ""); err != nil {
		t.Fatalf("create match: %v", err)
	}

	if err := svc.Delete(player.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if n := countParticipations(t, db); n != 0 {
		t.Fatalf("participation rows = %d, want 0", n)
	}
	var stats int64
	if err := db.Model(&models.PlayerStats{}).Count(&stats).Error; err != nil {
		t.Fatalf("count stats: %v", err)
	}
	if stats != 0 {
		t.Fatalf("stats rows = %d, want 0", stats)
	}
}
