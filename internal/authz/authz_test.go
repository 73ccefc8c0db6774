package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/models"
)

func user(role models.Role) *models.User {
	return &models.User{ID: uuid.New(), Role: role, Approved: true}
}

func TestManageTeam(t *testing.T) {
	admin := user(models.RoleAdmin)
	owner := user(models.RoleCoach)
	other := user(models.RoleCoach)
	player := user(models.RolePlayer)
	team := &models.Team{ID: uuid.New(), CoachID: owner.ID}

	if d := ManageTeam(admin, team); !d.Allowed {
		t.Fatal("admin must bypass ownership")
	}
	if d := ManageTeam(owner, team); !d.Allowed {
		t.Fatal("owning coach must be allowed")
	}
	if d := ManageTeam(other, team); d.Allowed {
		t.Fatal("foreign coach must be denied")
	}
	if d := ManageTeam(player, team); d.Allowed {
		t.Fatal("player must be denied")
	}
	if d := ManageTeam(other, team); d.Reason == "" {
		t.Fatal("denials must carry a reason")
	}
}

func TestManageLeagueWithNoCoach(t *testing.T) {
	admin := user(models.RoleAdmin)
	coach := user(models.RoleCoach)
	league := &models.League{ID: uuid.New(), CoachID: nil}

	if d := ManageLeague(admin, league); !d.Allowed {
		t.Fatal("admin must manage unowned leagues")
	}
	// An unowned league belongs to no coach, not to every coach.
	if d := ManageLeague(coach, league); d.Allowed {
		t.Fatal("coach must not manage an unowned league")
	}
}

func TestCreateMatchNeedsBothSides(t *testing.T) {
	coach := user(models.RoleCoach)
	other := user(models.RoleCoach)

	ownLeague := &models.League{ID: uuid.New(), CoachID: &coach.ID}
	foreignLeague := &models.League{ID: uuid.New(), CoachID: &other.ID}
	ownTeam := &models.Team{ID: uuid.New(), CoachID: coach.ID}
	foreignTeam := &models.Team{ID: uuid.New(), CoachID: other.ID}

	if d := CreateMatch(coach, ownLeague, ownTeam); !d.Allowed {
		t.Fatal("own league and own team must be allowed")
	}
	if d := CreateMatch(coach, foreignLeague, ownTeam); d.Allowed {
		t.Fatal("foreign league must be denied")
	}
	if d := CreateMatch(coach, ownLeague, foreignTeam); d.Allowed {
		t.Fatal("foreign team must be denied")
	}
	if d := CreateMatch(user(models.RoleAdmin), foreignLeague, foreignTeam); !d.Allowed {
		t.Fatal("admin must bypass both checks")
	}
}

func TestEditMatchDecidedByLeagueOwnership(t *testing.T) {
	leagueOwner := user(models.RoleCoach)
	teamOwner := user(models.RoleCoach)

	match := &models.Match{
		ID:     uuid.New(),
		League: &models.League{ID: uuid.New(), CoachID: &leagueOwner.ID},
		Team:   &models.Team{ID: uuid.New(), CoachID: teamOwner.ID},
	}

	if d := EditMatch(leagueOwner, match); !d.Allowed {
		t.Fatal("league owner must edit the match")
	}
	// The fielding team's coach sees the match in lists but cannot edit
	// it; the roster view is their surface instead.
	if d := EditMatch(teamOwner, match); d.Allowed {
		t.Fatal("team owner must not edit a foreign-league match")
	}
	if d := ViewMatchRoster(teamOwner, match); !d.Allowed {
		t.Fatal("team owner must see the roster")
	}
	if d := ViewMatchRoster(leagueOwner, match); d.Allowed {
		t.Fatal("league owner alone must not see the roster")
	}
}

func TestManageStatsNeedsTeamAndLeague(t *testing.T) {
	coach := user(models.RoleCoach)
	other := user(models.RoleCoach)

	player := &models.Player{
		ID:   uuid.New(),
		Team: &models.Team{ID: uuid.New(), CoachID: coach.ID},
	}
	ownLeagueMatch := &models.Match{
		ID:     uuid.New(),
		League: &models.League{ID: uuid.New(), CoachID: &coach.ID},
	}
	foreignLeagueMatch := &models.Match{
		ID:     uuid.New(),
		League: &models.League{ID: uuid.New(), CoachID: &other.ID},
	}

	if d := ManageStats(coach, player, ownLeagueMatch); !d.Allowed {
		t.Fatal("own player and own league must be allowed")
	}
	if d := ManageStats(coach, player, foreignLeagueMatch); d.Allowed {
		t.Fatal("foreign league must be denied")
	}
	if d := ManageStats(other, player, foreignLeagueMatch); d.Allowed {
		t.Fatal("foreign player must be denied")
	}
	if d := ManageStats(user(models.RoleAdmin), player, foreignLeagueMatch); !d.Allowed {
		t.Fatal("admin must bypass both checks")
	}
}

func TestStaffGate(t *testing.T) {
	if d := Staff(user(models.RoleAdmin)); !d.Allowed {
		t.Fatal("admin is staff")
	}
	if d := Staff(user(models.RoleCoach)); !d.Allowed {
		t.Fatal("coach is staff")
	}
	if d := Staff(user(models.RolePlayer)); d.Allowed {
		t.Fatal("player is not staff")
	}
}
