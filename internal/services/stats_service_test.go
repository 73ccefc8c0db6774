package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/models"
)

func TestBulkUpdateSkipsBadEntries(t *testing.T) {
	db := newTestDB(t)
	participation := NewParticipationService(db)
	svc := NewStatsService(db, participation)

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	otherTeam := createTeam(t, db, "U18 B", coach.ID)
	league := createLeague(t, db, "Regional", &coach.ID)

	user := createUser(t, db, "p1", models.RolePlayer, true)
	player := createPlayer(t, db, user.ID, team.ID, "p1")
	outsideUser := createUser(t, db, "p2", models.RolePlayer, true)
	outsider := createPlayer(t, db, outsideUser.ID, otherTeam.ID, "p2")

	match := createMatch(t, db, league.ID, team.ID, time.Now().Add(24*time.Hour), models.MatchScheduled)

	applied, err := svc.BulkUpdate(match, []dto.StatUpdate{
		{PlayerID: player.ID, Field: "goals", Value: "2"},
		{PlayerID: player.ID, Field: "own_goals", Value: "1"},  // unknown field
		{PlayerID: outsider.ID, Field: "goals", Value: "5"},    // wrong team
		{PlayerID: uuid.New(), Field: "assists", Value: "1"},   // unknown player
		{PlayerID: player.ID, Field: "assists", Value: "junk"}, // coerces to 0
	})
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("applied = %d, want 2", len(applied))
	}

	var row models.PlayerStats
	if err := db.Where("player_id = ? AND match_id = ?", player.ID, match.ID).First(&row).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if row.Goals != 2 || row.Assists != 0 {
		t.Fatalf("goals = %d assists = %d, want 2 and 0", row.Goals, row.Assists)
	}

	var outsiderRows int64
	if err := db.Model(&models.PlayerStats{}).Where("player_id = ?", outsider.ID).
		Count(&outsiderRows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if outsiderRows != 0 {
		t.Fatal("stats written for a player outside the match's team")
	}
}

func TestBulkUpdateIdempotent(t *testing.T) {
	db := newTestDB(t)
	participation := NewParticipationService(db)
	svc := NewStatsService(db, participation)

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	league := createLeague(t, db, "Regional", &coach.ID)
	user := createUser(t, db, "p1", models.RolePlayer, true)
	player := createPlayer(t, db, user.ID, team.ID, "p1")
	match := createMatch(t, db, league.ID, team.ID, time.Now().Add(24*time.Hour), models.MatchScheduled)

	updates := []dto.StatUpdate{{PlayerID: player.ID, Field: "goals", Value: "3"}}
	for i := 0; i < 3; i++ {
		if _, err := svc.BulkUpdate(match, updates); err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
	}

	var rows []models.PlayerStats
	if err := db.Where("player_id = ?", player.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Goals != 3 {
		t.Fatalf("goals = %d, want 3 (set, not summed)", rows[0].Goals)
	}
}

func TestCreateRowRejectsDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, NewParticipationService(db))

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	league := createLeague(t, db, "Regional", &coach.ID)
	user := createUser(t, db, "p1", models.RolePlayer, true)
	player := createPlayer(t, db, user.ID, team.ID, "p1")
	match := createMatch(t, db, league.ID, team.ID, time.Now().Add(24*time.Hour), models.MatchScheduled)

	if _, err := svc.CreateRow(player.ID, match.ID, 1, 0, 90); err != nil {
		t.Fatalf("first row: %v", err)
	}
	if _, err := svc.CreateRow(player.ID, match.ID, 2, 0, 90); !errors.Is(err, ErrStatsExist) {
		t.Fatalf("err = %v, want ErrStatsExist", err)
	}
}

func TestPlayerTotalsCountFinishedMatchesOnly(t *testing.T) {
	db := newTestDB(t)
	participation := NewParticipationService(db)
	svc := NewStatsService(db, participation)

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	league := createLeague(t, db, "Regional", &coach.ID)
	user := createUser(t, db, "p1", models.RolePlayer, true)
	player := createPlayer(t, db, user.ID, team.ID, "p1")

	finished := createMatch(t, db, league.ID, team.ID, time.Now().Add(-48*time.Hour), models.MatchFinished)
	scheduled := createMatch(t, db, league.ID, team.ID, time.Now().Add(48*time.Hour), models.MatchScheduled)
	optedOut := createMatch(t, db, league.ID, team.ID, time.Now().Add(-24*time.Hour), models.MatchFinished)

	if _, err := participation.Ensure(db, player.ID, finished.ID); err != nil {
		t.Fatalf("ensure finished: %v", err)
	}
	if _, err := participation.Ensure(db, player.ID, scheduled.ID); err != nil {
		t.Fatalf("ensure scheduled: %v", err)
	}
	p, err := participation.Ensure(db, player.ID, optedOut.ID)
	if err != nil {
		t.Fatalf("ensure opted-out: %v", err)
	}
	if err := db.Model(p).Update("is_participating", false).Error; err != nil {
		t.Fatalf("opt out: %v", err)
	}

	if _, err := svc.BulkUpdate(finished, []dto.StatUpdate{
		{PlayerID: player.ID, Field: "goals", Value: "2"},
		{PlayerID: player.ID, Field: "minutes_played", Value: "90"},
	}); err != nil {
		t.Fatalf("record stats: %v", err)
	}

	totals, err := svc.PlayerTotals(player.ID)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.MatchesPlayed != 1 {
		t.Fatalf("matches played = %d, want 1 (finished and opted in only)", totals.MatchesPlayed)
	}
	if totals.TotalGoals != 2 || totals.TotalMinutes != 90 {
		t.Fatalf("goals = %d minutes = %d", totals.TotalGoals, totals.TotalMinutes)
	}
}

func TestOptOutKeepsRecordedStats(t *testing.T) {
	db := newTestDB(t)
	participation := NewParticipationService(db)
	svc := NewStatsService(db, participation)

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	league := createLeague(t, db, "Regional", &coach.ID)
	user := createUser(t, db, "p1", models.RolePlayer, true)
	player := createPlayer(t, db, user.ID, team.ID, "p1")
	match := createMatch(t, db, league.ID, team.ID, time.Now().Add(24*time.Hour), models.MatchScheduled)

	if _, err := svc.BulkUpdate(match, []dto.StatUpdate{
		{PlayerID: player.ID, Field: "goals", Value: "1"},
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := participation.Toggle(player, match, false); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// The stat row is untouched by the opt-out; only the appearance count
	// reacts.
	totals, err := svc.PlayerTotals(player.ID)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.TotalGoals != 1 {
		t.Fatalf("goals = %d, want 1", totals.TotalGoals)
	}
	if totals.MatchesPlayed != 0 {
		t.Fatalf("matches played = %d, want 0", totals.MatchesPlayed)
	}
}

func TestTeamRecordSkipsUnfinishedAndScoreless(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, NewParticipationService(db))

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	league := createLeague(t, db, "Regional", &coach.ID)

	set := func(m *models.Match, ours, theirs int) {
		if err := db.Model(m).Updates(map[string]interface{}{
			"our_score": ours, "opponent_score": theirs,
		}).Error; err != nil {
			t.Fatalf("set score: %v", err)
		}
	}

	win := createMatch(t, db, league.ID, team.ID, time.Now().Add(-96*time.Hour), models.MatchFinished)
	set(win, 3, 1)
	draw := createMatch(t, db, league.ID, team.ID, time.Now().Add(-72*time.Hour), models.MatchFinished)
	set(draw, 2, 2)
	loss := createMatch(t, db, league.ID, team.ID, time.Now().Add(-48*time.Hour), models.MatchFinished)
	set(loss, 0, 1)
	// Finished without scores and scheduled with scores both stay out of
	// the ledger.
	createMatch(t, db, league.ID, team.ID, time.Now().Add(-24*time.Hour), models.MatchFinished)
	scheduled := createMatch(t, db, league.ID, team.ID, time.Now().Add(24*time.Hour), models.MatchScheduled)
	set(scheduled, 9, 0)

	record, err := svc.TeamRecord(team)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if record.TotalMatches != 5 {
		t.Fatalf("total = %d, want 5", record.TotalMatches)
	}
	if record.Wins != 1 || record.Draws != 1 || record.Losses != 1 {
		t.Fatalf("W/D/L = %d/%d/%d, want 1/1/1", record.Wins, record.Draws, record.Losses)
	}
}

func TestRosterShowsZerosWithoutCreatingStats(t *testing.T) {
	db := newTestDB(t)
	participation := NewParticipationService(db)
	svc := NewStatsService(db, participation)

	coach := createUser(t, db, "coach", models.RoleCoach, true)
	team := createTeam(t, db, "U18 A", coach.ID)
	league := createLeague(t, db, "Regional", &coach.ID)
	user := createUser(t, db, "p1", models.RolePlayer, true)
	createPlayer(t, db, user.ID, team.ID, "p1")
	match := createMatch(t, db, league.ID, team.ID, time.Now().Add(24*time.Hour), models.MatchScheduled)

	rows, err := svc.Roster(match)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if !rows[0].IsParticipating {
		t.Fatal("missing participation must default to true")
	}
	if rows[0].Goals != 0 {
		t.Fatalf("goals = %d, want 0", rows[0].Goals)
	}

	// Viewing the roster ensures participation but never stats rows.
	if n := countParticipations(t, db); n != 1 {
		t.Fatalf("participation rows = %d, want 1", n)
	}
	var statsRows int64
	if err := db.Model(&models.PlayerStats{}).Count(&statsRows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if statsRows != 0 {
		t.Fatalf("stats rows = %d, want 0", statsRows)
	}
}
