package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/authz"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/models"
	"gorm.io/gorm"
)

var (
	ErrStatsNotFound = errors.New("stats record not found")
	ErrStatsExist    = errors.New("stats for this player and match already exist")
)

// StatsService owns per-match performance rows and every derived
// aggregate. Aggregates are recomputed on read, never stored.
type StatsService struct {
	db            *gorm.DB
	participation *ParticipationService
}

func NewStatsService(db *gorm.DB, participation *ParticipationService) *StatsService {
	return &StatsService{db: db, participation: participation}
}

// BulkUpdate applies the participants form: one named field per entry.
// Entries with unknown fields, unknown players or players outside the
// match's team are skipped; malformed numbers coerce to zero. One bad
// entry never fails the batch.
func (s *StatsService) BulkUpdate(match *models.Match, updates []dto.StatUpdate) ([]models.PlayerStats, error) {
	applied := make([]models.PlayerStats, 0, len(updates))
	for _, u := range updates {
		if !models.StatFields[u.Field] {
			continue
		}

		var player models.Player
		err := s.db.Where("id = ? AND team_id = ?", u.PlayerID, match.TeamID).First(&player).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		row, err := s.ensure(player.ID, match.ID)
		if err != nil {
			return nil, err
		}

		value, convErr := strconv.Atoi(strings.TrimSpace(u.Value))
		if convErr != nil {
			value = 0
		}

		// u.Field was validated against StatFields, so it is a known
		// column name.
		if err := s.db.Model(row).Update(u.Field, value).Error; err != nil {
			return nil, err
		}
		row.Set(u.Field, value)
		applied = append(applied, *row)
	}
	return applied, nil
}

// Roster builds the participants view: every player of the fielding team
// with their opt-in state (lazily ensured) and stat line (zeros when no
// row exists yet; reading never creates stats).
func (s *StatsService) Roster(match *models.Match) ([]dto.ParticipantRow, error) {
	var players []models.Player
	if err := s.db.Where("team_id = ?", match.TeamID).
		Order("created_at").Find(&players).Error; err != nil {
		return nil, err
	}

	rows := make([]dto.ParticipantRow, 0, len(players))
	for i := range players {
		player := &players[i]
		participation, err := s.participation.Ensure(s.db, player.ID, match.ID)
		if err != nil {
			return nil, err
		}

		row := dto.ParticipantRow{
			PlayerID:        player.ID,
			Nickname:        player.Nickname,
			JerseyNumber:    player.JerseyNumber,
			IsParticipating: participation.IsParticipating,
		}

		var stats models.PlayerStats
		err = s.db.Where("player_id = ? AND match_id = ?", player.ID, match.ID).First(&stats).Error
		if err == nil {
			row.Goals = stats.Goals
			row.Assists = stats.Assists
			row.YellowCards = stats.YellowCards
			row.RedCards = stats.RedCards
			row.MinutesPlayed = stats.MinutesPlayed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ensure is the stats get-or-create, all fields zero. A lost creation
// race re-fetches instead of failing.
func (s *StatsService) ensure(playerID, matchID uuid.UUID) (*models.PlayerStats, error) {
	var row models.PlayerStats
	err := s.db.Where("player_id = ? AND match_id = ?", playerID, matchID).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = models.PlayerStats{ID: uuid.New(), PlayerID: playerID, MatchID: matchID}
	if err := s.db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.PlayerStats
			if ferr := s.db.Where("player_id = ? AND match_id = ?", playerID, matchID).
				First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &row, nil
}

// Explicit stats CRUD, used by the standalone stats form.

func (s *StatsService) ListRows(actor *models.User) ([]models.PlayerStats, error) {
	var rows []models.PlayerStats
	err := s.db.Scopes(authz.StatsVisibleTo(actor)).
		Preload("Player").Preload("Match").
		Order("player_stats.created_at").Find(&rows).Error
	return rows, err
}

// GetRow loads a stats row with the ownership chain (player→team,
// match→league) preloaded for authorization.
func (s *StatsService) GetRow(id uuid.UUID) (*models.PlayerStats, error) {
	var row models.PlayerStats
	err := s.db.Preload("Player.Team").Preload("Match.League").
		First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatsNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *StatsService) CreateRow(playerID, matchID uuid.UUID, goals, assists, minutes int) (*models.PlayerStats, error) {
	row := models.PlayerStats{
		ID:            uuid.New(),
		PlayerID:      playerID,
		MatchID:       matchID,
		Goals:         goals,
		Assists:       assists,
		MinutesPlayed: minutes,
	}
	if err := s.db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStatsExist
		}
		return nil, err
	}
	return &row, nil
}

func (s *StatsService) UpdateRow(row *models.PlayerStats, goals, assists, minutes int) error {
	return s.db.Model(row).Updates(map[string]interface{}{
		"goals":          goals,
		"assists":        assists,
		"minutes_played": minutes,
	}).Error
}

func (s *StatsService) DeleteRow(id uuid.UUID) error {
	return s.db.Where("id = ?", id).Delete(&models.PlayerStats{}).Error
}

// PlayerTotals sums every stat row of the player. matches_played counts
// opted-in participation rows whose match is finished; it is derived,
// never stored.
func (s *StatsService) PlayerTotals(playerID uuid.UUID) (dto.PlayerTotals, error) {
	var totals dto.PlayerTotals
	err := s.db.Model(&models.PlayerStats{}).
		Where("player_id = ?", playerID).
		Select("COALESCE(SUM(goals),0) AS total_goals," +
			"COALESCE(SUM(assists),0) AS total_assists," +
			"COALESCE(SUM(yellow_cards),0) AS total_yellow_cards," +
			"COALESCE(SUM(red_cards),0) AS total_red_cards," +
			"COALESCE(SUM(minutes_played),0) AS total_minutes").
		Scan(&totals).Error
	if err != nil {
		return totals, err
	}

	var played int64
	err = s.db.Model(&models.MatchParticipation{}).
		Joins("JOIN matches ON matches.id = match_participations.match_id").
		Where("match_participations.player_id = ? AND match_participations.is_participating = ? AND matches.status = ?",
			playerID, true, models.MatchFinished).
		Count(&played).Error
	if err != nil {
		return totals, err
	}
	totals.MatchesPlayed = int(played)
	return totals, nil
}

// TeamRecord computes the win/draw/loss ledger for one team. Only
// finished matches with both scores present count.
func (s *StatsService) TeamRecord(team *models.Team) (dto.TeamRecord, error) {
	record := dto.TeamRecord{
		TeamID:   team.ID,
		Name:     team.Name,
		AgeGroup: string(team.AgeGroup),
	}

	var playerCount int64
	if err := s.db.Model(&models.Player{}).Where("team_id = ?", team.ID).
		Count(&playerCount).Error; err != nil {
		return record, err
	}
	record.PlayerCount = int(playerCount)

	var matches []models.Match
	if err := s.db.Where("team_id = ?", team.ID).Find(&matches).Error; err != nil {
		return record, err
	}
	record.TotalMatches = len(matches)

	for _, match := range matches {
		if !match.Status.Completed() || match.OurScore == nil || match.OpponentScore == nil {
			continue
		}
		switch {
		case *match.OurScore > *match.OpponentScore:
			record.Wins++
		case *match.OurScore < *match.OpponentScore:
			record.Losses++
		default:
			record.Draws++
		}
	}
	return record, nil
}

// Overview builds the role-scoped statistics page.
func (s *StatsService) Overview(actor *models.User, playerProfile *models.Player) (*dto.StatisticsResponse, error) {
	resp := &dto.StatisticsResponse{}

	switch actor.Role {
	case models.RoleAdmin, models.RoleCoach:
		var teams []models.Team
		if err := s.db.Scopes(authz.TeamsOwnedBy(actor)).Find(&teams).Error; err != nil {
			return nil, err
		}
		resp.TotalTeams = len(teams)

		var players []models.Player
		if err := s.db.Scopes(authz.PlayersCoachedBy(actor)).Find(&players).Error; err != nil {
			return nil, err
		}
		resp.TotalPlayers = len(players)

		var visible []models.Match
		if err := s.db.Scopes(authz.MatchesVisibleTo(actor)).Find(&visible).Error; err != nil {
			return nil, err
		}
		resp.TotalMatches = len(visible)
		for _, match := range visible {
			if match.Status.Completed() {
				resp.FinishedMatches++
			}
		}

		for i := range teams {
			record, err := s.TeamRecord(&teams[i])
			if err != nil {
				return nil, err
			}
			resp.Teams = append(resp.Teams, record)
		}

		if actor.Role == models.RoleAdmin {
			resp.AgeGroupCounts = map[string]int{}
			for _, team := range teams {
				resp.AgeGroupCounts[string(team.AgeGroup)]++
			}
			resp.MatchStatusCounts = map[string]int{}
			for _, match := range visible {
				resp.MatchStatusCounts[string(match.Status)]++
			}
		} else {
			for i := range players {
				totals, err := s.PlayerTotals(players[i].ID)
				if err != nil {
					return nil, err
				}
				resp.PlayerStatistics = append(resp.PlayerStatistics, dto.PlayerTotalsRow{
					PlayerID:     players[i].ID,
					Nickname:     players[i].Nickname,
					PlayerTotals: totals,
				})
			}
		}

	case models.RolePlayer:
		totals := dto.PlayerTotals{}
		if playerProfile != nil {
			var err error
			totals, err = s.PlayerTotals(playerProfile.ID)
			if err != nil {
				return nil, err
			}
			if err := s.db.Preload("Match").Where("player_id = ?", playerProfile.ID).
				Find(&resp.OwnMatchStats).Error; err != nil {
				return nil, err
			}
		}
		resp.OwnTotals = &totals
	}

	return resp, nil
}

// Summary backs the dashboard landing counters.
func (s *StatsService) Summary(actor *models.User, playerProfile *models.Player) (*dto.SummaryResponse, error) {
	resp := &dto.SummaryResponse{}
	now := time.Now()

	var upcoming int64
	err := s.db.Model(&models.Match{}).
		Where("match_date >= ? AND status = ?", now, models.MatchScheduled).
		Count(&upcoming).Error
	if err != nil {
		return nil, err
	}
	resp.UpcomingMatches = int(upcoming)

	switch actor.Role {
	case models.RoleAdmin:
		var total, approved int64
		if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&models.User{}).Where("approved = ?", true).Count(&approved).Error; err != nil {
			return nil, err
		}
		resp.TotalUsers = int(total)
		resp.ApprovedUsers = int(approved)

		var pending []models.User
		if err := s.db.Where("approved = ?", false).Order("created_at").Find(&pending).Error; err != nil {
			return nil, err
		}
		for _, user := range pending {
			resp.PendingUsers = append(resp.PendingUsers, dto.UserResponse{
				ID: user.ID, Username: user.Username, Email: user.Email,
				Role: string(user.Role), Approved: user.Approved, CreatedAt: user.CreatedAt,
			})
		}

		var teamCount int64
		if err := s.db.Model(&models.Team{}).Count(&teamCount).Error; err != nil {
			return nil, err
		}
		resp.TotalTeams = int(teamCount)

	case models.RoleCoach:
		var teamCount int64
		if err := s.db.Model(&models.Team{}).Where("coach_id = ?", actor.ID).
			Count(&teamCount).Error; err != nil {
			return nil, err
		}
		resp.TotalTeams = int(teamCount)

		err := s.db.
			Joins("JOIN teams ON teams.id = matches.team_id").
			Where("teams.coach_id = ? AND matches.match_date >= ?", actor.ID, now.AddDate(0, 0, -30)).
			Order("matches.match_date").Limit(5).
			Preload("League").Preload("Team").
			Find(&resp.RecentMatches).Error
		if err != nil {
			return nil, err
		}

	case models.RolePlayer:
		if playerProfile != nil {
			err := s.db.Where("team_id = ? AND match_date >= ?",
				playerProfile.TeamID, now.AddDate(0, 0, -30)).
				Order("match_date").Limit(5).
				Preload("League").Preload("Team").
				Find(&resp.RecentMatches).Error
			if err != nil {
				return nil, err
			}
			totals, err := s.PlayerTotals(playerProfile.ID)
			if err != nil {
				return nil, err
			}
			resp.OwnTotals = &totals
		}
	}

	return resp, nil
}
