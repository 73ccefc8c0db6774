package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/matchday-hq/matchday/internal/models"
)

// StatUpdate is one entry of the typed bulk payload: a single named
// field for a single player. Value stays a string so malformed input can
// coerce to zero instead of failing the batch.
type StatUpdate struct {
	PlayerID uuid.UUID `json:"player_id"`
	Field    string    `json:"field"`
	Value    string    `json:"value"`
}

type BulkStatsRequest struct {
	Updates []StatUpdate `json:"updates"`
}

// StatsRequest is the explicit per-row stats form.
type StatsRequest struct {
	PlayerID      uuid.UUID `json:"player_id"`
	MatchID       uuid.UUID `json:"match_id"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	MinutesPlayed int       `json:"minutes_played"`
}

// ParticipantRow is one roster line of the match participants view.
type ParticipantRow struct {
	PlayerID        uuid.UUID `json:"player_id"`
	Nickname        string    `json:"nickname"`
	JerseyNumber    *int      `json:"jersey_number,omitempty"`
	IsParticipating bool      `json:"is_participating"`
	Goals           int       `json:"goals"`
	Assists         int       `json:"assists"`
	YellowCards     int       `json:"yellow_cards"`
	RedCards        int       `json:"red_cards"`
	MinutesPlayed   int       `json:"minutes_played"`
}

type ParticipateRequest struct {
	IsParticipating string `json:"is_participating"`
}

// MyMatchRow is one fixture on the player's own-matches page.
type MyMatchRow struct {
	MatchID         uuid.UUID `json:"match_id"`
	OpponentName    string    `json:"opponent_name"`
	MatchDate       time.Time `json:"match_date"`
	Venue           string    `json:"venue"`
	Status          string    `json:"status"`
	IsParticipating bool      `json:"is_participating"`
	CanEdit         bool      `json:"can_edit"`
}

// PlayerTotals is the recomputed-on-read aggregate for one player.
type PlayerTotals struct {
	MatchesPlayed    int `json:"matches_played"`
	TotalGoals       int `json:"total_goals"`
	TotalAssists     int `json:"total_assists"`
	TotalYellowCards int `json:"total_yellow_cards"`
	TotalRedCards    int `json:"total_red_cards"`
	TotalMinutes     int `json:"total_minutes"`
}

type TeamRecord struct {
	TeamID       uuid.UUID `json:"team_id"`
	Name         string    `json:"name"`
	AgeGroup     string    `json:"age_group"`
	PlayerCount  int       `json:"player_count"`
	TotalMatches int       `json:"total_matches"`
	Wins         int       `json:"wins"`
	Draws        int       `json:"draws"`
	Losses       int       `json:"losses"`
}

type PlayerTotalsRow struct {
	PlayerID uuid.UUID `json:"player_id"`
	Nickname string    `json:"nickname"`
	PlayerTotals
}

// StatisticsResponse is the role-scoped aggregate view; sections are
// omitted when they do not apply to the caller's role.
type StatisticsResponse struct {
	TotalTeams        int                  `json:"total_teams,omitempty"`
	TotalPlayers      int                  `json:"total_players,omitempty"`
	TotalMatches      int                  `json:"total_matches,omitempty"`
	FinishedMatches   int                  `json:"finished_matches,omitempty"`
	Teams             []TeamRecord         `json:"teams,omitempty"`
	PlayerStatistics  []PlayerTotalsRow    `json:"player_statistics,omitempty"`
	AgeGroupCounts    map[string]int       `json:"age_group_counts,omitempty"`
	MatchStatusCounts map[string]int       `json:"match_status_counts,omitempty"`
	OwnTotals         *PlayerTotals        `json:"own_totals,omitempty"`
	OwnMatchStats     []models.PlayerStats `json:"own_match_stats,omitempty"`
}

// SummaryResponse backs the landing dashboard counters.
type SummaryResponse struct {
	TotalUsers      int            `json:"total_users,omitempty"`
	ApprovedUsers   int            `json:"approved_users,omitempty"`
	PendingUsers    []UserResponse `json:"pending_users,omitempty"`
	TotalTeams      int            `json:"total_teams"`
	UpcomingMatches int            `json:"upcoming_matches"`
	RecentMatches   []models.Match `json:"recent_matches,omitempty"`
	OwnTotals       *PlayerTotals  `json:"own_totals,omitempty"`
}
