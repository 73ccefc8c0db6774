package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchFinished   MatchStatus = "finished"
	MatchCancelled  MatchStatus = "cancelled"
	MatchPostponed  MatchStatus = "postponed"
)

var MatchStatuses = []MatchStatus{
	MatchScheduled, MatchInProgress, MatchFinished, MatchCancelled, MatchPostponed,
}

func (s MatchStatus) Valid() bool {
	for _, known := range MatchStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Completed reports whether the match counts toward win/loss records and
// appearance totals. "finished" is the single completed status.
func (s MatchStatus) Completed() bool { return s == MatchFinished }

// Match is one fixture of our team against a free-text opponent. Scores
// are only meaningful once the match is finished, but that transition is
// not enforced.
type Match struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	LeagueID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"league_id"`
	League        *League     `gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE" json:"league,omitempty"`
	TeamID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"team_id"`
	Team          *Team       `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	OpponentName  string      `gorm:"size:100;not null" json:"opponent_name"`
	MatchDate     time.Time   `gorm:"not null;index" json:"match_date"`
	Venue         string      `gorm:"size:200;not null" json:"venue"`
	OurScore      *int        `json:"our_score,omitempty"`
	OpponentScore *int        `json:"opponent_score,omitempty"`
	Status        MatchStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Notes         string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
