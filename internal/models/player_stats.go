package models

import (
	"time"

	"github.com/google/uuid"
)

// StatFields is the closed set of per-match stat columns the bulk update
// form may address.
var StatFields = map[string]bool{
	"goals":          true,
	"assists":        true,
	"yellow_cards":   true,
	"red_cards":      true,
	"minutes_played": true,
}

// PlayerStats is the per (player, match) performance record. Rows are
// created on demand when stats are first written, never by participation
// alone.
type PlayerStats struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlayerID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stats_player_match" json:"player_id"`
	Player        *Player   `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE" json:"player,omitempty"`
	MatchID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_stats_player_match" json:"match_id"`
	Match         *Match    `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"match,omitempty"`
	Goals         int       `gorm:"not null;default:0" json:"goals"`
	Assists       int       `gorm:"not null;default:0" json:"assists"`
	YellowCards   int       `gorm:"not null;default:0" json:"yellow_cards"`
	RedCards      int       `gorm:"not null;default:0" json:"red_cards"`
	MinutesPlayed int       `gorm:"not null;default:0" json:"minutes_played"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Set assigns one named stat field. Unknown names are a no-op; the bulk
// form validates against StatFields first.
func (s *PlayerStats) Set(field string, value int) {
	switch field {
	case "goals":
		s.Goals = value
	case "assists":
		s.Assists = value
	case "yellow_cards":
		s.YellowCards = value
	case "red_cards":
		s.RedCards = value
	case "minutes_played":
		s.MinutesPlayed = value
	}
}
