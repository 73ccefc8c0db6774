package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchParticipation is the per (player, match) opt-in record. A row is
// guaranteed to exist for every team-aligned pair: fanned out when a
// match or player is created, lazily ensured on first read otherwise.
// The composite unique index resolves get-or-create races.
type MatchParticipation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlayerID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participation_player_match" json:"player_id"`
	Player          *Player   `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE" json:"player,omitempty"`
	MatchID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_participation_player_match" json:"match_id"`
	Match           *Match    `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"match,omitempty"`
	IsParticipating bool      `gorm:"not null;default:true" json:"is_participating"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
