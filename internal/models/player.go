package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Position string

const (
	PositionGK Position = "GK"
	PositionDF Position = "DF"
	PositionMF Position = "MF"
	PositionFW Position = "FW"
)

var Positions = []Position{PositionGK, PositionDF, PositionMF, PositionFW}

func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// PositionList is an ordered set of positions. It is a comma-joined
// string only at the storage boundary.
type PositionList []Position

// ParsePositions validates tokens and drops duplicates while keeping
// order. At least one position is required.
func ParsePositions(tokens []string) (PositionList, error) {
	var list PositionList
	seen := map[Position]bool{}
	for _, tok := range tokens {
		pos := Position(strings.TrimSpace(tok))
		if pos == "" {
			continue
		}
		if !pos.Valid() {
			return nil, fmt.Errorf("unknown position %q", tok)
		}
		if seen[pos] {
			continue
		}
		seen[pos] = true
		list = append(list, pos)
	}
	if len(list) == 0 {
		return nil, errors.New("at least one position is required")
	}
	return list, nil
}

func (l PositionList) Value() (driver.Value, error) {
	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = string(p)
	}
	return strings.Join(parts, ","), nil
}

func (l *PositionList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PositionList", src)
	}
	*l = nil
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, Position(part))
		}
	}
	return nil
}

func (PositionList) GormDataType() string { return "string" }

// Ability is the coarse skill grade used for stamina, speed and technique.
type Ability string

const (
	AbilityExcellent Ability = "excellent"
	AbilityGood      Ability = "good"
	AbilityAverage   Ability = "average"
)

func (a Ability) Valid() bool {
	switch a {
	case AbilityExcellent, AbilityGood, AbilityAverage:
		return true
	}
	return false
}

// Player links a player-role user to exactly one team. Jersey numbers are
// optional but unique within a team when present; the composite index is
// the backstop for the service-level duplicate check.
type Player struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User         *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Nickname     string       `gorm:"size:50;not null" json:"nickname"`
	TeamID       uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_players_team_jersey" json:"team_id"`
	Team         *Team        `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	JerseyNumber *int         `gorm:"uniqueIndex:idx_players_team_jersey" json:"jersey_number,omitempty"`
	Positions    PositionList `gorm:"size:100;not null" json:"positions"`
	Height       *float64     `json:"height,omitempty"`
	Weight       *float64     `json:"weight,omitempty"`
	Age          int          `gorm:"not null" json:"age"`
	Stamina      Ability      `gorm:"size:10;not null" json:"stamina"`
	Speed        Ability      `gorm:"size:10;not null" json:"speed"`
	Technique    Ability      `gorm:"size:10;not null" json:"technique"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
