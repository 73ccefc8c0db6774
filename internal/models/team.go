package models

import (
	"time"

	"github.com/google/uuid"
)

// AgeGroup tags both teams and leagues with the age bracket they play in.
type AgeGroup string

const (
	AgeGroupU6    AgeGroup = "U6"
	AgeGroupU12   AgeGroup = "U12"
	AgeGroupU15   AgeGroup = "U15"
	AgeGroupU18   AgeGroup = "U18"
	AgeGroupAdult AgeGroup = "adult"
)

var AgeGroups = []AgeGroup{AgeGroupU6, AgeGroupU12, AgeGroupU15, AgeGroupU18, AgeGroupAdult}

func (g AgeGroup) Valid() bool {
	for _, known := range AgeGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Team always has exactly one owning coach. The leagues association is
// the optional set of leagues the team participates in.
type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	CoachID     uuid.UUID `gorm:"type:uuid;not null;index" json:"coach_id"`
	Coach       *User     `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"coach,omitempty"`
	AgeGroup    AgeGroup  `gorm:"size:20;not null" json:"age_group"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Leagues     []League  `gorm:"many2many:team_leagues" json:"leagues,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
