package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// League ownership is nullable: removing a coach reassigns their leagues
// to "none" instead of deleting them. Start/end ordering is caller
// supplied and deliberately not validated.
type League struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Season      string         `gorm:"size:20;not null" json:"season"`
	AgeGroup    AgeGroup       `gorm:"size:20;not null" json:"age_group"`
	StartDate   datatypes.Date `json:"start_date"`
	EndDate     datatypes.Date `json:"end_date"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CoachID     *uuid.UUID     `gorm:"type:uuid;index" json:"coach_id,omitempty"`
	Coach       *User          `gorm:"foreignKey:CoachID;constraint:OnDelete:SET NULL" json:"coach,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
