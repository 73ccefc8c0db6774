package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCoach  Role = "coach"
	RolePlayer Role = "player"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RolePlayer:
		return true
	}
	return false
}

// User is an account record. Self-registered accounts start unapproved
// and cannot authenticate into any role-scoped view until an admin
// approves them.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:10;not null;default:'player'" json:"role"`
	Approved     bool      `gorm:"not null;default:false" json:"approved"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
