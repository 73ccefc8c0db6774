package dto

import "github.com/google/uuid"

// TeamRequest covers create and edit. CoachID is honored for admins only;
// coaches always own the teams they create and cannot reassign them.
type TeamRequest struct {
	Name        string      `json:"name"`
	AgeGroup    string      `json:"age_group"`
	Description string      `json:"description,omitempty"`
	CoachID     *uuid.UUID  `json:"coach_id,omitempty"`
	LeagueIDs   []uuid.UUID `json:"league_ids,omitempty"`
}

type LeagueRequest struct {
	Name        string     `json:"name"`
	Season      string     `json:"season"`
	AgeGroup    string     `json:"age_group"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Description string     `json:"description,omitempty"`
	CoachID     *uuid.UUID `json:"coach_id,omitempty"`
}
