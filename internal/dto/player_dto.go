package dto

import "github.com/google/uuid"

type PlayerRequest struct {
	UserID       uuid.UUID `json:"user_id"`
	Nickname     string    `json:"nickname"`
	TeamID       uuid.UUID `json:"team_id"`
	JerseyNumber *int      `json:"jersey_number,omitempty"`
	Positions    []string  `json:"positions"`
	Height       *float64  `json:"height,omitempty"`
	Weight       *float64  `json:"weight,omitempty"`
	Age          int       `json:"age"`
	Stamina      string    `json:"stamina"`
	Speed        string    `json:"speed"`
	Technique    string    `json:"technique"`
}

type MatchRequest struct {
	LeagueID      uuid.UUID `json:"league_id"`
	TeamID        uuid.UUID `json:"team_id"`
	OpponentName  string    `json:"opponent_name"`
	MatchDate     string    `json:"match_date"`
	Venue         string    `json:"venue"`
	OurScore      *int      `json:"our_score,omitempty"`
	OpponentScore *int      `json:"opponent_score,omitempty"`
	Status        string    `json:"status,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}
