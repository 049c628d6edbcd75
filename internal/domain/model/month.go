// Package model contains domain models passed between layers.
package model

// Submission is one team's single score entry within a month.
// Team names carry no uniqueness constraint inside a month; duplicate
// entries for the same team accumulate during aggregation.
type Submission struct {
	TeamName string  `json:"teamName"`
	Score    float64 `json:"score"`
}

// Month holds one month's submissions. Instances are read once from a data
// source and discarded after aggregation; nothing retains them long-term.
type Month struct {
	ID          string       `json:"id,omitempty"`
	Label       string       `json:"label,omitempty"`
	Date        string       `json:"date,omitempty"`
	Submissions []Submission `json:"submissions"`
}

// TeamTotal is the read shape for ranked aggregation output.
type TeamTotal struct {
	Rank     int     `json:"rank"`
	TeamName string  `json:"team_name"`
	Score    float64 `json:"score"`
}
