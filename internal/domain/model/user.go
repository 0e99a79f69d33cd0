package model

import "time"

// User is the request-scoped view of one handle's fetched history.
// Submissions are ordered by time, RatingChanges by contest time.
type User struct {
	Handle           string         `json:"handle"`
	Rating           int            `json:"rating,omitempty"`
	MaxRating        int            `json:"max_rating,omitempty"`
	Rank             string         `json:"rank,omitempty"`
	RegistrationTime time.Time      `json:"registration_time,omitempty"`
	Submissions      []Submission   `json:"-"`
	RatingChanges    []RatingChange `json:"-"`
}

// UserStats is the profile summary served to consumers.
type UserStats struct {
	Handle           string    `json:"handle"`
	Rating           int       `json:"rating"`
	MaxRating        int       `json:"max_rating"`
	Rank             string    `json:"rank"`
	RegistrationTime time.Time `json:"registration_time"`
	SolvedCount      int       `json:"solved_count"`
	ContestCount     int       `json:"contest_count"`
	RecentAccepted   int       `json:"recent_accepted"`
	ProfileURL       string    `json:"profile_url"`
	// Set when the handle resolved but detailed history could not be
	// fetched; the summary then carries profile fields only.
	Partial bool `json:"partial,omitempty"`
}
