package model

import "time"

// Contest correlates a problem roster with the submissions a user made
// to it, for upsolve detection.
type Contest struct {
	ID        int         `json:"id"`
	Name      string      `json:"name,omitempty"`
	StartTime time.Time   `json:"start_time,omitempty"`
	Problems  []ProblemID `json:"problems"`
}

// RatingChange is one point of a user's contest rating trajectory.
// An ordered sequence of these has strictly increasing timestamps.
type RatingChange struct {
	ContestID   int       `json:"contest_id"`
	ContestName string    `json:"contest_name"`
	Rank        int       `json:"rank"`
	OldRating   int       `json:"old_rating"`
	NewRating   int       `json:"new_rating"`
	Time        time.Time `json:"time"`
}

// Delta is the rating gained or lost in the contest.
func (rc RatingChange) Delta() int {
	return rc.NewRating - rc.OldRating
}

// UpcomingContest is a calendar entry from the contest-list collaborator.
type UpcomingContest struct {
	Event    string        `json:"event"`
	Resource string        `json:"resource"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
	Href     string        `json:"href"`
}
