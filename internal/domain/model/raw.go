package model

// Raw record shapes as returned by the Codeforces API. They are decoded
// at the client boundary and converted eagerly by the normalizer; no
// other package operates on them.

type RawUser struct {
	Handle          string `json:"handle"`
	Rating          int    `json:"rating"`
	MaxRating       int    `json:"maxRating"`
	Rank            string `json:"rank"`
	RegistrationSec int64  `json:"registrationTimeSeconds"`
}

type RawProblem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

type RawSubmission struct {
	ID          int64      `json:"id"`
	CreationSec int64      `json:"creationTimeSeconds"`
	Problem     RawProblem `json:"problem"`
	Verdict     string     `json:"verdict"`
	Language    string     `json:"programmingLanguage"`
}

type RawRatingChange struct {
	ContestID   int    `json:"contestId"`
	ContestName string `json:"contestName"`
	Rank        int    `json:"rank"`
	OldRating   int    `json:"oldRating"`
	NewRating   int    `json:"newRating"`
	UpdateSec   int64  `json:"ratingUpdateTimeSeconds"`
}
