package model

import "time"

type ReportKind string

const (
	ReportRatingHistogram ReportKind = "rating_histogram"
	ReportVerdicts        ReportKind = "verdicts"
	ReportTags            ReportKind = "tags"
	ReportLanguages       ReportKind = "languages"
)

// UnknownBucket collects entries whose rating or tags are absent;
// such entries are counted, never dropped.
const UnknownBucket = "unknown"

// DistributionReport maps bucket keys to counts. Unless NonExclusive is
// set, bucket counts sum exactly to Total. The tag report is the one
// non-exclusive report: a problem with k tags contributes to k buckets,
// so consumers must not assume counts sum to Total.
type DistributionReport struct {
	Kind         ReportKind     `json:"kind"`
	Buckets      map[string]int `json:"buckets"`
	Total        int            `json:"total"`
	NonExclusive bool           `json:"non_exclusive,omitempty"`
}

// BucketCount is one entry of a report in deterministic order.
type BucketCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type ConfidenceTier string

const (
	TierSparse   ConfidenceTier = "Sparse"
	TierAdequate ConfidenceTier = "Adequate"
	TierRich     ConfidenceTier = "Rich"
)

// SkillEstimate is the practice-level rating derived from a user's
// history plus a tier describing how much history backs it.
type SkillEstimate struct {
	Rating        int            `json:"rating"`
	Tier          ConfidenceTier `json:"tier"`
	AcceptedCount int            `json:"accepted_count"`
	// FromContests is true when the estimate came from rating changes
	// rather than the solved-difficulty fallback.
	FromContests bool `json:"from_contests"`
}

// ScoredProblem pairs a recommended problem with its score.
type ScoredProblem struct {
	Problem Problem `json:"problem"`
	Score   float64 `json:"score"`
}

// RecommendationResult is an ordered sequence of scored problems.
// When Items is empty, Reason explains why (band exhausted, empty
// catalog, ...); that case is a diagnostic, not a failure.
type RecommendationResult struct {
	Items    []ScoredProblem `json:"items"`
	BandLow  int             `json:"band_low"`
	BandHigh int             `json:"band_high"`
	Reason   string          `json:"reason,omitempty"`
}

// UpsolveTarget is a contest problem the user attempted during a
// participated contest but never got accepted.
type UpsolveTarget struct {
	ContestID   int       `json:"contest_id"`
	ContestName string    `json:"contest_name,omitempty"`
	Problem     Problem   `json:"problem"`
	Attempts    int       `json:"attempts"`
	LastAttempt time.Time `json:"last_attempt"`
}

// TrajectoryPoint is one contest on the rating-over-time payload handed
// to the chart renderer. Performance is the single-contest estimate
// oldRating + 4*delta.
type TrajectoryPoint struct {
	Time        time.Time `json:"time"`
	ContestID   int       `json:"contest_id"`
	ContestName string    `json:"contest_name"`
	Rank        int       `json:"rank"`
	NewRating   int       `json:"new_rating"`
	Delta       int       `json:"delta"`
	Performance int       `json:"performance"`
}

// SolvedProblem is an entry of the recently-solved listing.
type SolvedProblem struct {
	Problem  Problem   `json:"problem"`
	SolvedAt time.Time `json:"solved_at"`
}

// DailyProblem is today's LeetCode challenge.
type DailyProblem struct {
	Title       string   `json:"title"`
	Difficulty  string   `json:"difficulty"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date,omitempty"`
}

// Report is the assembled per-request response: the outputs of the
// engine components packaged together with their orderings intact.
type Report struct {
	ID              string               `json:"id"`
	Handle          string               `json:"handle"`
	GeneratedAt     time.Time            `json:"generated_at"`
	Skill           SkillEstimate        `json:"skill"`
	Distributions   []DistributionReport `json:"distributions"`
	Recommendations RecommendationResult `json:"recommendations"`
	Upsolve         []UpsolveTarget      `json:"upsolve"`
	SkippedRecords  int                  `json:"skipped_records,omitempty"`
}
