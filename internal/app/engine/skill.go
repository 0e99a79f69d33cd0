package engine

import (
	"sort"

	"cp_assistant/internal/domain/model"
)

// SkillConfig holds the tunables of the skill estimator. Zero values are
// replaced by the defaults below.
type SkillConfig struct {
	// FallbackWindow bounds how many of the most recent accepted
	// submissions feed the solved-difficulty fallback.
	FallbackWindow int
	// Percentile of the (recency-weighted) solved-rating distribution
	// used as the practice estimate, in (0, 1].
	Percentile float64
	// RecencyDecay is the geometric weight applied per step back in
	// time: the most recent solve weighs 1, the one before Decay, ...
	RecencyDecay float64
	// DefaultRating is returned when there is no usable signal at all.
	DefaultRating int
	// Tier thresholds on the accepted-submission count:
	// count < SparseBelow => Sparse, count <= AdequateUpTo => Adequate,
	// above that => Rich.
	SparseBelow  int
	AdequateUpTo int
}

func DefaultSkillConfig() SkillConfig {
	return SkillConfig{
		FallbackWindow: 50,
		Percentile:     0.75,
		RecencyDecay:   0.95,
		DefaultRating:  1200,
		SparseBelow:    5,
		AdequateUpTo:   20,
	}
}

func (c SkillConfig) withDefaults() SkillConfig {
	d := DefaultSkillConfig()
	if c.FallbackWindow <= 0 {
		c.FallbackWindow = d.FallbackWindow
	}
	if c.Percentile <= 0 || c.Percentile > 1 {
		c.Percentile = d.Percentile
	}
	if c.RecencyDecay <= 0 || c.RecencyDecay > 1 {
		c.RecencyDecay = d.RecencyDecay
	}
	if c.DefaultRating <= 0 {
		c.DefaultRating = d.DefaultRating
	}
	if c.SparseBelow <= 0 {
		c.SparseBelow = d.SparseBelow
	}
	if c.AdequateUpTo <= 0 {
		c.AdequateUpTo = d.AdequateUpTo
	}
	return c
}

// EstimateSkill derives the user's current practice-level rating. Contest
// rating is the best signal when available: with rating changes present
// the estimate is the most recent new rating. Practice-only users get a
// recency-weighted percentile of the ratings of recently solved problems,
// so the estimate tracks improvement.
func EstimateSkill(subs []model.Submission, problems map[string]model.Problem, changes []model.RatingChange, cfg SkillConfig) model.SkillEstimate {
	cfg = cfg.withDefaults()

	accepted := 0
	for _, s := range subs {
		if s.Verdict == model.VerdictAccepted {
			accepted++
		}
	}
	est := model.SkillEstimate{AcceptedCount: accepted, Tier: tierFor(accepted, cfg)}

	if len(changes) > 0 {
		est.Rating = changes[len(changes)-1].NewRating
		est.FromContests = true
		return est
	}

	ratings := recentSolvedRatings(subs, problems, cfg.FallbackWindow)
	if len(ratings) == 0 {
		est.Rating = cfg.DefaultRating
		return est
	}
	est.Rating = weightedPercentile(ratings, cfg.RecencyDecay, cfg.Percentile)
	return est
}

func tierFor(accepted int, cfg SkillConfig) model.ConfidenceTier {
	switch {
	case accepted < cfg.SparseBelow:
		return model.TierSparse
	case accepted <= cfg.AdequateUpTo:
		return model.TierAdequate
	default:
		return model.TierRich
	}
}

// recentSolvedRatings returns the ratings of distinct rated problems
// solved in the last window accepted submissions, most recent first.
func recentSolvedRatings(subs []model.Submission, problems map[string]model.Problem, window int) []int {
	var ratings []int
	seen := make(map[string]bool)
	// Submissions come ordered oldest-first; walk backwards.
	for i := len(subs) - 1; i >= 0 && len(ratings) < window; i-- {
		s := subs[i]
		if s.Verdict != model.VerdictAccepted {
			continue
		}
		key := s.ProblemID.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		if p, ok := problems[key]; ok && p.Rated() {
			ratings = append(ratings, p.Rating)
		}
	}
	return ratings
}

// weightedPercentile computes the pth percentile of ratings, where the
// i-th most recent rating carries weight decay^i. Ratings arrive most
// recent first.
func weightedPercentile(ratings []int, decay float64, p float64) int {
	type weighted struct {
		rating int
		weight float64
	}
	items := make([]weighted, len(ratings))
	total := 0.0
	w := 1.0
	for i, r := range ratings {
		items[i] = weighted{rating: r, weight: w}
		total += w
		w *= decay
	}
	sort.Slice(items, func(i, j int) bool { return items[i].rating < items[j].rating })

	threshold := p * total
	cum := 0.0
	for _, it := range items {
		cum += it.weight
		if cum >= threshold {
			return it.rating
		}
	}
	return items[len(items)-1].rating
}
