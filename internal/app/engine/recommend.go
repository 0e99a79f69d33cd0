package engine

import (
	"fmt"
	"sort"

	"cp_assistant/internal/domain/model"
)

// RecommendConfig holds the tunables of the recommendation scorer. Zero
// values are replaced by the defaults below. The band is asymmetric on
// purpose: reaching above the estimate is where the learning happens.
type RecommendConfig struct {
	BandLow  int // skill - BandLow is the band floor
	BandHigh int // skill + BandHigh is the band ceiling
	// GrowthFactor widens the band geometrically when no candidate
	// falls inside it, bounded by MaxRetries.
	GrowthFactor float64
	MaxRetries   int
	// Score weights.
	ClosenessWeight float64
	AffinityWeight  float64
	AttemptPenalty  float64
	// AttemptCap bounds how many failed attempts count toward the
	// penalty term.
	AttemptCap   int
	DefaultLimit int
}

func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		BandLow:         100,
		BandHigh:        300,
		GrowthFactor:    1.5,
		MaxRetries:      3,
		ClosenessWeight: 0.6,
		AffinityWeight:  0.3,
		AttemptPenalty:  0.1,
		AttemptCap:      5,
		DefaultLimit:    10,
	}
}

func (c RecommendConfig) withDefaults() RecommendConfig {
	d := DefaultRecommendConfig()
	if c.BandLow <= 0 {
		c.BandLow = d.BandLow
	}
	if c.BandHigh <= 0 {
		c.BandHigh = d.BandHigh
	}
	if c.GrowthFactor <= 1 {
		c.GrowthFactor = d.GrowthFactor
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.ClosenessWeight <= 0 {
		c.ClosenessWeight = d.ClosenessWeight
	}
	if c.AffinityWeight <= 0 {
		c.AffinityWeight = d.AffinityWeight
	}
	if c.AttemptPenalty <= 0 {
		c.AttemptPenalty = d.AttemptPenalty
	}
	if c.AttemptCap <= 0 {
		c.AttemptCap = d.AttemptCap
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	return c
}

// RecommendRequest carries the per-user inputs of the scorer.
type RecommendRequest struct {
	Skill model.SkillEstimate
	// Solved is the user's solved-problem set; recommendations never
	// include a member of it.
	Solved map[string]bool
	// FailedAttempts per problem key, feeding the penalty term.
	FailedAttempts map[string]int
	// TagCounts is the user's historical tag distribution; tags solved
	// less often are weighted higher to encourage breadth.
	TagCounts map[string]int
	// MinRating/MaxRating, when both set, override the derived band.
	MinRating int
	MaxRating int
	Limit     int
}

// Recommend filters and ranks unsolved catalog problems against the
// skill estimate and tag history. The result is fully deterministic for
// a fixed input snapshot: ties break by lower problem rating, then by
// contest id ascending, then index ascending.
func Recommend(catalog []model.Problem, req RecommendRequest, cfg RecommendConfig) model.RecommendationResult {
	cfg = cfg.withDefaults()
	limit := req.Limit
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	// Candidate set: unsolved, rated.
	candidates := make([]model.Problem, 0, len(catalog))
	for _, p := range catalog {
		if p.Rated() && !req.Solved[p.ID.Key()] {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return model.RecommendationResult{Reason: "no unsolved rated problems in the catalog"}
	}

	low, high, overridden := band(req, cfg)

	inBand := filterBand(candidates, low, high)
	if !overridden {
		// Bounded geometric widening before giving up.
		for retry := 0; len(inBand) == 0 && retry < cfg.MaxRetries; retry++ {
			low = req.Skill.Rating - int(float64(req.Skill.Rating-low)*cfg.GrowthFactor)
			high = req.Skill.Rating + int(float64(high-req.Skill.Rating)*cfg.GrowthFactor)
			inBand = filterBand(candidates, low, high)
		}
	}
	if len(inBand) == 0 {
		return model.RecommendationResult{
			BandLow:  low,
			BandHigh: high,
			Reason:   fmt.Sprintf("no unsolved problems in rating range %d-%d", low, high),
		}
	}

	maxTagCount := 0
	for _, count := range req.TagCounts {
		if count > maxTagCount {
			maxTagCount = count
		}
	}

	scored := make([]model.ScoredProblem, 0, len(inBand))
	norm := float64(high - low)
	if norm <= 0 {
		norm = 1
	}
	for _, p := range inBand {
		scored = append(scored, model.ScoredProblem{
			Problem: p,
			Score:   score(p, req, cfg, norm, maxTagCount),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Problem.Rating != b.Problem.Rating {
			return a.Problem.Rating < b.Problem.Rating
		}
		return lessProblemID(a.Problem.ID, b.Problem.ID)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return model.RecommendationResult{Items: scored, BandLow: low, BandHigh: high}
}

// band resolves the target rating range. Sparse confidence pre-widens the
// derived band once: with little history the estimate deserves less
// trust. An explicit override is respected verbatim and never widened.
func band(req RecommendRequest, cfg RecommendConfig) (low, high int, overridden bool) {
	if req.MinRating > 0 && req.MaxRating > 0 {
		return req.MinRating, req.MaxRating, true
	}
	dLow, dHigh := cfg.BandLow, cfg.BandHigh
	if req.Skill.Tier == model.TierSparse {
		dLow = int(float64(dLow) * cfg.GrowthFactor)
		dHigh = int(float64(dHigh) * cfg.GrowthFactor)
	}
	return req.Skill.Rating - dLow, req.Skill.Rating + dHigh, false
}

func filterBand(candidates []model.Problem, low, high int) []model.Problem {
	out := make([]model.Problem, 0, len(candidates))
	for _, p := range candidates {
		if p.Rating >= low && p.Rating <= high {
			out = append(out, p)
		}
	}
	return out
}

// score blends three terms:
//   - closeness: penalizes rating distance from the skill estimate,
//     normalized by the band width;
//   - tag affinity: rewards tags the user has practiced least;
//   - attempt penalty: dampens problems with repeated failed attempts,
//     without excluding them outright.
func score(p model.Problem, req RecommendRequest, cfg RecommendConfig, norm float64, maxTagCount int) float64 {
	dist := float64(p.Rating - req.Skill.Rating)
	if dist < 0 {
		dist = -dist
	}
	closeness := 1 - dist/norm
	if closeness < 0 {
		closeness = 0
	}

	affinity := 0.5 // neutral when there is no tag history to learn from
	if maxTagCount > 0 && len(p.Tags) > 0 {
		sum := 0.0
		for _, tag := range p.Tags {
			sum += 1 - float64(req.TagCounts[tag])/float64(maxTagCount)
		}
		affinity = sum / float64(len(p.Tags))
	}

	attempts := req.FailedAttempts[p.ID.Key()]
	if attempts > cfg.AttemptCap {
		attempts = cfg.AttemptCap
	}
	penalty := float64(attempts) / float64(cfg.AttemptCap)

	return cfg.ClosenessWeight*closeness + cfg.AffinityWeight*affinity - cfg.AttemptPenalty*penalty
}
