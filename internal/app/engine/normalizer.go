package engine

import (
	"sort"
	"time"

	"cp_assistant/internal/domain/model"
)

// NormalizeResult is the canonical output of the submission normalizer.
// Skipped counts raw records dropped for missing identifiers or problem
// references unresolvable against the catalog; they are surfaced to the
// caller, never silently lost.
type NormalizeResult struct {
	Submissions []model.Submission
	Problems    map[string]model.Problem
	Skipped     int
}

// NormalizeSubmissions converts raw fetched submissions into deduplicated,
// canonically-typed entities. Problem metadata comes from the record's
// embedded problem, enriched from the catalog when the embedded copy has
// no rating or tags. Deduplication key: (handle, problem id, verdict,
// timestamp). Output is ordered by submission time, oldest first.
func NormalizeSubmissions(handle string, raw []model.RawSubmission, catalog map[string]model.Problem) NormalizeResult {
	res := NormalizeResult{Problems: make(map[string]model.Problem)}
	seen := make(map[dedupKey]bool)

	for _, rs := range raw {
		if rs.Problem.ContestID == 0 || rs.Problem.Index == "" {
			res.Skipped++
			continue
		}
		prob, ok := resolveProblem(rs.Problem, catalog)
		if !ok {
			res.Skipped++
			continue
		}

		sub := model.Submission{
			Handle:    handle,
			ProblemID: prob.ID,
			Verdict:   model.VerdictFromRaw(rs.Verdict),
			Time:      time.Unix(rs.CreationSec, 0).UTC(),
			Language:  rs.Language,
		}
		key := dedupKey{handle, prob.ID.Key(), sub.Verdict, rs.CreationSec}
		if seen[key] {
			continue
		}
		seen[key] = true

		res.Submissions = append(res.Submissions, sub)
		if _, exists := res.Problems[prob.ID.Key()]; !exists {
			res.Problems[prob.ID.Key()] = prob
		}
	}

	sort.Slice(res.Submissions, func(i, j int) bool {
		return res.Submissions[i].Time.Before(res.Submissions[j].Time)
	})
	return res
}

type dedupKey struct {
	handle  string
	problem string
	verdict model.Verdict
	timeSec int64
}

// resolveProblem builds the canonical problem for a raw reference. A
// record that carries no metadata of its own and has no catalog entry is
// unresolvable.
func resolveProblem(rp model.RawProblem, catalog map[string]model.Problem) (model.Problem, bool) {
	id := model.ProblemID{ContestID: rp.ContestID, Index: rp.Index}
	prob := model.Problem{ID: id, Name: rp.Name, Rating: rp.Rating, Tags: rp.Tags}

	if cat, ok := catalog[id.Key()]; ok {
		if prob.Name == "" {
			prob.Name = cat.Name
		}
		if prob.Rating == 0 {
			prob.Rating = cat.Rating
		}
		if len(prob.Tags) == 0 {
			prob.Tags = cat.Tags
		}
		return prob, true
	}
	if prob.Name == "" && prob.Rating == 0 && len(prob.Tags) == 0 {
		return model.Problem{}, false
	}
	return prob, true
}

// NormalizeProblems converts a raw catalog fetch, dropping records with
// missing identifiers.
func NormalizeProblems(raw []model.RawProblem) []model.Problem {
	problems := make([]model.Problem, 0, len(raw))
	for _, rp := range raw {
		if rp.ContestID == 0 || rp.Index == "" {
			continue
		}
		problems = append(problems, model.Problem{
			ID:     model.ProblemID{ContestID: rp.ContestID, Index: rp.Index},
			Name:   rp.Name,
			Rating: rp.Rating,
			Tags:   rp.Tags,
		})
	}
	return problems
}

// NormalizeRatingChanges orders a raw rating history by update time and
// enforces the strictly-increasing-timestamp invariant by collapsing
// duplicate timestamps to the first occurrence.
func NormalizeRatingChanges(raw []model.RawRatingChange) []model.RatingChange {
	sorted := make([]model.RawRatingChange, len(raw))
	copy(sorted, raw)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UpdateSec < sorted[j].UpdateSec })

	changes := make([]model.RatingChange, 0, len(sorted))
	var lastSec int64 = -1
	for _, rc := range sorted {
		if rc.UpdateSec == lastSec {
			continue
		}
		lastSec = rc.UpdateSec
		changes = append(changes, model.RatingChange{
			ContestID:   rc.ContestID,
			ContestName: rc.ContestName,
			Rank:        rc.Rank,
			OldRating:   rc.OldRating,
			NewRating:   rc.NewRating,
			Time:        time.Unix(rc.UpdateSec, 0).UTC(),
		})
	}
	return changes
}
