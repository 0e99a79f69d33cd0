package engine

import (
	"sort"

	"cp_assistant/internal/domain/model"
)

// SolvedSet returns the problem keys the user has at least one accepted
// submission for.
func SolvedSet(subs []model.Submission) map[string]bool {
	solved := make(map[string]bool)
	for _, s := range subs {
		if s.Verdict == model.VerdictAccepted {
			solved[s.ProblemID.Key()] = true
		}
	}
	return solved
}

// FailedAttempts counts non-accepted submissions per problem. Used by the
// recommendation scorer to dampen problems the user has repeatedly
// bounced off, without excluding them.
func FailedAttempts(subs []model.Submission) map[string]int {
	attempts := make(map[string]int)
	for _, s := range subs {
		if s.Verdict != model.VerdictAccepted {
			attempts[s.ProblemID.Key()]++
		}
	}
	return attempts
}

// TagCounts counts, per tag, the distinct solved problems carrying that
// tag. This is the history the tag-affinity weighting is derived from.
func TagCounts(subs []model.Submission, problems map[string]model.Problem) map[string]int {
	counts := make(map[string]int)
	for key := range SolvedSet(subs) {
		for _, tag := range problems[key].Tags {
			counts[tag]++
		}
	}
	return counts
}

// RecentlySolved lists distinct solved problems, most recent first,
// bounded by limit (0 means no bound).
func RecentlySolved(subs []model.Submission, problems map[string]model.Problem, limit int) []model.SolvedProblem {
	latest := make(map[string]model.SolvedProblem)
	for _, s := range subs {
		if s.Verdict != model.VerdictAccepted {
			continue
		}
		key := s.ProblemID.Key()
		if cur, ok := latest[key]; !ok || s.Time.After(cur.SolvedAt) {
			latest[key] = model.SolvedProblem{Problem: problems[key], SolvedAt: s.Time}
		}
	}

	out := make([]model.SolvedProblem, 0, len(latest))
	for key, sp := range latest {
		if sp.Problem.ID.Key() != key {
			// Problem metadata missing from the map; keep the identifier.
			sp.Problem.ID = parseKeyless(key, subs)
		}
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SolvedAt.Equal(out[j].SolvedAt) {
			return out[i].SolvedAt.After(out[j].SolvedAt)
		}
		return lessProblemID(out[i].Problem.ID, out[j].Problem.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func parseKeyless(key string, subs []model.Submission) model.ProblemID {
	for _, s := range subs {
		if s.ProblemID.Key() == key {
			return s.ProblemID
		}
	}
	return model.ProblemID{}
}

func lessProblemID(a, b model.ProblemID) bool {
	if a.ContestID != b.ContestID {
		return a.ContestID < b.ContestID
	}
	return a.Index < b.Index
}
