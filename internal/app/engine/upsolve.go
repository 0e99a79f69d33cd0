package engine

import (
	"sort"
	"time"

	"cp_assistant/internal/domain/model"
)

// UpsolveTargets selects contest problems the user submitted to at least
// once but never got accepted, restricted to contests the user actually
// participated in (at least one submission to the contest's roster). A
// roster problem with zero submissions is excluded: targets are
// "attempted, not conquered", not "never seen".
//
// Ordering: most recent contest first (start time, falling back to the
// higher contest id when start times are unknown), then by problem index
// within the contest so the easier, earlier indexes surface as quick
// wins.
func UpsolveTargets(subs []model.Submission, contests []model.Contest, problems map[string]model.Problem) []model.UpsolveTarget {
	type attempt struct {
		count    int
		last     time.Time
		accepted bool
	}
	attempts := make(map[string]*attempt)
	byContest := make(map[int]bool)
	for _, s := range subs {
		key := s.ProblemID.Key()
		a := attempts[key]
		if a == nil {
			a = &attempt{}
			attempts[key] = a
		}
		a.count++
		if s.Time.After(a.last) {
			a.last = s.Time
		}
		if s.Verdict == model.VerdictAccepted {
			a.accepted = true
		}
		byContest[s.ProblemID.ContestID] = true
	}

	ordered := make([]model.Contest, 0, len(contests))
	for _, c := range contests {
		if byContest[c.ID] {
			ordered = append(ordered, c)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.After(b.StartTime)
		}
		return a.ID > b.ID
	})

	var targets []model.UpsolveTarget
	for _, c := range ordered {
		roster := make([]model.ProblemID, len(c.Problems))
		copy(roster, c.Problems)
		sort.Slice(roster, func(i, j int) bool { return roster[i].Index < roster[j].Index })

		for _, pid := range roster {
			a := attempts[pid.Key()]
			if a == nil || a.accepted {
				continue
			}
			prob, ok := problems[pid.Key()]
			if !ok {
				prob = model.Problem{ID: pid}
			}
			targets = append(targets, model.UpsolveTarget{
				ContestID:   c.ID,
				ContestName: c.Name,
				Problem:     prob,
				Attempts:    a.count,
				LastAttempt: a.last,
			})
		}
	}
	return targets
}

// ContestsFromCatalog reconstructs contest rosters by grouping catalog
// problems by contest id. Start times are unknown from the problemset
// feed, so ordering degrades to contest id (monotone with time on
// Codeforces).
func ContestsFromCatalog(catalog []model.Problem) []model.Contest {
	byID := make(map[int]*model.Contest)
	order := make([]int, 0)
	for _, p := range catalog {
		c, ok := byID[p.ID.ContestID]
		if !ok {
			c = &model.Contest{ID: p.ID.ContestID}
			byID[p.ID.ContestID] = c
			order = append(order, p.ID.ContestID)
		}
		c.Problems = append(c.Problems, p.ID)
	}
	sort.Ints(order)
	contests := make([]model.Contest, 0, len(order))
	for _, id := range order {
		contests = append(contests, *byID[id])
	}
	return contests
}
