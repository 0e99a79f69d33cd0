package engine

import (
	"testing"

	"cp_assistant/internal/domain/model"
)

func rawSub(contestID int, index, verdict string, sec int64) model.RawSubmission {
	return model.RawSubmission{
		CreationSec: sec,
		Problem:     model.RawProblem{ContestID: contestID, Index: index, Name: "P", Rating: 1000},
		Verdict:     verdict,
		Language:    "GNU C++17",
	}
}

func TestNormalizeSubmissionsDedup(t *testing.T) {
	raw := []model.RawSubmission{
		rawSub(1, "A", "OK", 100),
		rawSub(1, "A", "OK", 100), // exact duplicate
		rawSub(1, "A", "OK", 200), // same problem, later retry
		rawSub(1, "A", "WRONG_ANSWER", 100),
	}
	res := NormalizeSubmissions("tourist", raw, nil)

	if len(res.Submissions) != 3 {
		t.Fatalf("got %d submissions, want 3", len(res.Submissions))
	}
	if res.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", res.Skipped)
	}
	for i := 1; i < len(res.Submissions); i++ {
		if res.Submissions[i].Time.Before(res.Submissions[i-1].Time) {
			t.Errorf("submissions not ordered oldest first at %d", i)
		}
	}
}

func TestNormalizeSubmissionsSkipsBadRecords(t *testing.T) {
	// Missing problem id entirely, missing contest id, missing index.
	raw := []model.RawSubmission{
		{CreationSec: 100, Verdict: "OK"},
		{CreationSec: 200, Verdict: "OK", Problem: model.RawProblem{Index: "A"}},
		{CreationSec: 300, Verdict: "OK", Problem: model.RawProblem{ContestID: 5}},
		rawSub(1, "A", "OK", 400),
	}
	res := NormalizeSubmissions("tourist", raw, nil)

	if res.Skipped != 3 {
		t.Errorf("skipped = %d, want 3", res.Skipped)
	}
	if len(res.Submissions) != 1 {
		t.Fatalf("got %d submissions, want 1", len(res.Submissions))
	}
}

func TestNormalizeSubmissionsCatalogEnrichment(t *testing.T) {
	catalog := map[string]model.Problem{
		"7-B": {
			ID:     model.ProblemID{ContestID: 7, Index: "B"},
			Name:   "Nice Problem",
			Rating: 1700,
			Tags:   []string{"dp"},
		},
	}
	raw := []model.RawSubmission{
		// Bare reference, resolvable only through the catalog.
		{CreationSec: 10, Verdict: "OK", Problem: model.RawProblem{ContestID: 7, Index: "B"}},
		// Unresolvable: no metadata, no catalog entry.
		{CreationSec: 20, Verdict: "OK", Problem: model.RawProblem{ContestID: 9, Index: "Z"}},
	}
	res := NormalizeSubmissions("x", raw, catalog)

	if len(res.Submissions) != 1 || res.Skipped != 1 {
		t.Fatalf("got %d submissions skipped=%d, want 1 and 1", len(res.Submissions), res.Skipped)
	}
	p, ok := res.Problems["7-B"]
	if !ok {
		t.Fatal("problem 7-B missing from result")
	}
	if p.Rating != 1700 || p.Name != "Nice Problem" || len(p.Tags) != 1 {
		t.Errorf("catalog metadata not applied: %+v", p)
	}
}

func TestNormalizeSubmissionsVerdictMapping(t *testing.T) {
	cases := []struct {
		raw  string
		want model.Verdict
	}{
		{"OK", model.VerdictAccepted},
		{"WRONG_ANSWER", model.VerdictWrongAnswer},
		{"TIME_LIMIT_EXCEEDED", model.VerdictTimeLimitExceeded},
		{"MEMORY_LIMIT_EXCEEDED", model.VerdictMemoryLimitExceeded},
		{"RUNTIME_ERROR", model.VerdictRuntimeError},
		{"COMPILATION_ERROR", model.VerdictCompilationError},
		{"CHALLENGED", model.VerdictOther},
		{"", model.VerdictOther},
	}
	for _, tc := range cases {
		if got := model.VerdictFromRaw(tc.raw); got != tc.want {
			t.Errorf("VerdictFromRaw(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeRatingChanges(t *testing.T) {
	raw := []model.RawRatingChange{
		{ContestID: 2, NewRating: 1300, UpdateSec: 200},
		{ContestID: 1, NewRating: 1250, UpdateSec: 100},
		{ContestID: 3, NewRating: 1400, UpdateSec: 200}, // duplicate timestamp
	}
	changes := NormalizeRatingChanges(raw)

	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2 (duplicate timestamp collapsed)", len(changes))
	}
	if changes[0].ContestID != 1 || changes[1].ContestID != 2 {
		t.Errorf("changes not ordered by update time: %+v", changes)
	}
	if !changes[0].Time.Before(changes[1].Time) {
		t.Error("timestamps not strictly increasing")
	}
}

func TestNormalizeProblemsDropsMissingIDs(t *testing.T) {
	raw := []model.RawProblem{
		{ContestID: 1, Index: "A", Rating: 800},
		{ContestID: 0, Index: "B"},
		{ContestID: 2, Index: ""},
	}
	problems := NormalizeProblems(raw)
	if len(problems) != 1 || problems[0].ID.Key() != "1-A" {
		t.Fatalf("got %+v, want the single complete record", problems)
	}
}
