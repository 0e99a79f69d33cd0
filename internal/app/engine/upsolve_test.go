package engine

import (
	"testing"
	"time"

	"cp_assistant/internal/domain/model"
)

func TestUpsolveTargets(t *testing.T) {
	// Contest 1: P1 accepted, P2 failed twice, P3 never touched.
	subs := []model.Submission{
		sub(1, "A", model.VerdictAccepted, 100, "go"),
		sub(1, "B", model.VerdictWrongAnswer, 200, "go"),
		sub(1, "B", model.VerdictTimeLimitExceeded, 300, "go"),
	}
	contests := []model.Contest{
		{ID: 1, Name: "Round 1", Problems: []model.ProblemID{
			{ContestID: 1, Index: "A"},
			{ContestID: 1, Index: "B"},
			{ContestID: 1, Index: "C"},
		}},
		{ID: 2, Name: "Round 2", Problems: []model.ProblemID{
			{ContestID: 2, Index: "A"},
		}},
	}
	targets := UpsolveTargets(subs, contests, nil)

	if len(targets) != 1 {
		t.Fatalf("targets = %+v, want exactly the attempted-unsolved problem", targets)
	}
	got := targets[0]
	if got.ContestID != 1 || got.Problem.ID.Key() != "1-B" {
		t.Errorf("target = %+v, want contest 1 problem B", got)
	}
	if got.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", got.Attempts)
	}
	if !got.LastAttempt.Equal(time.Unix(300, 0).UTC()) {
		t.Errorf("last attempt = %v, want the latest submission time", got.LastAttempt)
	}
}

func TestUpsolveNeverIncludesAccepted(t *testing.T) {
	// Failed first, then solved later: no longer a target.
	subs := []model.Submission{
		sub(1, "A", model.VerdictWrongAnswer, 100, "go"),
		sub(1, "A", model.VerdictAccepted, 200, "go"),
	}
	contests := []model.Contest{
		{ID: 1, Problems: []model.ProblemID{{ContestID: 1, Index: "A"}}},
	}
	if targets := UpsolveTargets(subs, contests, nil); len(targets) != 0 {
		t.Fatalf("targets = %+v, want none", targets)
	}
}

func TestUpsolveOrdering(t *testing.T) {
	subs := []model.Submission{
		sub(1, "B", model.VerdictWrongAnswer, 100, "go"),
		sub(1, "A", model.VerdictWrongAnswer, 110, "go"),
		sub(2, "A", model.VerdictWrongAnswer, 200, "go"),
	}
	contests := []model.Contest{
		{ID: 1, Problems: []model.ProblemID{
			{ContestID: 1, Index: "B"},
			{ContestID: 1, Index: "A"},
		}},
		{ID: 2, Problems: []model.ProblemID{{ContestID: 2, Index: "A"}}},
	}
	targets := UpsolveTargets(subs, contests, nil)

	if len(targets) != 3 {
		t.Fatalf("got %d targets, want 3", len(targets))
	}
	// Contest 2 is the more recent (higher id), then contest 1's problems
	// by index.
	wantKeys := []string{"2-A", "1-A", "1-B"}
	for i, want := range wantKeys {
		if got := targets[i].Problem.ID.Key(); got != want {
			t.Errorf("targets[%d] = %s, want %s", i, got, want)
		}
	}
}

func TestContestsFromCatalog(t *testing.T) {
	catalog := []model.Problem{
		{ID: model.ProblemID{ContestID: 2, Index: "A"}},
		{ID: model.ProblemID{ContestID: 1, Index: "B"}},
		{ID: model.ProblemID{ContestID: 1, Index: "A"}},
	}
	contests := ContestsFromCatalog(catalog)

	if len(contests) != 2 {
		t.Fatalf("got %d contests, want 2", len(contests))
	}
	if contests[0].ID != 1 || len(contests[0].Problems) != 2 {
		t.Errorf("contest 1 roster = %+v", contests[0])
	}
	if contests[1].ID != 2 || len(contests[1].Problems) != 1 {
		t.Errorf("contest 2 roster = %+v", contests[1])
	}
}
