package service

import (
	"context"
	"errors"
	"testing"

	"cp_assistant/internal/app/engine"
	"cp_assistant/internal/common"
	"cp_assistant/internal/domain/model"
)

func catalogProblem(contestID int, index string, rating int, tags ...string) model.Problem {
	return model.Problem{
		ID:     model.ProblemID{ContestID: contestID, Index: index},
		Name:   "P" + index,
		Rating: rating,
		Tags:   tags,
	}
}

func newPracticeService(f *fakeFetcher, catalog []model.Problem) *PracticeService {
	return NewPracticeService(f, newTestCatalog(catalog), 0,
		engine.SkillConfig{}, engine.RecommendConfig{}, 0)
}

func TestRecommendValidatesRange(t *testing.T) {
	s := newPracticeService(&fakeFetcher{}, nil)

	_, _, _, err := s.Recommend(context.Background(), RecommendRequest{Handle: "a", MinRating: 1200})
	if !errors.Is(err, common.ErrBadRequest) {
		t.Fatalf("half-open range: err = %v, want ErrBadRequest", err)
	}

	_, _, _, err = s.Recommend(context.Background(), RecommendRequest{Handle: "a", MinRating: 1500, MaxRating: 1200})
	if !errors.Is(err, common.ErrBadRequest) {
		t.Fatalf("inverted range: err = %v, want ErrBadRequest", err)
	}
}

func TestRecommendExcludesSolved(t *testing.T) {
	catalog := []model.Problem{
		catalogProblem(1, "A", 1200, "math"),
		catalogProblem(1, "B", 1250, "dp"),
		catalogProblem(2, "A", 1300, "greedy"),
	}
	f := &fakeFetcher{
		subs: map[string][]model.RawSubmission{
			"alice": {rawAccepted(1, "A", 1200, 100)},
		},
		changes: map[string][]model.RawRatingChange{
			"alice": {{ContestID: 1, NewRating: 1250, UpdateSec: 50}},
		},
	}
	s := newPracticeService(f, catalog)

	result, skill, _, err := s.Recommend(context.Background(), RecommendRequest{Handle: "alice"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if skill.Rating != 1250 || !skill.FromContests {
		t.Errorf("skill = %+v", skill)
	}
	for _, item := range result.Items {
		if item.Problem.ID.Key() == "1-A" {
			t.Error("solved problem 1-A recommended")
		}
	}
	if len(result.Items) != 2 {
		t.Errorf("items = %+v, want both unsolved problems", result.Items)
	}
}

func TestUpsolve(t *testing.T) {
	catalog := []model.Problem{
		catalogProblem(1, "A", 1200),
		catalogProblem(1, "B", 1500),
		catalogProblem(2, "A", 1000),
	}
	f := &fakeFetcher{
		subs: map[string][]model.RawSubmission{
			"alice": {
				rawAccepted(1, "A", 1200, 100),
				{CreationSec: 200, Problem: model.RawProblem{ContestID: 1, Index: "B", Rating: 1500}, Verdict: "WRONG_ANSWER"},
			},
		},
	}
	s := newPracticeService(f, catalog)

	targets, _, err := s.Upsolve(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Upsolve: %v", err)
	}
	if len(targets) != 1 || targets[0].Problem.ID.Key() != "1-B" {
		t.Fatalf("targets = %+v, want only 1-B", targets)
	}
	if targets[0].Attempts != 1 {
		t.Errorf("attempts = %d, want 1", targets[0].Attempts)
	}
}

func TestBuildReport(t *testing.T) {
	catalog := []model.Problem{
		catalogProblem(1, "A", 1200, "math"),
		catalogProblem(1, "B", 1300, "dp"),
	}
	f := &fakeFetcher{
		subs: map[string][]model.RawSubmission{
			"alice": {
				rawAccepted(1, "A", 1200, 100),
				{CreationSec: 200, Verdict: "OK"}, // skipped record
			},
		},
	}
	s := newPracticeService(f, catalog)

	report, err := s.BuildReport(context.Background(), "alice", 5)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.ID == "" {
		t.Error("report id not assigned")
	}
	if report.Handle != "alice" {
		t.Errorf("handle = %q", report.Handle)
	}
	if len(report.Distributions) != 4 {
		t.Errorf("got %d distributions, want 4", len(report.Distributions))
	}
	if report.SkippedRecords != 1 {
		t.Errorf("skipped = %d, want 1", report.SkippedRecords)
	}
	for _, item := range report.Recommendations.Items {
		if item.Problem.ID.Key() == "1-A" {
			t.Error("solved problem recommended in report")
		}
	}
}

func TestRecommendForPracticeOnlyUser(t *testing.T) {
	catalog := []model.Problem{
		catalogProblem(4, "A", 800),
		catalogProblem(71, "A", 1100),
		catalogProblem(100, "A", 1100),
		catalogProblem(200, "A", 1500),
		catalogProblem(300, "A", 2500),
	}
	f := &fakeFetcher{
		subs: map[string][]model.RawSubmission{
			"alice": {
				rawAccepted(4, "A", 800, 100),
				rawAccepted(71, "A", 1100, 200),
			},
		},
	}
	s := newPracticeService(f, catalog)

	result, skill, _, err := s.Recommend(context.Background(), RecommendRequest{Handle: "alice", Limit: 2})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if skill.Rating != 1100 || skill.FromContests {
		t.Fatalf("skill = %+v, want fallback estimate 1100", skill)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.Items))
	}
	// Closest unsolved ratings win; the solved problems never appear.
	if result.Items[0].Problem.ID.Key() != "100-A" || result.Items[1].Problem.ID.Key() != "200-A" {
		t.Errorf("items = %+v, want 100-A then 200-A", result.Items)
	}
}

func TestSkillFallsBackWithoutContests(t *testing.T) {
	catalog := []model.Problem{
		catalogProblem(4, "A", 800),
		catalogProblem(71, "A", 1100),
	}
	f := &fakeFetcher{
		subs: map[string][]model.RawSubmission{
			"alice": {
				rawAccepted(4, "A", 800, 100),
				rawAccepted(71, "A", 1100, 200),
			},
		},
	}
	s := newPracticeService(f, catalog)

	skill, _, err := s.Skill(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Skill: %v", err)
	}
	if skill.Rating != 1100 || skill.FromContests {
		t.Errorf("skill = %+v, want percentile estimate 1100", skill)
	}
}

func TestSkippedTallySurfacedOnPracticePaths(t *testing.T) {
	catalog := []model.Problem{
		catalogProblem(1, "A", 1200),
		catalogProblem(1, "B", 1300),
	}
	f := &fakeFetcher{
		subs: map[string][]model.RawSubmission{
			"alice": {
				rawAccepted(1, "A", 1200, 100),
				{CreationSec: 200, Verdict: "OK"},
				{CreationSec: 300, Verdict: "WRONG_ANSWER"},
			},
		},
	}
	s := newPracticeService(f, catalog)

	_, skipped, err := s.Skill(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Skill: %v", err)
	}
	if skipped != 2 {
		t.Errorf("Skill skipped = %d, want 2", skipped)
	}

	_, _, skipped, err = s.Recommend(context.Background(), RecommendRequest{Handle: "alice"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if skipped != 2 {
		t.Errorf("Recommend skipped = %d, want 2", skipped)
	}

	_, skipped, err = s.Upsolve(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Upsolve: %v", err)
	}
	if skipped != 2 {
		t.Errorf("Upsolve skipped = %d, want 2", skipped)
	}
}
