package engine

import (
	"reflect"
	"testing"

	"cp_assistant/internal/domain/model"
)

func problem(contestID int, index string, rating int, tags ...string) model.Problem {
	return model.Problem{
		ID:     model.ProblemID{ContestID: contestID, Index: index},
		Name:   "P" + index,
		Rating: rating,
		Tags:   tags,
	}
}

func TestRecommendConfigZeroValuesGetDefaults(t *testing.T) {
	got := RecommendConfig{}.withDefaults()
	want := DefaultRecommendConfig()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("withDefaults() = %+v, want %+v", got, want)
	}

	// A partially filled config keeps its non-zero fields.
	partial := RecommendConfig{BandLow: 50, ClosenessWeight: 0.9}.withDefaults()
	if partial.BandLow != 50 || partial.ClosenessWeight != 0.9 {
		t.Errorf("caller values overwritten: %+v", partial)
	}
	if partial.AffinityWeight != want.AffinityWeight || partial.AttemptPenalty != want.AttemptPenalty {
		t.Errorf("zero weights not defaulted: %+v", partial)
	}
}

func TestRecommendNeverIncludesSolved(t *testing.T) {
	catalog := []model.Problem{
		problem(1, "A", 1200),
		problem(1, "B", 1250),
		problem(2, "A", 1300),
	}
	req := RecommendRequest{
		Skill:  model.SkillEstimate{Rating: 1200, Tier: model.TierRich},
		Solved: map[string]bool{"1-A": true, "2-A": true},
	}
	res := Recommend(catalog, req, RecommendConfig{})

	for _, item := range res.Items {
		if req.Solved[item.Problem.ID.Key()] {
			t.Errorf("solved problem %s recommended", item.Problem.ID.Key())
		}
	}
	if len(res.Items) != 1 || res.Items[0].Problem.ID.Key() != "1-B" {
		t.Fatalf("items = %+v, want only 1-B", res.Items)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	catalog := []model.Problem{
		problem(5, "B", 1300, "greedy"),
		problem(3, "A", 1300, "greedy"),
		problem(5, "A", 1300, "greedy"),
		problem(1, "C", 1100, "dp"),
	}
	req := RecommendRequest{
		Skill:     model.SkillEstimate{Rating: 1200, Tier: model.TierRich},
		TagCounts: map[string]int{"dp": 3, "greedy": 1},
		Limit:     4,
	}

	first := Recommend(catalog, req, RecommendConfig{})
	for i := 0; i < 10; i++ {
		again := Recommend(catalog, req, RecommendConfig{})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from first: %+v vs %+v", i, again, first)
		}
	}

	// The greedy trio outscores the dp problem on tag affinity; equal
	// score and rating break ties on contest id then index.
	keys := make([]string, 0, len(first.Items))
	for _, it := range first.Items {
		keys = append(keys, it.Problem.ID.Key())
	}
	wantOrder := []string{"3-A", "5-A", "5-B", "1-C"}
	if !reflect.DeepEqual(keys, wantOrder) {
		t.Errorf("order = %v, want %v", keys, wantOrder)
	}
}

func TestRecommendBandWidening(t *testing.T) {
	// Nothing within skill±(100,300); one problem reachable after widening.
	catalog := []model.Problem{problem(9, "A", 2200)}
	req := RecommendRequest{
		Skill: model.SkillEstimate{Rating: 1200, Tier: model.TierRich},
	}
	res := Recommend(catalog, req, RecommendConfig{})

	if len(res.Items) != 1 {
		t.Fatalf("items = %+v, want the out-of-band problem after widening", res.Items)
	}
	if res.BandHigh < 2200 {
		t.Errorf("band high = %d, want >= 2200 after widening", res.BandHigh)
	}
}

func TestRecommendExhaustedWideningGivesReason(t *testing.T) {
	catalog := []model.Problem{problem(9, "A", 3500)}
	req := RecommendRequest{
		Skill: model.SkillEstimate{Rating: 900, Tier: model.TierRich},
	}
	res := Recommend(catalog, req, RecommendConfig{})

	if len(res.Items) != 0 {
		t.Fatalf("items = %+v, want none", res.Items)
	}
	if res.Reason == "" {
		t.Error("empty result must carry a diagnostic reason")
	}
}

func TestRecommendExplicitRangeNeverWidened(t *testing.T) {
	catalog := []model.Problem{
		problem(1, "A", 1500),
		problem(2, "A", 1900),
	}
	req := RecommendRequest{
		Skill:     model.SkillEstimate{Rating: 1200, Tier: model.TierSparse},
		MinRating: 1800,
		MaxRating: 2000,
	}
	res := Recommend(catalog, req, RecommendConfig{})

	if res.BandLow != 1800 || res.BandHigh != 2000 {
		t.Errorf("band = %d-%d, want the explicit 1800-2000", res.BandLow, res.BandHigh)
	}
	if len(res.Items) != 1 || res.Items[0].Problem.ID.Key() != "2-A" {
		t.Fatalf("items = %+v, want only 2-A", res.Items)
	}

	// An empty explicit range stays empty, no widening.
	req.MinRating, req.MaxRating = 3000, 3100
	res = Recommend(catalog, req, RecommendConfig{})
	if len(res.Items) != 0 || res.Reason == "" {
		t.Errorf("explicit empty range: items=%+v reason=%q", res.Items, res.Reason)
	}
}

func TestRecommendSparsePreWidensBand(t *testing.T) {
	catalog := []model.Problem{problem(1, "A", 1650)}
	reqSparse := RecommendRequest{Skill: model.SkillEstimate{Rating: 1200, Tier: model.TierSparse}}

	sparse := Recommend(catalog, reqSparse, RecommendConfig{})

	// 1650 is outside the rich band 1100-1500 but inside the pre-widened
	// sparse band 1050-1650.
	if sparse.BandLow != 1050 || sparse.BandHigh != 1650 {
		t.Errorf("sparse band = %d-%d, want 1050-1650", sparse.BandLow, sparse.BandHigh)
	}
	if len(sparse.Items) != 1 {
		t.Errorf("sparse items = %+v, want the 1650 problem without retries", sparse.Items)
	}
}

func TestRecommendLimit(t *testing.T) {
	catalog := []model.Problem{
		problem(1, "A", 1200),
		problem(1, "B", 1210),
		problem(1, "C", 1220),
	}
	req := RecommendRequest{
		Skill: model.SkillEstimate{Rating: 1200, Tier: model.TierRich},
		Limit: 2,
	}
	res := Recommend(catalog, req, RecommendConfig{})
	if len(res.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(res.Items))
	}
}

func TestRecommendAttemptPenaltyOrdering(t *testing.T) {
	catalog := []model.Problem{
		problem(1, "A", 1200),
		problem(2, "A", 1200),
	}
	req := RecommendRequest{
		Skill:          model.SkillEstimate{Rating: 1200, Tier: model.TierRich},
		FailedAttempts: map[string]int{"1-A": 5},
	}
	res := Recommend(catalog, req, RecommendConfig{})

	if len(res.Items) != 2 {
		t.Fatalf("got %d items, want 2 (penalty dampens, never excludes)", len(res.Items))
	}
	if res.Items[0].Problem.ID.Key() != "2-A" {
		t.Errorf("fresh problem should rank above the repeatedly failed one: %+v", res.Items)
	}
	if res.Items[0].Score <= res.Items[1].Score {
		t.Errorf("scores not ordered: %v", res.Items)
	}
}
