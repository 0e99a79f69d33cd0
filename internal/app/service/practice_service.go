package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cp_assistant/internal/app/engine"
	"cp_assistant/internal/common"
	"cp_assistant/internal/domain/fetch"
	"cp_assistant/internal/domain/model"
	"cp_assistant/internal/platform/cache"
)

// PracticeService produces recommendations, upsolve targets, and the
// assembled full report. All decision logic lives in the engine package;
// this layer only orchestrates fetches and feeds it.
type PracticeService struct {
	cf           fetch.UserFetcher
	catalog      *cache.CatalogCache
	subCount     int
	skillCfg     engine.SkillConfig
	recommendCfg engine.RecommendConfig
	bucketWidth  int
}

func NewPracticeService(
	cf fetch.UserFetcher,
	catalog *cache.CatalogCache,
	subCount int,
	skillCfg engine.SkillConfig,
	recommendCfg engine.RecommendConfig,
	bucketWidth int,
) *PracticeService {
	if subCount <= 0 {
		subCount = 5000
	}
	return &PracticeService{
		cf:           cf,
		catalog:      catalog,
		subCount:     subCount,
		skillCfg:     skillCfg,
		recommendCfg: recommendCfg,
		bucketWidth:  bucketWidth,
	}
}

// RecommendRequest carries the caller-facing knobs of a recommendation.
type RecommendRequest struct {
	Handle    string
	Limit     int
	MinRating int
	MaxRating int
}

type userSnapshot struct {
	user    *model.User
	norm    engine.NormalizeResult
	catalog *cache.Snapshot
}

// fetchForPractice pulls submissions, rating changes, and the catalog
// snapshot concurrently. The catalog is required here: recommendations
// are drawn from it.
func (s *PracticeService) fetchForPractice(ctx context.Context, handle string) (*userSnapshot, error) {
	var (
		rawSubs []model.RawSubmission
		rawRCs  []model.RawRatingChange
		snap    *cache.Snapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawSubs, err = s.cf.UserStatus(gctx, handle, s.subCount)
		return err
	})
	g.Go(func() error {
		var err error
		rawRCs, err = s.cf.RatingChanges(gctx, handle)
		return err
	})
	g.Go(func() error {
		var err error
		snap, err = s.catalog.Get(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	norm := engine.NormalizeSubmissions(handle, rawSubs, snap.ByKey())
	changes := engine.NormalizeRatingChanges(rawRCs)
	if len(norm.Submissions) == 0 && len(changes) == 0 {
		return nil, common.Errorf("handle %q: %w", handle, common.ErrUnknownUser)
	}
	return &userSnapshot{
		user:    &model.User{Handle: handle, Submissions: norm.Submissions, RatingChanges: changes},
		norm:    norm,
		catalog: snap,
	}, nil
}

func (s *PracticeService) Skill(ctx context.Context, handle string) (model.SkillEstimate, int, error) {
	us, err := s.fetchForPractice(ctx, handle)
	if err != nil {
		return model.SkillEstimate{}, 0, err
	}
	return s.estimate(us), us.norm.Skipped, nil
}

func (s *PracticeService) estimate(us *userSnapshot) model.SkillEstimate {
	return engine.EstimateSkill(us.user.Submissions, us.norm.Problems, us.user.RatingChanges, s.skillCfg)
}

func (s *PracticeService) Recommend(ctx context.Context, req RecommendRequest) (model.RecommendationResult, model.SkillEstimate, int, error) {
	if (req.MinRating > 0) != (req.MaxRating > 0) {
		return model.RecommendationResult{}, model.SkillEstimate{}, 0,
			common.Errorf("min_rating and max_rating must be set together: %w", common.ErrBadRequest)
	}
	if req.MinRating > 0 && req.MinRating > req.MaxRating {
		return model.RecommendationResult{}, model.SkillEstimate{}, 0,
			common.Errorf("min_rating exceeds max_rating: %w", common.ErrBadRequest)
	}

	us, err := s.fetchForPractice(ctx, req.Handle)
	if err != nil {
		return model.RecommendationResult{}, model.SkillEstimate{}, 0, err
	}
	skill := s.estimate(us)

	result := engine.Recommend(us.catalog.Problems, engine.RecommendRequest{
		Skill:          skill,
		Solved:         engine.SolvedSet(us.user.Submissions),
		FailedAttempts: engine.FailedAttempts(us.user.Submissions),
		TagCounts:      engine.TagCounts(us.user.Submissions, us.norm.Problems),
		MinRating:      req.MinRating,
		MaxRating:      req.MaxRating,
		Limit:          req.Limit,
	}, s.recommendCfg)
	return result, skill, us.norm.Skipped, nil
}

func (s *PracticeService) Upsolve(ctx context.Context, handle string) ([]model.UpsolveTarget, int, error) {
	us, err := s.fetchForPractice(ctx, handle)
	if err != nil {
		return nil, 0, err
	}
	contests := engine.ContestsFromCatalog(us.catalog.Problems)
	return engine.UpsolveTargets(us.user.Submissions, contests, us.catalog.ByKey()), us.norm.Skipped, nil
}

// BuildReport assembles the full analytics response for one handle.
func (s *PracticeService) BuildReport(ctx context.Context, handle string, limit int) (model.Report, error) {
	us, err := s.fetchForPractice(ctx, handle)
	if err != nil {
		return model.Report{}, err
	}
	skill := s.estimate(us)

	distributions := []model.DistributionReport{
		engine.RatingHistogram(us.user.Submissions, us.norm.Problems, s.bucketWidth),
		engine.VerdictDistribution(us.user.Submissions),
		engine.TagDistribution(us.user.Submissions, us.norm.Problems),
		engine.LanguageDistribution(us.user.Submissions),
	}
	recommendations := engine.Recommend(us.catalog.Problems, engine.RecommendRequest{
		Skill:          skill,
		Solved:         engine.SolvedSet(us.user.Submissions),
		FailedAttempts: engine.FailedAttempts(us.user.Submissions),
		TagCounts:      engine.TagCounts(us.user.Submissions, us.norm.Problems),
		Limit:          limit,
	}, s.recommendCfg)
	contests := engine.ContestsFromCatalog(us.catalog.Problems)
	upsolve := engine.UpsolveTargets(us.user.Submissions, contests, us.catalog.ByKey())

	return engine.AssembleReport(handle, skill, distributions, recommendations, upsolve, us.norm.Skipped), nil
}
