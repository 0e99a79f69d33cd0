package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cp_assistant/internal/app/engine"
	"cp_assistant/internal/common"
	"cp_assistant/internal/domain/fetch"
	"cp_assistant/internal/domain/model"
	"cp_assistant/internal/platform/cache"
)

// ProfileService serves profile stats, solved history, rating
// trajectories, distributions, and multi-user comparison.
type ProfileService struct {
	cf       fetch.UserFetcher
	catalog  *cache.CatalogCache
	subCount int
}

func NewProfileService(cf fetch.UserFetcher, catalog *cache.CatalogCache, subCount int) *ProfileService {
	if subCount <= 0 {
		subCount = 5000
	}
	return &ProfileService{cf: cf, catalog: catalog, subCount: subCount}
}

// fetchUser pulls info, submissions, and rating changes concurrently and
// normalizes them. A handle with zero submissions and zero rating
// changes and no profile record is an unknown user.
func (s *ProfileService) fetchUser(ctx context.Context, handle string) (*model.User, engine.NormalizeResult, error) {
	var (
		infos   []model.RawUser
		rawSubs []model.RawSubmission
		rawRCs  []model.RawRatingChange
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		infos, err = s.cf.UserInfo(gctx, []string{handle})
		return err
	})
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
	if err := g.Wait(); err != nil {
		return nil, engine.NormalizeResult{}, err
	}

	catalogIndex := s.catalogIndex(ctx)
	norm := engine.NormalizeSubmissions(handle, rawSubs, catalogIndex)
	changes := engine.NormalizeRatingChanges(rawRCs)

	user := &model.User{Handle: handle, Submissions: norm.Submissions, RatingChanges: changes}
	if len(infos) > 0 {
		info := infos[0]
		user.Rating = info.Rating
		user.MaxRating = info.MaxRating
		user.Rank = info.Rank
		user.RegistrationTime = time.Unix(info.RegistrationSec, 0).UTC()
	} else if len(norm.Submissions) == 0 && len(changes) == 0 {
		return nil, engine.NormalizeResult{}, common.Errorf("handle %q: %w", handle, common.ErrUnknownUser)
	}
	return user, norm, nil
}

// catalogIndex returns the catalog key index, or nil when the catalog is
// unavailable; normalization then relies on embedded problem metadata
// and counts the rest as skipped.
func (s *ProfileService) catalogIndex(ctx context.Context) map[string]model.Problem {
	if s.catalog == nil {
		return nil
	}
	snap, err := s.catalog.Get(ctx)
	if err != nil {
		log.Printf("WARN: problem catalog unavailable, normalizing from embedded metadata: %v", err)
		return nil
	}
	return snap.ByKey()
}

func (s *ProfileService) GetStats(ctx context.Context, handle string) (*model.UserStats, error) {
	user, norm, err := s.fetchUser(ctx, handle)
	if err != nil {
		return nil, err
	}
	return statsFor(user, norm), nil
}

func statsFor(user *model.User, norm engine.NormalizeResult) *model.UserStats {
	recentAccepted := 0
	for _, sub := range user.Submissions {
		if sub.Verdict == model.VerdictAccepted {
			recentAccepted++
		}
	}
	return &model.UserStats{
		Handle:           user.Handle,
		Rating:           user.Rating,
		MaxRating:        user.MaxRating,
		Rank:             user.Rank,
		RegistrationTime: user.RegistrationTime,
		SolvedCount:      len(engine.SolvedSet(user.Submissions)),
		ContestCount:     len(user.RatingChanges),
		RecentAccepted:   recentAccepted,
		ProfileURL:       "https://codeforces.com/profile/" + user.Handle,
	}
}

// CompareUsers ranks the given handles by current rating. A fetch
// failure for one user degrades that entry to profile-only metrics
// instead of failing the whole comparison; a handle missing entirely
// fails the request so the caller can report it.
func (s *ProfileService) CompareUsers(ctx context.Context, handles []string) ([]model.UserStats, error) {
	if len(handles) < 2 {
		return nil, common.Errorf("comparison needs at least 2 handles: %w", common.ErrBadRequest)
	}

	infos, err := s.cf.UserInfo(ctx, handles)
	if err != nil {
		return nil, err
	}
	found := make(map[string]model.RawUser, len(infos))
	for _, info := range infos {
		found[strings.ToLower(info.Handle)] = info
	}
	var missing []string
	for _, h := range handles {
		if _, ok := found[strings.ToLower(h)]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, common.Errorf("handle %q: %w", strings.Join(missing, ","), common.ErrUnknownUser)
	}

	stats := make([]model.UserStats, len(handles))
	g, gctx := errgroup.WithContext(ctx)
	for i, h := range handles {
		i, h := i, h
		g.Go(func() error {
			info := found[strings.ToLower(h)]
			user, norm, err := s.fetchUser(gctx, h)
			if err != nil {
				// Keep the comparison alive with what user.info gave us.
				stats[i] = model.UserStats{
					Handle:           info.Handle,
					Rating:           info.Rating,
					MaxRating:        info.MaxRating,
					Rank:             info.Rank,
					RegistrationTime: time.Unix(info.RegistrationSec, 0).UTC(),
					ProfileURL:       "https://codeforces.com/profile/" + info.Handle,
					Partial:          true,
				}
				log.Printf("WARN: partial comparison data for %s: %v", h, err)
				return nil
			}
			stats[i] = *statsFor(user, norm)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Rating > stats[j].Rating })
	return stats, nil
}

func (s *ProfileService) RecentSolved(ctx context.Context, handle string, limit int) ([]model.SolvedProblem, error) {
	user, norm, err := s.fetchUser(ctx, handle)
	if err != nil {
		return nil, err
	}
	return engine.RecentlySolved(user.Submissions, norm.Problems, limit), nil
}

func (s *ProfileService) RatingHistory(ctx context.Context, handle string) ([]model.TrajectoryPoint, error) {
	raw, err := s.cf.RatingChanges(ctx, handle)
	if err != nil {
		return nil, err
	}
	changes := engine.NormalizeRatingChanges(raw)
	if len(changes) == 0 {
		return nil, common.Errorf("no rating history for %q: %w", handle, common.ErrNotFound)
	}
	return engine.Trajectory(changes), nil
}

// Distributions computes the four aggregate reports plus the skipped
// tally from normalization.
func (s *ProfileService) Distributions(ctx context.Context, handle string, bucketWidth int) ([]model.DistributionReport, int, error) {
	user, norm, err := s.fetchUser(ctx, handle)
	if err != nil {
		return nil, 0, err
	}
	if len(user.Submissions) == 0 && len(user.RatingChanges) == 0 {
		return nil, 0, common.Errorf("handle %q has no activity: %w", handle, common.ErrNotFound)
	}
	reports := []model.DistributionReport{
		engine.RatingHistogram(user.Submissions, norm.Problems, bucketWidth),
		engine.VerdictDistribution(user.Submissions),
		engine.TagDistribution(user.Submissions, norm.Problems),
		engine.LanguageDistribution(user.Submissions),
	}
	return reports, norm.Skipped, nil
}
