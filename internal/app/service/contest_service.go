package service

import (
	"context"

	"cp_assistant/internal/domain/fetch"
	"cp_assistant/internal/domain/model"
)

var defaultPlatforms = []string{"codeforces", "leetcode", "codechef"}

// ContestService serves the upcoming-contest calendar.
type ContestService struct {
	calendar fetch.ContestCalendar
}

func NewContestService(calendar fetch.ContestCalendar) *ContestService {
	return &ContestService{calendar: calendar}
}

func (s *ContestService) Upcoming(ctx context.Context, platforms []string, limit int) ([]model.UpcomingContest, error) {
	if len(platforms) == 0 {
		platforms = defaultPlatforms
	}
	contests, err := s.calendar.UpcomingContests(ctx, platforms)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(contests) > limit {
		contests = contests[:limit]
	}
	return contests, nil
}
