package service

import (
	"context"

	"cp_assistant/internal/domain/fetch"
	"cp_assistant/internal/domain/model"
)

// DailyProblemService serves today's LeetCode challenge.
type DailyProblemService struct {
	fetcher fetch.DailyProblemFetcher
}

func NewDailyProblemService(fetcher fetch.DailyProblemFetcher) *DailyProblemService {
	return &DailyProblemService{fetcher: fetcher}
}

func (s *DailyProblemService) Today(ctx context.Context) (model.DailyProblem, error) {
	return s.fetcher.DailyProblem(ctx)
}
