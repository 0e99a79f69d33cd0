// Package fetch declares the read operations the engine consumes from
// its external collaborators. The engine treats them as black boxes: a
// failure is a fetch error to propagate, never something to retry here.
package fetch

import (
	"context"

	"cp_assistant/internal/domain/model"
)

// UserFetcher reads a user's public solving history from the judge.
type UserFetcher interface {
	UserInfo(ctx context.Context, handles []string) ([]model.RawUser, error)
	UserStatus(ctx context.Context, handle string, count int) ([]model.RawSubmission, error)
	RatingChanges(ctx context.Context, handle string) ([]model.RawRatingChange, error)
}

// CatalogFetcher reads the full problem catalog.
type CatalogFetcher interface {
	Problemset(ctx context.Context) ([]model.RawProblem, error)
}

// ContestCalendar reads upcoming contests across platforms.
type ContestCalendar interface {
	UpcomingContests(ctx context.Context, platforms []string) ([]model.UpcomingContest, error)
}

// DailyProblemFetcher reads today's practice problem.
type DailyProblemFetcher interface {
	DailyProblem(ctx context.Context) (model.DailyProblem, error)
}
