package engine

import (
	"fmt"
	"sort"

	"github.com/gosimple/slug"

	"cp_assistant/internal/domain/model"
)

// DefaultBucketWidth is the rating histogram bucket size when the caller
// does not override it.
const DefaultBucketWidth = 100

// RatingHistogram buckets the user's distinct solved problems by rating.
// Problems lacking a rating land in the "unknown" bucket, never dropped.
// Bucket counts sum to the number of distinct solved problems.
func RatingHistogram(subs []model.Submission, problems map[string]model.Problem, bucketWidth int) model.DistributionReport {
	if bucketWidth <= 0 {
		bucketWidth = DefaultBucketWidth
	}
	report := model.DistributionReport{Kind: model.ReportRatingHistogram, Buckets: make(map[string]int)}
	for key := range SolvedSet(subs) {
		p, ok := problems[key]
		if !ok || !p.Rated() {
			report.Buckets[model.UnknownBucket]++
		} else {
			lo := (p.Rating / bucketWidth) * bucketWidth
			report.Buckets[fmt.Sprintf("%d-%d", lo, lo+bucketWidth-1)]++
		}
		report.Total++
	}
	return report
}

// VerdictDistribution counts every submission by canonical verdict.
// Bucket counts sum exactly to the submission count.
func VerdictDistribution(subs []model.Submission) model.DistributionReport {
	report := model.DistributionReport{Kind: model.ReportVerdicts, Buckets: make(map[string]int)}
	for _, s := range subs {
		report.Buckets[string(s.Verdict)]++
		report.Total++
	}
	return report
}

// LanguageDistribution counts every submission by language label.
// Submissions without a label count under "unknown". Bucket counts sum
// exactly to the submission count.
func LanguageDistribution(subs []model.Submission) model.DistributionReport {
	report := model.DistributionReport{Kind: model.ReportLanguages, Buckets: make(map[string]int)}
	for _, s := range subs {
		lang := s.Language
		if lang == "" {
			lang = model.UnknownBucket
		}
		report.Buckets[lang]++
		report.Total++
	}
	return report
}

// TagDistribution counts the user's distinct solved problems per tag.
// The report is non-exclusive: a problem with k tags contributes to k
// buckets, so counts do NOT sum to Total (the distinct solved count).
// Tag keys are slugged for stable chart labels; untagged problems count
// under "unknown".
func TagDistribution(subs []model.Submission, problems map[string]model.Problem) model.DistributionReport {
	report := model.DistributionReport{Kind: model.ReportTags, Buckets: make(map[string]int), NonExclusive: true}
	for key := range SolvedSet(subs) {
		p := problems[key]
		if len(p.Tags) == 0 {
			report.Buckets[model.UnknownBucket]++
		} else {
			for _, tag := range p.Tags {
				report.Buckets[slug.Make(tag)]++
			}
		}
		report.Total++
	}
	return report
}

// Entries flattens a report into deterministic order: count descending,
// then key ascending.
func Entries(report model.DistributionReport) []model.BucketCount {
	entries := make([]model.BucketCount, 0, len(report.Buckets))
	for key, count := range report.Buckets {
		entries = append(entries, model.BucketCount{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// Trajectory converts an ordered rating history into the numeric payload
// the chart renderer consumes. Performance per contest is estimated as
// oldRating + 4*delta.
func Trajectory(changes []model.RatingChange) []model.TrajectoryPoint {
	points := make([]model.TrajectoryPoint, 0, len(changes))
	for _, rc := range changes {
		points = append(points, model.TrajectoryPoint{
			Time:        rc.Time,
			ContestID:   rc.ContestID,
			ContestName: rc.ContestName,
			Rank:        rc.Rank,
			NewRating:   rc.NewRating,
			Delta:       rc.Delta(),
			Performance: rc.OldRating + 4*rc.Delta(),
		})
	}
	return points
}
