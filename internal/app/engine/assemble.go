package engine

import (
	"time"

	"github.com/google/uuid"

	"cp_assistant/internal/domain/model"
)

// AssembleReport packages the outputs of the engine components into a
// single response. Pure packaging: it stamps identity and time but
// performs no computation and never reorders what the producers emitted.
func AssembleReport(
	handle string,
	skill model.SkillEstimate,
	distributions []model.DistributionReport,
	recommendations model.RecommendationResult,
	upsolve []model.UpsolveTarget,
	skipped int,
) model.Report {
	return model.Report{
		ID:              uuid.NewString(),
		Handle:          handle,
		GeneratedAt:     time.Now().UTC(),
		Skill:           skill,
		Distributions:   distributions,
		Recommendations: recommendations,
		Upsolve:         upsolve,
		SkippedRecords:  skipped,
	}
}
