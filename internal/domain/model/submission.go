package model

import "time"

type Verdict string

const (
	VerdictAccepted            Verdict = "Accepted"
	VerdictWrongAnswer         Verdict = "WrongAnswer"
	VerdictTimeLimitExceeded   Verdict = "TimeLimitExceeded"
	VerdictMemoryLimitExceeded Verdict = "MemoryLimitExceeded"
	VerdictRuntimeError        Verdict = "RuntimeError"
	VerdictCompilationError    Verdict = "CompilationError"
	VerdictOther               Verdict = "Other"
)

// VerdictFromRaw maps a Codeforces verdict string ("OK", "WRONG_ANSWER", ...)
// to the canonical enum. Anything unrecognized collapses into VerdictOther.
func VerdictFromRaw(raw string) Verdict {
	switch raw {
	case "OK":
		return VerdictAccepted
	case "WRONG_ANSWER":
		return VerdictWrongAnswer
	case "TIME_LIMIT_EXCEEDED":
		return VerdictTimeLimitExceeded
	case "MEMORY_LIMIT_EXCEEDED":
		return VerdictMemoryLimitExceeded
	case "RUNTIME_ERROR":
		return VerdictRuntimeError
	case "COMPILATION_ERROR":
		return VerdictCompilationError
	default:
		return VerdictOther
	}
}

// Submission is one judged attempt. Solved status for a (user, problem)
// pair is true iff at least one submission has VerdictAccepted.
type Submission struct {
	Handle    string    `json:"handle"`
	ProblemID ProblemID `json:"problem_id"`
	Verdict   Verdict   `json:"verdict"`
	Time      time.Time `json:"time"`
	Language  string    `json:"language"`
}
