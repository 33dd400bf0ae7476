package pipeline

// Stage is one state of the per-job pipeline state machine. Jobs progress
// through the stages in declaration order and terminate in StageCompleted,
// or in StageFailed from any non-terminal stage.
type Stage string

const (
	StageReceived   Stage = "received"
	StageExtracting Stage = "extracting"
	StageMatching   Stage = "matching"
	StageValidating Stage = "validating"
	StageAssembling Stage = "assembling"
	StageCompleted  Stage = "completed"
	StageFailed     Stage = "failed"
)

// Stage progress anchors. Matching interpolates between its anchor and the
// validating anchor as requirements complete, so percent never decreases
// within a job.
const (
	percentReceived   = 5
	percentExtracting = 15
	percentMatching   = 30
	percentValidating = 75
	percentAssembling = 85
	percentCompleted  = 100
)

// Percent returns the progress anchor for a stage. Failed reports the
// furthest progress is unknown, so it carries no anchor and reuses 100 to
// keep the event stream monotonic.
func (s Stage) Percent() int {
	switch s {
	case StageReceived:
		return percentReceived
	case StageExtracting:
		return percentExtracting
	case StageMatching:
		return percentMatching
	case StageValidating:
		return percentValidating
	case StageAssembling:
		return percentAssembling
	case StageCompleted, StageFailed:
		return percentCompleted
	}
	return 0
}

// Terminal reports whether the stage ends the job.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// matchingPercent interpolates matching progress between the matching and
// validating anchors as completed approaches total.
func matchingPercent(completed, total int) int {
	if total <= 0 {
		return percentMatching
	}
	span := percentValidating - percentMatching
	return percentMatching + span*completed/total
}
