package entity

import (
	"time"

	"github.com/google/uuid"

	"responsagility-be/pkg/reflection"
)

// DailyReflection holds one client's four answers and mirror for one
// calendar date. At most one exists per (client, date).
type DailyReflection struct {
	Id             uuid.UUID
	ClientId       uuid.UUID
	ReflectionDate string // YYYY-MM-DD
	Step           reflection.Step
	React          string
	Respond        string
	Notice         string
	Learn          string
	DailyMirror    *string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// AnswerFor returns the stored answer for one of the four answer steps.
func (r *DailyReflection) AnswerFor(step reflection.Step) string {
	switch step {
	case reflection.StepReact:
		return r.React
	case reflection.StepRespond:
		return r.Respond
	case reflection.StepNotice:
		return r.Notice
	case reflection.StepLearn:
		return r.Learn
	}
	return ""
}

// SetAnswer stores an answer under one of the four answer steps.
// Review has no answer field; setting it is a no-op.
func (r *DailyReflection) SetAnswer(step reflection.Step, value string) {
	switch step {
	case reflection.StepReact:
		r.React = value
	case reflection.StepRespond:
		r.Respond = value
	case reflection.StepNotice:
		r.Notice = value
	case reflection.StepLearn:
		r.Learn = value
	}
}

// FirstMissingStep returns the earliest answer step (canonical order) whose
// answer is empty, or review when all four are present.
func (r *DailyReflection) FirstMissingStep() reflection.Step {
	for _, step := range reflection.AnswerSteps {
		if r.AnswerFor(step) == "" {
			return step
		}
	}
	return reflection.StepReview
}
