// Package reflection implements the daily Responsagility reflection flow:
// a small deterministic state machine that walks one client through the four
// daily questions and into the review stage.
package reflection

import "strings"

// Step is the current stage of the daily flow.
type Step string

const (
	StepReact   Step = "react"
	StepRespond Step = "respond"
	StepNotice  Step = "notice"
	StepLearn   Step = "learn"
	StepReview  Step = "review"
)

// AnswerSteps lists the four answer-collecting steps in canonical order.
// The review completeness check walks this slice to find the earliest gap.
var AnswerSteps = []Step{StepReact, StepRespond, StepNotice, StepLearn}

// Prompts holds the canonical prompt text per step.
// Keep wording stable and human; the mobile client renders these verbatim.
var Prompts = map[Step]string{
	StepReact:   "Where did you react from your ego today?",
	StepRespond: "Instead of reacting, where did you manage to pause and respond today?",
	StepNotice:  "What did you notice about yourself in moments of reaction and response today?",
	StepLearn:   "What is one thing that you learned about yourself today?",
	StepReview: "Great work. Thank you for taking the time to reflect on these questions.\n\n" +
		"If you're ready to receive your Reflective Summary, type YES.\n" +
		"Or, if you would like to change or amend any answer, type NO.",
}

// State is the in-memory flow position for one (client, date) pair.
// The Step field is the only part persisted on the reflection record.
type State struct {
	ClientID string
	Date     string // YYYY-MM-DD
	Step     Step
}

// Result is the outcome of advancing the flow.
type Result struct {
	NextState  State
	NextPrompt string
}

// Advance moves the flow one step forward. It is pure: no I/O, no clock,
// no randomness. Blank or whitespace-only input is a no-op guard that
// re-emits the current step's prompt rather than an error. Review is a
// fixed point; completion is handled by the practice orchestration, not here.
func Advance(state State, userInput string) Result {
	if strings.TrimSpace(userInput) == "" {
		return Result{NextState: state, NextPrompt: Prompts[state.Step]}
	}

	switch state.Step {
	case StepReact:
		return transition(state, StepRespond)
	case StepRespond:
		return transition(state, StepNotice)
	case StepNotice:
		return transition(state, StepLearn)
	case StepLearn:
		return transition(state, StepReview)
	case StepReview:
		return Result{NextState: state, NextPrompt: Prompts[StepReview]}
	default:
		// Unrecognized step values fall through to re-emitting the current
		// prompt instead of failing.
		return Result{NextState: state, NextPrompt: Prompts[state.Step]}
	}
}

func transition(state State, next Step) Result {
	state.Step = next
	return Result{NextState: state, NextPrompt: Prompts[next]}
}

// Start returns the opening position of a new daily reflection.
func Start(clientID, date string) Result {
	return Result{
		NextState:  State{ClientID: clientID, Date: date, Step: StepReact},
		NextPrompt: Prompts[StepReact],
	}
}

// IsValid reports whether s is one of the five known steps.
func IsValid(s Step) bool {
	switch s {
	case StepReact, StepRespond, StepNotice, StepLearn, StepReview:
		return true
	}
	return false
}
