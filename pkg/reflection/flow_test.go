package reflection

import "testing"

func TestAdvanceForwardTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     Step
		wantNext Step
	}{
		{"react to respond", StepReact, StepRespond},
		{"respond to notice", StepRespond, StepNotice},
		{"notice to learn", StepNotice, StepLearn},
		{"learn to review", StepLearn, StepReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := State{ClientID: "c1", Date: "2026-01-05", Step: tt.from}
			res := Advance(state, "a real answer")

			if res.NextState.Step != tt.wantNext {
				t.Errorf("Step = %q, want %q", res.NextState.Step, tt.wantNext)
			}
			if res.NextPrompt != Prompts[tt.wantNext] {
				t.Errorf("NextPrompt = %q, want prompt for %q", res.NextPrompt, tt.wantNext)
			}
			if res.NextState.ClientID != "c1" || res.NextState.Date != "2026-01-05" {
				t.Error("Advance must not touch client or date")
			}
		})
	}
}

func TestAdvanceReviewIsFixedPoint(t *testing.T) {
	state := State{ClientID: "c1", Date: "2026-01-05", Step: StepReview}

	for _, input := range []string{"YES", "NO", "anything at all"} {
		res := Advance(state, input)
		if res.NextState != state {
			t.Errorf("Advance(review, %q) changed state to %+v", input, res.NextState)
		}
		if res.NextPrompt != Prompts[StepReview] {
			t.Errorf("Advance(review, %q) prompt = %q", input, res.NextPrompt)
		}
	}
}

func TestAdvanceBlankInputIsNoOp(t *testing.T) {
	for _, step := range []Step{StepReact, StepRespond, StepNotice, StepLearn, StepReview} {
		for _, input := range []string{"", "   ", "\n\t "} {
			state := State{ClientID: "c1", Date: "2026-01-05", Step: step}
			res := Advance(state, input)

			if res.NextState != state {
				t.Errorf("Advance(%q, %q) advanced to %q", step, input, res.NextState.Step)
			}
			if res.NextPrompt != Prompts[step] {
				t.Errorf("Advance(%q, %q) prompt = %q, want current prompt", step, input, res.NextPrompt)
			}
		}
	}
}

func TestAdvanceUnknownStepReEmitsPrompt(t *testing.T) {
	state := State{ClientID: "c1", Date: "2026-01-05", Step: Step("garbled")}
	res := Advance(state, "hello")

	if res.NextState != state {
		t.Errorf("unknown step must not transition, got %+v", res.NextState)
	}
}

func TestStart(t *testing.T) {
	res := Start("c1", "2026-01-05")
	if res.NextState.Step != StepReact {
		t.Errorf("Start step = %q, want react", res.NextState.Step)
	}
	if res.NextPrompt != Prompts[StepReact] {
		t.Errorf("Start prompt = %q", res.NextPrompt)
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range []Step{StepReact, StepRespond, StepNotice, StepLearn, StepReview} {
		if !IsValid(s) {
			t.Errorf("IsValid(%q) = false", s)
		}
	}
	if IsValid(Step("summary")) {
		t.Error(`IsValid("summary") = true`)
	}
}
